package questions

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/diplomats-site/internal/errors"
)

// Question is an inquiry submitted through the ask form. Questions are never
// updated; answering one deletes it.
type Question struct {
	ID          string    `json:"id" bson:"question_id"`
	AskerName   string    `json:"name" bson:"submitters_name"`
	AskerEmail  string    `json:"email" bson:"submitters_email"`
	SubmittedAt time.Time `json:"submitted_at" bson:"submission_date"`
	Body        string    `json:"question" bson:"question"`
}

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// New creates a question with a fresh opaque id.
func New(name, email, body string) Question {
	return Question{
		ID:          NewID(),
		AskerName:   strings.TrimSpace(name),
		AskerEmail:  strings.TrimSpace(email),
		SubmittedAt: NowTimeFunc().UTC(),
		Body:        strings.TrimSpace(body),
	}
}

// NewID returns a random 32 character hex id.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Find returns the question with the given id from list.
func Find(list []Question, id string) (Question, error) {
	for _, q := range list {
		if q.ID == id {
			return q, nil
		}
	}
	return Question{}, errors.Wrapf(errors.ErrNotFound, "question %s", id)
}

// AnswerTask is the unit of work handed to the background runner when a
// member answers a question. It is never persisted.
type AnswerTask struct {
	QuestionID string
	// Questions is the list the member answered from; the question is looked
	// up here rather than re-read from the store.
	Questions  []Question
	AnswerText string
	AnsweredBy string
}

// Question resolves the task's question from its in-memory list.
func (t AnswerTask) Question() (Question, error) {
	return Find(t.Questions, t.QuestionID)
}

type Repo interface {
	Insert(ctx context.Context, q Question) error
	// List returns the open questions, oldest first.
	List(ctx context.Context) ([]Question, error)
	// Delete removes an answered question. It returns ErrNotFound if the id is unknown.
	Delete(ctx context.Context, id string) error
}
