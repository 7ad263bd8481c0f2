package questions_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/jrsteele09/diplomats-site/questions"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	fixed := time.Date(2019, 4, 2, 15, 4, 5, 0, time.UTC)
	questions.NowTimeFunc = func() time.Time { return fixed }
	t.Cleanup(func() { questions.NowTimeFunc = time.Now })

	q := questions.New(" Simon ", "simon@ttu.edu ", " What is Study Abroad? ")
	require.Len(t, q.ID, 32)
	require.Equal(t, "Simon", q.AskerName)
	require.Equal(t, "simon@ttu.edu", q.AskerEmail)
	require.Equal(t, "What is Study Abroad?", q.Body)
	require.Equal(t, fixed, q.SubmittedAt)
}

func TestNewIDsAreUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := questions.NewID()
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestAnswerTaskQuestion(t *testing.T) {
	a := questions.New("A", "a@x.com", "first")
	b := questions.New("B", "b@x.com", "second")

	task := questions.AnswerTask{QuestionID: b.ID, Questions: []questions.Question{a, b}, AnswerText: "yes"}
	q, err := task.Question()
	require.NoError(t, err)
	require.Equal(t, b, q)

	task.QuestionID = "missing"
	_, err = task.Question()
	require.True(t, errors.Is(err, errors.ErrNotFound))
}
