package repofake

import (
	"context"
	"sort"
	"sync"

	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/jrsteele09/diplomats-site/questions"
)

var _ questions.Repo = (*FakeQuestionRepo)(nil)

type FakeQuestionRepo struct {
	lock      sync.RWMutex
	questions map[string]questions.Question
	// Err, when set, is returned by every call.
	Err error
}

func NewFakeQuestionRepo() *FakeQuestionRepo {
	return &FakeQuestionRepo{
		questions: make(map[string]questions.Question),
	}
}

func (r *FakeQuestionRepo) Insert(_ context.Context, q questions.Question) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, exists := r.questions[q.ID]; exists {
		return errors.Wrapf(errors.ErrInternal, "duplicate question id %s", q.ID)
	}
	r.questions[q.ID] = q
	return nil
}

func (r *FakeQuestionRepo) List(context.Context) ([]questions.Question, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	list := make([]questions.Question, 0, len(r.questions))
	for _, q := range r.questions {
		list = append(list, q)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].SubmittedAt.Equal(list[j].SubmittedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].SubmittedAt.Before(list[j].SubmittedAt)
	})
	return list, nil
}

func (r *FakeQuestionRepo) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.questions[id]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "question %s", id)
	}
	delete(r.questions, id)
	return nil
}
