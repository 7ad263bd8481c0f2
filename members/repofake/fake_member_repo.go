package repofake

import (
	"context"
	"sync"

	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/jrsteele09/diplomats-site/members"
)

var _ members.Repo = (*FakeMemberRepo)(nil)

type FakeMemberRepo struct {
	lock   sync.RWMutex
	emails []string
	points map[string]members.Points
	// Err, when set, is returned by every call.
	Err error
}

func NewFakeMemberRepo(emails ...string) *FakeMemberRepo {
	return &FakeMemberRepo{
		emails: emails,
		points: make(map[string]members.Points),
	}
}

func (r *FakeMemberRepo) ListEmails(context.Context) ([]string, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return append([]string(nil), r.emails...), nil
}

func (r *FakeMemberRepo) Points(_ context.Context, email string) (members.Points, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.Err != nil {
		return members.Points{}, r.Err
	}
	p, ok := r.points[members.NormalizeEmail(email)]
	if !ok {
		return members.Points{}, errors.ErrNotFound
	}
	return p, nil
}

func (r *FakeMemberRepo) SetPoints(p members.Points) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.points[members.NormalizeEmail(p.Email)] = p
}
