package repofake

import (
	"context"
	"sync"

	"github.com/jrsteele09/diplomats-site/fundraisers"
)

var _ fundraisers.Repo = (*FakeFundraiserRepo)(nil)

type FakeFundraiserRepo struct {
	lock        sync.RWMutex
	fundraisers []fundraisers.Fundraiser
	Err         error
}

func NewFakeFundraiserRepo(f ...fundraisers.Fundraiser) *FakeFundraiserRepo {
	return &FakeFundraiserRepo{fundraisers: f}
}

func (r *FakeFundraiserRepo) List(context.Context) ([]fundraisers.Fundraiser, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return append([]fundraisers.Fundraiser(nil), r.fundraisers...), nil
}
