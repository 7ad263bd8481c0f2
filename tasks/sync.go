package tasks

import (
	"context"
	"time"
)

// Sync runs each task in the caller's goroutine before Submit returns.
type Sync struct {
	Timeout  time.Duration
	Observer Observer
}

var _ Runner = Sync{}

func (s Sync) Submit(name string, fn Func) {
	obs := s.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	_ = execute(context.Background(), name, s.Timeout, obs, fn)
}
