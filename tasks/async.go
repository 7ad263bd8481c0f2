package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Async runs each submitted task in its own goroutine. When maxConcurrent
// is positive, at most that many tasks execute at once; waiting tasks hold
// a goroutine but never block the submitter.
type Async struct {
	timeout time.Duration
	sem     chan struct{}
	obs     Observer

	wg       sync.WaitGroup
	mu       sync.Mutex
	closed   bool
	shutdown context.Context
	cancel   context.CancelFunc
}

var _ Runner = (*Async)(nil)

func NewAsync(timeout time.Duration, maxConcurrent int, obs Observer) *Async {
	if obs == nil {
		obs = nopObserver{}
	}
	a := &Async{
		timeout: timeout,
		obs:     obs,
	}
	if maxConcurrent > 0 {
		a.sem = make(chan struct{}, maxConcurrent)
	}
	a.shutdown, a.cancel = context.WithCancel(context.Background())
	return a
}

// Submit schedules fn and returns immediately. Tasks submitted after Wait
// has been called are dropped.
func (a *Async) Submit(name string, fn Func) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		log.Warn().Str("task", name).Msg("task submitted after shutdown, dropping")
		return
	}
	a.wg.Add(1)
	a.mu.Unlock()

	go func() {
		defer a.wg.Done()
		if a.sem != nil {
			select {
			case a.sem <- struct{}{}:
				defer func() { <-a.sem }()
			case <-a.shutdown.Done():
				log.Warn().Str("task", name).Msg("task abandoned at shutdown before it started")
				return
			}
		}
		_ = execute(a.shutdown, name, a.timeout, a.obs, fn)
	}()
}

// Wait stops accepting tasks and blocks until in-flight tasks finish or ctx
// is done. On ctx expiry the remaining tasks are cancelled and ctx.Err() is
// returned.
func (a *Async) Wait(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.cancel()
		return nil
	case <-ctx.Done():
		a.cancel()
		return ctx.Err()
	}
}
