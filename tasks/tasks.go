// Package tasks runs notification work in the background so that request
// handlers never wait on outbound mail or messaging.
//
// Async is the production runner. Sync runs every task inline and is used
// by tests that need to observe side effects deterministically.
package tasks

import (
	"context"
	"time"
)

// Func is a unit of background work. The context carries the per-task
// deadline.
type Func func(ctx context.Context) error

// Runner schedules tasks. Submit never reports task failures to the caller;
// they are logged and passed to the Observer.
type Runner interface {
	Submit(name string, fn Func)
}

// Observer is told when tasks start and finish.
type Observer interface {
	TaskStarted(name string)
	TaskFinished(name string, err error, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) TaskStarted(string) {}

func (nopObserver) TaskFinished(string, error, time.Duration) {}
