package tasks

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/rs/zerolog/log"
)

// execute runs fn with the timeout applied and turns a panic into an error.
func execute(ctx context.Context, name string, timeout time.Duration, obs Observer, fn Func) (err error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	obs.TaskStarted(name)
	defer func() {
		if r := recover(); r != nil {
			err = errors.Mark(fmt.Errorf("task %s panicked: %v", name, r), errors.ErrInternal)
			log.Error().Str("task", name).Bytes("stack", debug.Stack()).Msg("background task panic")
		}
		obs.TaskFinished(name, err, time.Since(start))
		if err != nil {
			log.Err(err).Str("task", name).Msg("background task failed")
			return
		}
		log.Debug().Str("task", name).Dur("took", time.Since(start)).Msg("background task done")
	}()

	return fn(ctx)
}
