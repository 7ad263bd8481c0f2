package tasks_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/diplomats-site/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu       sync.Mutex
	started  []string
	finished map[string]error
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{finished: map[string]error{}}
}

func (o *recordingObserver) TaskStarted(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started = append(o.started, name)
}

func (o *recordingObserver) TaskFinished(name string, err error, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished[name] = err
}

func (o *recordingObserver) result(name string) (error, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	err, ok := o.finished[name]
	return err, ok
}

func TestAsyncSubmitDoesNotBlock(t *testing.T) {
	runner := tasks.NewAsync(time.Second, 0, nil)
	release := make(chan struct{})

	start := time.Now()
	runner.Submit("slow", func(ctx context.Context) error {
		<-release
		return nil
	})
	assert.Less(t, time.Since(start), 50*time.Millisecond)

	close(release)
	require.NoError(t, runner.Wait(context.Background()))
}

func TestAsyncRunsAllTasks(t *testing.T) {
	const n = 50
	var counter atomic.Int32
	runner := tasks.NewAsync(time.Second, 4, nil)

	for i := 0; i < n; i++ {
		runner.Submit("count", func(ctx context.Context) error {
			counter.Add(1)
			return nil
		})
	}

	require.NoError(t, runner.Wait(context.Background()))
	assert.Equal(t, int32(n), counter.Load())
}

func TestAsyncBoundsConcurrency(t *testing.T) {
	var running, peak atomic.Int32
	runner := tasks.NewAsync(time.Second, 2, nil)

	for i := 0; i < 10; i++ {
		runner.Submit("bounded", func(ctx context.Context) error {
			cur := running.Add(1)
			for {
				p := peak.Load()
				if cur <= p || peak.CompareAndSwap(p, cur) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			return nil
		})
	}

	require.NoError(t, runner.Wait(context.Background()))
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestAsyncPanicIsContained(t *testing.T) {
	obs := newRecordingObserver()
	runner := tasks.NewAsync(time.Second, 0, obs)

	runner.Submit("boom", func(ctx context.Context) error {
		panic("kaboom")
	})
	runner.Submit("after", func(ctx context.Context) error {
		return nil
	})

	require.NoError(t, runner.Wait(context.Background()))

	err, ok := obs.result("boom")
	require.True(t, ok)
	require.ErrorContains(t, err, "kaboom")

	err, ok = obs.result("after")
	require.True(t, ok)
	require.NoError(t, err)
}

func TestAsyncTimeoutCancelsTask(t *testing.T) {
	obs := newRecordingObserver()
	runner := tasks.NewAsync(10*time.Millisecond, 0, obs)

	runner.Submit("stuck", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	require.NoError(t, runner.Wait(context.Background()))
	err, _ := obs.result("stuck")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAsyncWaitExpires(t *testing.T) {
	runner := tasks.NewAsync(0, 0, nil)
	release := make(chan struct{})
	defer close(release)

	runner.Submit("forever", func(ctx context.Context) error {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, runner.Wait(ctx), context.DeadlineExceeded)
}

func TestAsyncDropsAfterWait(t *testing.T) {
	runner := tasks.NewAsync(time.Second, 0, nil)
	require.NoError(t, runner.Wait(context.Background()))

	var ran atomic.Bool
	runner.Submit("late", func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})
	time.Sleep(10 * time.Millisecond)
	assert.False(t, ran.Load())
}

func TestSyncRunsInline(t *testing.T) {
	obs := newRecordingObserver()
	runner := tasks.Sync{Observer: obs}

	var ran bool
	runner.Submit("inline", func(ctx context.Context) error {
		ran = true
		return errors.New("ignored")
	})

	assert.True(t, ran)
	err, ok := obs.result("inline")
	require.True(t, ok)
	require.EqualError(t, err, "ignored")
}

func TestSyncSwallowsPanic(t *testing.T) {
	require.NotPanics(t, func() {
		tasks.Sync{}.Submit("boom", func(ctx context.Context) error {
			panic("x")
		})
	})
}
