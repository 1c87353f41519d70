package framework

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil, nil).Aggregate())

	errA, errB := errors.New("a"), errors.New("b")
	err := errs.Add(errA).Aggregate()
	require.Equal(t, "a", err.Error())
	err = errs.Add(nil, errB).Aggregate()
	require.Equal(t, "Multiple errors:\na\nb", err.Error())
	require.True(t, errors.Is(err, errB))
	require.False(t, errors.Is(err, context.Canceled))
}

func TestRunnerCancelsOnExit(t *testing.T) {
	errFailed := errors.New("failed")
	r := NewRunner().Go(
		NamedRun("blocker", RunFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})),
		RunFunc(func(context.Context) error {
			return errFailed
		}),
	)
	err := r.Wait()
	require.True(t, errors.Is(err, errFailed))
	require.Len(t, r.Runners, 2)
}

func TestRunnerCanceledIsNotError(t *testing.T) {
	r := NewRunner().Go(RunFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))
	r.Stop()
	require.NoError(t, r.Wait())
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestRunWithContextCloser(t *testing.T) {
	var closed int32
	stopCh := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunWithContextCloser(ctx, closerFunc(func() error {
		atomic.AddInt32(&closed, 1)
		close(stopCh)
		return nil
	}), func() error {
		<-stopCh
		return nil
	})
	require.Equal(t, context.Canceled, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&closed))

	err = RunWithContextCloser(context.Background(), closerFunc(func() error {
		atomic.AddInt32(&closed, 1)
		return nil
	}), func() error { return nil })
	require.NoError(t, err)
	require.Equal(t, int32(2), atomic.LoadInt32(&closed))
}

func TestLoop(t *testing.T) {
	var count int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := NewLoop(time.Hour)
	l.AddController(ControlFunc(func(context.Context) error {
		if atomic.AddInt32(&count, 1) == 3 {
			cancel()
		}
		return errors.New("logged only")
	}))
	doneCh := make(chan error, 1)
	go func() { doneCh <- l.Run(ctx) }()
	// the first iteration runs immediately, the others are triggered.
	for atomic.LoadInt32(&count) < 3 {
		l.TriggerNext()
		time.Sleep(time.Millisecond)
	}
	select {
	case err := <-doneCh:
		require.Equal(t, context.Canceled, err)
	case <-time.After(time.Second):
		t.Fatal("loop not stopped")
	}
	require.Equal(t, int32(3), atomic.LoadInt32(&count))
}
