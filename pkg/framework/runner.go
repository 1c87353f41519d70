package framework

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/golang/glog"
)

type namedRunnable struct {
	Runnable
	name string
}

func (r *namedRunnable) Name() string {
	return r.name
}

// NamedRun wraps a Runnable with a name used in logs.
func NamedRun(name string, runnable Runnable) Runnable {
	return &namedRunnable{name: name, Runnable: runnable}
}

// ErrForcedExit is returned by Wait when stop is requested twice.
var ErrForcedExit = errors.New("forced exit")

// Runner runs the parts of a daemon together. The first one returning
// stops all the others.
type Runner struct {
	Context context.Context
	Runners []Runnable

	stop   context.CancelFunc
	doneCh chan error
	exitCh chan struct{}
}

// NewRunner creates a Runner.
func NewRunner() *Runner {
	r := &Runner{doneCh: make(chan error), exitCh: make(chan struct{})}
	r.Context, r.stop = context.WithCancel(context.Background())
	return r
}

// Stop cancels the context of all Runnables.
func (r *Runner) Stop() {
	r.stop()
}

// HandleSignals stops on SIGINT or SIGTERM, a second signal makes Wait
// return ErrForcedExit without waiting.
func (r *Runner) HandleSignals() *Runner {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		glog.Infof("%v: stopping", sig)
		r.Stop()
		sig = <-sigCh
		glog.Errorf("%v: force exit", sig)
		close(r.exitCh)
	}()
	return r
}

func runnableName(runnable Runnable, index int) string {
	if named, ok := runnable.(Named); ok {
		return named.Name()
	}
	return "#" + strconv.Itoa(index)
}

// Go starts Runnables.
func (r *Runner) Go(runnables ...Runnable) *Runner {
	for _, runnable := range runnables {
		name := runnableName(runnable, len(r.Runners))
		r.Runners = append(r.Runners, runnable)
		go func(runnable Runnable) {
			glog.V(4).Infof("%s started", name)
			err := runnable.Run(r.Context)
			glog.V(4).Infof("%s stopped: %v", name, err)
			r.Stop()
			r.doneCh <- err
		}(runnable)
	}
	return r
}

// Wait returns after all Runnables returned. Cancellation is not an error.
func (r *Runner) Wait() error {
	var errs AggregatedError
	for range r.Runners {
		select {
		case err := <-r.doneCh:
			if !errors.Is(err, context.Canceled) {
				errs.Add(err)
			}
		case <-r.exitCh:
			return ErrForcedExit
		}
	}
	return errs.Aggregate()
}

// RunWithContextCloser runs fn which has no context, e.g. a blocking
// server loop. closer is called when ctx is done to unblock fn, or after
// fn returned on its own. Cancellation returns context.Canceled.
func RunWithContextCloser(ctx context.Context, closer io.Closer, fn func() error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
	}()
	select {
	case err := <-errCh:
		closer.Close()
		return err
	case <-ctx.Done():
		closer.Close()
		<-errCh
		return context.Canceled
	}
}
