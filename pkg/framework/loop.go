package framework

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"
)

// DefaultInterval is the iteration interval when Loop.Interval is not set.
const DefaultInterval = time.Second

// Loop runs controllers periodically, e.g. polling the board.
type Loop struct {
	Interval time.Duration

	controllers []Controller
	lock        sync.Mutex
	wakeUpCh    chan struct{}
	once        sync.Once
}

// NewLoop creates a Loop.
func NewLoop(interval time.Duration) *Loop {
	return &Loop{Interval: interval}
}

func (l *Loop) init() {
	l.once.Do(func() {
		l.wakeUpCh = make(chan struct{}, 1)
	})
}

// AddController registers controllers to the loop.
func (l *Loop) AddController(ctls ...Controller) *Loop {
	l.lock.Lock()
	l.controllers = append(l.controllers, ctls...)
	l.lock.Unlock()
	return l
}

// TriggerNext schedules an iteration immediately after the current one.
func (l *Loop) TriggerNext() {
	l.init()
	select {
	case l.wakeUpCh <- struct{}{}:
	default:
	}
}

// Run implements Runnable. An iteration runs right away, controller
// errors are logged and don't stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	l.init()
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		l.runIteration(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-l.wakeUpCh:
		}
	}
}

func (l *Loop) runIteration(ctx context.Context) {
	l.lock.Lock()
	ctls := make([]Controller, len(l.controllers))
	copy(ctls, l.controllers)
	l.lock.Unlock()
	for _, ctl := range ctls {
		if ctx.Err() != nil {
			return
		}
		if err := ctl.Control(ctx); err != nil {
			glog.Errorf("controller error: %v", err)
		}
	}
}
