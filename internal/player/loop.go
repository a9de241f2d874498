package player

import (
	"context"
	"time"
)

// Dispatcher runs closures on the goroutine that owns the engine.
type Dispatcher interface {
	Post(fn func())
}

// one-shot timer handle
type Timer interface {
	Stop() bool
}

// Scheduler arms wall-clock timers. fn runs on the timer's own goroutine and
// must only post work back to the Dispatcher.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// WallScheduler arms timers with time.AfterFunc.
type WallScheduler struct{}

func (WallScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Loop is a single-goroutine event loop. Every engine method and every clock
// mutation is expected to run inside Run, one closure at a time.
type Loop struct {
	queue chan func()
	done  chan struct{}
}

func NewLoop(size int) *Loop {
	if size <= 0 {
		size = 64
	}
	return &Loop{
		queue: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Post queues fn. It blocks while the queue is full and drops fn once the
// loop has stopped.
func (l *Loop) Post(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

// Run executes queued closures until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
