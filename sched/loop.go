package sched

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
)

// Loop is a Scheduler backed by a real clock. Tasks run one at a time on a
// dedicated goroutine in the order they were posted.
type Loop struct {
	clock clock.Clock

	mu     sync.Mutex
	queue  []func()
	closed bool

	wake      chan struct{}
	quit      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

// NewLoop creates a loop driven by clk. Call Start before posting work.
func NewLoop(clk clock.Clock) *Loop {
	if clk == nil {
		clk = clock.New()
	}

	return &Loop{
		clock: clk,
		wake:  make(chan struct{}, 1),
		quit:  make(chan struct{}),
	}
}

var (
	defaultLoop     *Loop
	defaultLoopOnce sync.Once
)

// Default returns the process-wide loop, starting it on first use.
func Default() *Loop {
	defaultLoopOnce.Do(func() {
		defaultLoop = NewLoop(clock.New())
		defaultLoop.Start()
	})
	return defaultLoop
}

// Start launches the loop goroutine. Calling it more than once has no effect.
func (l *Loop) Start() {
	l.startOnce.Do(func() {
		go l.run()
	})
}

// Close stops the loop. Queued tasks that have not started are discarded.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.mu.Lock()
		l.closed = true
		l.queue = nil
		l.mu.Unlock()
		close(l.quit)
	})
}

func (l *Loop) run() {
	for {
		select {
		case <-l.quit:
			return
		case <-l.wake:
		}

		for {
			l.mu.Lock()
			if l.closed || len(l.queue) == 0 {
				l.mu.Unlock()
				break
			}
			task := l.queue[0]
			l.queue = l.queue[1:]
			l.mu.Unlock()

			task()
		}
	}
}

// Post implements Scheduler.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Do runs fn on the loop and waits for it to return.
// It must not be called from a task running on the same loop.
func (l *Loop) Do(fn func()) bool {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return false
	}

	select {
	case <-done:
		return true
	case <-l.quit:
		return false
	}
}

type loopTimer struct {
	stopped atomic.Bool
	cancel  func()
}

func (t *loopTimer) Stop() bool {
	active := t.stopped.CompareAndSwap(false, true)
	if active && t.cancel != nil {
		t.cancel()
	}
	return active
}

// AfterFunc implements Scheduler.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	inner := l.clock.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	t.cancel = func() { inner.Stop() }
	return t
}

// Every implements Scheduler.
func (l *Loop) Every(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	ticker := l.clock.Ticker(period(d))
	stop := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-l.quit:
				return
			case <-ticker.C:
				l.Post(func() {
					if !t.stopped.Load() {
						fn()
					}
				})
			}
		}
	}()

	t.cancel = func() { close(stop) }
	return t
}
