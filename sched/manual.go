package sched

import "time"

// Manual is a Scheduler driven by virtual time. Nothing fires until Advance is called,
// and callbacks run synchronously on the caller's goroutine in due-time order.
// Timers due at the same instant fire in creation order.
type Manual struct {
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	every   time.Duration
	seq     uint64
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	active := !t.stopped
	t.stopped = true
	return active
}

// NewManual returns a virtual scheduler positioned at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration {
	return m.now
}

func (m *Manual) add(at, every time.Duration, fn func()) *manualTimer {
	m.seq++
	t := &manualTimer{at: at, every: every, seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	return m.add(m.now+d, 0, fn)
}

// Every implements Scheduler.
func (m *Manual) Every(d time.Duration, fn func()) Timer {
	d = period(d)
	return m.add(m.now+d, d, fn)
}

// Post implements Scheduler. The task runs on the next call to Advance.
func (m *Manual) Post(fn func()) bool {
	m.add(m.now, 0, fn)
	return true
}

// Advance moves virtual time forward by d, firing every timer that falls due.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d

	for {
		next := m.next(target)
		if next == nil {
			break
		}

		m.now = next.at
		if next.every > 0 {
			next.at += next.every
		} else {
			next.stopped = true
		}
		next.fn()
	}

	m.now = target
}

func (m *Manual) next(limit time.Duration) *manualTimer {
	var (
		found *manualTimer
		alive = m.timers[:0]
	)

	for _, t := range m.timers {
		if t.stopped {
			continue
		}
		alive = append(alive, t)

		if t.at > limit {
			continue
		}
		if found == nil || t.at < found.at || (t.at == found.at && t.seq < found.seq) {
			found = t
		}
	}

	// Clear the tail so dropped timers can be collected.
	for i := len(alive); i < len(m.timers); i++ {
		m.timers[i] = nil
	}
	m.timers = alive

	return found
}

// Pending returns the number of active timers.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}
