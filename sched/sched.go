// Package sched runs timer callbacks and external notifications on a single logical thread.
//
// Playback sessions are not safe for concurrent use. Every callback that may touch
// a session (counting-in pulses, progress polls, player notifications) is funnelled
// through a Scheduler so that at most one of them runs at any time.
package sched

import "time"

// Timer is a handle on a scheduled callback.
type Timer interface {
	// Stop cancels the callback. A callback already queued but not yet run is dropped.
	// It reports whether the timer was active.
	Stop() bool
}

// Scheduler schedules one-shot and recurring callbacks.
type Scheduler interface {
	// AfterFunc runs fn once after d.
	AfterFunc(d time.Duration, fn func()) Timer

	// Every runs fn every d until the returned timer is stopped.
	// A non-positive period is treated as one millisecond.
	Every(d time.Duration, fn func()) Timer

	// Post queues fn to run as soon as possible, after already queued work.
	// It reports false if the scheduler no longer accepts work.
	Post(fn func()) bool
}

const minPeriod = time.Millisecond

func period(d time.Duration) time.Duration {
	if d <= 0 {
		return minPeriod
	}
	return d
}
