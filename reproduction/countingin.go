package reproduction

import (
	"time"

	"github.com/playalong-cli/playalong/sched"
)

const (
	phaseOne = 1
	phaseTwo = 2

	phaseOnePulses = 3
	phaseTwoPulses = 5

	// phaseOneSpacing is the number of beats between phase one pulses.
	phaseOneSpacing = 2
)

// countingIn tracks the progress of the pre-roll.
//
// Phase one pulses every two beats, phase two every beat. A phase is over one
// spacing after its last pulse; phase two then starts right away with its first
// pulse, and playback starts one beat after the last pulse of phase two.
type countingIn struct {
	phase     int
	index     int
	remaining int
	count     int
	timer     sched.Timer
}

// Tempo-derived interval between two beats.
func beatInterval(tempo float64) time.Duration {
	if tempo <= 0 {
		return 0
	}
	return time.Duration(float64(time.Minute) / tempo)
}

func (c *countingIn) active() bool {
	return c.timer != nil
}

func (c *countingIn) cancel() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// enter resets the progress to the start of phase.
func (c *countingIn) enter(phase int) {
	c.phase = phase
	c.index = 0
	c.remaining = phaseOnePulses
	if phase == phaseTwo {
		c.remaining = phaseTwoPulses
	}
}

// next consumes one pulse of the current phase.
func (c *countingIn) next() Pulse {
	c.index++
	c.count++
	c.remaining--

	return Pulse{Phase: c.phase, Index: c.index, Count: c.count}
}

// startCountingIn emits the first pulse immediately and schedules the rest.
func (r *Reproduction) startCountingIn() {
	r.setState(StateCountingIn)

	r.counting = countingIn{}
	r.counting.enter(phaseOne)
	// Armed before the first pulse so a handler stopping the session cancels it.
	r.counting.timer = r.scheduler.Every(phaseOneSpacing*r.BeatInterval(), r.countingInTick)
	r.emitPulse(r.counting.next())
}

func (r *Reproduction) countingInTick() {
	if r.state != StateCountingIn {
		r.counting.cancel()
		return
	}

	c := &r.counting

	switch {
	case c.remaining > 0:
		r.emitPulse(c.next())
	case c.phase == phaseOne:
		c.cancel()
		c.enter(phaseTwo)
		c.timer = r.scheduler.Every(r.BeatInterval(), r.countingInTick)
		r.emitPulse(c.next())
	default:
		c.cancel()
		r.Play()
	}
}

func (r *Reproduction) emitPulse(p Pulse) {
	r.logger().WithField("pulse", p.Count).Debug("counting in")
	r.events.Emit(EventCountingIn, Event{
		Kind:     EventCountingIn,
		Pulse:    p,
		Position: r.backend.CurrentTime(),
	})
}
