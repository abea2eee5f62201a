// Package metronome makes the counting-in of a session audible.
package metronome

import (
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/playalong-cli/playalong/log"
	"github.com/playalong-cli/playalong/reproduction"
)

const (
	// DefaultFrequency is the pitch of a regular click in Hz.
	DefaultFrequency = 880

	clickDuration  = 60 * time.Millisecond
	accentDuration = 90 * time.Millisecond
	accentRatio    = 1.5

	bufferDuration = 100 * time.Millisecond

	// maxGain keeps a full volume click at half scale.
	maxGain = 0.5
)

// Output plays streamers without blocking.
type Output interface {
	Play(s beep.Streamer)
}

// Metronome clicks on every counting-in pulse. The first pulse of each phase is accented.
type Metronome struct {
	out       Output
	frequency float64
}

func New(out Output, frequency float64) *Metronome {
	if frequency <= 0 {
		frequency = DefaultFrequency
	}
	return &Metronome{out: out, frequency: frequency}
}

// Attach subscribes the metronome to the counting-in of r. Clicks follow the session volume.
func (m *Metronome) Attach(r *reproduction.Reproduction) {
	r.On(reproduction.EventCountingIn, func(e reproduction.Event) {
		m.Click(e.Pulse, r.Volume())
	})
}

// Click plays the sound of one pulse at volume in [0, 100].
func (m *Metronome) Click(p reproduction.Pulse, volume int) {
	gain := maxGain * float64(volume) / 100
	if gain <= 0 {
		return
	}

	frequency, duration := m.frequency, clickDuration
	if p.Index == 1 {
		frequency, duration = m.frequency*accentRatio, accentDuration
	}

	log.Tracef("click %d (phase %d)", p.Count, p.Phase)
	m.out.Play(newTone(frequency, duration, gain))
}
