// Package player defines a unified abstraction layer over playback backends.
//
// Two backends satisfy the Backend contract: Simulated, a timer-driven player used
// when there is no real media, and Video, an adapter over an external, asynchronously
// initialised video player reached through a VideoHandle.
package player

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ErrUnsupportedRate is returned when a playback rate outside AvailablePlaybackRates is requested.
var ErrUnsupportedRate = errors.New("unsupported playback rate")

// EventKind enumerates the notifications a Backend emits.
type EventKind int

const (
	EventReady EventKind = iota + 1
	EventFinish
	EventError
	EventPlaying
	EventPaused
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventReady:
		return "READY"
	case EventFinish:
		return "FINISH"
	case EventError:
		return "ERROR"
	case EventPlaying:
		return "PLAYING"
	case EventPaused:
		return "PAUSED"
	default:
		return "UNKNOWN"
	}
}

// Event is the payload delivered to backend handlers.
type Event struct {
	Kind EventKind
	// Err is set for EventError only.
	Err Error
}

// Error describes a runtime failure reported by a backend.
type Error struct {
	Code    int
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("player error %d: %s", e.Code, e.Message)
}

// Handler receives backend events.
type Handler func(Event)

// Backend encapsulates the capabilities a playback session relies on.
type Backend interface {
	// Play starts or resumes playback.
	Play()

	// Pause suspends playback, keeping the current position.
	Pause()

	// Stop pauses playback and rewinds to the beginning.
	Stop()

	// SeekTo moves playback to an absolute position in seconds.
	SeekTo(seconds float64)

	// CurrentTime returns the playback position in seconds.
	CurrentTime() float64

	// Duration returns the media length in seconds, or None when it cannot be known.
	Duration() mo.Option[float64]

	// SetVolume stores the volume, clamped to [0, 100].
	SetVolume(volume int)

	// Volume returns the last volume set.
	Volume() int

	// AvailablePlaybackRates lists the rates accepted by SetPlaybackRate.
	AvailablePlaybackRates() []float64

	// SetPlaybackRate changes the playback speed. It fails with ErrUnsupportedRate
	// when rate is not one of AvailablePlaybackRates.
	SetPlaybackRate(rate float64) error

	// IsAvailable reports whether the backend can currently play.
	IsAvailable() bool

	// On registers a handler for an event kind.
	On(kind EventKind, handler Handler)

	// Destroy stops playback and cancels every internal timer.
	Destroy()
}

// ClampVolume bounds a volume to [0, 100].
func ClampVolume(volume int) int {
	return lo.Clamp(volume, 0, 100)
}

func checkRate(available []float64, rate float64) error {
	if !lo.Contains(available, rate) {
		return fmt.Errorf("%w: %v (available: %v)", ErrUnsupportedRate, rate, available)
	}
	return nil
}
