package reproduction

import "github.com/playalong-cli/playalong/player"

// State is the playback state of a Reproduction.
type State int

const (
	StateStopped State = iota
	StateCountingIn
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "STOPPED"
	case StateCountingIn:
		return "COUNTING_IN"
	case StatePlaying:
		return "PLAYING"
	case StatePaused:
		return "PAUSED"
	default:
		return "UNKNOWN"
	}
}

// EventKind enumerates the notifications a Reproduction emits.
type EventKind int

const (
	EventReady EventKind = iota + 1
	EventStart
	EventCountingIn
	EventPlay
	EventPlaying
	EventPaused
	EventFinish
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventReady:
		return "READY"
	case EventStart:
		return "START"
	case EventCountingIn:
		return "COUNTING_IN"
	case EventPlay:
		return "PLAY"
	case EventPlaying:
		return "PLAYING"
	case EventPaused:
		return "PAUSED"
	case EventFinish:
		return "FINISH"
	case EventError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Pulse identifies one beat of the counting-in.
type Pulse struct {
	// Phase is 1 for the slow opening pulses and 2 for the fast ones.
	Phase int
	// Index is the 1-based position of the pulse within its phase.
	Index int
	// Count is the 1-based position of the pulse within the whole counting-in.
	Count int
}

// Event is the payload delivered to reproduction handlers.
type Event struct {
	Kind EventKind

	// Pulse is set for EventCountingIn.
	Pulse Pulse

	// Position is the playback position in seconds when the event was emitted.
	Position float64

	// Err is set for EventError.
	Err player.Error
}

// Handler receives reproduction events.
type Handler func(Event)
