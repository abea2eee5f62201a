// Package reproduction sequences a playback session over a player.Backend.
//
// A Reproduction optionally runs a metronome-paced counting-in before playback,
// keeps a finite state machine (STOPPED, COUNTING_IN, PLAYING, PAUSED) and polls
// the position while playing, since some backends do not push progress.
//
// A Reproduction is not safe for concurrent use. Its methods, handlers and timer
// callbacks must all run on the scheduler it was built with.
package reproduction

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/playalong-cli/playalong/event"
	"github.com/playalong-cli/playalong/log"
	"github.com/playalong-cli/playalong/player"
	"github.com/playalong-cli/playalong/sched"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
)

// DefaultPollInterval is the period of PLAYING notifications.
const DefaultPollInterval = 200 * time.Millisecond

// ErrMissingTempo is returned when counting-in is required without a positive tempo.
var ErrMissingTempo = errors.New("counting-in requires a song tempo")

// Reproduction is a playback session.
type Reproduction struct {
	id      uuid.UUID
	backend player.Backend

	requiresCountingIn bool
	tempo              float64

	state  State
	ready  bool
	volume int

	scheduler    sched.Scheduler
	pollInterval time.Duration
	poll         sched.Timer
	counting     countingIn

	events event.Emitter[EventKind, Event]
}

// New wraps backend in a session. It fails with ErrMissingTempo when
// requiresCountingIn is set and tempo is not positive.
func New(s sched.Scheduler, backend player.Backend, requiresCountingIn bool, tempo float64) (*Reproduction, error) {
	if requiresCountingIn && tempo <= 0 {
		return nil, ErrMissingTempo
	}

	r := &Reproduction{
		id:                 uuid.New(),
		backend:            backend,
		requiresCountingIn: requiresCountingIn,
		tempo:              tempo,
		state:              StateStopped,
		volume:             backend.Volume(),
		scheduler:          s,
		pollInterval:       DefaultPollInterval,
	}

	backend.On(player.EventReady, r.onBackendReady)
	backend.On(player.EventFinish, r.onBackendFinish)
	backend.On(player.EventError, r.onBackendError)

	r.logger().Debug("reproduction created")
	return r, nil
}

// SetPollInterval changes the period of PLAYING notifications.
// It takes effect the next time playback starts.
func (r *Reproduction) SetPollInterval(d time.Duration) {
	if d > 0 {
		r.pollInterval = d
	}
}

func (r *Reproduction) logger() *logrus.Entry {
	return log.WithFields(log.Fields{
		"session": r.id.String(),
		"state":   r.state.String(),
	})
}

func (r *Reproduction) setState(s State) {
	if r.state != s {
		r.logger().WithField("next", s.String()).Debug("state change")
	}
	r.state = s
}

func (r *Reproduction) emit(kind EventKind) {
	r.events.Emit(kind, Event{Kind: kind, Position: r.backend.CurrentTime()})
}

func (r *Reproduction) onBackendReady(player.Event) {
	if r.ready {
		return
	}
	r.ready = true
	r.emit(EventReady)
}

func (r *Reproduction) onBackendFinish(player.Event) {
	r.cancelTimers()
	r.setState(StateStopped)
	r.emit(EventFinish)
}

func (r *Reproduction) onBackendError(e player.Event) {
	r.logger().WithField("code", e.Err.Code).Warn(e.Err.Message)
	r.events.Emit(EventError, Event{
		Kind:     EventError,
		Position: r.backend.CurrentTime(),
		Err:      e.Err,
	})
}

func (r *Reproduction) cancelTimers() {
	r.counting.cancel()
	if r.poll != nil {
		r.poll.Stop()
		r.poll = nil
	}
}

// Start begins the session. From position zero with counting-in required, the
// counting-in runs first; otherwise playback starts at once. START is emitted
// when leaving STOPPED. Start should not be called before the session is ready.
func (r *Reproduction) Start() {
	r.cancelTimers()

	if r.state == StateStopped {
		r.emit(EventStart)
	}

	if r.requiresCountingIn && r.backend.CurrentTime() == 0 {
		r.startCountingIn()
		return
	}

	r.Play()
}

// Play starts playback without counting-in.
func (r *Reproduction) Play() {
	r.cancelTimers()
	r.setState(StatePlaying)
	r.emit(EventPlay)

	r.backend.Play()

	// The backend may have finished or failed synchronously.
	if r.state != StatePlaying {
		return
	}

	r.poll = r.scheduler.Every(r.pollInterval, func() {
		if r.state == StatePlaying {
			r.emit(EventPlaying)
		}
	})
}

func (r *Reproduction) Pause() {
	r.setState(StatePaused)
	r.backend.Pause()
	r.cancelTimers()
	r.emit(EventPaused)
}

func (r *Reproduction) Stop() {
	r.setState(StateStopped)
	r.backend.Stop()
	r.cancelTimers()
	r.emit(EventFinish)
}

// Destroy stops the session and releases the backend.
func (r *Reproduction) Destroy() {
	r.cancelTimers()
	r.setState(StateStopped)
	r.backend.Destroy()
}

func (r *Reproduction) SeekTo(seconds float64) {
	r.backend.SeekTo(seconds)
}

// SetVolume clamps the volume to [0, 100] and applies it.
func (r *Reproduction) SetVolume(volume int) {
	r.volume = player.ClampVolume(volume)
	r.backend.SetVolume(r.volume)
}

func (r *Reproduction) Volume() int {
	return r.volume
}

func (r *Reproduction) CurrentTime() float64 {
	return r.backend.CurrentTime()
}

// Duration returns the media length in seconds, or None when it is unknown.
func (r *Reproduction) Duration() mo.Option[float64] {
	return r.backend.Duration()
}

func (r *Reproduction) AvailablePlaybackRates() []float64 {
	return r.backend.AvailablePlaybackRates()
}

func (r *Reproduction) SetPlaybackRate(rate float64) error {
	if err := r.backend.SetPlaybackRate(rate); err != nil {
		return fmt.Errorf("set playback rate: %w", err)
	}
	return nil
}

func (r *Reproduction) IsAvailable() bool {
	return r.backend.IsAvailable()
}

// IsReady reports whether the backend has signalled READY.
func (r *Reproduction) IsReady() bool {
	return r.ready
}

func (r *Reproduction) IsPlaying() bool {
	return r.state == StatePlaying
}

func (r *Reproduction) IsStopped() bool {
	return r.state == StateStopped
}

func (r *Reproduction) IsPaused() bool {
	return r.state == StatePaused
}

func (r *Reproduction) IsCountingIn() bool {
	return r.state == StateCountingIn
}

func (r *Reproduction) State() State {
	return r.state
}

// On registers a handler for an event kind. Handlers run in registration order.
func (r *Reproduction) On(kind EventKind, handler Handler) {
	r.events.On(kind, event.Handler[Event](handler))
}

// ID identifies the session in logs.
func (r *Reproduction) ID() uuid.UUID {
	return r.id
}

func (r *Reproduction) Tempo() float64 {
	return r.tempo
}

// RequiresCountingIn reports whether Start runs the counting-in from position zero.
func (r *Reproduction) RequiresCountingIn() bool {
	return r.requiresCountingIn
}

// BeatInterval is the duration of one beat at the session tempo, zero without a tempo.
func (r *Reproduction) BeatInterval() time.Duration {
	return beatInterval(r.tempo)
}

// Backend returns the wrapped backend.
func (r *Reproduction) Backend() player.Backend {
	return r.backend
}
