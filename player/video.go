package player

import (
	"fmt"

	"github.com/playalong-cli/playalong/event"
	"github.com/playalong-cli/playalong/log"
	"github.com/playalong-cli/playalong/sched"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// VideoState is the state reported by an external video player.
// The numbering follows the one used by common embeddable players.
type VideoState int

const (
	VideoUnstarted VideoState = -1
	VideoEnded     VideoState = 0
	VideoPlaying   VideoState = 1
	VideoPaused    VideoState = 2
	VideoBuffering VideoState = 3
	VideoCued      VideoState = 5
)

// Error codes reported by external video players.
const (
	ErrorCodeInvalidParam         = 2
	ErrorCodeHTML5                = 5
	ErrorCodeVideoNotFound        = 100
	ErrorCodeEmbeddingNotAllowed  = 101
	ErrorCodeEmbeddingNotAllowed2 = 150

	// ErrorCodeHandle marks a failed call on the handle itself.
	ErrorCodeHandle = -1
)

// ErrorMessage returns a human readable description of a video player error code.
func ErrorMessage(code int) string {
	switch code {
	case ErrorCodeInvalidParam:
		return "Invalid parameter value"
	case ErrorCodeHTML5:
		return "HTML5 player error"
	case ErrorCodeVideoNotFound:
		return "Video not found"
	case ErrorCodeEmbeddingNotAllowed, ErrorCodeEmbeddingNotAllowed2:
		return "Video cannot be played in embedded players"
	default:
		return fmt.Sprintf("Unknown error (code: %d)", code)
	}
}

// IsUnrecoverable reports whether an error code means the resource itself cannot be played.
func IsUnrecoverable(code int) bool {
	return lo.Contains([]int{
		ErrorCodeVideoNotFound,
		ErrorCodeEmbeddingNotAllowed,
		ErrorCodeEmbeddingNotAllowed2,
	}, code)
}

// VideoHandle is the minimal capability set of an external video player.
// Notifications may be delivered on any goroutine the handle chooses; handles
// that own goroutines are expected to hand them to a sched.Scheduler.
type VideoHandle interface {
	PlayVideo() error
	PauseVideo() error
	SeekTo(seconds float64, allowSeekAhead bool) error
	SetVolume(volume int) error
	SetPlaybackRate(rate float64) error
	CurrentTime() (float64, error)
	Duration() (float64, error)
	AvailablePlaybackRates() []float64
	Available() bool
	OnStateChange(fn func(VideoState))
	OnError(fn func(code int))
}

// Video adapts a VideoHandle to the Backend contract.
type Video struct {
	handle   VideoHandle
	position float64
	running  bool
	volume   int

	ready  sched.Timer
	events event.Emitter[EventKind, Event]
}

// NewVideo binds a backend to an already initialised handle.
//
// A play and immediate pause is issued once, otherwise a freshly cued video starts
// playing on the first seek. READY is emitted asynchronously afterwards.
func NewVideo(s sched.Scheduler, handle VideoHandle) *Video {
	v := &Video{
		handle: handle,
		volume: 50,
	}

	v.call("play", handle.PlayVideo)
	v.call("pause", handle.PauseVideo)

	handle.OnError(v.onError)
	handle.OnStateChange(v.onStateChange)

	v.ready = s.AfterFunc(0, func() {
		v.events.Emit(EventReady, Event{Kind: EventReady})
	})

	return v
}

// Handle returns the wrapped external player.
func (v *Video) Handle() VideoHandle {
	return v.handle
}

func (v *Video) onError(code int) {
	v.running = false
	v.dispatchError(Error{Code: code, Message: ErrorMessage(code)})
}

func (v *Video) onStateChange(state VideoState) {
	switch state {
	case VideoEnded:
		// Rewound before dispatch: FINISH handlers see the same state as after Stop.
		v.running = false
		v.position = 0
		v.events.Emit(EventFinish, Event{Kind: EventFinish})
	case VideoPlaying:
		v.running = true
		v.events.Emit(EventPlaying, Event{Kind: EventPlaying})
	case VideoPaused:
		v.running = false
		if t, err := v.handle.CurrentTime(); err == nil {
			v.position = t
		}
		v.events.Emit(EventPaused, Event{Kind: EventPaused})
	}
}

func (v *Video) dispatchError(e Error) {
	log.Warnf("video backend: %s", e.Error())
	v.events.Emit(EventError, Event{Kind: EventError, Err: e})
}

// call invokes a handle operation and turns a failure into one ERROR dispatch.
func (v *Video) call(op string, fn func() error) {
	if err := fn(); err != nil {
		v.dispatchError(Error{
			Code:    ErrorCodeHandle,
			Message: fmt.Sprintf("%s: %s", op, err),
		})
	}
}

func (v *Video) Play() {
	v.call("play", v.handle.PlayVideo)
}

func (v *Video) Pause() {
	v.call("pause", v.handle.PauseVideo)
}

// Stop pauses and seeks to the start. Stopping the underlying player would make
// it forget the media duration.
func (v *Video) Stop() {
	v.running = false
	v.Pause()
	v.SeekTo(0)
}

func (v *Video) SeekTo(seconds float64) {
	if d, ok := v.Duration().Get(); ok {
		seconds = lo.Clamp(seconds, 0, d)
	} else {
		seconds = lo.Max([]float64{seconds, 0})
	}
	v.position = seconds

	v.call("seek", func() error { return v.handle.SeekTo(seconds, true) })

	if v.running {
		v.Play()
	}
}

// CurrentTime queries the handle only while playing. A paused player loses
// position fidelity, so the last known position is reported instead.
func (v *Video) CurrentTime() float64 {
	if !v.running {
		return v.position
	}

	t, err := v.handle.CurrentTime()
	if err != nil {
		return v.position
	}
	return t
}

func (v *Video) Duration() mo.Option[float64] {
	if !v.IsAvailable() {
		return mo.None[float64]()
	}

	d, err := v.handle.Duration()
	if err != nil {
		return mo.None[float64]()
	}
	return mo.Some(d)
}

func (v *Video) SetVolume(volume int) {
	v.volume = ClampVolume(volume)
	v.call("volume", func() error { return v.handle.SetVolume(v.volume) })
}

func (v *Video) Volume() int {
	return v.volume
}

func (v *Video) AvailablePlaybackRates() []float64 {
	return v.handle.AvailablePlaybackRates()
}

func (v *Video) SetPlaybackRate(rate float64) error {
	if err := checkRate(v.AvailablePlaybackRates(), rate); err != nil {
		return err
	}
	return v.handle.SetPlaybackRate(rate)
}

func (v *Video) IsAvailable() bool {
	return v.handle != nil && v.handle.Available()
}

func (v *Video) On(kind EventKind, handler Handler) {
	v.events.On(kind, event.Handler[Event](handler))
}

func (v *Video) Destroy() {
	v.Stop()
	if v.ready != nil {
		v.ready.Stop()
	}
}
