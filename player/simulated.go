package player

import (
	"time"

	"github.com/playalong-cli/playalong/event"
	"github.com/playalong-cli/playalong/sched"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// DefaultTick is the interval between position steps of a Simulated backend.
const DefaultTick = time.Second

// Simulated is a Backend with no media behind it. While running it advances its
// position by one second per tick and finishes on its own when it reaches the duration.
type Simulated struct {
	name     string
	duration float64
	tick     time.Duration

	position float64
	running  bool
	rate     float64
	volume   int

	scheduler sched.Scheduler
	ticker    sched.Timer
	ready     sched.Timer
	events    event.Emitter[EventKind, Event]
}

// NewSimulated creates a play-along backend of the given duration in seconds.
// name identifies the synthetic handle the backend stands for. READY is emitted
// once, asynchronously, so handlers registered right after construction observe it.
func NewSimulated(s sched.Scheduler, name string, duration float64, tick time.Duration) *Simulated {
	if tick <= 0 {
		tick = DefaultTick
	}

	p := &Simulated{
		name:      name,
		duration:  lo.Max([]float64{duration, 0}),
		tick:      tick,
		rate:      1,
		volume:    50,
		scheduler: s,
	}

	p.ready = s.AfterFunc(0, func() {
		p.events.Emit(EventReady, Event{Kind: EventReady})
	})

	return p
}

// Name returns the synthetic handle name.
func (p *Simulated) Name() string {
	return p.name
}

// IsRunning reports whether the position is advancing.
func (p *Simulated) IsRunning() bool {
	return p.running
}

func (p *Simulated) Play() {
	p.running = true
	p.stopTicker()
	p.ticker = p.scheduler.Every(p.tick, p.advance)
	p.events.Emit(EventPlaying, Event{Kind: EventPlaying})
}

func (p *Simulated) advance() {
	if !p.running {
		return
	}

	p.position++
	if p.position >= p.duration {
		p.Stop()
		p.events.Emit(EventFinish, Event{Kind: EventFinish})
	}
}

func (p *Simulated) Pause() {
	p.running = false
	p.stopTicker()
	p.events.Emit(EventPaused, Event{Kind: EventPaused})
}

func (p *Simulated) Stop() {
	p.position = 0
	p.running = false
	p.stopTicker()
}

func (p *Simulated) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
	}
}

func (p *Simulated) SeekTo(seconds float64) {
	p.position = lo.Clamp(seconds, 0, p.duration)
}

func (p *Simulated) CurrentTime() float64 {
	return p.position
}

func (p *Simulated) Duration() mo.Option[float64] {
	return mo.Some(p.duration)
}

// SetVolume only stores the value; there is no audio to attenuate.
func (p *Simulated) SetVolume(volume int) {
	p.volume = ClampVolume(volume)
}

func (p *Simulated) Volume() int {
	return p.volume
}

func (p *Simulated) AvailablePlaybackRates() []float64 {
	return []float64{1}
}

// PlaybackRate returns the active playback rate.
func (p *Simulated) PlaybackRate() float64 {
	return p.rate
}

func (p *Simulated) SetPlaybackRate(rate float64) error {
	if err := checkRate(p.AvailablePlaybackRates(), rate); err != nil {
		return err
	}
	p.rate = rate
	return nil
}

func (p *Simulated) IsAvailable() bool {
	return true
}

func (p *Simulated) On(kind EventKind, handler Handler) {
	p.events.On(kind, event.Handler[Event](handler))
}

func (p *Simulated) Destroy() {
	p.Stop()
	if p.ready != nil {
		p.ready.Stop()
	}
}
