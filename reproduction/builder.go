package reproduction

import (
	"errors"
	"fmt"
	"time"

	"github.com/playalong-cli/playalong/key"
	"github.com/playalong-cli/playalong/player"
	"github.com/playalong-cli/playalong/sched"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// DefaultVolume is used when neither the builder nor the configuration sets one.
const DefaultVolume = 50

var (
	ErrMissingBackendHandle = errors.New("missing backend handle")
	ErrMissingDuration      = errors.New("missing song duration")
)

// Builder accumulates the configuration of a Reproduction.
//
// Training mode plays a real video through a player.VideoHandle. Otherwise the
// session plays along a synthetic backend of the song duration.
type Builder struct {
	trainingMode bool
	countingIn   bool
	duration     mo.Option[float64]
	tempo        mo.Option[float64]
	volume       mo.Option[int]

	videoHandle player.VideoHandle
	synthetic   mo.Option[string]

	scheduler sched.Scheduler
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) WithTrainingMode(training bool) *Builder {
	b.trainingMode = training
	return b
}

func (b *Builder) WithCountingIn(required bool) *Builder {
	b.countingIn = required
	return b
}

// WithSongDuration sets the duration in seconds of the synthetic backend.
func (b *Builder) WithSongDuration(seconds float64) *Builder {
	b.duration = mo.Some(seconds)
	return b
}

// WithSongTempo sets the tempo in beats per minute.
func (b *Builder) WithSongTempo(bpm float64) *Builder {
	b.tempo = mo.Some(bpm)
	return b
}

func (b *Builder) WithVolume(volume int) *Builder {
	b.volume = mo.Some(volume)
	return b
}

// WithVideoHandle sets the external player used in training mode.
func (b *Builder) WithVideoHandle(handle player.VideoHandle) *Builder {
	b.videoHandle = handle
	return b
}

// WithSyntheticHandle names the synthetic backend used outside training mode.
func (b *Builder) WithSyntheticHandle(name string) *Builder {
	b.synthetic = mo.Some(name)
	return b
}

// WithScheduler sets the scheduler timers and backend callbacks run on.
// sched.Default is used otherwise.
func (b *Builder) WithScheduler(s sched.Scheduler) *Builder {
	b.scheduler = s
	return b
}

// Build validates the configuration and creates the session.
func (b *Builder) Build() (*Reproduction, error) {
	tempo := b.tempo.OrElse(0)
	if b.countingIn && tempo <= 0 {
		return nil, ErrMissingTempo
	}

	if (b.trainingMode && b.videoHandle == nil) || (!b.trainingMode && b.synthetic.IsAbsent()) {
		return nil, ErrMissingBackendHandle
	}

	if !b.trainingMode && b.duration.IsAbsent() {
		return nil, ErrMissingDuration
	}

	s := b.scheduler
	if s == nil {
		s = sched.Default()
	}

	var backend player.Backend
	if b.trainingMode {
		backend = player.NewVideo(s, b.videoHandle)
	} else {
		backend = player.NewSimulated(s, b.synthetic.MustGet(), b.duration.MustGet(), configDuration(key.SimulatedTick))
	}

	r, err := New(s, backend, b.countingIn, tempo)
	if err != nil {
		backend.Destroy()
		return nil, fmt.Errorf("build reproduction: %w", err)
	}

	if poll := configDuration(key.ReproductionPollInterval); poll > 0 {
		r.SetPollInterval(poll)
	}

	r.SetVolume(b.volume.OrElse(defaultVolume()))

	return r, nil
}

func defaultVolume() int {
	if viper.IsSet(key.ReproductionVolume) {
		return viper.GetInt(key.ReproductionVolume)
	}
	return DefaultVolume
}

// configDuration reads a millisecond setting. Zero means unset.
func configDuration(k string) time.Duration {
	return time.Duration(viper.GetInt(k)) * time.Millisecond
}
