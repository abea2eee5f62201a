// Package widget assembles a playback session from user facing options.
//
// In training mode the session plays a video through an external handle; otherwise
// it plays along a synthetic backend of the song duration. The widget reports the
// session once it is ready and tells the caller when the video cannot be played.
package widget

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/playalong-cli/playalong/log"
	"github.com/playalong-cli/playalong/player"
	"github.com/playalong-cli/playalong/reproduction"
	"github.com/playalong-cli/playalong/sched"
	"github.com/samber/mo"
)

// SyntheticHandle names the backend of play-along sessions.
const SyntheticHandle = "play-along"

var (
	// ErrVideoUnavailable is returned when the probe concludes the video cannot be played.
	ErrVideoUnavailable = errors.New("video unavailable")

	ErrMissingVideoID = errors.New("training mode requires a video id")
)

// HandleFactory opens the external player for a video.
type HandleFactory func(ctx context.Context, info Info) (player.VideoHandle, error)

// Options configure Mount.
type Options struct {
	TrainingMode bool

	// VideoID selects the video in training mode.
	VideoID string
	// Duration is the synthetic song length in seconds outside training mode.
	Duration mo.Option[float64]

	CountingIn bool
	SongTempo  float64
	Volume     mo.Option[int]

	Scheduler sched.Scheduler

	// Probe is optional. When set, unavailable videos are rejected before a handle is opened.
	Probe Probe
	// OpenHandle is required in training mode.
	OpenHandle HandleFactory

	// OnInit receives the session once its backend is ready. It fires once.
	OnInit func(*reproduction.Reproduction)
	// OnVideoUnavailable fires once when the video turns out to be unplayable.
	OnVideoUnavailable func()
}

// Widget owns a mounted session and its external handle.
type Widget struct {
	reproduction *reproduction.Reproduction
	handle       player.VideoHandle
	info         mo.Option[Info]

	initOnce        sync.Once
	unavailableOnce sync.Once
	opts            Options
}

// Mount validates opts, opens the backend and builds the session.
func Mount(ctx context.Context, opts Options) (*Widget, error) {
	if opts.Scheduler == nil {
		opts.Scheduler = sched.Default()
	}

	w := &Widget{opts: opts}

	builder := reproduction.NewBuilder().
		WithScheduler(opts.Scheduler).
		WithTrainingMode(opts.TrainingMode).
		WithCountingIn(opts.CountingIn)

	if opts.SongTempo > 0 {
		builder.WithSongTempo(opts.SongTempo)
	}
	if volume, ok := opts.Volume.Get(); ok {
		builder.WithVolume(volume)
	}

	if opts.TrainingMode {
		handle, err := w.openVideo(ctx)
		if err != nil {
			return nil, err
		}
		w.handle = handle
		builder.WithVideoHandle(handle)
	} else {
		builder.WithSyntheticHandle(SyntheticHandle)
		if duration, ok := opts.Duration.Get(); ok {
			builder.WithSongDuration(duration)
		}
	}

	var err error
	runOn(opts.Scheduler, func() {
		w.reproduction, err = builder.Build()
		if err != nil {
			return
		}

		w.reproduction.On(reproduction.EventReady, func(reproduction.Event) {
			w.initOnce.Do(func() {
				if opts.OnInit != nil {
					opts.OnInit(w.reproduction)
				}
			})
		})
		w.reproduction.On(reproduction.EventError, func(e reproduction.Event) {
			if player.IsUnrecoverable(e.Err.Code) {
				w.unavailable()
			}
		})
	})

	if err != nil {
		w.closeHandle()
		return nil, fmt.Errorf("mount: %w", err)
	}

	return w, nil
}

func (w *Widget) openVideo(ctx context.Context) (player.VideoHandle, error) {
	if w.opts.VideoID == "" {
		return nil, ErrMissingVideoID
	}

	info := Info{ID: w.opts.VideoID, Available: true}

	if w.opts.Probe != nil {
		probed, err := w.opts.Probe.Probe(ctx, w.opts.VideoID)
		switch {
		case err != nil:
			log.Warnf("probe %s: %s", w.opts.VideoID, err)
		case !probed.Available:
			w.unavailable()
			return nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, probed.Reason)
		default:
			info = probed
		}
	}

	w.info = mo.Some(info)

	if w.opts.OpenHandle == nil {
		return nil, reproduction.ErrMissingBackendHandle
	}

	handle, err := w.opts.OpenHandle(ctx, info)
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", info.ID, err)
	}
	return handle, nil
}

func (w *Widget) unavailable() {
	w.unavailableOnce.Do(func() {
		if w.opts.OnVideoUnavailable != nil {
			w.opts.OnVideoUnavailable()
		}
	})
}

// Reproduction returns the mounted session.
func (w *Widget) Reproduction() *reproduction.Reproduction {
	return w.reproduction
}

// Info returns what is known of the video in training mode.
func (w *Widget) Info() mo.Option[Info] {
	return w.info
}

// Close destroys the session and closes the external handle.
func (w *Widget) Close() error {
	runOn(w.opts.Scheduler, w.reproduction.Destroy)
	return w.closeHandle()
}

func (w *Widget) closeHandle() error {
	if closer, ok := w.handle.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// runOn runs fn on the scheduler thread when the scheduler can wait for it,
// so handlers are registered before any backend notification is delivered.
func runOn(s sched.Scheduler, fn func()) {
	if d, ok := s.(interface{ Do(func()) bool }); ok {
		d.Do(fn)
		return
	}
	fn()
}
