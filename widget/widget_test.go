package widget

import (
	"context"
	"errors"
	"testing"

	"github.com/playalong-cli/playalong/player"
	"github.com/playalong-cli/playalong/reproduction"
	"github.com/playalong-cli/playalong/sched"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeProbe struct {
	info Info
	err  error
}

func (f fakeProbe) Probe(context.Context, string) (Info, error) {
	return f.info, f.err
}

type fakeHandle struct {
	errorFn func(int)
	closed  bool
}

func (f *fakeHandle) PlayVideo() error                      { return nil }
func (f *fakeHandle) PauseVideo() error                     { return nil }
func (f *fakeHandle) SeekTo(float64, bool) error            { return nil }
func (f *fakeHandle) SetVolume(int) error                   { return nil }
func (f *fakeHandle) SetPlaybackRate(float64) error         { return nil }
func (f *fakeHandle) CurrentTime() (float64, error)         { return 0, nil }
func (f *fakeHandle) Duration() (float64, error)            { return 200, nil }
func (f *fakeHandle) AvailablePlaybackRates() []float64     { return []float64{1} }
func (f *fakeHandle) Available() bool                       { return true }
func (f *fakeHandle) OnStateChange(func(player.VideoState)) {}
func (f *fakeHandle) OnError(fn func(int))                  { f.errorFn = fn }
func (f *fakeHandle) Close() error                          { f.closed = true; return nil }

func TestMount(t *testing.T) {
	Convey("Given a manual scheduler", t, func() {
		m := sched.NewManual()
		ctx := context.Background()

		var (
			inits       []*reproduction.Reproduction
			unavailable int
			opened      int
		)
		handle := &fakeHandle{}

		opts := Options{
			Scheduler:          m,
			OnInit:             func(r *reproduction.Reproduction) { inits = append(inits, r) },
			OnVideoUnavailable: func() { unavailable++ },
			OpenHandle: func(context.Context, Info) (player.VideoHandle, error) {
				opened++
				return handle, nil
			},
		}

		Convey("A play-along session is reported once it is ready", func() {
			opts.Duration = mo.Some(90.0)
			w, err := Mount(ctx, opts)
			So(err, ShouldBeNil)
			So(inits, ShouldBeEmpty)

			m.Advance(0)
			m.Advance(0)
			So(inits, ShouldHaveLength, 1)
			So(inits[0], ShouldEqual, w.Reproduction())
			So(w.Reproduction().Duration().MustGet(), ShouldEqual, 90)
			So(opened, ShouldEqual, 0)
		})

		Convey("A play-along session needs a duration", func() {
			_, err := Mount(ctx, opts)
			So(errors.Is(err, reproduction.ErrMissingDuration), ShouldBeTrue)
		})

		Convey("Counting-in needs a tempo", func() {
			opts.Duration = mo.Some(90.0)
			opts.CountingIn = true
			_, err := Mount(ctx, opts)
			So(errors.Is(err, reproduction.ErrMissingTempo), ShouldBeTrue)

			opts.SongTempo = 100
			w, err := Mount(ctx, opts)
			So(err, ShouldBeNil)
			So(w.Reproduction().RequiresCountingIn(), ShouldBeTrue)
		})

		Convey("Training mode", func() {
			opts.TrainingMode = true
			opts.VideoID = "dQw4w9WgXcQ"

			Convey("needs a video id", func() {
				opts.VideoID = ""
				_, err := Mount(ctx, opts)
				So(errors.Is(err, ErrMissingVideoID), ShouldBeTrue)
			})

			Convey("opens the handle and reports the session", func() {
				opts.Volume = mo.Some(80)
				w, err := Mount(ctx, opts)
				So(err, ShouldBeNil)
				So(opened, ShouldEqual, 1)
				So(w.Reproduction().Volume(), ShouldEqual, 80)

				m.Advance(0)
				So(inits, ShouldHaveLength, 1)

				So(w.Close(), ShouldBeNil)
				So(handle.closed, ShouldBeTrue)
			})

			Convey("rejects videos the probe finds unavailable", func() {
				opts.Probe = fakeProbe{info: Info{ID: opts.VideoID, Code: 101, Reason: "Video cannot be played in embedded players"}}
				_, err := Mount(ctx, opts)

				So(errors.Is(err, ErrVideoUnavailable), ShouldBeTrue)
				So(unavailable, ShouldEqual, 1)
				So(opened, ShouldEqual, 0)
			})

			Convey("keeps going when the probe cannot tell", func() {
				opts.Probe = fakeProbe{err: errors.New("offline")}
				w, err := Mount(ctx, opts)

				So(err, ShouldBeNil)
				So(opened, ShouldEqual, 1)
				So(w.Info().MustGet().ID, ShouldEqual, opts.VideoID)
			})

			Convey("reports unrecoverable player errors once", func() {
				_, err := Mount(ctx, opts)
				So(err, ShouldBeNil)

				handle.errorFn(player.ErrorCodeEmbeddingNotAllowed2)
				handle.errorFn(player.ErrorCodeVideoNotFound)
				handle.errorFn(player.ErrorCodeHTML5)
				So(unavailable, ShouldEqual, 1)
			})

			Convey("ignores recoverable player errors", func() {
				_, err := Mount(ctx, opts)
				So(err, ShouldBeNil)

				handle.errorFn(player.ErrorCodeHTML5)
				So(unavailable, ShouldEqual, 0)
			})

			Convey("fails without a way to open the video", func() {
				opts.OpenHandle = nil
				_, err := Mount(ctx, opts)
				So(errors.Is(err, reproduction.ErrMissingBackendHandle), ShouldBeTrue)
			})
		})
	})
}

func TestMediaTarget(t *testing.T) {
	Convey("Ids become watch URLs, URLs are kept", t, func() {
		So(MediaTarget("dQw4w9WgXcQ"), ShouldEqual, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
		So(MediaTarget("https://example.com/take.mp4"), ShouldEqual, "https://example.com/take.mp4")
	})
}
