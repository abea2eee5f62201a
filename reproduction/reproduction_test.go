package reproduction

import (
	"testing"
	"time"

	"github.com/playalong-cli/playalong/player"
	"github.com/playalong-cli/playalong/sched"
	. "github.com/smartystreets/goconvey/convey"
)

type record struct {
	kind  EventKind
	at    time.Duration
	pulse Pulse
	err   player.Error
}

type recorder struct {
	clock   *sched.Manual
	records []record
}

func newRecorder(m *sched.Manual, r *Reproduction) *recorder {
	rec := &recorder{clock: m}
	for kind := EventReady; kind <= EventError; kind++ {
		r.On(kind, func(e Event) {
			rec.records = append(rec.records, record{kind: e.Kind, at: m.Now(), pulse: e.Pulse, err: e.Err})
		})
	}
	return rec
}

func (rec *recorder) kinds() []EventKind {
	kinds := make([]EventKind, 0, len(rec.records))
	for _, r := range rec.records {
		kinds = append(kinds, r.kind)
	}
	return kinds
}

func (rec *recorder) of(kind EventKind) []record {
	var out []record
	for _, r := range rec.records {
		if r.kind == kind {
			out = append(out, r)
		}
	}
	return out
}

func newSession(m *sched.Manual, duration float64, countingIn bool) *Reproduction {
	b := NewBuilder().
		WithScheduler(m).
		WithSyntheticHandle("test").
		WithSongDuration(duration).
		WithCountingIn(countingIn)
	if countingIn {
		b.WithSongTempo(120)
	}

	r, err := b.Build()
	So(err, ShouldBeNil)
	return r
}

func TestCountingIn(t *testing.T) {
	Convey("Given a session with counting-in at 120 bpm", t, func() {
		m := sched.NewManual()
		r := newSession(m, 60, true)
		rec := newRecorder(m, r)

		m.Advance(0)
		So(r.IsReady(), ShouldBeTrue)
		So(r.BeatInterval(), ShouldEqual, 500*time.Millisecond)

		r.Start()

		Convey("The first pulse fires immediately", func() {
			So(rec.kinds(), ShouldResemble, []EventKind{EventReady, EventStart, EventCountingIn})
			So(r.IsCountingIn(), ShouldBeTrue)
		})

		Convey("Three slow pulses and five fast pulses precede PLAY", func() {
			m.Advance(5500 * time.Millisecond)

			pulses := rec.of(EventCountingIn)
			So(pulses, ShouldHaveLength, 8)

			var at []time.Duration
			for _, p := range pulses {
				at = append(at, p.at)
			}
			So(at, ShouldResemble, []time.Duration{
				0,
				1000 * time.Millisecond,
				2000 * time.Millisecond,
				3000 * time.Millisecond,
				3500 * time.Millisecond,
				4000 * time.Millisecond,
				4500 * time.Millisecond,
				5000 * time.Millisecond,
			})

			So(pulses[0].pulse, ShouldResemble, Pulse{Phase: 1, Index: 1, Count: 1})
			So(pulses[2].pulse, ShouldResemble, Pulse{Phase: 1, Index: 3, Count: 3})
			So(pulses[3].pulse, ShouldResemble, Pulse{Phase: 2, Index: 1, Count: 4})
			So(pulses[7].pulse, ShouldResemble, Pulse{Phase: 2, Index: 5, Count: 8})

			play := rec.of(EventPlay)
			So(play, ShouldHaveLength, 1)
			So(play[0].at, ShouldEqual, 5500*time.Millisecond)
			So(rec.of(EventPlaying), ShouldBeEmpty)
			So(r.IsPlaying(), ShouldBeTrue)
		})

		Convey("PLAYING polls start after PLAY", func() {
			m.Advance(5700 * time.Millisecond)

			kinds := rec.kinds()
			So(kinds[len(kinds)-2:], ShouldResemble, []EventKind{EventPlay, EventPlaying})
			So(rec.of(EventPlaying)[0].at, ShouldEqual, 5700*time.Millisecond)
		})

		Convey("Stopping mid counting-in cancels the remaining pulses", func() {
			m.Advance(1000 * time.Millisecond)
			r.Stop()
			m.Advance(10 * time.Second)

			So(rec.of(EventCountingIn), ShouldHaveLength, 2)
			So(rec.of(EventPlay), ShouldBeEmpty)
			So(rec.of(EventFinish), ShouldHaveLength, 1)
			So(r.IsStopped(), ShouldBeTrue)
			So(m.Pending(), ShouldEqual, 0)
		})

		Convey("Starting again restarts the counting-in without leaking timers", func() {
			m.Advance(2500 * time.Millisecond)
			r.Start()
			So(rec.of(EventStart), ShouldHaveLength, 1)

			m.Advance(5500 * time.Millisecond)
			So(rec.of(EventCountingIn), ShouldHaveLength, 3+8)
			So(rec.of(EventPlay), ShouldHaveLength, 1)
		})

		Convey("Starting after the song progressed skips the counting-in", func() {
			m.Advance(5500*time.Millisecond + 2*time.Second)
			So(r.CurrentTime(), ShouldBeGreaterThan, 0)

			r.Pause()
			before := len(rec.of(EventCountingIn))
			r.Start()

			So(rec.of(EventCountingIn), ShouldHaveLength, before)
			So(rec.kinds()[len(rec.kinds())-1], ShouldEqual, EventPlay)
			So(rec.of(EventStart), ShouldHaveLength, 1)
			So(r.IsPlaying(), ShouldBeTrue)
		})
	})
}

func TestReproduction(t *testing.T) {
	Convey("Given a session without counting-in", t, func() {
		m := sched.NewManual()
		r := newSession(m, 3, false)
		rec := newRecorder(m, r)
		m.Advance(0)

		Convey("Start goes straight to PLAY", func() {
			r.Start()
			So(rec.kinds(), ShouldResemble, []EventKind{EventReady, EventStart, EventPlay})
			So(r.State(), ShouldEqual, StatePlaying)
		})

		Convey("PLAYING is polled every 200ms while playing", func() {
			r.Start()
			m.Advance(time.Second)
			So(rec.of(EventPlaying), ShouldHaveLength, 5)
		})

		Convey("Pause cancels the poll", func() {
			r.Start()
			m.Advance(500 * time.Millisecond)
			r.Pause()
			polls := len(rec.of(EventPlaying))

			m.Advance(time.Second)
			So(rec.of(EventPlaying), ShouldHaveLength, polls)
			So(rec.of(EventPaused), ShouldHaveLength, 1)
			So(r.IsPaused(), ShouldBeTrue)
		})

		Convey("The backend finishing stops the session", func() {
			r.Start()
			m.Advance(3 * time.Second)

			So(rec.of(EventFinish), ShouldHaveLength, 1)
			So(r.IsStopped(), ShouldBeTrue)
			So(r.CurrentTime(), ShouldEqual, 0)
			So(m.Pending(), ShouldEqual, 0)
		})

		Convey("Stop emits FINISH and rewinds", func() {
			r.Start()
			m.Advance(2 * time.Second)
			r.Stop()

			So(rec.of(EventFinish), ShouldHaveLength, 1)
			So(r.CurrentTime(), ShouldEqual, 0)
			So(m.Pending(), ShouldEqual, 0)
		})

		Convey("Volume is always clamped", func() {
			for _, v := range []int{-10, 0, 42, 100, 250} {
				r.SetVolume(v)
				So(r.Volume(), ShouldEqual, player.ClampVolume(v))
				So(r.Backend().Volume(), ShouldEqual, r.Volume())
			}
		})

		Convey("Delegated operations reach the backend", func() {
			r.SeekTo(2)
			So(r.CurrentTime(), ShouldEqual, 2)
			So(r.AvailablePlaybackRates(), ShouldResemble, []float64{1})
			So(r.SetPlaybackRate(2), ShouldNotBeNil)
			So(r.IsAvailable(), ShouldBeTrue)

			d, ok := r.Duration().Get()
			So(ok, ShouldBeTrue)
			So(d, ShouldEqual, 3)
		})

		Convey("Destroy releases every timer", func() {
			r.Start()
			r.Destroy()
			So(m.Pending(), ShouldEqual, 0)
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Counting-in without a tempo is refused", t, func() {
		m := sched.NewManual()
		_, err := New(m, player.NewSimulated(m, "x", 10, 0), true, 0)
		So(err, ShouldEqual, ErrMissingTempo)
	})
}

type stubHandle struct {
	time    float64
	errorFn func(int)
	stateFn func(player.VideoState)
}

func (s *stubHandle) PlayVideo() error                         { return nil }
func (s *stubHandle) PauseVideo() error                        { return nil }
func (s *stubHandle) SeekTo(float64, bool) error               { return nil }
func (s *stubHandle) SetVolume(int) error                      { return nil }
func (s *stubHandle) SetPlaybackRate(float64) error            { return nil }
func (s *stubHandle) CurrentTime() (float64, error)            { return s.time, nil }
func (s *stubHandle) Duration() (float64, error)               { return 90, nil }
func (s *stubHandle) AvailablePlaybackRates() []float64        { return []float64{1} }
func (s *stubHandle) Available() bool                          { return true }
func (s *stubHandle) OnStateChange(fn func(player.VideoState)) { s.stateFn = fn }
func (s *stubHandle) OnError(fn func(int))                     { s.errorFn = fn }

func TestBackendErrors(t *testing.T) {
	Convey("Given a training session", t, func() {
		m := sched.NewManual()
		handle := &stubHandle{}
		r, err := NewBuilder().
			WithScheduler(m).
			WithTrainingMode(true).
			WithVideoHandle(handle).
			Build()
		So(err, ShouldBeNil)

		rec := newRecorder(m, r)
		m.Advance(0)

		Convey("Player errors are re-emitted without changing state", func() {
			handle.errorFn(player.ErrorCodeVideoNotFound)

			errs := rec.of(EventError)
			So(errs, ShouldHaveLength, 1)
			So(errs[0].err.Code, ShouldEqual, player.ErrorCodeVideoNotFound)
			So(errs[0].err.Message, ShouldEqual, "Video not found")
			So(r.IsStopped(), ShouldBeTrue)
		})
	})
}

func TestVideoFinish(t *testing.T) {
	Convey("Given a training session with counting-in playing near the end", t, func() {
		m := sched.NewManual()
		handle := &stubHandle{}
		r, err := NewBuilder().
			WithScheduler(m).
			WithTrainingMode(true).
			WithVideoHandle(handle).
			WithCountingIn(true).
			WithSongTempo(120).
			Build()
		So(err, ShouldBeNil)
		m.Advance(0)

		r.Play()
		handle.stateFn(player.VideoPlaying)
		handle.time = 90

		var (
			finishAt  float64
			inHandler float64
			restarted bool
		)
		r.On(EventFinish, func(e Event) {
			if restarted {
				return
			}
			restarted = true
			finishAt = e.Position
			inHandler = r.CurrentTime()
			r.Start()
		})

		Convey("A FINISH handler sees the rewound position", func() {
			handle.stateFn(player.VideoEnded)

			So(finishAt, ShouldEqual, 0)
			So(inHandler, ShouldEqual, 0)
		})

		Convey("Restarting from the FINISH handler counts in again", func() {
			handle.stateFn(player.VideoEnded)

			So(r.IsCountingIn(), ShouldBeTrue)
			So(r.CurrentTime(), ShouldEqual, 0)
		})
	})
}
