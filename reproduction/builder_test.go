package reproduction

import (
	"errors"
	"testing"

	"github.com/playalong-cli/playalong/player"
	"github.com/playalong-cli/playalong/sched"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuilder(t *testing.T) {
	Convey("Given a builder", t, func() {
		m := sched.NewManual()
		b := NewBuilder().WithScheduler(m)

		Convey("Counting-in without a tempo fails", func() {
			_, err := b.WithCountingIn(true).WithSyntheticHandle("x").WithSongDuration(10).Build()
			So(errors.Is(err, ErrMissingTempo), ShouldBeTrue)

			_, err = b.WithSongTempo(0).Build()
			So(errors.Is(err, ErrMissingTempo), ShouldBeTrue)
		})

		Convey("A missing handle fails", func() {
			_, err := b.WithSongDuration(10).Build()
			So(errors.Is(err, ErrMissingBackendHandle), ShouldBeTrue)

			_, err = b.WithTrainingMode(true).WithSyntheticHandle("x").Build()
			So(errors.Is(err, ErrMissingBackendHandle), ShouldBeTrue)
		})

		Convey("Play-along without a duration fails", func() {
			_, err := b.WithSyntheticHandle("x").Build()
			So(errors.Is(err, ErrMissingDuration), ShouldBeTrue)
		})

		Convey("Play-along builds a simulated backend", func() {
			r, err := b.WithSyntheticHandle("x").WithSongDuration(10).Build()
			So(err, ShouldBeNil)
			So(r.Backend(), ShouldHaveSameTypeAs, &player.Simulated{})
			So(r.Volume(), ShouldEqual, DefaultVolume)
			So(r.IsStopped(), ShouldBeTrue)
			So(r.RequiresCountingIn(), ShouldBeFalse)
		})

		Convey("Training mode builds a video backend without a duration", func() {
			r, err := b.WithTrainingMode(true).WithVideoHandle(&stubHandle{}).Build()
			So(err, ShouldBeNil)
			So(r.Backend(), ShouldHaveSameTypeAs, &player.Video{})
		})

		Convey("The initial volume is clamped and applied", func() {
			r, err := b.WithSyntheticHandle("x").WithSongDuration(10).WithVolume(130).Build()
			So(err, ShouldBeNil)
			So(r.Volume(), ShouldEqual, 100)
			So(r.Backend().Volume(), ShouldEqual, 100)
		})

		Convey("Sessions get distinct ids", func() {
			a, _ := b.WithSyntheticHandle("x").WithSongDuration(10).Build()
			c, _ := b.Build()
			So(a.ID(), ShouldNotEqual, c.ID())
		})
	})
}
