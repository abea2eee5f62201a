package player

import (
	"errors"
	"testing"

	"github.com/playalong-cli/playalong/sched"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("Given media targets", t, func() {
		Convey("http and https URLs pass through", func() {
			target, err := sanitizeMediaTarget("  https://example.com/v.mp4 ")
			So(err, ShouldBeNil)
			So(target, ShouldEqual, "https://example.com/v.mp4")
		})

		Convey("Local paths are cleaned", func() {
			target, err := sanitizeMediaTarget("songs/../songs/take.mp4")
			So(err, ShouldBeNil)
			So(target, ShouldEqual, "songs/take.mp4")
		})

		Convey("Flags, control characters and other schemes are rejected", func() {
			for _, bad := range []string{"", "--script=x.lua", "a\nb", "file:///etc/passwd", "ftp://host/x"} {
				_, err := sanitizeMediaTarget(bad)
				So(err, ShouldNotBeNil)
			}
		})
	})
}

func TestMPVArgs(t *testing.T) {
	Convey("Given a socket, target and title", t, func() {
		args := mpvArgs("/tmp/p.sock", "take.mp4", sanitizeTitle("My\tSong\n"))

		Convey("mpv starts idle and paused on the IPC socket", func() {
			So(args, ShouldContain, "--idle=yes")
			So(args, ShouldContain, "--pause=yes")
			So(args, ShouldContain, "--input-ipc-server=/tmp/p.sock")
			So(args, ShouldContain, "--force-media-title=My Song")
		})

		Convey("The target comes last, after the end of options", func() {
			So(args[len(args)-2:], ShouldResemble, []string{"--", "take.mp4"})
		})

		Convey("An empty title is omitted", func() {
			for _, arg := range mpvArgs("/tmp/p.sock", "take.mp4", "") {
				So(arg, ShouldNotStartWith, "--force-media-title")
			}
		})
	})
}

func TestTranslate(t *testing.T) {
	Convey("Given mpv notifications", t, func() {
		Convey("pause maps to PAUSED and PLAYING", func() {
			state, code, ok := translate("pause", true)
			So(ok, ShouldBeTrue)
			So(code, ShouldEqual, 0)
			So(state, ShouldEqual, VideoPaused)

			state, _, ok = translate("pause", false)
			So(ok, ShouldBeTrue)
			So(state, ShouldEqual, VideoPlaying)
		})

		Convey("eof-reached maps to ENDED only when set", func() {
			state, _, ok := translate("eof-reached", true)
			So(ok, ShouldBeTrue)
			So(state, ShouldEqual, VideoEnded)

			_, _, ok = translate("eof-reached", false)
			So(ok, ShouldBeFalse)
		})

		Convey("Failed loads map to error codes", func() {
			_, code, ok := translate("end-file", map[string]any{"reason": "error", "file_error": "loading failed"})
			So(ok, ShouldBeTrue)
			So(code, ShouldEqual, ErrorCodeVideoNotFound)

			_, code, _ = translate("end-file", map[string]any{"reason": "error", "file_error": "unrecognized file format"})
			So(code, ShouldEqual, ErrorCodeHTML5)

			_, _, ok = translate("end-file", map[string]any{"reason": "eof"})
			So(ok, ShouldBeFalse)
		})

		Convey("Unknown notifications are ignored", func() {
			_, _, ok := translate("time-pos", 12.5)
			So(ok, ShouldBeFalse)
			_, _, ok = translate("pause", nil)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestMPVDispatch(t *testing.T) {
	Convey("Given an mpv handle that has not been opened", t, func() {
		m := sched.NewManual()
		mpv := NewMPV(m, "")

		var states []VideoState
		var codes []int
		mpv.OnStateChange(func(s VideoState) { states = append(states, s) })
		mpv.OnError(func(code int) { codes = append(codes, code) })

		Convey("It is not available and refuses commands", func() {
			So(mpv.Available(), ShouldBeFalse)
			So(mpv.PlayVideo(), ShouldEqual, ErrNotOpen)
			So(mpv.Close(), ShouldBeNil)
		})

		Convey("Notifications are delivered through the scheduler", func() {
			mpv.dispatch("pause", false)
			mpv.dispatch("end-file", map[string]any{"reason": "error", "file_error": "loading failed"})
			So(states, ShouldBeEmpty)

			m.Advance(0)
			So(states, ShouldResemble, []VideoState{VideoPlaying})
			So(codes, ShouldResemble, []int{ErrorCodeVideoNotFound})
		})

		Convey("Listener events reach the handle", func() {
			el := NewEventListener("", mpv.dispatch)
			el.processEvent([]byte(`{"event":"property-change","id":2,"name":"eof-reached","data":true}`))
			el.processEvent([]byte(`{"request_id":3,"error":"success"}`))
			el.processEvent([]byte(`not json`))

			m.Advance(0)
			So(states, ShouldResemble, []VideoState{VideoEnded})
		})

		Convey("Rates outside the offered list are refused", func() {
			So(errors.Is(mpv.SetPlaybackRate(3), ErrUnsupportedRate), ShouldBeTrue)
		})
	})
}
