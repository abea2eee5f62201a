package style

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStateTag(t *testing.T) {
	Convey("Given session state names", t, func() {
		Convey("Each tag keeps the state name", func() {
			for _, state := range []string{"PLAYING", "COUNTING_IN", "PAUSED", "STOPPED", "UNKNOWN"} {
				So(StateTag(state), ShouldContainSubstring, state)
			}
		})
	})
}
