package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/playalong-cli/playalong/filesystem"
	"github.com/playalong-cli/playalong/key"
	"github.com/playalong-cli/playalong/where"
	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Emissions are silently discarded", func() {
			So(func() { Warnf("zoom level %d", 12) }, ShouldNotPanic)
		})

		Convey("Structured entries go to the discarding logger", func() {
			entry := WithFields(Fields{"session": "abc"})
			So(entry.Logger, ShouldEqual, discard)
			So(entry.Data["session"], ShouldEqual, "abc")
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		So(Setup(), ShouldBeNil)

		Reset(func() {
			viper.Set(key.LogsWrite, false)
			viper.Set(key.LogsLevel, "info")
			_ = Setup()
		})

		Convey("The configured level is applied", func() {
			So(logger, ShouldNotEqual, discard)
			So(logger.GetLevel(), ShouldEqual, logrus.DebugLevel)
		})

		Convey("Entries are appended to today's file", func() {
			WithFields(Fields{"state": "PLAYING"}).Debug("state change")

			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			contents, err := afero.ReadFile(filesystem.API(), path)
			So(err, ShouldBeNil)
			So(string(contents), ShouldContainSubstring, "state=PLAYING")
			So(string(contents), ShouldContainSubstring, "state change")
		})

		Convey("An unknown level falls back to info", func() {
			viper.Set(key.LogsLevel, "loud")
			So(Setup(), ShouldBeNil)
			So(logger.GetLevel(), ShouldEqual, logrus.InfoLevel)
		})
	})
}
