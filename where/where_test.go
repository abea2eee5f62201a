package where

import (
	"path/filepath"
	"testing"

	"github.com/playalong-cli/playalong/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func isDir(path string) bool {
	ok, err := filesystem.API().IsDir(path)
	return err == nil && ok
}

func TestDirectories(t *testing.T) {
	Convey("Given the default locations", t, func() {
		Convey("Config, Cache, Logs and Temp are created", func() {
			for _, dir := range []string{Config(), Cache(), Logs(), Temp()} {
				So(dir, ShouldNotBeEmpty)
				So(isDir(dir), ShouldBeTrue)
			}
		})

		Convey("Logs live below the configuration", func() {
			So(filepath.Dir(Logs()), ShouldEqual, Config())
		})

		Convey("Probes live in the cache directory", func() {
			So(filepath.Dir(Probes()), ShouldEqual, Cache())
		})

		Convey("Sockets live in the temporary directory", func() {
			So(Socket("a1b2c3d4"), ShouldEqual, filepath.Join(Temp(), "a1b2c3d4.sock"))
		})
	})

	Convey("Given a configuration path override", t, func() {
		t.Setenv(EnvConfigPath, "/custom/playalong")

		Convey("Config uses it", func() {
			So(Config(), ShouldEqual, "/custom/playalong")
			So(isDir("/custom/playalong"), ShouldBeTrue)
		})
	})
}
