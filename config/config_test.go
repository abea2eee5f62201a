package config

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/playalong-cli/playalong/filesystem"
	"github.com/playalong-cli/playalong/key"
	"github.com/playalong-cli/playalong/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given no config file", t, func() {
		So(Setup(), ShouldBeNil)

		Convey("Every registered key has its default", func() {
			for k, field := range Default {
				So(viper.Get(k), ShouldEqual, field.Value)
			}
		})

		Convey("Playback defaults are exposed", func() {
			So(viper.GetInt(key.ReproductionVolume), ShouldEqual, 50)
			So(viper.GetInt(key.ReproductionPollInterval), ShouldEqual, 200)
			So(viper.GetInt(key.TimelineEdgeTolerance), ShouldEqual, 10)
			So(viper.GetInt(key.TimelineClickThreshold), ShouldEqual, 0)
		})
	})

	Convey("Given a config file", t, func() {
		path := where.Config() + "/playalong.toml"
		So(filesystem.API().WriteFile(path, []byte("[reproduction]\ntempo = 96\n"), 0o644), ShouldBeNil)

		Reset(func() {
			_ = filesystem.API().Remove(path)
			viper.Reset()
		})

		Convey("Its values override the defaults", func() {
			So(Setup(), ShouldBeNil)
			So(viper.GetInt(key.ReproductionTempo), ShouldEqual, 96)
			So(viper.GetInt(key.ReproductionVolume), ShouldEqual, 50)
		})
	})

	Convey("Given an environment override", t, func() {
		t.Setenv("PLAYALONG_TIMELINE_ZOOM_LEVEL", "4")
		So(Setup(), ShouldBeNil)

		Convey("It wins over the default", func() {
			So(viper.GetInt(key.TimelineZoomLevel), ShouldEqual, 4)
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given the volume field", t, func() {
		field := Default[key.ReproductionVolume]

		Convey("Env carries the application prefix", func() {
			So(field.Env(), ShouldEqual, "PLAYALONG_REPRODUCTION_VOLUME")
		})

		Convey("Parse accepts an integer in range", func() {
			v, err := field.Parse("70")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 70)
		})

		Convey("Parse rejects text and values out of range", func() {
			_, err := field.Parse("loud")
			So(errors.Is(err, ErrInvalidValue), ShouldBeTrue)

			_, err = field.Parse("101")
			So(errors.Is(err, ErrInvalidValue), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "outside [0, 100]")
		})

		Convey("JSON output lists default, type and env", func() {
			data, err := json.Marshal(field)
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"default":50`)
			So(string(data), ShouldContainSubstring, `"type":"int"`)
			So(string(data), ShouldContainSubstring, `"env":"PLAYALONG_REPRODUCTION_VOLUME"`)
		})
	})

	Convey("Given other field types", t, func() {
		Convey("Booleans are parsed", func() {
			v, err := Default[key.MetronomeEnabled].Parse("false")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, false)
		})

		Convey("Strings are checked against their options", func() {
			v, err := Default[key.IconsVariant].Parse("squares")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "squares")

			_, err = Default[key.IconsVariant].Parse("retro")
			So(errors.Is(err, ErrInvalidValue), ShouldBeTrue)

			_, err = Default[key.LogsLevel].Parse("debug")
			So(err, ShouldBeNil)
		})

		Convey("Unchecked strings are taken as is", func() {
			v, err := Default[key.PlayerMPVPath].Parse("/usr/bin/mpv")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "/usr/bin/mpv")
		})

		Convey("Positive fields reject zero", func() {
			_, err := Default[key.SimulatedTick].Parse("0")
			So(errors.Is(err, ErrInvalidValue), ShouldBeTrue)
		})
	})
}
