package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/playalong-cli/playalong/config"
	"github.com/playalong-cli/playalong/filesystem"
	"github.com/playalong-cli/playalong/key"
	"github.com/playalong-cli/playalong/sched"
	"github.com/playalong-cli/playalong/timeline"
	"github.com/playalong-cli/playalong/where"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestParseFlags(t *testing.T) {
	Convey("parseFloats", t, func() {
		values, err := parseFloats(" 10, 20.5,30 ")
		So(err, ShouldBeNil)
		So(values, ShouldResemble, []float64{10, 20.5, 30})

		values, err = parseFloats("")
		So(err, ShouldBeNil)
		So(values, ShouldBeNil)

		_, err = parseFloats("10,x")
		So(err, ShouldNotBeNil)
	})

	Convey("parseRange", t, func() {
		r, err := parseRange("20,30")
		So(err, ShouldBeNil)
		So(r, ShouldResemble, mo.Some(timeline.Range{Start: 20, End: 30}))

		r, err = parseRange("")
		So(err, ShouldBeNil)
		So(r.IsAbsent(), ShouldBeTrue)

		_, err = parseRange("30,20")
		So(err, ShouldNotBeNil)
		_, err = parseRange("1,2,3")
		So(err, ShouldNotBeNil)
	})
}

func TestConfigValues(t *testing.T) {
	Convey("Given registered fields", t, func() {
		Convey("Keys are looked up from arguments", func() {
			field, err := lookupField(configGetCmd, []string{key.ReproductionVolume})
			So(err, ShouldBeNil)
			So(field.Value, ShouldEqual, 50)

			_, err = lookupField(configGetCmd, nil)
			So(errors.Is(err, errKeyRequired), ShouldBeTrue)

			_, err = lookupField(configGetCmd, []string{"reproduction.volum"})
			So(errors.Is(err, errUnknownKey), ShouldBeTrue)
		})

		Convey("Unknown keys suggest the closest one", func() {
			So(closestKey("reproduction.volum"), ShouldEqual, key.ReproductionVolume)

			err := unknownKey("reproduction.volum")
			So(errors.Is(err, errUnknownKey), ShouldBeTrue)
		})

		Convey("Every exposed key has an environment variable", func() {
			vars := envVariables()
			So(vars, ShouldContain, "PLAYALONG_REPRODUCTION_VOLUME")
			So(vars, ShouldContain, where.EnvConfigPath)
			So(len(vars), ShouldEqual, len(config.EnvExposed)+1)
		})
	})
}

func TestWidgetOptions(t *testing.T) {
	Convey("Given play inputs", t, func() {
		loop := sched.NewLoop(nil)

		Convey("A play-along needs a duration", func() {
			_, err := widgetOptions(playOptions{}, loop)
			So(errors.Is(err, errNothingToPlay), ShouldBeTrue)

			opts, err := widgetOptions(playOptions{duration: 90, tempo: 100}, loop)
			So(err, ShouldBeNil)
			So(opts.TrainingMode, ShouldBeFalse)
			So(opts.Duration, ShouldResemble, mo.Some(90.0))
			So(opts.CountingIn, ShouldBeTrue)
		})

		Convey("A YouTube url is probed by id", func() {
			opts, err := widgetOptions(playOptions{video: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", probe: true}, loop)
			So(err, ShouldBeNil)
			So(opts.TrainingMode, ShouldBeTrue)
			So(opts.CountingIn, ShouldBeFalse)
			So(opts.VideoID, ShouldEqual, "dQw4w9WgXcQ")
			So(opts.Probe, ShouldNotBeNil)
			So(opts.OpenHandle, ShouldNotBeNil)
		})

		Convey("Probing can be skipped", func() {
			opts, err := widgetOptions(playOptions{video: "dQw4w9WgXcQ"}, loop)
			So(err, ShouldBeNil)
			So(opts.Probe, ShouldBeNil)
		})
	})
}

func TestTimelineOutput(t *testing.T) {
	Convey("Given a computed layout", t, func() {
		layout := timeline.Compute(timeline.Props{
			Duration:       300,
			Value:          301,
			SelectedRange:  []float64{20, 30},
			WithTimeBlocks: true,
		}, 0)

		Convey("The pretty form lists geometry, blocks and warnings", func() {
			out := prettyLayout(layout)
			So(out, ShouldContainSubstring, "Block offset")
			So(out, ShouldContainSubstring, "140.00px to 210.00px")
			So(out, ShouldContainSubstring, "4:40")
			So(out, ShouldContainSubstring, "value 301 is outside [0, 300]")
		})

		Convey("The schema describes the layout", func() {
			var b bytes.Buffer
			So(writeSchema(&b), ShouldBeNil)

			var schema map[string]any
			So(json.Unmarshal(b.Bytes(), &schema), ShouldBeNil)
			So(strings.Contains(b.String(), "timeline.Layout"), ShouldBeTrue)
			So(strings.Contains(b.String(), "pixels_in_second"), ShouldBeTrue)
		})
	})
}

func TestOpenOutput(t *testing.T) {
	Convey("Given an output path", t, func() {
		path := "/out/layout.json"
		So(filesystem.API().MkdirAll("/out", 0o755), ShouldBeNil)

		Convey("The layout is flushed to the file once closed", func() {
			w, err := openOutput(path)
			So(err, ShouldBeNil)

			So(writeSchema(w), ShouldBeNil)
			So(w.Close(), ShouldBeNil)

			contents, err := filesystem.API().ReadFile(path)
			So(err, ShouldBeNil)
			So(string(contents), ShouldContainSubstring, "timeline.Layout")
		})

		Convey("An empty path writes to the standard output", func() {
			w, err := openOutput("")
			So(err, ShouldBeNil)
			So(w.Close(), ShouldBeNil)

			exists, err := filesystem.API().Exists(path)
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)
		})

		Reset(func() {
			_ = filesystem.API().RemoveAll("/out")
		})
	})
}

func TestInstallHint(t *testing.T) {
	Convey("installHint", t, func() {
		So(installHint("darwin"), ShouldEqual, "brew install mpv")
		So(installHint("plan9"), ShouldBeEmpty)
	})
}
