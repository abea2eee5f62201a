package icon

import (
	"testing"

	"github.com/playalong-cli/playalong/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given the transport icons", t, func() {
		transport := []Icon{Play, Pause, Stop, Count}

		Convey("Every variant renders each of them", func() {
			for _, v := range AvailableVariants() {
				viper.Set(key.IconsVariant, v)
				for _, i := range transport {
					So(Get(i), ShouldNotBeEmpty)
				}
			}
		})

		Convey("Variants differ", func() {
			viper.Set(key.IconsVariant, "plain")
			plainPlay := Get(Play)
			viper.Set(key.IconsVariant, "squares")
			So(Get(Play), ShouldNotEqual, plainPlay)
		})

		Convey("An unknown variant falls back to plain", func() {
			viper.Set(key.IconsVariant, "retro")
			So(Get(Play), ShouldEqual, ">")
			So(Get(Count), ShouldEqual, "*")
		})

		Reset(func() {
			viper.Set(key.IconsVariant, "plain")
		})
	})
}
