package config

import (
	"fmt"

	"github.com/playalong-cli/playalong/icon"
	"github.com/playalong-cli/playalong/key"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Default is the registry of every setting, by key.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables, in registration order.
var EnvExposed []string

func register(k string, v any, desc string, check ...func(any) error) {
	if _, exists := Default[k]; exists {
		panic("duplicate config key: " + k)
	}

	f := Field{Key: k, Value: v, Description: desc}
	if len(check) > 0 {
		f.Check = check[0]
	}

	Default[k] = f
	EnvExposed = append(EnvExposed, k)
}

func between[T int | float64](low, high T) func(any) error {
	return func(v any) error {
		if n := v.(T); n < low || n > high {
			return fmt.Errorf("%v is outside [%v, %v]", n, low, high)
		}
		return nil
	}
}

func positive[T int | float64](v any) error {
	if n := v.(T); n <= 0 {
		return fmt.Errorf("%v is not positive", n)
	}
	return nil
}

func oneOf(options ...string) func(any) error {
	return func(v any) error {
		if !lo.Contains(options, v.(string)) {
			return fmt.Errorf("%q is not one of %v", v, options)
		}
		return nil
	}
}

func init() {
	levels := lo.Map(logrus.AllLevels, func(l logrus.Level, _ int) string { return l.String() })

	register(key.ReproductionVolume, 50, "Initial playback volume. From 0 to 100", between(0, 100))
	register(key.ReproductionPollInterval, 200, "Interval in milliseconds between progress notifications while playing", positive[int])
	register(key.ReproductionTempo, 0, "Default song tempo in BPM.\nCounting-in is enabled when it is greater than 0", between(0, 400))
	register(key.SimulatedTick, 1000, "Interval in milliseconds between position steps of the play-along backend", positive[int])

	register(key.TimelineZoomLevel, 0, "Default timeline zoom level. From 0 to 9", between(0, 9))
	register(key.TimelineEdgeTolerance, 10, "Distance in pixels within which a pointer grabs a selection edge", between(0, 100))
	register(key.TimelineClickThreshold, 0, "Maximum pointer travel in pixels that still counts as a click", between(0, 100))
	register(key.TimelineContainerWidth, 0, "Timeline container width in pixels used by the timeline command.\nThe fixed zoom geometry is used if set to 0", between(0, 100000))

	register(key.MetronomeEnabled, true, "Play an audible click on each counting-in pulse")
	register(key.MetronomeFrequency, 880, "Frequency in Hz of the counting-in click", between(20, 20000))

	register(key.PlayerMPVPath, "mpv", "Path to the mpv executable used in training mode")
	register(key.ProbeCacheHours, 24, "Hours a video availability probe result is kept in cache", between(0, 24*365))

	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, plain, squares, nerd (nerd-font required)", oneOf(icon.AvailableVariants()...))
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace", oneOf(levels...))
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}
