package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playalong-cli/playalong/key"
	"github.com/playalong-cli/playalong/log"
	"github.com/playalong-cli/playalong/metronome"
	"github.com/playalong-cli/playalong/sched"
	"github.com/playalong-cli/playalong/timeline"
	"github.com/playalong-cli/playalong/tui"
	"github.com/playalong-cli/playalong/widget"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const mountTimeout = 30 * time.Second

var errNothingToPlay = errors.New("either --video or a positive --duration is required")

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("video", "V", "", "Video to practice along: a YouTube id or url, or a local file")
	playCmd.Flags().Float64P("duration", "d", 0, "Song duration in seconds when playing along without a video")
	playCmd.Flags().Float64P("tempo", "t", 0, "Song tempo in BPM. Enables the counting-in")
	playCmd.Flags().IntP("volume", "v", 0, "Initial volume, from 0 to 100. Defaults to the configured volume")
	playCmd.Flags().IntP("zoom", "z", 0, "Timeline zoom level, from 0 to 9")
	playCmd.Flags().StringP("range", "r", "", "Initial selection as start,end in seconds")
	playCmd.Flags().Bool("no-click", false, "Count in silently")
	playCmd.Flags().Bool("no-probe", false, "Skip the video availability check")

	playCmd.MarkFlagsMutuallyExclusive("video", "duration")
}

// playOptions are the resolved inputs of a session.
type playOptions struct {
	video     string
	duration  float64
	tempo     float64
	volume    mo.Option[int]
	zoom      int
	selection string
	click     bool
	probe     bool
}

func playOptionsFromFlags(cmd *cobra.Command) playOptions {
	flags := cmd.Flags()

	opts := playOptions{
		video:     lo.Must(flags.GetString("video")),
		duration:  lo.Must(flags.GetFloat64("duration")),
		tempo:     viper.GetFloat64(key.ReproductionTempo),
		zoom:      viper.GetInt(key.TimelineZoomLevel),
		selection: lo.Must(flags.GetString("range")),
		click:     viper.GetBool(key.MetronomeEnabled) && !lo.Must(flags.GetBool("no-click")),
		probe:     !lo.Must(flags.GetBool("no-probe")),
	}

	if flags.Changed("tempo") {
		opts.tempo = lo.Must(flags.GetFloat64("tempo"))
	}
	if flags.Changed("volume") {
		opts.volume = mo.Some(lo.Must(flags.GetInt("volume")))
	}
	if flags.Changed("zoom") {
		opts.zoom = lo.Must(flags.GetInt("zoom"))
	}

	return opts
}

// widgetOptions maps the command inputs to a widget mount.
func widgetOptions(opts playOptions, loop *sched.Loop) (widget.Options, error) {
	w := widget.Options{
		TrainingMode: opts.video != "",
		VideoID:      opts.video,
		CountingIn:   opts.tempo > 0,
		SongTempo:    opts.tempo,
		Volume:       opts.volume,
		Scheduler:    loop,
		OnVideoUnavailable: func() {
			log.Warnf("video %s is unavailable", opts.video)
		},
	}

	if !w.TrainingMode {
		if opts.duration <= 0 {
			return w, errNothingToPlay
		}
		w.Duration = mo.Some(opts.duration)
		return w, nil
	}

	w.OpenHandle = widget.MPVHandle(loop, viper.GetString(key.PlayerMPVPath))

	// Only YouTube videos can be probed; urls and files go straight to the player.
	if id, err := widget.VideoID(opts.video); err == nil && opts.probe {
		w.VideoID = id
		w.Probe = widget.NewYouTube(time.Duration(viper.GetInt(key.ProbeCacheHours)) * time.Hour)
	}

	return w, nil
}

// playCmd runs an interactive practice session.
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Practice along a video or a timed song",
	Long: `Open an interactive practice session.

With --video the session plays the video in mpv (training mode). Otherwise it
plays along a silent timer of the given --duration. A positive --tempo runs a
counting-in before playback starts from the beginning: three pulses two beats
apart, then five pulses one beat apart.`,
	Example: "  playalong play --duration 180 --tempo 96\n  playalong play --video dQw4w9WgXcQ --tempo 113 --range 30,45",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(runPlay(cmd.Context(), playOptionsFromFlags(cmd)))
	},
}

func runPlay(ctx context.Context, opts playOptions) error {
	selection, err := parseRange(opts.selection)
	if err != nil {
		return err
	}

	loop := sched.Default()

	mountOpts, err := widgetOptions(opts, loop)
	if err != nil {
		return err
	}

	if mountOpts.TrainingMode {
		if err := checkPlayer(viper.GetString(key.PlayerMPVPath)); err != nil {
			return err
		}
	}

	mountCtx, cancel := context.WithTimeout(ctx, mountTimeout)
	defer cancel()

	w, err := widget.Mount(mountCtx, mountOpts)
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Close(); err != nil {
			log.Warnf("close session: %s", err)
		}
	}()

	if opts.click {
		attachMetronome(loop, w)
	}

	return tui.Run(&tui.Options{
		Session:        w.Reproduction(),
		Runner:         loop,
		Title:          sessionTitle(opts, w),
		ZoomLevel:      opts.zoom,
		Selection:      selection,
		EdgeTolerance:  viper.GetFloat64(key.TimelineEdgeTolerance),
		ClickThreshold: viper.GetFloat64(key.TimelineClickThreshold),
	})
}

func attachMetronome(loop *sched.Loop, w *widget.Widget) {
	out, err := metronome.Speaker()
	if err != nil {
		log.Warnf("metronome disabled: %s", err)
		return
	}

	m := metronome.New(out, viper.GetFloat64(key.MetronomeFrequency))
	loop.Do(func() {
		m.Attach(w.Reproduction())
	})
}

func sessionTitle(opts playOptions, w *widget.Widget) string {
	if info, ok := w.Info().Get(); ok && info.Title != "" {
		return info.Title
	}
	if opts.video != "" {
		return opts.video
	}
	return fmt.Sprintf("%s (%s)", widget.SyntheticHandle, timeline.FormatTick(opts.duration))
}
