package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/playalong-cli/playalong/color"
	"github.com/playalong-cli/playalong/filesystem"
	"github.com/playalong-cli/playalong/icon"
	"github.com/playalong-cli/playalong/key"
	"github.com/playalong-cli/playalong/style"
	"github.com/playalong-cli/playalong/timeline"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(timelineCmd)

	timelineCmd.Flags().Float64P("duration", "d", 0, "Media duration in seconds")
	timelineCmd.Flags().Float64P("value", "V", 0, "Playback position in seconds")
	timelineCmd.Flags().IntP("zoom", "z", 0, "Zoom level, from 0 to 9")
	timelineCmd.Flags().Float64P("width", "w", 0, "Container width in pixels, 0 for the fixed geometry")
	timelineCmd.Flags().StringP("range", "r", "", "Selected range as start,end in seconds")
	timelineCmd.Flags().StringP("markers", "m", "", "Marker positions as a comma separated list of seconds")
	timelineCmd.Flags().Bool("no-blocks", false, "Omit time blocks")
	timelineCmd.Flags().BoolP("json", "j", false, "Format the layout as a JSON object")
	timelineCmd.Flags().Bool("schema", false, "Print the JSON schema of the layout and exit")
	timelineCmd.Flags().StringP("output", "o", "", "Write the output to a file")

	lo.Must0(viper.BindPFlag(key.TimelineZoomLevel, timelineCmd.Flags().Lookup("zoom")))
	lo.Must0(viper.BindPFlag(key.TimelineContainerWidth, timelineCmd.Flags().Lookup("width")))
}

// timelineCmd computes the geometry of a timeline without playing anything.
var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Compute the layout of a timeline",
	Long: `Compute the layout of a timeline: zoom context, time blocks, playhead,
selection and markers, in pixels.

Out of bounds inputs are reported as warnings. An invalid zoom level falls back to 0,
an inconsistent range is dropped and a value outside the duration is kept.`,
	Example: "  playalong timeline --duration 300 --value 42 --zoom 3 --width 800 --range 20,30",
	Run: func(cmd *cobra.Command, args []string) {
		writer, err := openOutput(lo.Must(cmd.Flags().GetString("output")))
		handleErr(err)
		defer func() {
			handleErr(writer.Close())
		}()

		if lo.Must(cmd.Flags().GetBool("schema")) {
			handleErr(writeSchema(writer))
			return
		}

		selected, err := parseFloats(lo.Must(cmd.Flags().GetString("range")))
		handleErr(err)
		markers, err := parseFloats(lo.Must(cmd.Flags().GetString("markers")))
		handleErr(err)

		props := timeline.Props{
			Duration:       lo.Must(cmd.Flags().GetFloat64("duration")),
			Value:          lo.Must(cmd.Flags().GetFloat64("value")),
			ZoomLevel:      viper.GetInt(key.TimelineZoomLevel),
			SelectedRange:  selected,
			Markers:        markers,
			WithTimeBlocks: !lo.Must(cmd.Flags().GetBool("no-blocks")),
		}

		layout := timeline.Compute(props, viper.GetFloat64(key.TimelineContainerWidth))

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(writer)
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(layout))
			return
		}

		_, err = fmt.Fprint(writer, prettyLayout(layout))
		handleErr(err)
	},
}

type stdout struct{ io.Writer }

func (stdout) Close() error { return nil }

// openOutput creates the file at path, or wraps the standard output when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return stdout{os.Stdout}, nil
	}

	return filesystem.API().Create(path)
}

func writeSchema(w io.Writer) error {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		return "timeline." + t.Name()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reflector.Reflect(&timeline.Layout{}))
}

func prettyLayout(l timeline.Layout) string {
	var (
		b     strings.Builder
		label = style.Fg(color.Blue)
		value = style.Fg(color.Yellow)
	)

	line := func(name, format string, args ...any) {
		fmt.Fprintf(&b, "%s %s\n", label(fmt.Sprintf("%-14s", name)), value(fmt.Sprintf(format, args...)))
	}

	line("Zoom level", "%d", l.Props.ZoomLevel)
	line("Block offset", "%gs", l.Context.BlockOffset)
	line("Pixels/second", "%.4g", l.Context.PixelsInSecond)
	line("Wrapper width", "%.2fpx", l.Context.WrapperWidth)
	line("Playhead", "%s at %.2fpx", timeline.FormatTick(l.Props.Value), l.ValueX)
	line("Scroll", "%.2fpx", l.Scroll)

	if l.Selected != nil {
		line("Selection", "%.2fpx to %.2fpx", l.Selected.From, l.Selected.To)
	}

	if len(l.Markers) > 0 {
		line("Markers", "%s", strings.Join(lo.Map(l.Markers, func(px float64, _ int) string {
			return fmt.Sprintf("%.2fpx", px)
		}), ", "))
	}

	if len(l.Blocks) > 0 {
		b.WriteString("\n" + style.Bold("Blocks") + "\n")
		for _, block := range l.Blocks {
			fmt.Fprintf(&b, "  %s %s\n", style.Fg(color.Purple)(fmt.Sprintf("%6s", block.Label)), style.Faint(fmt.Sprintf("%.2fpx", block.X)))
		}
	}

	if len(l.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range l.Warnings {
			fmt.Fprintf(&b, "%s %s\n", style.Fg(color.Yellow)(icon.Get(icon.Warn)), w.String())
		}
	}

	return b.String()
}
