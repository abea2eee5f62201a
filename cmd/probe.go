package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/playalong-cli/playalong/color"
	"github.com/playalong-cli/playalong/icon"
	"github.com/playalong-cli/playalong/key"
	"github.com/playalong-cli/playalong/style"
	"github.com/playalong-cli/playalong/timeline"
	"github.com/playalong-cli/playalong/widget"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const probeTimeout = 20 * time.Second

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().BoolP("json", "j", false, "Format the result as a JSON object")
	probeCmd.SetOut(os.Stdout)
}

// probeCmd checks whether a video can be played in training mode.
var probeCmd = &cobra.Command{
	Use:     "probe [video id or url]",
	Short:   "Check whether a YouTube video can be played in training mode",
	Args:    cobra.ExactArgs(1),
	Example: "  playalong probe dQw4w9WgXcQ",
	Run: func(cmd *cobra.Command, args []string) {
		id, err := widget.VideoID(args[0])
		handleErr(err)

		ctx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
		defer cancel()

		probe := widget.NewYouTube(time.Duration(viper.GetInt(key.ProbeCacheHours)) * time.Hour)
		info, err := probe.Probe(ctx, id)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(info))
			return
		}

		cmd.Print(prettyInfo(info))
	},
}

func prettyInfo(info widget.Info) string {
	label := style.Fg(color.Blue)

	status := style.Fg(color.Green)(icon.Get(icon.Success) + " available")
	if !info.Available {
		status = style.Fg(color.Red)(fmt.Sprintf("%s unavailable (%d) %s", icon.Get(icon.Fail), info.Code, info.Reason))
	}

	out := fmt.Sprintf("%s %s\n", label("Status:  "), status)
	out += fmt.Sprintf("%s %s\n", label("ID:      "), info.ID)
	if info.Title != "" {
		out += fmt.Sprintf("%s %s\n", label("Title:   "), style.Fg(color.Purple)(info.Title))
	}
	if info.Author != "" {
		out += fmt.Sprintf("%s %s\n", label("Author:  "), info.Author)
	}
	if info.Duration > 0 {
		out += fmt.Sprintf("%s %s\n", label("Duration:"), timeline.FormatTick(info.Duration))
	}
	return out
}
