// Package cmd implements the playalong command line.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/playalong-cli/playalong/color"
	"github.com/playalong-cli/playalong/constant"
	"github.com/playalong-cli/playalong/icon"
	"github.com/playalong-cli/playalong/key"
	"github.com/playalong-cli/playalong/log"
	"github.com/playalong-cli/playalong/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const tagline = "Practice along a song or a video with a counted-in metronome"

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "print the version")

	flags := rootCmd.PersistentFlags()
	flags.StringP("icons", "I", "", "icons variant: "+strings.Join(icon.AvailableVariants(), ", "))
	flags.Bool("log", false, "write logs for this run")
	flags.String("log-level", "", "log level for this run")

	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveNoFileComp
	}))

	lo.Must0(viper.BindPFlag(key.IconsVariant, flags.Lookup("icons")))
	lo.Must0(viper.BindPFlag(key.LogsWrite, flags.Lookup("log")))
	lo.Must0(viper.BindPFlag(key.LogsLevel, flags.Lookup("log-level")))
}

var rootCmd = &cobra.Command{
	Use:   constant.Playalong,
	Short: tagline,
	Long:  constant.AsciiArtLogo + "\n" + style.New().Italic(true).Foreground(color.HiRed).Render("    - "+tagline),
	// Logging starts once flags are bound so --log applies to this run.
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return log.Setup()
	},
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("version")) {
			versionCmd.Run(versionCmd, args)
			return
		}
		handleErr(cmd.Help())
	},
}

// Execute runs the command selected by os.Args.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		handleErr(err)
	}
}

// handleErr reports err and exits with status 1. It does nothing on nil.
func handleErr(err error) {
	if err == nil {
		return
	}
	log.Error(err)
	fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.TrimSpace(err.Error()))
	os.Exit(1)
}
