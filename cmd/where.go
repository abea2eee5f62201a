package cmd

import (
	"os"

	"github.com/playalong-cli/playalong/color"
	"github.com/playalong-cli/playalong/style"
	"github.com/playalong-cli/playalong/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type location struct {
	flag, short string
	what        string
	path        func() string
}

var locations = []location{
	{"config", "c", "playalong.toml and logs", where.Config},
	{"logs", "l", "daily log files", where.Logs},
	{"cache", "", "probe cache", where.Cache},
	{"temp", "t", "player sockets", where.Temp},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, l := range locations {
		whereCmd.Flags().BoolP(l.flag, l.short, false, "print the "+l.what+" directory")
	}
	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string { return l.flag })...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Print the directories playalong reads and writes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range locations {
			if lo.Must(cmd.Flags().GetBool(l.flag)) {
				cmd.Println(l.path())
				return
			}
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		for i, l := range locations {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("%s %s\n", header(l.what), style.Faint("--"+l.flag))
			cmd.Println(l.path())
		}
	},
}
