package cmd

import (
	"os"

	"github.com/playalong-cli/playalong/color"
	"github.com/playalong-cli/playalong/config"
	"github.com/playalong-cli/playalong/style"
	"github.com/playalong-cli/playalong/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	configCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "only variables defined in this shell")
	envCmd.Flags().BoolP("unset-only", "u", false, "only variables not defined in this shell")
	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

// envVariables lists the variables read at startup, sorted.
func envVariables() []string {
	vars := lo.Map(config.EnvExposed, func(k string, _ int) string {
		return config.Default[k].Env()
	})
	vars = append(vars, where.EnvConfigPath)
	slices.Sort(vars)
	return vars
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables overriding settings",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			setOnly   = lo.Must(cmd.Flags().GetBool("set-only"))
			unsetOnly = lo.Must(cmd.Flags().GetBool("unset-only"))
			name      = style.New().Bold(true).Foreground(color.Purple).Render
		)

		for _, env := range envVariables() {
			value, present := os.LookupEnv(env)
			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			shown := style.Fg(color.Red)("unset")
			if present {
				shown = style.Fg(color.Green)(value)
			}
			cmd.Println(name(env) + "=" + shown)
		}
	},
}
