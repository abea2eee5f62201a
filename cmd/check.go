package cmd

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/playalong-cli/playalong/constant"
	"github.com/playalong-cli/playalong/icon"
	"github.com/playalong-cli/playalong/style"
)

var errMissingPlayer = errors.New("video player not found")

// checkPlayer verifies that the external video player can be executed.
func checkPlayer(path string) error {
	if _, err := exec.LookPath(path); err != nil {
		fmt.Println(missingDependency(path))
		return fmt.Errorf("%w: %s", errMissingPlayer, path)
	}
	return nil
}

func installHint(goos string) string {
	switch goos {
	case constant.Darwin:
		return "brew install mpv"
	case constant.Linux:
		return "sudo apt install mpv"
	case constant.Windows:
		return "scoop install mpv"
	default:
		return ""
	}
}

func missingDependency(dep string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("Training mode needs '%s', which was not found in your PATH.", dep))

	suggestion := ""
	if hint := installHint(runtime.GOOS); hint != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(hint))
	}

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, title, "\n", body, suggestion))
}
