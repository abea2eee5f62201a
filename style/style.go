// Package style holds the lipgloss styles of the command line and the session view.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/playalong-cli/playalong/color"
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored returns a style with the given foreground and background. Empty colors are left unset.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a function rendering its argument in c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(c, "").Render(s) }
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

var Title = func(s string) string {
	return Colored(color.New("230"), color.New("62")).Padding(0, 1).Render(s)
}

var ErrorTitle = func(s string) string {
	return Colored(color.New("230"), color.Red).Padding(0, 1).Render(s)
}

// Tag returns a function rendering its argument as a padded block.
func Tag(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(fg, bg).Padding(0, 1).Render(s) }
}

// StateTag renders a session state name on its state color.
// Unknown names use StoppedColor.
func StateTag(state string) string {
	switch state {
	case "PLAYING":
		return Tag(Base, PlayingColor)(state)
	case "COUNTING_IN":
		return Tag(Base, CountingInColor)(state)
	case "PAUSED":
		return Tag(Base, PausedColor)(state)
	default:
		return Tag(Text, StoppedColor)(state)
	}
}
