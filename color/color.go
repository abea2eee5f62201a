// Package color names the terminal colors of the command line output.
package color

import "github.com/charmbracelet/lipgloss"

// New accepts an ANSI index or a hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
	Black  = New("8")

	HiRed    = New("9")
	HiPurple = New("13")

	Orange = New("#ffb703")
)
