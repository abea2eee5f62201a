package style

import "github.com/charmbracelet/lipgloss"

var (
	Base    = lipgloss.Color("#1e1e2e")
	Text    = lipgloss.Color("#cdd6f4")
	Subtext = lipgloss.Color("#a6adc8")
	Overlay = lipgloss.Color("#6c7086")
	Surface = lipgloss.Color("#313244")

	Mauve  = lipgloss.Color("#cba6f7")
	Red    = lipgloss.Color("#f38ba8")
	Peach  = lipgloss.Color("#fab387")
	Yellow = lipgloss.Color("#f9e2af")
	Green  = lipgloss.Color("#a6e3a1")

	AccentColor  = Mauve
	SuccessColor = Green
	WarningColor = Yellow
	ErrorColor   = Red
	HiRed        = Red
	FaintColor   = Overlay
)

// Session state colors, used as tag backgrounds.
var (
	PlayingColor    = SuccessColor
	CountingInColor = Peach
	PausedColor     = WarningColor
	StoppedColor    = Surface
)

// Timeline strip cells.
var (
	Track     = New().Foreground(FaintColor)
	Selection = New().Foreground(AccentColor)
	Marker    = New().Foreground(WarningColor)
	Playhead  = New().Foreground(Peach).Bold(true)
	TickLabel = New().Foreground(Subtext)
)
