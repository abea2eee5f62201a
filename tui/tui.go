// Package tui renders a playback session in the terminal and drives it from the keyboard and mouse.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/playalong-cli/playalong/reproduction"
	"github.com/playalong-cli/playalong/timeline"
	"github.com/samber/mo"
)

// Runner runs fn on the thread that owns the session and waits for it.
// It reports false when the thread no longer accepts work. sched.Loop is a Runner.
type Runner interface {
	Do(fn func()) bool
}

// Options encapsulates the runtime configuration of the session view.
type Options struct {
	Session *reproduction.Reproduction
	Runner  Runner

	Title     string
	ZoomLevel int
	Markers   []float64
	Selection mo.Option[timeline.Range]

	// EdgeTolerance and ClickThreshold tune the mouse range selection, in timeline pixels.
	EdgeTolerance  float64
	ClickThreshold float64
}

// Run executes the session view until the user quits.
func Run(options *Options) error {
	bubble := newBubble(options)
	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
