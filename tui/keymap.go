package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/playalong-cli/playalong/color"
	"github.com/playalong-cli/playalong/style"
)

// keymap defines the keyboard interactions of the session view.
type keymap struct {
	quit, forceQuit,
	playPause, stop, rewind,
	seekBack, seekForward,
	volumeUp, volumeDown,
	faster, slower,
	zoomIn, zoomOut,
	markStart, markEnd, clearSelection, loop,
	showHelp key.Binding
}

func newKeymap() *keymap {
	return &keymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp(style.Fg(color.Orange)("space"), style.Fg(color.Orange)("start/pause")),
		),
		stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		rewind: key.NewBinding(
			key.WithKeys("0", "home"),
			key.WithHelp("0", "rewind"),
		),
		seekBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "-5s"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "+5s"),
		),
		volumeUp: key.NewBinding(
			key.WithKeys("up", "k", "+"),
			key.WithHelp("↑", "volume up"),
		),
		volumeDown: key.NewBinding(
			key.WithKeys("down", "j", "-"),
			key.WithHelp("↓", "volume down"),
		),
		faster: key.NewBinding(
			key.WithKeys(">", "."),
			key.WithHelp(">", "faster"),
		),
		slower: key.NewBinding(
			key.WithKeys("<", ","),
			key.WithHelp("<", "slower"),
		),
		zoomIn: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "zoom in"),
		),
		zoomOut: key.NewBinding(
			key.WithKeys("Z"),
			key.WithHelp("Z", "zoom out"),
		),
		markStart: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "range start"),
		),
		markEnd: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "range end"),
		),
		clearSelection: key.NewBinding(
			key.WithKeys("backspace", "c"),
			key.WithHelp("c", "clear range"),
		),
		loop: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "loop range"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.playPause, k.stop, k.seekBack, k.seekForward, k.showHelp, k.quit}
}

func (k *keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.playPause, k.stop, k.rewind, k.seekBack, k.seekForward},
		{k.volumeUp, k.volumeDown, k.faster, k.slower},
		{k.zoomIn, k.zoomOut, k.markStart, k.markEnd, k.clearSelection, k.loop},
		{k.showHelp, k.quit},
	}
}
