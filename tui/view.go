package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
	"github.com/playalong-cli/playalong/color"
	"github.com/playalong-cli/playalong/icon"
	"github.com/playalong-cli/playalong/reproduction"
	"github.com/playalong-cli/playalong/style"
	"github.com/playalong-cli/playalong/timeline"
)

const (
	paddingX = 2
	paddingY = 1

	// barLine is the line of the timeline bar within the padded content.
	barLine = 5
)

var paddingStyle = lipgloss.NewStyle().Padding(paddingY, paddingX)

func (b *bubble) View() string {
	if b.lastError != nil {
		return b.viewError()
	}

	lines := []string{
		b.viewTitle(),
		"",
		b.viewStatus(),
		"",
		render(b.strip.ticks()),
		render(b.strip.bar(b.selector.Pixels())),
		"",
		b.viewCountingIn(),
	}

	if b.notice != "" {
		lines = append(lines, "", style.Faint(b.notice))
	}

	return b.renderLines(true, lines)
}

func (b *bubble) viewTitle() string {
	title := truncate.StringWithTail(b.title, uint(max(b.columns()-16, 8)), "…")
	return style.Title(title) + " " + stateTag(b.snap)
}

func stateTag(s snapshot) string {
	if !s.ready {
		return style.Tag(color.Black, color.Yellow)("LOADING")
	}

	return style.StateTag(s.state.String())
}

func stateIcon(s reproduction.State) string {
	switch s {
	case reproduction.StatePlaying:
		return icon.Get(icon.Play)
	case reproduction.StatePaused:
		return icon.Get(icon.Pause)
	case reproduction.StateCountingIn:
		return icon.Get(icon.Count)
	default:
		return icon.Get(icon.Stop)
	}
}

func (b *bubble) viewStatus() string {
	duration := "--:--"
	if d, ok := b.snap.duration.Get(); ok {
		duration = timeline.FormatTick(d)
	}

	parts := []string{
		fmt.Sprintf("%s %s / %s", stateIcon(b.snap.state), timeline.FormatTick(b.snap.position), duration),
		fmt.Sprintf("vol %d", b.snap.volume),
		fmt.Sprintf("rate %gx", b.rate),
		fmt.Sprintf("zoom %d", b.zoom),
	}
	if b.looping {
		parts = append(parts, style.Fg(style.AccentColor)("loop"))
	}

	return strings.Join(parts, style.Faint("  ·  "))
}

// viewCountingIn shows the pulses of the current counting-in phase.
func (b *bubble) viewCountingIn() string {
	p, ok := b.pulse.Get()
	if !ok || b.snap.state != reproduction.StateCountingIn {
		return ""
	}

	total := 3
	if p.Phase == 2 {
		total = 5
	}

	var dots strings.Builder
	for i := 1; i <= total; i++ {
		if i <= p.Index {
			dots.WriteString(style.Fg(style.CountingInColor)("●"))
		} else {
			dots.WriteString(style.Faint("○"))
		}
		dots.WriteRune(' ')
	}
	return dots.String()
}

func (b *bubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(b.lastError.Error()), b.columns())
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " The session cannot continue:",
			"",
			errorMsg,
		},
	)
}

func (b *bubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		// Padding plus the help line.
		if free := b.height - 2*paddingY - 1; free > h {
			l += strings.Repeat("\n", free-h)
		} else {
			l += "\n\n"
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
