package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/playalong-cli/playalong/player"
	"github.com/playalong-cli/playalong/reproduction"
	"github.com/playalong-cli/playalong/timeline"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

func (b *bubble) Init() tea.Cmd {
	return b.waitForEvent()
}

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		b.helpC.Width = msg.Width
	case sessionMsg:
		b.onSession(msg)
		cmd = b.waitForEvent()
	case tea.KeyMsg:
		if key.Matches(msg, b.keymap.forceQuit, b.keymap.quit) {
			return b, tea.Quit
		}
		b.notice = ""
		b.onKey(msg)
	case tea.MouseMsg:
		b.onMouse(msg)
	}

	b.refresh()
	return b, cmd
}

func (b *bubble) onSession(msg sessionMsg) {
	b.snap = msg.snap

	switch msg.event.Kind {
	case reproduction.EventCountingIn:
		b.pulse = mo.Some(msg.event.Pulse)
	case reproduction.EventStart, reproduction.EventPlay, reproduction.EventFinish:
		b.pulse = mo.None[reproduction.Pulse]()
	case reproduction.EventError:
		b.notice = msg.event.Err.Error()
		if player.IsUnrecoverable(msg.event.Err.Code) {
			b.lastError = msg.event.Err
		}
	case reproduction.EventPlaying:
		b.loopBack()
	}
}

// loopBack returns to the start of the selection once playback passes its end.
func (b *bubble) loopBack() {
	if !b.looping {
		return
	}
	selected, ok := b.selector.Selection().Get()
	if !ok || b.snap.position < selected.End {
		return
	}

	// The snapshot may be stale, check again on the session thread.
	b.do(func(r *reproduction.Reproduction) {
		if r.CurrentTime() >= selected.End {
			r.SeekTo(selected.Start)
		}
	})
}

func (b *bubble) onKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	case key.Matches(msg, b.keymap.playPause):
		b.togglePlayback()
	case key.Matches(msg, b.keymap.stop):
		b.do(func(r *reproduction.Reproduction) { r.Stop() })
		b.pulse = mo.None[reproduction.Pulse]()
	case key.Matches(msg, b.keymap.rewind):
		b.seekTo(0)
	case key.Matches(msg, b.keymap.seekBack):
		b.seekTo(max(b.snap.position-seekStep, 0))
	case key.Matches(msg, b.keymap.seekForward):
		b.seekTo(b.snap.position + seekStep)
	case key.Matches(msg, b.keymap.volumeUp):
		b.do(func(r *reproduction.Reproduction) { r.SetVolume(r.Volume() + volumeStep) })
	case key.Matches(msg, b.keymap.volumeDown):
		b.do(func(r *reproduction.Reproduction) { r.SetVolume(r.Volume() - volumeStep) })
	case key.Matches(msg, b.keymap.faster):
		b.stepRate(1)
	case key.Matches(msg, b.keymap.slower):
		b.stepRate(-1)
	case key.Matches(msg, b.keymap.zoomIn):
		b.zoom = lo.Clamp(b.zoom+1, 0, timeline.LevelCount()-1)
	case key.Matches(msg, b.keymap.zoomOut):
		b.zoom = lo.Clamp(b.zoom-1, 0, timeline.LevelCount()-1)
	case key.Matches(msg, b.keymap.markStart):
		b.markStart()
	case key.Matches(msg, b.keymap.markEnd):
		b.markEnd()
	case key.Matches(msg, b.keymap.clearSelection):
		b.selector.SetSelection(mo.None[timeline.Range]())
		b.looping = false
	case key.Matches(msg, b.keymap.loop):
		if b.selector.Selection().IsAbsent() {
			b.notice = "select a range to loop"
			return
		}
		b.looping = !b.looping
	}
}

// togglePlayback starts, pauses or, during the counting-in, stops the session.
func (b *bubble) togglePlayback() {
	if !b.snap.ready {
		b.notice = "not ready yet"
		return
	}

	b.do(func(r *reproduction.Reproduction) {
		switch r.State() {
		case reproduction.StatePlaying:
			r.Pause()
		case reproduction.StateCountingIn:
			r.Stop()
		default:
			r.Start()
		}
	})
}

func (b *bubble) stepRate(step int) {
	var err error
	b.do(func(r *reproduction.Reproduction) {
		rate, ok := nextRate(r.AvailablePlaybackRates(), b.rate, step)
		if !ok {
			return
		}
		if err = r.SetPlaybackRate(rate); err == nil {
			b.rate = rate
		}
	})

	if err != nil {
		b.notice = err.Error()
		return
	}
	b.notice = fmt.Sprintf("rate %gx", b.rate)
}

func (b *bubble) markStart() {
	start := b.snap.position
	end := b.snap.duration.OrElse(start)
	if r, ok := b.selector.Selection().Get(); ok && r.End > start {
		end = r.End
	}
	b.selectRange(start, end)
}

func (b *bubble) markEnd() {
	end := b.snap.position
	start := 0.0
	if r, ok := b.selector.Selection().Get(); ok && r.Start < end {
		start = r.Start
	}
	b.selectRange(start, end)
}

func (b *bubble) selectRange(start, end float64) {
	if end <= start {
		b.notice = "the range must end after it starts"
		return
	}
	r := timeline.Range{Start: start, End: end}
	b.selector.SetSelection(mo.Some(r))
	b.rangeChanged(r)
}

// onMouse feeds presses on the timeline bar to the range selector.
func (b *bubble) onMouse(msg tea.MouseMsg) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return
	}

	col := lo.Clamp(msg.X-paddingX, 0, b.strip.cols-1)
	px := b.strip.pixel(col)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Y != paddingY+barLine {
			return
		}

		now := time.Now()
		if now.Sub(b.lastClick) < doubleClickInterval && col == b.lastClickCol {
			b.lastClick = time.Time{}
			b.selector.DoubleClick(px)
			return
		}
		b.lastClick, b.lastClickCol = now, col
		b.selector.Down(px)
	case tea.MouseActionMotion:
		b.selector.Move(px)
	case tea.MouseActionRelease:
		b.selector.Up(px)
	}
}
