package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/playalong-cli/playalong/reproduction"
	"github.com/playalong-cli/playalong/timeline"
	"github.com/playalong-cli/playalong/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

const (
	// eventBuffer bounds the events waiting for the view. Extra events are dropped,
	// the next one carries a fresh snapshot anyway.
	eventBuffer = 64

	seekStep   = 5
	volumeStep = 5

	doubleClickInterval = 400 * time.Millisecond

	defaultColumns = 80
	minColumns     = 20
)

var errSessionClosed = errors.New("session closed")

// bubble is the session view model.
type bubble struct {
	session *reproduction.Reproduction
	runner  Runner
	title   string

	keymap *keymap
	helpC  help.Model

	events chan sessionMsg
	snap   snapshot
	pulse  mo.Option[reproduction.Pulse]
	rate   float64

	zoom     int
	markers  []float64
	selector *timeline.Selector
	context  timeline.Context
	strip    strip
	looping  bool

	lastClick    time.Time
	lastClickCol int

	notice    string
	lastError error

	width, height int
}

func newBubble(options *Options) *bubble {
	b := &bubble{
		session: options.Session,
		runner:  options.Runner,
		title:   options.Title,
		keymap:  newKeymap(),
		helpC:   help.New(),
		events:  make(chan sessionMsg, eventBuffer),
		rate:    1,
		zoom:    lo.Clamp(options.ZoomLevel, 0, timeline.LevelCount()-1),
		markers: options.Markers,
		width:   defaultColumns,
	}

	if width, height, err := util.TerminalSize(); err == nil {
		b.width, b.height = width, height
	}

	b.selector = timeline.NewSelector(timeline.Context{}, options.Selection, timeline.SelectorOptions{
		EdgeTolerance:  options.EdgeTolerance,
		ClickThreshold: options.ClickThreshold,
		OnChange:       b.seekTo,
		OnRangeChange:  b.rangeChanged,
	})

	b.runner.Do(func() {
		for kind := reproduction.EventReady; kind <= reproduction.EventError; kind++ {
			b.session.On(kind, b.forward)
		}
		b.snap = takeSnapshot(b.session)
	})

	b.refresh()
	return b
}

// forward runs on the session thread. It never blocks it.
func (b *bubble) forward(e reproduction.Event) {
	select {
	case b.events <- sessionMsg{event: e, snap: takeSnapshot(b.session)}:
	default:
	}
}

func (b *bubble) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-b.events
	}
}

// do runs fn on the session thread and refreshes the snapshot.
func (b *bubble) do(fn func(r *reproduction.Reproduction)) {
	ok := b.runner.Do(func() {
		fn(b.session)
		b.snap = takeSnapshot(b.session)
	})
	if !ok {
		b.lastError = errSessionClosed
	}
}

func (b *bubble) columns() int {
	return max(b.width-2*paddingX, minColumns)
}

// refresh recomputes the timeline layout for the current snapshot and size.
func (b *bubble) refresh() {
	props := timeline.Props{
		Duration:       b.snap.duration.OrElse(0),
		Value:          b.snap.position,
		ZoomLevel:      b.zoom,
		Markers:        b.markers,
		WithTimeBlocks: true,
	}
	if r, ok := b.selector.Selection().Get(); ok {
		props.SelectedRange = []float64{r.Start, r.End}
	}

	cols := b.columns()
	layout := timeline.Compute(props, float64(cols*cellWidth))

	if layout.Context != b.context {
		b.context = layout.Context
		b.selector.SetContext(layout.Context)
	}

	b.strip = newStrip(layout, cols)
}

func (b *bubble) seekTo(seconds float64) {
	b.do(func(r *reproduction.Reproduction) {
		r.SeekTo(seconds)
	})
}

func (b *bubble) rangeChanged(r timeline.Range) {
	b.notice = "range " + timeline.FormatTick(r.Start) + "-" + timeline.FormatTick(r.End)
}

// nextRate steps through rates from current. It reports false at either end.
func nextRate(rates []float64, current float64, step int) (float64, bool) {
	if len(rates) == 0 {
		return current, false
	}

	idx := lo.IndexOf(rates, current)
	if idx < 0 {
		// Start from the closest available rate.
		closest := lo.MinBy(rates, func(a, b float64) bool {
			return abs(a-current) < abs(b-current)
		})
		return closest, closest != current
	}

	idx += step
	if idx < 0 || idx >= len(rates) {
		return current, false
	}
	return rates[idx], true
}

func abs(f float64) float64 {
	return max(f, -f)
}
