package timeline

import (
	"math"

	"github.com/samber/mo"
)

const (
	// DefaultEdgeTolerance is how close, in pixels, a press must be to a
	// selection edge to resize it.
	DefaultEdgeTolerance = 10

	// DefaultClickThreshold is the largest press to release distance, in pixels,
	// still treated as a click.
	DefaultClickThreshold = 0
)

// DragMode is the state of the range selection interaction.
type DragMode int

const (
	DragNone DragMode = iota
	DragCreate
	DragResizeStart
	DragResizeEnd
)

func (m DragMode) String() string {
	switch m {
	case DragNone:
		return "NONE"
	case DragCreate:
		return "CREATE"
	case DragResizeStart:
		return "RESIZE_START"
	case DragResizeEnd:
		return "RESIZE_END"
	default:
		return "UNKNOWN"
	}
}

// Cursor is the pointer affordance to display.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorResize
)

// Range is a selected interval, in seconds or pixels depending on context.
type Range struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func normalize(a, b float64) Range {
	return Range{Start: math.Min(a, b), End: math.Max(a, b)}
}

// SelectorOptions configure a Selector. Nil callbacks are ignored.
type SelectorOptions struct {
	// EdgeTolerance defaults to DefaultEdgeTolerance when zero.
	EdgeTolerance  float64
	ClickThreshold float64

	// OnChange receives the time of a click or double click.
	OnChange func(seconds float64)
	// OnRangeChange receives a committed selection, start before end.
	OnRangeChange func(seconds Range)
	// OnDraw receives the provisional selection in pixels whenever it changes.
	OnDraw func(px mo.Option[Range])
}

// Selector is the range selection state machine of a timeline.
//
// Pressing away from the committed selection starts a new one, pressing near one
// of its edges resizes it. While dragging the provisional edges may be reversed;
// they are normalized when the selection is committed on release.
type Selector struct {
	ctx  Context
	opts SelectorOptions

	// committed is kept in seconds so it survives zoom changes.
	committed mo.Option[Range]

	// provisional edges in pixels, meaningful while active is set.
	start, end float64
	active     bool

	press float64
	mode  DragMode
}

// NewSelector creates a selector showing selected.
func NewSelector(ctx Context, selected mo.Option[Range], opts SelectorOptions) *Selector {
	if opts.EdgeTolerance <= 0 {
		opts.EdgeTolerance = DefaultEdgeTolerance
	}
	opts.ClickThreshold = math.Max(opts.ClickThreshold, DefaultClickThreshold)

	s := &Selector{ctx: ctx, opts: opts}
	s.SetSelection(selected)
	return s
}

// SetContext changes the geometry, for instance after a zoom change.
func (s *Selector) SetContext(ctx Context) {
	s.ctx = ctx
	s.revert()
}

// SetSelection replaces the committed selection, in seconds. Any drag in
// progress is abandoned.
func (s *Selector) SetSelection(selected mo.Option[Range]) {
	s.committed = selected
	s.mode = DragNone
	s.revert()
}

// Selection returns the committed selection in seconds.
func (s *Selector) Selection() mo.Option[Range] {
	return s.committed
}

// Pixels returns the provisional selection in pixels.
func (s *Selector) Pixels() mo.Option[Range] {
	if !s.active {
		return mo.None[Range]()
	}
	return mo.Some(Range{Start: s.start, End: s.end})
}

// Mode returns the current drag mode.
func (s *Selector) Mode() DragMode {
	return s.mode
}

// revert resets the provisional edges to the committed selection.
func (s *Selector) revert() {
	r, ok := s.committed.Get()
	s.active = ok
	s.start = SecondsToPixel(s.ctx, r.Start)
	s.end = SecondsToPixel(s.ctx, r.End)
}

func (s *Selector) committedPixels() (Range, bool) {
	r, ok := s.committed.Get()
	if !ok {
		return Range{}, false
	}
	return Range{Start: SecondsToPixel(s.ctx, r.Start), End: SecondsToPixel(s.ctx, r.End)}, true
}

// nearEdge reports which committed edge px is within tolerance of, if any.
// The nearer edge wins.
func (s *Selector) nearEdge(px float64) DragMode {
	r, ok := s.committedPixels()
	if !ok {
		return DragNone
	}

	toStart := math.Abs(px - r.Start)
	toEnd := math.Abs(px - r.End)

	switch {
	case toStart <= s.opts.EdgeTolerance && toStart <= toEnd:
		return DragResizeStart
	case toEnd <= s.opts.EdgeTolerance:
		return DragResizeEnd
	default:
		return DragNone
	}
}

func (s *Selector) draw() {
	if s.opts.OnDraw != nil {
		s.opts.OnDraw(s.Pixels())
	}
}

// Down handles a pointer press at px.
func (s *Selector) Down(px float64) {
	s.press = px

	if edge := s.nearEdge(px); edge != DragNone {
		s.mode = edge
		s.revert()
		return
	}

	s.mode = DragCreate
	s.start, s.end = px, px
	s.active = true
	s.draw()
}

// Move handles a pointer move to px and returns the cursor to display.
func (s *Selector) Move(px float64) Cursor {
	switch s.mode {
	case DragNone:
		if s.nearEdge(px) != DragNone {
			return CursorResize
		}
		return CursorDefault
	case DragCreate, DragResizeEnd:
		s.end = px
	case DragResizeStart:
		s.start = px
	}

	s.draw()

	if s.mode == DragCreate {
		return CursorDefault
	}
	return CursorResize
}

// Up handles a pointer release at px.
//
// Releasing a new selection within the click threshold of the press is a click:
// OnChange receives the pressed time and the committed selection is restored.
// Otherwise the normalized selection is committed and reported to OnRangeChange.
func (s *Selector) Up(px float64) {
	mode := s.mode
	s.mode = DragNone

	switch mode {
	case DragNone:
		return
	case DragCreate:
		if math.Abs(px-s.press) <= s.opts.ClickThreshold {
			s.revert()
			s.draw()
			s.change(s.press)
			return
		}
		s.end = px
	case DragResizeStart:
		s.start = px
	case DragResizeEnd:
		s.end = px
	}

	r := normalize(s.start, s.end)
	seconds := Range{
		Start: PixelToSeconds(s.ctx, r.Start),
		End:   PixelToSeconds(s.ctx, r.End),
	}

	// A range narrower than a hundredth is a click when created
	// and is dropped when resized.
	if seconds.Start == seconds.End {
		s.revert()
		s.draw()
		if mode == DragCreate {
			s.change(s.press)
		}
		return
	}

	s.committed = mo.Some(seconds)
	s.revert()
	s.draw()

	if s.opts.OnRangeChange != nil {
		s.opts.OnRangeChange(seconds)
	}
}

// DoubleClick seeks to px and abandons any drag in progress.
func (s *Selector) DoubleClick(px float64) {
	s.mode = DragNone
	s.revert()
	s.draw()
	s.change(px)
}

func (s *Selector) change(px float64) {
	if s.opts.OnChange != nil {
		s.opts.OnChange(PixelToSeconds(s.ctx, px))
	}
}
