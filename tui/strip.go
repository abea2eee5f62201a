package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/playalong-cli/playalong/style"
	"github.com/playalong-cli/playalong/timeline"
	"github.com/samber/mo"
)

// cellWidth is the number of timeline pixels one terminal column stands for.
const cellWidth = 8

type cellKind int

const (
	cellEmpty cellKind = iota
	cellTrack
	cellSelected
	cellMarker
	cellHead
	cellLabel
)

type cell struct {
	r    rune
	kind cellKind
}

var cellStyles = map[cellKind]lipgloss.Style{
	cellEmpty:    style.New(),
	cellTrack:    style.Track,
	cellSelected: style.Selection,
	cellMarker:   style.Marker,
	cellHead:     style.Playhead,
	cellLabel:    style.TickLabel,
}

// strip is the visible window of a timeline layout, one cell per column.
type strip struct {
	layout timeline.Layout
	cols   int
	scroll float64
}

func newStrip(layout timeline.Layout, cols int) strip {
	s := strip{layout: layout, cols: max(cols, 1)}
	s.scroll = s.clampScroll(layout.Scroll)
	return s
}

func (s strip) containerWidth() float64 {
	return float64(s.cols * cellWidth)
}

// clampScroll keeps the window inside the wrapper and the playhead inside the window.
func (s strip) clampScroll(scroll float64) float64 {
	width := s.containerWidth()
	if s.layout.ValueX >= scroll+width {
		scroll = s.layout.ValueX - width/2
	}
	return math.Max(0, math.Min(scroll, s.layout.Context.WrapperWidth-width))
}

// column returns the column px falls in, or false when it is out of view.
func (s strip) column(px float64) (int, bool) {
	col := int(math.Floor((px - s.scroll) / cellWidth))
	return col, col >= 0 && col < s.cols
}

// pixel converts a column back to timeline pixels.
func (s strip) pixel(col int) float64 {
	return s.scroll + float64(col*cellWidth)
}

func (s strip) blank() []cell {
	row := make([]cell, s.cols)
	for i := range row {
		row[i] = cell{r: ' ', kind: cellEmpty}
	}
	return row
}

// ticks writes block labels at their start, skipping labels that would overlap.
func (s strip) ticks() []cell {
	row := s.blank()
	free := 0
	for _, b := range s.layout.Blocks {
		col, ok := s.column(b.X)
		if !ok || col < free {
			continue
		}
		for i, r := range []rune(b.Label) {
			if col+i >= s.cols {
				break
			}
			row[col+i] = cell{r: r, kind: cellLabel}
		}
		free = col + len(b.Label) + 1
	}
	return row
}

// bar draws the track, the selection in pixels, markers and the playhead.
func (s strip) bar(selected mo.Option[timeline.Range]) []cell {
	row := s.blank()
	for col := range row {
		if s.pixel(col) < s.layout.Context.WrapperWidth {
			row[col] = cell{r: '─', kind: cellTrack}
		}
	}

	if r, ok := selected.Get(); ok {
		from, to := math.Min(r.Start, r.End), math.Max(r.Start, r.End)
		for col := range row {
			if px := s.pixel(col); px+cellWidth > from && px <= to {
				row[col] = cell{r: '━', kind: cellSelected}
			}
		}
	}

	for _, m := range s.layout.Markers {
		if col, ok := s.column(m); ok {
			row[col] = cell{r: '◆', kind: cellMarker}
		}
	}

	if col, ok := s.column(s.layout.ValueX); ok {
		row[col] = cell{r: '●', kind: cellHead}
	}

	return row
}

func plain(row []cell) string {
	var b strings.Builder
	for _, c := range row {
		b.WriteRune(c.r)
	}
	return b.String()
}

// render styles runs of equal kind together.
func render(row []cell) string {
	var (
		out strings.Builder
		run strings.Builder
	)

	for i, c := range row {
		run.WriteRune(c.r)
		if i == len(row)-1 || row[i+1].kind != c.kind {
			out.WriteString(cellStyles[c.kind].Render(run.String()))
			run.Reset()
		}
	}
	return out.String()
}
