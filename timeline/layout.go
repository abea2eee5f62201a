package timeline

import (
	"github.com/samber/lo"
)

// Block is one rendered time block.
type Block struct {
	Start float64 `json:"start"`
	X     float64 `json:"x"`
	Label string  `json:"label"`
}

// Span is an interval in pixels.
type Span struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// Layout is the geometry of one render pass, ready to be drawn.
type Layout struct {
	Props    Props     `json:"props"`
	Context  Context   `json:"context"`
	Blocks   []Block   `json:"blocks,omitempty"`
	Markers  []float64 `json:"markers,omitempty"`
	ValueX   float64   `json:"value_x"`
	Scroll   float64   `json:"scroll"`
	Selected *Span     `json:"selected,omitempty"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Compute validates props and lays them out. A positive container width selects
// the responsive context, otherwise the fixed one.
func Compute(props Props, containerWidth float64) Layout {
	props, warnings := Validate(props)

	var ctx Context
	if containerWidth > 0 {
		ctx, _ = Responsive(props.ZoomLevel, props.Duration, containerWidth)
	} else {
		ctx, _ = Fixed(props.ZoomLevel, props.Duration)
	}

	layout := Layout{
		Props:    props,
		Context:  ctx,
		ValueX:   SecondsToPixel(ctx, props.Value),
		Scroll:   ScrollOffset(ctx, props.Value),
		Warnings: warnings,
		Markers: lo.Map(props.Markers, func(s float64, _ int) float64 {
			return SecondsToPixel(ctx, s)
		}),
	}

	if props.WithTimeBlocks {
		layout.Blocks = lo.Map(BlockStarts(ctx, props.Duration), func(start float64, _ int) Block {
			return Block{
				Start: start,
				X:     SecondsToPixel(ctx, start),
				Label: FormatTick(start),
			}
		})
	}

	if len(props.SelectedRange) == 2 {
		layout.Selected = &Span{
			From: SecondsToPixel(ctx, props.SelectedRange[0]),
			To:   SecondsToPixel(ctx, props.SelectedRange[1]),
		}
	}

	return layout
}
