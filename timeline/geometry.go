package timeline

import (
	"fmt"
	"math"
)

const (
	// scrollLead is how far left of the value the view scrolls, in pixels.
	scrollLead = 300

	// roundingEpsilon nudges halfway values such as 1.005 up before rounding.
	roundingEpsilon = 2.220446049250313e-16
)

// SecondsToPixel converts a time to a horizontal position.
func SecondsToPixel(ctx Context, seconds float64) float64 {
	return ctx.PixelsInSecond * seconds
}

// PixelToSeconds converts a horizontal position to a time rounded to hundredths.
func PixelToSeconds(ctx Context, px float64) float64 {
	if ctx.PixelsInSecond == 0 {
		return 0
	}
	return math.Round((px/ctx.PixelsInSecond+roundingEpsilon)*100) / 100
}

// WrapperWidth is the width of the scrolled content of a container at a zoom level.
func WrapperWidth(containerWidth float64, level int) float64 {
	return containerWidth*math.Pow(zoomGrowth, float64(level)) - borderCompensation
}

// BlockStarts returns the start time of every block covering duration.
// The last block may extend past the end. Nothing is returned for an empty duration.
func BlockStarts(ctx Context, duration float64) []float64 {
	if duration <= 0 || ctx.BlockOffset <= 0 {
		return nil
	}

	n := int(math.Ceil(duration / ctx.BlockOffset))
	starts := make([]float64, n)
	for i := range starts {
		starts[i] = float64(i) * ctx.BlockOffset
	}
	return starts
}

// ScrollOffset is the scroll position that keeps value in view.
func ScrollOffset(ctx Context, value float64) float64 {
	return math.Max(0, SecondsToPixel(ctx, value)-scrollLead)
}

// FormatTick renders a time as m:ss.
func FormatTick(seconds float64) string {
	total := int(math.Max(seconds, 0))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
