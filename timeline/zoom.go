// Package timeline converts between time and pixel space under a discrete zoom model
// and implements the range selection interaction of a media timeline.
package timeline

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidZoomLevel is returned for a zoom level outside the level table.
var ErrInvalidZoomLevel = errors.New("invalid zoom level")

// Level is one entry of the zoom table.
type Level struct {
	// BlockOffset is the length in seconds of one time block.
	BlockOffset float64 `json:"block_offset"`
	// PixelsInSecond is the width of one second.
	PixelsInSecond float64 `json:"pixels_in_second"`
}

// At level 0 each block lasts 20 seconds and each second is 7 pixels wide.
var levels = [...]Level{
	{20, 7},
	{10, 10},
	{10, 15},
	{5, 20},
	{5, 25},
	{2, 35},
	{2, 50},
	{1, 60},
	{1, 75},
	{1, 90},
}

const (
	// zoomGrowth is the per-level growth of the responsive wrapper width,
	// and the step used to widen blocks that would render too densely.
	zoomGrowth = 1.25

	// borderCompensation is the width lost to the container border.
	borderCompensation = 2

	// minBlockWidth is the narrowest a block may render in the responsive layout.
	minBlockWidth = 40
)

// Levels returns a copy of the zoom table.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels[:])
	return out
}

// LevelCount is the number of zoom levels.
func LevelCount() int {
	return len(levels)
}

// ValidLevel reports whether level indexes the zoom table.
func ValidLevel(level int) bool {
	return level >= 0 && level < len(levels)
}

// Context carries the geometry of a rendered timeline.
type Context struct {
	BlockOffset    float64 `json:"block_offset"`
	PixelsInSecond float64 `json:"pixels_in_second"`
	WrapperWidth   float64 `json:"wrapper_width"`
}

// Fixed returns the context of a zoom level from the table.
// The wrapper is as wide as the whole duration.
func Fixed(level int, duration float64) (Context, error) {
	if !ValidLevel(level) {
		return Context{}, fmt.Errorf("%w: %d", ErrInvalidZoomLevel, level)
	}

	l := levels[level]
	return Context{
		BlockOffset:    l.BlockOffset,
		PixelsInSecond: l.PixelsInSecond,
		WrapperWidth:   math.Max(duration, 0) * l.PixelsInSecond,
	}, nil
}

// Responsive returns the context of a zoom level fitted to a container.
// The duration fills the wrapper, and blocks are widened by a quarter until
// none is narrower than minBlockWidth.
func Responsive(level int, duration, containerWidth float64) (Context, error) {
	if !ValidLevel(level) {
		return Context{}, fmt.Errorf("%w: %d", ErrInvalidZoomLevel, level)
	}

	wrapper := WrapperWidth(containerWidth, level)
	base := levels[level]

	if duration <= 0 || wrapper <= 0 {
		return Context{
			BlockOffset:    base.BlockOffset,
			PixelsInSecond: base.PixelsInSecond,
			WrapperWidth:   math.Max(wrapper, 0),
		}, nil
	}

	offset := base.BlockOffset
	for (duration/offset)*minBlockWidth > wrapper {
		offset *= zoomGrowth
	}

	return Context{
		BlockOffset:    math.Ceil(offset),
		PixelsInSecond: wrapper / duration,
		WrapperWidth:   wrapper,
	}, nil
}
