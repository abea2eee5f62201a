package timeline

import (
	"fmt"

	"github.com/playalong-cli/playalong/log"
)

// Props are the inputs of a timeline render pass.
type Props struct {
	Duration       float64   `json:"duration" jsonschema:"minimum=0,description=Media duration in seconds"`
	Value          float64   `json:"value" jsonschema:"description=Playback position in seconds"`
	ZoomLevel      int       `json:"zoom_level" jsonschema:"minimum=0,maximum=9"`
	SelectedRange  []float64 `json:"selected_range,omitempty" jsonschema:"description=Empty or [start end] in seconds"`
	Markers        []float64 `json:"markers,omitempty" jsonschema:"description=Marker positions in seconds"`
	WithTimeBlocks bool      `json:"with_time_blocks"`
}

// Warning describes an input that was out of bounds.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}

// Validate checks props once per render pass.
//
// An invalid zoom level is reset to 0 and an invalid selected range to empty.
// A value outside [0, duration] is reported but kept as is. Every warning is
// also logged.
func Validate(p Props) (Props, []Warning) {
	var warnings []Warning
	warn := func(field, message string) {
		w := Warning{Field: field, Message: message}
		log.Warn(w.String())
		warnings = append(warnings, w)
	}

	if !ValidLevel(p.ZoomLevel) {
		warn("zoom_level", fmt.Sprintf("invalid zoom level %d, using 0", p.ZoomLevel))
		p.ZoomLevel = 0
	}

	if p.Value < 0 || p.Value > p.Duration {
		warn("value", fmt.Sprintf("value %v is outside [0, %v]", p.Value, p.Duration))
	}

	switch {
	case len(p.SelectedRange) != 0 && len(p.SelectedRange) != 2:
		warn("selected_range", "the selected range must contain only two values")
		p.SelectedRange = nil
	case len(p.SelectedRange) == 2 && !consistent(p.SelectedRange[0], p.SelectedRange[1], p.Duration):
		warn("selected_range", "the selected range is inconsistent")
		p.SelectedRange = nil
	}

	return p, warnings
}

func consistent(start, end, duration float64) bool {
	return 0 <= start && start < end && end <= duration
}
