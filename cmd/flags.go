package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/playalong-cli/playalong/timeline"
	"github.com/samber/mo"
)

// parseFloats parses a comma separated list of seconds. An empty string yields nil.
func parseFloats(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", part)
		}
		values = append(values, v)
	}
	return values, nil
}

// parseRange parses "start,end" into a selection.
func parseRange(s string) (mo.Option[timeline.Range], error) {
	values, err := parseFloats(s)
	switch {
	case err != nil:
		return mo.None[timeline.Range](), err
	case len(values) == 0:
		return mo.None[timeline.Range](), nil
	case len(values) != 2 || values[0] >= values[1]:
		return mo.None[timeline.Range](), fmt.Errorf("invalid range %q, expected start,end", s)
	default:
		return mo.Some(timeline.Range{Start: values[0], End: values[1]}), nil
	}
}
