package tui

import (
	"github.com/playalong-cli/playalong/reproduction"
	"github.com/samber/mo"
)

// snapshot is what the view knows of the session. It is taken on the session thread.
type snapshot struct {
	state    reproduction.State
	ready    bool
	position float64
	duration mo.Option[float64]
	volume   int
}

func takeSnapshot(r *reproduction.Reproduction) snapshot {
	return snapshot{
		state:    r.State(),
		ready:    r.IsReady(),
		position: r.CurrentTime(),
		duration: r.Duration(),
		volume:   r.Volume(),
	}
}

// sessionMsg carries a session event and the state right after it.
type sessionMsg struct {
	event reproduction.Event
	snap  snapshot
}
