package widget

import (
	"context"
	"strings"

	"github.com/playalong-cli/playalong/filesystem"
	"github.com/playalong-cli/playalong/player"
	"github.com/playalong-cli/playalong/sched"
)

const watchURL = "https://www.youtube.com/watch?v="

// MediaTarget returns what mpv should open for a video id. URLs and existing
// local files are opened as is, anything else is treated as a YouTube id.
func MediaTarget(id string) string {
	if strings.Contains(id, "://") {
		return id
	}
	if exists, err := filesystem.API().Exists(id); err == nil && exists {
		return id
	}
	return watchURL + id
}

// MPVHandle returns a factory opening videos in the mpv binary at path.
func MPVHandle(s sched.Scheduler, path string) HandleFactory {
	return func(ctx context.Context, info Info) (player.VideoHandle, error) {
		mpv := player.NewMPV(s, path)
		if err := mpv.Open(ctx, MediaTarget(info.ID), info.Title); err != nil {
			return nil, err
		}
		return mpv, nil
	}
}
