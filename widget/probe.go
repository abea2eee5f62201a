package widget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/playalong-cli/playalong/log"
	"github.com/playalong-cli/playalong/player"
	"github.com/playalong-cli/playalong/where"
)

// Info describes a video as seen before opening it.
type Info struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Duration float64 `json:"duration"`

	Available bool `json:"available"`
	// Code is a player error code explaining why the video is unavailable.
	Code   int    `json:"code,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Probe checks whether a video can be played before a handle is opened.
type Probe interface {
	Probe(ctx context.Context, id string) (Info, error)
}

// fetcher is the part of the YouTube client a probe needs.
type fetcher interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
}

// YouTube probes YouTube videos and caches conclusive answers on disk.
type YouTube struct {
	client fetcher
	cache  *probeCache
}

// NewYouTube creates a probe caching results for lifetime. A non-positive
// lifetime disables the cache.
func NewYouTube(lifetime time.Duration) *YouTube {
	y := &YouTube{client: &youtube.Client{}}
	if lifetime > 0 {
		y.cache = newProbeCache(where.Probes(), lifetime)
	}
	return y
}

// VideoID extracts the video id from an id or a YouTube URL.
func VideoID(idOrURL string) (string, error) {
	id, err := youtube.ExtractVideoID(strings.TrimSpace(idOrURL))
	if err != nil {
		return "", fmt.Errorf("video id %q: %w", idOrURL, err)
	}
	return id, nil
}

// Probe fetches the video metadata. An unplayable video is not an error: it is
// reported with Available unset. Errors are returned when availability could not
// be determined, for instance on network failures.
func (y *YouTube) Probe(ctx context.Context, idOrURL string) (Info, error) {
	id, err := VideoID(idOrURL)
	if err != nil {
		return Info{}, err
	}

	if y.cache != nil {
		if info, ok := y.cache.Get(id).Get(); ok {
			log.Debugf("probe cache hit for %s", id)
			return info, nil
		}
	}

	info, err := y.fetch(ctx, id)
	if err != nil {
		return Info{}, err
	}

	if y.cache != nil {
		if err := y.cache.Set(id, info); err != nil {
			log.Warnf("probe cache: %s", err)
		}
	}

	return info, nil
}

func (y *YouTube) fetch(ctx context.Context, id string) (Info, error) {
	video, err := y.client.GetVideoContext(ctx, id)
	if err == nil {
		return Info{
			ID:        id,
			Title:     video.Title,
			Author:    video.Author,
			Duration:  video.Duration.Seconds(),
			Available: true,
		}, nil
	}

	code, ok := unavailable(err)
	if !ok {
		return Info{}, fmt.Errorf("probe %s: %w", id, err)
	}

	log.Infof("video %s is unavailable: %s", id, err)
	return Info{
		ID:     id,
		Code:   code,
		Reason: player.ErrorMessage(code),
	}, nil
}

// unavailable maps conclusive YouTube failures to player error codes.
func unavailable(err error) (int, bool) {
	var status *youtube.ErrPlayabiltyStatus

	switch {
	case errors.Is(err, youtube.ErrNotPlayableInEmbed):
		return player.ErrorCodeEmbeddingNotAllowed, true
	case errors.Is(err, youtube.ErrVideoPrivate),
		errors.Is(err, youtube.ErrLoginRequired):
		return player.ErrorCodeEmbeddingNotAllowed2, true
	case errors.As(err, &status):
		if status.Status == "UNPLAYABLE" {
			return player.ErrorCodeEmbeddingNotAllowed, true
		}
		return player.ErrorCodeVideoNotFound, true
	default:
		return 0, false
	}
}
