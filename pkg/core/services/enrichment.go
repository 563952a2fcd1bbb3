package services

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
	"github.com/wadjakorntonsri/linkpulse/pkg/ports"
)

const (
	fallbackVideoTitle = "Video"
	maxParallelLookups = 4
)

// VideoEnricher fills in missing titles and thumbnails of featured videos.
// It never fails; videos it cannot resolve are returned as they were.
type VideoEnricher struct {
	lookup  ports.VideoInfoLookup
	timeout time.Duration
}

func NewVideoEnricher(lookup ports.VideoInfoLookup, timeout time.Duration) *VideoEnricher {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &VideoEnricher{lookup: lookup, timeout: timeout}
}

// EnrichVideos returns an enriched copy of videos. The input is not modified.
func (e *VideoEnricher) EnrichVideos(ctx context.Context, videos []domain.Video) []domain.Video {
	if len(videos) == 0 {
		return videos
	}

	out := make([]domain.Video, len(videos))
	copy(out, videos)

	var g errgroup.Group
	g.SetLimit(maxParallelLookups)
	for i := range out {
		g.Go(func() error {
			out[i] = e.enrich(ctx, out[i])
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (e *VideoEnricher) enrich(ctx context.Context, v domain.Video) domain.Video {
	needsTitle := v.Title == ""
	needsThumbnail := v.Thumbnail == ""
	if (!needsTitle && !needsThumbnail) || v.URL == "" {
		return v
	}

	if id, ok := domain.ExtractYouTubeVideoID(v.URL); ok {
		if needsTitle {
			if info, err := e.fetch(ctx, domain.YouTubeWatchURL(id)); err == nil {
				v.Title = info.Title
			}
		}
		if needsThumbnail {
			v.Thumbnail = domain.YouTubeThumbnail(id)
		}
		return withDefaults(v)
	}

	// Short links and redirects: let the provider resolve the URL and take
	// the video id from the thumbnail it reports.
	info, err := e.fetch(ctx, v.URL)
	if err != nil {
		return v
	}
	id, ok := domain.ExtractYouTubeIDFromThumbnail(info.ThumbnailURL)
	if !ok {
		return v
	}
	if needsTitle {
		v.Title = info.Title
	}
	if needsThumbnail {
		v.Thumbnail = domain.YouTubeThumbnail(id)
	}
	return withDefaults(v)
}

func (e *VideoEnricher) fetch(ctx context.Context, videoURL string) (*domain.VideoInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	info, err := e.lookup.Lookup(ctx, videoURL)
	if err != nil {
		log.Printf("Video lookup failed for %s: %v", videoURL, err)
		return nil, err
	}
	return info, nil
}

func withDefaults(v domain.Video) domain.Video {
	if v.Title == "" {
		v.Title = fallbackVideoTitle
	}
	if v.Platform == "" {
		v.Platform = domain.PlatformYouTube
	}
	return v
}

var _ ports.VideoEnricher = (*VideoEnricher)(nil)
