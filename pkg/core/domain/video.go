package domain

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// VideoType selects how a featured video is presented.
type VideoType int

const (
	VideoSmallRow   VideoType = 1
	VideoLargeCover VideoType = 2
	VideoEmbed      VideoType = 3
)

// UnmarshalJSON maps missing, null and unknown values to VideoSmallRow.
func (t *VideoType) UnmarshalJSON(data []byte) error {
	var n *int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = VideoSmallRow
	if n != nil {
		switch v := VideoType(*n); v {
		case VideoSmallRow, VideoLargeCover, VideoEmbed:
			*t = v
		}
	}
	return nil
}

// Video is a featured media entry
type Video struct {
	ID        string    `json:"id"`
	URL       string    `json:"url" validate:"omitempty,url"`
	Title     string    `json:"title" validate:"max=200"`
	Thumbnail string    `json:"thumbnail"`
	Platform  Platform  `json:"platform" validate:"omitempty,oneof=youtube twitch tiktok"`
	Type      VideoType `json:"type" validate:"oneof=1 2 3"`
}

// NewVideo creates a blank YouTube small-row video with a fresh id.
func NewVideo() Video {
	return Video{
		ID:       uuid.NewString(),
		Platform: PlatformYouTube,
		Type:     VideoSmallRow,
	}
}

func (v Video) Key() string { return v.ID }

// VideoPatch carries the fields to replace on a video. Nil fields are left untouched.
type VideoPatch struct {
	URL       *string    `json:"url,omitempty"`
	Title     *string    `json:"title,omitempty"`
	Thumbnail *string    `json:"thumbnail,omitempty"`
	Platform  *Platform  `json:"platform,omitempty"`
	Type      *VideoType `json:"type,omitempty"`
}

// Apply returns a copy of v with the patch applied. A new URL on a known
// platform re-derives the platform and the default thumbnail.
func (p VideoPatch) Apply(v Video) Video {
	if p.Title != nil {
		v.Title = *p.Title
	}
	if p.Thumbnail != nil {
		v.Thumbnail = *p.Thumbnail
	}
	if p.Platform != nil {
		v.Platform = *p.Platform
	}
	if p.Type != nil {
		v.Type = *p.Type
	}
	if p.URL != nil {
		v.URL = strings.TrimSpace(*p.URL)
		if platform, ok := DetectVideoPlatform(v.URL); ok {
			v.Platform = platform
			v.Thumbnail = DefaultThumbnail(v.URL, platform)
		}
	}
	return v
}

// DefaultThumbnail derives a thumbnail from the URL where the platform allows it.
func DefaultThumbnail(url string, platform Platform) string {
	if platform == PlatformYouTube {
		if id, ok := ExtractYouTubeVideoID(url); ok {
			return YouTubeThumbnail(id)
		}
	}
	return ""
}

// MigrateLegacyVideo converts the legacy single featuredVideo object into
// the canonical list shape. A missing video or one without a URL yields nil.
func MigrateLegacyVideo(legacy *Video) []Video {
	if legacy == nil || legacy.URL == "" {
		return nil
	}
	v := *legacy
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Type == 0 {
		v.Type = VideoSmallRow
	}
	return []Video{v}
}
