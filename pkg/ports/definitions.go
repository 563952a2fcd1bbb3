package ports

import (
	"context"

	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
)

// ProfileRepository defines storage operations for creator profiles
type ProfileRepository interface {
	Create(ctx context.Context, record *domain.ProfileRecord) error
	GetByOwner(ctx context.Context, ownerEmail string) (*domain.ProfileRecord, error)
	GetByUsername(ctx context.Context, username string) (*domain.ProfileRecord, error)
	SaveDraft(ctx context.Context, record *domain.ProfileRecord) error
	Publish(ctx context.Context, record *domain.ProfileRecord) error
	Dump(ctx context.Context) ([]domain.ProfileRecord, error) // For migration
}

// ProfileCache stores the last known good copy of a published profile
type ProfileCache interface {
	Get(ctx context.Context, id string) (*domain.Profile, error)
	Set(ctx context.Context, id string, profile *domain.Profile) error
}

// ProfileSource loads a published profile from the backend
type ProfileSource interface {
	FetchProfile(ctx context.Context, id string) (*domain.Profile, error)
}

// VideoInfoLookup resolves video metadata (oEmbed)
type VideoInfoLookup interface {
	Lookup(ctx context.Context, videoURL string) (*domain.VideoInfo, error)
}

// LiveStatusProvider reports which Twitch channels are broadcasting.
// Keys of the result are lowercased usernames.
type LiveStatusProvider interface {
	LiveStatus(ctx context.Context, usernames []string) (map[string]bool, error)
}

// LiveStatusSource is the per-deployment live status strategy used by the renderer
type LiveStatusSource interface {
	LiveFor(ctx context.Context, profile *domain.Profile) map[string]bool
}

// EditorService defines the editor operations on the caller's profile
type EditorService interface {
	GetDraft(ctx context.Context, owner string) (*domain.Profile, error)
	UpdateInfo(ctx context.Context, owner string, patch domain.InfoPatch) (*domain.Profile, error)
	SelectTheme(ctx context.Context, owner, presetID string) (*domain.Profile, error)
	EditTheme(ctx context.Context, owner string, patch domain.ThemePatch) (*domain.Profile, error)

	AddLink(ctx context.Context, owner string) (*domain.Profile, error)
	UpdateLink(ctx context.Context, owner, id string, patch domain.LinkPatch) (*domain.Profile, error)
	RemoveLink(ctx context.Context, owner, id string) (*domain.Profile, error)
	ReorderLinks(ctx context.Context, owner string, ids []string) (*domain.Profile, error)

	AddVideo(ctx context.Context, owner string) (*domain.Profile, error)
	UpdateVideo(ctx context.Context, owner, id string, patch domain.VideoPatch) (*domain.Profile, error)
	RemoveVideo(ctx context.Context, owner, id string) (*domain.Profile, error)
	ReorderVideos(ctx context.Context, owner string, ids []string) (*domain.Profile, error)

	Save(ctx context.Context, owner string) (*domain.Profile, error)
	GetPublished(ctx context.Context, username string) (*domain.Profile, error)
}

// ProfileLoader loads a published profile for display, with cache fallback
type ProfileLoader interface {
	LoadProfile(ctx context.Context, id string) (*domain.LoadedProfile, error)
}

// VideoEnricher fills missing video metadata
type VideoEnricher interface {
	EnrichVideos(ctx context.Context, videos []domain.Video) []domain.Video
}
