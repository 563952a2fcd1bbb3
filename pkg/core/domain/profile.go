package domain

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidProfile  = errors.New("invalid profile")
	ErrInvalidOrder    = errors.New("order is not a permutation of existing entries")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrUnknownTheme    = errors.New("unknown theme preset")
)

// MaxBioLength is the maximum number of characters allowed in a bio.
const MaxBioLength = 150

// Profile represents a creator's complete bio page configuration
type Profile struct {
	Username       string  `json:"username" validate:"required,max=30,username"`
	DisplayName    string  `json:"displayName" validate:"max=80"`
	Bio            string  `json:"bio" validate:"max=150"`
	Avatar         string  `json:"avatar" validate:"omitempty,url"`
	Theme          Theme   `json:"theme"`
	Links          []Link  `json:"links" validate:"dive"`
	FeaturedVideos []Video `json:"featuredVideos,omitempty" validate:"dive"`
}

// UnmarshalJSON accepts both the list shape and the legacy single
// featuredVideo shape. Legacy payloads are migrated into FeaturedVideos.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type profileAlias Profile
	var wire struct {
		profileAlias
		FeaturedVideo *Video `json:"featuredVideo"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*p = Profile(wire.profileAlias)
	if p.Links == nil {
		p.Links = []Link{}
	}
	if len(p.FeaturedVideos) == 0 {
		p.FeaturedVideos = MigrateLegacyVideo(wire.FeaturedVideo)
	}
	for i := range p.FeaturedVideos {
		if p.FeaturedVideos[i].Type == 0 {
			p.FeaturedVideos[i].Type = VideoSmallRow
		}
	}
	return nil
}

// Clone returns a deep copy so derived views never share slices with the source.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Links = make([]Link, len(p.Links))
	for i, l := range p.Links {
		c.Links[i] = l.clone()
	}
	if p.FeaturedVideos != nil {
		c.FeaturedVideos = append([]Video(nil), p.FeaturedVideos...)
	}
	return &c
}

// EnabledLinks returns the links visible on the public page, in display order.
func (p *Profile) EnabledLinks() []Link {
	enabled := make([]Link, 0, len(p.Links))
	for _, l := range p.Links {
		if l.Enabled {
			enabled = append(enabled, l)
		}
	}
	return enabled
}

// ProfileRecord is a stored profile: the editable draft plus the last
// published copy served to the public page.
type ProfileRecord struct {
	ID          int64      `json:"id"`
	OwnerEmail  string     `json:"owner_email"`
	Draft       Profile    `json:"draft"`
	Published   *Profile   `json:"published,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

var usernameStrip = regexp.MustCompile(`[^a-z0-9_]`)

// SanitizeUsername lowercases the input and drops every character outside [a-z0-9_].
func SanitizeUsername(s string) string {
	return usernameStrip.ReplaceAllString(strings.ToLower(s), "")
}

// TruncateBio cuts a bio down to MaxBioLength characters.
func TruncateBio(s string) string {
	r := []rune(s)
	if len(r) <= MaxBioLength {
		return s
	}
	return string(r[:MaxBioLength])
}

// DefaultProfile is the starting point for a new editor session.
func DefaultProfile() Profile {
	theme, _ := PresetTheme("neon-nights")
	return Profile{
		Username:    "hemerald",
		DisplayName: "Hemerald",
		Bio:         "Tutti i miei social dove faccio schifo",
		Theme:       theme,
		Links: []Link{
			{ID: "1", Title: "Hemerald Gaming", URL: "https://youtube.com/@hemeraldgaming", Enabled: true, IsFeatured: true},
			{ID: "2", Title: "Twitch", URL: "https://twitch.tv/hemerald", Enabled: true},
			{ID: "3", Title: "Instagram", URL: "https://instagram.com/hemerald", Enabled: true},
			{ID: "4", Title: "TikTok", URL: "https://tiktok.com/@hemerald", Enabled: true, Badge: NewPresetBadge(BadgeNew)},
			{ID: "5", Title: "Discord", URL: "https://discord.gg/hemerald", Enabled: true},
		},
		FeaturedVideos: []Video{
			{
				ID:        "1",
				URL:       "https://youtube.com/watch?v=dQw4w9WgXcQ",
				Title:     "CUPHEAD Ma se supero i 100 BATTITI il GIOCO si...",
				Thumbnail: YouTubeThumbnail("dQw4w9WgXcQ"),
				Platform:  PlatformYouTube,
				Type:      VideoSmallRow,
			},
		},
	}
}

// InfoPatch carries the identity fields edited in the profile form.
type InfoPatch struct {
	Username    *string `json:"username,omitempty"`
	DisplayName *string `json:"displayName,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
}

// Apply returns a copy of p with the patch applied. The username is
// sanitised and the bio truncated as the form does on input.
func (ip InfoPatch) Apply(p Profile) Profile {
	if ip.Username != nil {
		p.Username = SanitizeUsername(*ip.Username)
	}
	if ip.DisplayName != nil {
		p.DisplayName = *ip.DisplayName
	}
	if ip.Bio != nil {
		p.Bio = TruncateBio(*ip.Bio)
	}
	if ip.Avatar != nil {
		p.Avatar = strings.TrimSpace(*ip.Avatar)
	}
	return p
}

// LoadedProfile is a profile ready for display and where it came from.
type LoadedProfile struct {
	Profile   *Profile
	FromCache bool
	FetchedAt time.Time
}

// VideoInfo is the metadata returned by an oEmbed provider.
type VideoInfo struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}
