package domain

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Link represents one clickable entry of a profile
type Link struct {
	ID         string `json:"id"`
	Title      string `json:"title" validate:"max=100"`
	URL        string `json:"url" validate:"omitempty,url"`
	Thumbnail  string `json:"thumbnail,omitempty" validate:"omitempty,url"`
	Enabled    bool   `json:"enabled"`
	IsFeatured bool   `json:"isFeatured,omitempty"`
	Badge      Badge  `json:"-"`
	TwStatus   *bool  `json:"twStatus,omitempty"` // Live flag supplied by the backend for Twitch links
}

// NewLink creates a blank, enabled link with a fresh id.
func NewLink() Link {
	return Link{
		ID:      uuid.NewString(),
		Enabled: true,
	}
}

// Key returns the stable identifier used by list operations.
func (l Link) Key() string { return l.ID }

func (l Link) clone() Link {
	if l.TwStatus != nil {
		v := *l.TwStatus
		l.TwStatus = &v
	}
	l.Badge = l.Badge.clone()
	return l
}

type linkWire struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	URL         string       `json:"url"`
	Thumbnail   string       `json:"thumbnail,omitempty"`
	Enabled     bool         `json:"enabled"`
	IsFeatured  bool         `json:"isFeatured,omitempty"`
	Badge       *string      `json:"badge"`
	CustomBadge *CustomBadge `json:"customBadge,omitempty"`
	TwStatus    *bool        `json:"twStatus,omitempty"`
}

func (l Link) MarshalJSON() ([]byte, error) {
	w := linkWire{
		ID:         l.ID,
		Title:      l.Title,
		URL:        l.URL,
		Thumbnail:  l.Thumbnail,
		Enabled:    l.Enabled,
		IsFeatured: l.IsFeatured,
		TwStatus:   l.TwStatus,
	}
	if name := l.Badge.String(); name != "" {
		w.Badge = &name
	}
	if c, ok := l.Badge.Custom(); ok {
		w.CustomBadge = &c
	}
	return json.Marshal(w)
}

func (l *Link) UnmarshalJSON(data []byte) error {
	var w linkWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*l = Link{
		ID:         w.ID,
		Title:      w.Title,
		URL:        w.URL,
		Thumbnail:  w.Thumbnail,
		Enabled:    w.Enabled,
		IsFeatured: w.IsFeatured,
		TwStatus:   w.TwStatus,
	}
	if w.Badge != nil {
		l.Badge = ParseBadge(*w.Badge, w.CustomBadge)
	}
	return nil
}

// LinkPatch carries the fields to replace on a link. Nil fields are left untouched.
type LinkPatch struct {
	Title       *string      `json:"title,omitempty"`
	URL         *string      `json:"url,omitempty"`
	Thumbnail   *string      `json:"thumbnail,omitempty"`
	Enabled     *bool        `json:"enabled,omitempty"`
	IsFeatured  *bool        `json:"isFeatured,omitempty"`
	Badge       *string      `json:"badge,omitempty"` // "NEW", "HOT", "SALE", "CUSTOM" or "" / "none" to clear
	CustomBadge *CustomBadge `json:"customBadge,omitempty"`
}

// Apply returns a copy of l with the patch applied.
func (p LinkPatch) Apply(l Link) Link {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.URL != nil {
		l.URL = strings.TrimSpace(*p.URL)
	}
	if p.Thumbnail != nil {
		l.Thumbnail = strings.TrimSpace(*p.Thumbnail)
	}
	if p.Enabled != nil {
		l.Enabled = *p.Enabled
	}
	if p.IsFeatured != nil {
		l.IsFeatured = *p.IsFeatured
	}
	switch {
	case p.Badge != nil:
		custom := p.CustomBadge
		if custom == nil {
			if c, ok := l.Badge.Custom(); ok {
				custom = &c
			}
		}
		l.Badge = ParseBadge(*p.Badge, custom)
	case p.CustomBadge != nil && l.Badge.Kind() == BadgeCustom:
		l.Badge = NewCustomBadge(*p.CustomBadge)
	}
	return l
}
