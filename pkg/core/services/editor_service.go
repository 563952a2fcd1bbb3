package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
	"github.com/wadjakorntonsri/linkpulse/pkg/ports"
)

const maxUsernameLength = 30

type EditorService struct {
	repo     ports.ProfileRepository
	validate *validator.Validate

	// serialises read-modify-write cycles on drafts
	mu sync.Mutex
}

func NewEditorService(repo ports.ProfileRepository) *EditorService {
	return &EditorService{
		repo:     repo,
		validate: newValidator(),
	}
}

// GetDraft returns the caller's draft, creating a default one on first use.
func (s *EditorService) GetDraft(ctx context.Context, owner string) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.loadOrCreate(ctx, owner)
	if err != nil {
		return nil, err
	}
	return rec.Draft.Clone(), nil
}

func (s *EditorService) loadOrCreate(ctx context.Context, owner string) (*domain.ProfileRecord, error) {
	rec, err := s.repo.GetByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("services.loadDraft: %w", err)
	}
	if rec != nil {
		return rec, nil
	}

	draft := domain.DefaultProfile()
	draft.Username = usernameFromEmail(owner)

	now := time.Now()
	rec = &domain.ProfileRecord{
		OwnerEmail: owner,
		Draft:      draft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("services.createDraft: %w", err)
	}
	log.Printf("Created draft profile for %s", owner)
	return rec, nil
}

// usernameFromEmail derives a starting username from the mailbox name.
func usernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	name := domain.SanitizeUsername(local)
	if len(name) > maxUsernameLength {
		name = name[:maxUsernameLength]
	}
	if name == "" {
		return "creator"
	}
	return name
}

// mutate applies fn to the stored draft and persists the result.
func (s *EditorService) mutate(ctx context.Context, owner string, fn func(p *domain.Profile) error) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.loadOrCreate(ctx, owner)
	if err != nil {
		return nil, err
	}

	draft := rec.Draft.Clone()
	if err := fn(draft); err != nil {
		return nil, err
	}

	rec.Draft = *draft
	rec.UpdatedAt = time.Now()
	if err := s.repo.SaveDraft(ctx, rec); err != nil {
		return nil, fmt.Errorf("services.SaveDraft: %w", err)
	}
	return draft.Clone(), nil
}

func (s *EditorService) UpdateInfo(ctx context.Context, owner string, patch domain.InfoPatch) (*domain.Profile, error) {
	return s.mutate(ctx, owner, func(p *domain.Profile) error {
		*p = patch.Apply(*p)
		return nil
	})
}

// SelectTheme replaces the theme with a preset, dropping any custom edits.
func (s *EditorService) SelectTheme(ctx context.Context, owner, presetID string) (*domain.Profile, error) {
	theme, ok := domain.PresetTheme(presetID)
	if !ok {
		return nil, fmt.Errorf("services.SelectTheme: %w: %q", domain.ErrUnknownTheme, presetID)
	}
	return s.mutate(ctx, owner, func(p *domain.Profile) error {
		p.Theme = theme
		return nil
	})
}

func (s *EditorService) EditTheme(ctx context.Context, owner string, patch domain.ThemePatch) (*domain.Profile, error) {
	return s.mutate(ctx, owner, func(p *domain.Profile) error {
		p.Theme = patch.Apply(p.Theme)
		return nil
	})
}

func (s *EditorService) AddLink(ctx context.Context, owner string) (*domain.Profile, error) {
	return s.mutate(ctx, owner, func(p *domain.Profile) error {
		p.Links, _ = domain.AddLink(p.Links)
		return nil
	})
}

func (s *EditorService) UpdateLink(ctx context.Context, owner, id string, patch domain.LinkPatch) (*domain.Profile, error) {
	return s.mutate(ctx, owner, func(p *domain.Profile) error {
		p.Links = domain.UpdateLink(p.Links, id, patch)
		return nil
	})
}

func (s *EditorService) RemoveLink(ctx context.Context, owner, id string) (*domain.Profile, error) {
	return s.mutate(ctx, owner, func(p *domain.Profile) error {
		p.Links = domain.RemoveLink(p.Links, id)
		return nil
	})
}

// ReorderLinks puts the links in the order of ids, which must name every link once.
func (s *EditorService) ReorderLinks(ctx context.Context, owner string, ids []string) (*domain.Profile, error) {
	return s.mutate(ctx, owner, func(p *domain.Profile) error {
		ordered, err := domain.OrderByKeys(p.Links, ids)
		if err != nil {
			return fmt.Errorf("services.ReorderLinks: %w", err)
		}
		p.Links = domain.ReorderLinks(ordered)
		return nil
	})
}

func (s *EditorService) AddVideo(ctx context.Context, owner string) (*domain.Profile, error) {
	return s.mutate(ctx, owner, func(p *domain.Profile) error {
		p.FeaturedVideos, _ = domain.AddVideo(p.FeaturedVideos)
		return nil
	})
}

func (s *EditorService) UpdateVideo(ctx context.Context, owner, id string, patch domain.VideoPatch) (*domain.Profile, error) {
	return s.mutate(ctx, owner, func(p *domain.Profile) error {
		p.FeaturedVideos = domain.UpdateVideo(p.FeaturedVideos, id, patch)
		return nil
	})
}

func (s *EditorService) RemoveVideo(ctx context.Context, owner, id string) (*domain.Profile, error) {
	return s.mutate(ctx, owner, func(p *domain.Profile) error {
		p.FeaturedVideos = domain.RemoveVideo(p.FeaturedVideos, id)
		return nil
	})
}

func (s *EditorService) ReorderVideos(ctx context.Context, owner string, ids []string) (*domain.Profile, error) {
	return s.mutate(ctx, owner, func(p *domain.Profile) error {
		ordered, err := domain.OrderByKeys(p.FeaturedVideos, ids)
		if err != nil {
			return fmt.Errorf("services.ReorderVideos: %w", err)
		}
		p.FeaturedVideos = domain.ReorderVideos(ordered)
		return nil
	})
}

// Save validates the draft and publishes it under its username.
func (s *EditorService) Save(ctx context.Context, owner string) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.loadOrCreate(ctx, owner)
	if err != nil {
		return nil, err
	}

	draft := rec.Draft.Clone()
	if err := validateProfile(s.validate, draft); err != nil {
		return nil, fmt.Errorf("services.Save: %w", err)
	}

	existing, err := s.repo.GetByUsername(ctx, draft.Username)
	if err != nil {
		return nil, fmt.Errorf("services.Save: %w", err)
	}
	if existing != nil && existing.ID != rec.ID {
		return nil, fmt.Errorf("services.Save: %w: %q", domain.ErrUsernameTaken, draft.Username)
	}

	now := time.Now()
	rec.Published = draft
	rec.UpdatedAt = now
	rec.PublishedAt = &now
	if err := s.repo.Publish(ctx, rec); err != nil {
		return nil, fmt.Errorf("services.Save: %w", err)
	}

	log.Printf("Published profile %s for %s", draft.Username, owner)
	return draft.Clone(), nil
}

// GetPublished returns the last published copy of the profile with the given username.
func (s *EditorService) GetPublished(ctx context.Context, username string) (*domain.Profile, error) {
	rec, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("services.GetPublished: %w", err)
	}
	if rec == nil || rec.Published == nil {
		return nil, domain.ErrProfileNotFound
	}
	return rec.Published.Clone(), nil
}

// Ensure interface compliance
var _ ports.EditorService = (*EditorService)(nil)
