package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
	"github.com/wadjakorntonsri/linkpulse/pkg/ports"
)

// DefaultStaleTime is how long a fetched profile is served without refetching.
const DefaultStaleTime = 5 * time.Minute

type fetchedProfile struct {
	profile *domain.Profile
	at      time.Time
}

// ProfileService loads published profiles for the public page. Fetches are
// deduplicated per id, retried once, and fall back to the last cached copy.
type ProfileService struct {
	source    ports.ProfileSource
	cache     ports.ProfileCache
	staleTime time.Duration

	group singleflight.Group

	mu    sync.Mutex
	fresh map[string]fetchedProfile

	now func() time.Time
}

func NewProfileService(source ports.ProfileSource, cache ports.ProfileCache, staleTime time.Duration) *ProfileService {
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}
	return &ProfileService{
		source:    source,
		cache:     cache,
		staleTime: staleTime,
		fresh:     make(map[string]fetchedProfile),
		now:       time.Now,
	}
}

func (s *ProfileService) LoadProfile(ctx context.Context, id string) (*domain.LoadedProfile, error) {
	if f, ok := s.freshCopy(id); ok {
		return &domain.LoadedProfile{Profile: f.profile.Clone(), FetchedAt: f.at}, nil
	}

	cached := s.readCache(ctx, id)

	ch := s.group.DoChan(id, func() (any, error) {
		// The fetch is shared by every waiter, so it must outlive the caller that started it.
		return s.fetchWithRetry(context.WithoutCancel(ctx), id)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		res.Err = ctx.Err()
	}
	err := res.Err
	if err == nil {
		f := res.Val.(fetchedProfile)
		return &domain.LoadedProfile{Profile: f.profile.Clone(), FetchedAt: f.at}, nil
	}

	if cached != nil {
		log.Printf("Fetch of profile %s failed, serving cached copy: %v", id, err)
		return &domain.LoadedProfile{Profile: cached, FromCache: true}, nil
	}

	if errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %w", domain.ErrProfileNotFound, err)
}

func (s *ProfileService) freshCopy(id string) (fetchedProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.fresh[id]
	if !ok {
		return fetchedProfile{}, false
	}
	if s.now().Sub(f.at) >= s.staleTime {
		delete(s.fresh, id)
		return fetchedProfile{}, false
	}
	return f, true
}

// remember stores f and drops every other entry that has gone stale.
func (s *ProfileService) remember(id string, f fetchedProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, old := range s.fresh {
		if f.at.Sub(old.at) >= s.staleTime {
			delete(s.fresh, k)
		}
	}
	s.fresh[id] = f
}

func (s *ProfileService) readCache(ctx context.Context, id string) *domain.Profile {
	if s.cache == nil {
		return nil
	}
	p, err := s.cache.Get(ctx, id)
	if err != nil {
		log.Printf("Profile cache read failed for %s: %v", id, err)
		return nil
	}
	return p
}

func (s *ProfileService) fetchWithRetry(ctx context.Context, id string) (fetchedProfile, error) {
	p, err := s.source.FetchProfile(ctx, id)
	if err != nil && retryable(err) {
		log.Printf("Fetch of profile %s failed, retrying: %v", id, err)
		p, err = s.source.FetchProfile(ctx, id)
	}
	if err != nil {
		return fetchedProfile{}, err
	}

	f := fetchedProfile{profile: p, at: s.now()}

	s.remember(id, f)

	if s.cache != nil {
		if err := s.cache.Set(ctx, id, p); err != nil {
			log.Printf("Profile cache write failed for %s: %v", id, err)
		}
	}
	return f, nil
}

// retryable reports whether a failed fetch is worth a second attempt.
// A not-found is final unless the error says otherwise.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var r interface{ Retryable() bool }
	if errors.As(err, &r) {
		return r.Retryable()
	}
	return !errors.Is(err, domain.ErrProfileNotFound)
}

var _ ports.ProfileLoader = (*ProfileService)(nil)
