package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
)

func newTestRepo(t *testing.T, name string) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to init db: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestProfileLifecycle(t *testing.T) {
	repo := newTestRepo(t, "repo_lifecycle")
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	rec := &domain.ProfileRecord{
		OwnerEmail: "creator@example.com",
		Draft:      domain.DefaultProfile(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("expected id to be assigned")
	}

	got, err := repo.GetByOwner(ctx, "creator@example.com")
	if err != nil || got == nil {
		t.Fatalf("GetByOwner: %v, %v", got, err)
	}
	if got.Draft.Username != "hemerald" || len(got.Draft.Links) != 5 {
		t.Errorf("unexpected draft %+v", got.Draft)
	}
	if got.Draft.Links[3].Badge.Kind() != domain.BadgeNew {
		t.Error("badge lost in storage round trip")
	}
	if got.Published != nil {
		t.Error("new record must not be published")
	}

	if byName, _ := repo.GetByUsername(ctx, "hemerald"); byName != nil {
		t.Error("drafts must not be visible by username")
	}

	published := got.Draft.Clone()
	got.Published = published
	publishedAt := now.Add(time.Minute)
	got.PublishedAt = &publishedAt
	if err := repo.Publish(ctx, got); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	byName, err := repo.GetByUsername(ctx, "HEMERALD")
	if err != nil || byName == nil || byName.Published == nil {
		t.Fatalf("GetByUsername: %v, %v", byName, err)
	}
	if byName.Published.DisplayName != "Hemerald" {
		t.Errorf("unexpected published %+v", byName.Published)
	}

	missing, err := repo.GetByOwner(ctx, "nobody@example.com")
	if err != nil || missing != nil {
		t.Errorf("expected nil for unknown owner, got %v, %v", missing, err)
	}

	dump, err := repo.Dump(ctx)
	if err != nil || len(dump) != 1 {
		t.Errorf("Dump = %d records, %v", len(dump), err)
	}
}

func TestProfileCache(t *testing.T) {
	repo := newTestRepo(t, "repo_cache")
	ctx := context.Background()

	if p, err := repo.Get(ctx, "hemerald"); err != nil || p != nil {
		t.Fatalf("empty cache should miss, got %v, %v", p, err)
	}

	p := domain.DefaultProfile()
	if err := repo.Set(ctx, "hemerald", &p); err != nil {
		t.Fatal(err)
	}
	p.Bio = "updated"
	if err := repo.Set(ctx, "hemerald", &p); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Get(ctx, "hemerald")
	if err != nil || got == nil {
		t.Fatalf("Get: %v, %v", got, err)
	}
	if got.Bio != "updated" {
		t.Errorf("Bio = %q, want latest write", got.Bio)
	}
	if len(got.FeaturedVideos) != 1 {
		t.Errorf("videos lost: %+v", got.FeaturedVideos)
	}
}

func TestPublishUsernameConflict(t *testing.T) {
	repo := newTestRepo(t, "repo_username_conflict")
	ctx := context.Background()

	publish := func(owner string) error {
		t.Helper()
		rec := &domain.ProfileRecord{OwnerEmail: owner, Draft: domain.DefaultProfile()}
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("Create %s: %v", owner, err)
		}
		rec.Published = rec.Draft.Clone()
		now := time.Now()
		rec.PublishedAt = &now
		return repo.Publish(ctx, rec)
	}

	if err := publish("first@example.com"); err != nil {
		t.Fatalf("first Publish: %v", err)
	}
	err := publish("second@example.com")
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("second Publish err = %v, want ErrUsernameTaken", err)
	}

	owner, _ := repo.GetByUsername(ctx, "hemerald")
	if owner == nil || owner.OwnerEmail != "first@example.com" {
		t.Errorf("username owner = %+v", owner)
	}
}
