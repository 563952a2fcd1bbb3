package services

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
)

func ptr[T any](v T) *T { return &v }

func TestGetDraft_SeedsDefaults(t *testing.T) {
	svc := NewEditorService(newMockRepo())
	ctx := context.Background()

	p, err := svc.GetDraft(ctx, "Jane.Doe+promo@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if p.Username != "janedoepromo" {
		t.Errorf("Username = %q, want janedoepromo", p.Username)
	}
	if p.Theme.ID != "neon-nights" || len(p.Links) != 5 || len(p.FeaturedVideos) != 1 {
		t.Errorf("unexpected defaults: %+v", p)
	}

	again, _ := svc.GetDraft(ctx, "Jane.Doe+promo@example.com")
	again.Bio = "changed locally"
	stored, _ := svc.GetDraft(ctx, "Jane.Doe+promo@example.com")
	if stored.Bio == "changed locally" {
		t.Error("GetDraft must return a copy")
	}
}

func TestUpdateInfo(t *testing.T) {
	svc := NewEditorService(newMockRepo())
	ctx := context.Background()

	long := make([]rune, 200)
	for i := range long {
		long[i] = 'x'
	}

	p, err := svc.UpdateInfo(ctx, "a@example.com", domain.InfoPatch{
		Username: ptr("Mr Fancy-Pants!"),
		Bio:      ptr(string(long)),
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.Username != "mrfancypants" {
		t.Errorf("Username = %q", p.Username)
	}
	if n := len([]rune(p.Bio)); n != domain.MaxBioLength {
		t.Errorf("bio length = %d, want %d", n, domain.MaxBioLength)
	}
}

func TestThemeOperations(t *testing.T) {
	svc := NewEditorService(newMockRepo())
	ctx := context.Background()
	owner := "a@example.com"

	p, err := svc.EditTheme(ctx, owner, domain.ThemePatch{CardColor: ptr("#123456")})
	if err != nil {
		t.Fatal(err)
	}
	if p.Theme.ID != domain.CustomThemeID || p.Theme.Name != "Custom" || !p.Theme.IsCustom {
		t.Errorf("edit should fork to custom theme: %+v", p.Theme)
	}

	p, err = svc.SelectTheme(ctx, owner, "ocean-breeze")
	if err != nil {
		t.Fatal(err)
	}
	if p.Theme.ID != "ocean-breeze" || p.Theme.IsCustom || p.Theme.CardColor == "#123456" {
		t.Errorf("preset should replace custom edits: %+v", p.Theme)
	}

	if _, err := svc.SelectTheme(ctx, owner, "vaporwave"); !errors.Is(err, domain.ErrUnknownTheme) {
		t.Errorf("err = %v, want ErrUnknownTheme", err)
	}
}

func TestLinkOperations(t *testing.T) {
	svc := NewEditorService(newMockRepo())
	ctx := context.Background()
	owner := "a@example.com"

	p, err := svc.AddLink(ctx, owner)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Links) != 6 {
		t.Fatalf("len(Links) = %d, want 6", len(p.Links))
	}
	added := p.Links[5]

	p, _ = svc.UpdateLink(ctx, owner, added.ID, domain.LinkPatch{Title: ptr("Shop"), Badge: ptr("SALE")})
	if p.Links[5].Title != "Shop" || p.Links[5].Badge.Kind() != domain.BadgeSale {
		t.Errorf("link not updated: %+v", p.Links[5])
	}

	ids := make([]string, 0, len(p.Links))
	for i := len(p.Links) - 1; i >= 0; i-- {
		ids = append(ids, p.Links[i].ID)
	}
	p, err = svc.ReorderLinks(ctx, owner, ids)
	if err != nil {
		t.Fatal(err)
	}
	if p.Links[0].ID != added.ID {
		t.Errorf("first link = %q, want %q", p.Links[0].ID, added.ID)
	}

	if _, err := svc.ReorderLinks(ctx, owner, ids[:2]); !errors.Is(err, domain.ErrInvalidOrder) {
		t.Errorf("partial order err = %v, want ErrInvalidOrder", err)
	}

	for _, l := range p.Links {
		p, err = svc.RemoveLink(ctx, owner, l.ID)
		if err != nil {
			t.Fatal(err)
		}
	}
	if p.Links == nil || len(p.Links) != 0 {
		t.Errorf("removing every link should leave an empty list, got %#v", p.Links)
	}
}

func TestVideoOperations(t *testing.T) {
	svc := NewEditorService(newMockRepo())
	ctx := context.Background()
	owner := "a@example.com"

	p, _ := svc.AddVideo(ctx, owner)
	if len(p.FeaturedVideos) != 2 {
		t.Fatalf("len(FeaturedVideos) = %d, want 2", len(p.FeaturedVideos))
	}
	v := p.FeaturedVideos[1]

	p, _ = svc.UpdateVideo(ctx, owner, v.ID, domain.VideoPatch{URL: ptr("https://www.twitch.tv/videos/123")})
	if got := p.FeaturedVideos[1]; got.Platform != domain.PlatformTwitch {
		t.Errorf("platform = %q, want twitch", got.Platform)
	}

	p, err := svc.ReorderVideos(ctx, owner, []string{v.ID, p.FeaturedVideos[0].ID})
	if err != nil {
		t.Fatal(err)
	}
	if p.FeaturedVideos[0].ID != v.ID {
		t.Error("videos not reordered")
	}

	for _, fv := range p.FeaturedVideos {
		p, _ = svc.RemoveVideo(ctx, owner, fv.ID)
	}
	if p.FeaturedVideos != nil {
		t.Errorf("removing every video should leave no list, got %#v", p.FeaturedVideos)
	}
}

func TestSave(t *testing.T) {
	repo := newMockRepo()
	svc := NewEditorService(repo)
	ctx := context.Background()

	if _, err := svc.GetPublished(ctx, "alice"); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("unpublished profile should not be found, err = %v", err)
	}

	if _, err := svc.UpdateInfo(ctx, "alice@example.com", domain.InfoPatch{Username: ptr("alice")}); err != nil {
		t.Fatal(err)
	}
	saved, err := svc.Save(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	pub, err := svc.GetPublished(ctx, "ALICE")
	if err != nil {
		t.Fatal(err)
	}
	if pub.Username != saved.Username || len(pub.Links) != len(saved.Links) {
		t.Errorf("published = %+v", pub)
	}

	// Later draft edits stay private until the next save.
	svc.UpdateInfo(ctx, "alice@example.com", domain.InfoPatch{DisplayName: ptr("Draft Name")}) //nolint:errcheck
	pub, _ = svc.GetPublished(ctx, "alice")
	if pub.DisplayName == "Draft Name" {
		t.Error("draft leaked into published profile")
	}

	// Same username for another owner.
	svc.UpdateInfo(ctx, "bob@example.com", domain.InfoPatch{Username: ptr("alice")}) //nolint:errcheck
	if _, err := svc.Save(ctx, "bob@example.com"); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Errorf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestSave_Validation(t *testing.T) {
	svc := NewEditorService(newMockRepo())
	ctx := context.Background()
	owner := "carol@example.com"

	p, _ := svc.GetDraft(ctx, owner)
	svc.UpdateLink(ctx, owner, p.Links[0].ID, domain.LinkPatch{URL: ptr("not a url")}) //nolint:errcheck

	_, err := svc.Save(ctx, owner)
	if !errors.Is(err, domain.ErrInvalidProfile) {
		t.Fatalf("err = %v, want ErrInvalidProfile", err)
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		t.Fatalf("expected validator field errors, got %v", err)
	}
	if verrs[0].Tag() != "url" {
		t.Errorf("failing tag = %q, want url", verrs[0].Tag())
	}
}

func TestUsernameValidator(t *testing.T) {
	v := newValidator()
	tests := []struct {
		username string
		ok       bool
	}{
		{"hemerald", true},
		{"snake_case_99", true},
		{"Upper", false},
		{"with space", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			p := domain.DefaultProfile()
			p.Username = tt.username
			err := validateProfile(v, &p)
			if (err == nil) != tt.ok {
				t.Errorf("validate(%q) = %v, want ok=%v", tt.username, err, tt.ok)
			}
		})
	}
}
