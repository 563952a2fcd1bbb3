package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
)

var testOptions = Options{
	PageURL:        "https://linkpulse.test/u/hemerald",
	HomepageURL:    "https://crewmaster.net",
	DefaultOGImage: "https://linkpulse.test/og.png",
}

func renderHTML(t *testing.T, p *domain.Profile, live map[string]bool) string {
	t.Helper()
	var buf bytes.Buffer
	if err := RenderPage(&buf, BuildPage(p, live, testOptions)); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	return buf.String()
}

func TestBuildHead(t *testing.T) {
	p := domain.DefaultProfile()
	h := BuildHead(&p, testOptions)
	if h.Title != "Hemerald (@hemerald) | LinkPulse" {
		t.Errorf("Title = %q", h.Title)
	}
	if h.Description != p.Bio {
		t.Errorf("Description = %q", h.Description)
	}
	if h.Image != testOptions.DefaultOGImage {
		t.Errorf("Image should fall back to the default, got %q", h.Image)
	}

	p.Bio = ""
	p.Avatar = "https://cdn.test/a.png"
	h = BuildHead(&p, testOptions)
	if h.Description != "Scopri i link di Hemerald" {
		t.Errorf("Description fallback = %q", h.Description)
	}
	if h.Image != "https://cdn.test/a.png" {
		t.Errorf("Image = %q", h.Image)
	}
}

func TestBuildPage_OnlyEnabledLinksInOrder(t *testing.T) {
	p := domain.DefaultProfile()
	p.Links[1].Enabled = false

	v := BuildPage(&p, nil, testOptions)
	if len(v.Links) != 4 {
		t.Fatalf("len(Links) = %d, want 4", len(v.Links))
	}
	want := []string{"1", "3", "4", "5"}
	for i, l := range v.Links {
		if l.ID != want[i] {
			t.Errorf("Links[%d] = %q, want %q", i, l.ID, want[i])
		}
	}
}

func TestBuildPage_LiveOnlyForTwitch(t *testing.T) {
	p := domain.DefaultProfile()
	p.Links = []domain.Link{
		{ID: "tw", URL: "https://twitch.tv/Hemerald", Enabled: true},
		{ID: "yt", URL: "https://youtube.com/@hemerald", Enabled: true},
	}
	live := map[string]bool{"hemerald": true, "@hemerald": true}

	v := BuildPage(&p, live, testOptions)
	if !v.Links[0].Live {
		t.Error("twitch link should be live")
	}
	if v.Links[1].Live {
		t.Error("non-twitch links are never live")
	}

	v = BuildPage(&p, nil, testOptions)
	if v.Links[0].Live {
		t.Error("no live source data means not live")
	}
}

func TestBuildPage_Badges(t *testing.T) {
	p := domain.DefaultProfile()
	p.Links = []domain.Link{
		{ID: "n", Enabled: true, Badge: domain.NewPresetBadge(domain.BadgeNew)},
		{ID: "c", Enabled: true, Badge: domain.NewCustomBadge(domain.CustomBadge{Text: "VIP", BackgroundColor: "#000000", TextColor: "#ffffff"})},
		{ID: "x", Enabled: true},
	}
	v := BuildPage(&p, nil, testOptions)

	if b := v.Links[0].Badge; b == nil || b.Text != "NEW" || !strings.Contains(string(b.Style), "#22c55e") {
		t.Errorf("NEW badge = %+v", b)
	}
	if b := v.Links[1].Badge; b == nil || b.Text != "VIP" || !strings.Contains(string(b.Style), "#000000") {
		t.Errorf("custom badge = %+v", b)
	}
	if v.Links[2].Badge != nil {
		t.Error("link without badge must not render one")
	}
}

func TestBuildPage_Styles(t *testing.T) {
	p := domain.DefaultProfile()
	p.Theme.ButtonStyle = domain.ButtonPill
	p.Theme.FontFamily = "'Playfair Display', serif"
	p.FeaturedVideos = []domain.Video{
		{ID: "a", URL: "https://youtu.be/dQw4w9WgXcQ", Type: domain.VideoSmallRow},
		{ID: "b", URL: "https://youtu.be/dQw4w9WgXcQ", Type: domain.VideoLargeCover},
	}

	v := BuildPage(&p, nil, testOptions)

	if !strings.Contains(string(v.ContainerStyle), `font-family: "Playfair Display", system-ui, sans-serif`) {
		t.Errorf("container style = %s", v.ContainerStyle)
	}
	if !strings.Contains(string(v.Links[0].Style), "border-radius: 9999px") {
		t.Errorf("pill links should be fully rounded: %s", v.Links[0].Style)
	}
	if !strings.Contains(string(v.Videos[0].Style), "border-radius: 9999px") {
		t.Errorf("small row videos follow the link radius: %s", v.Videos[0].Style)
	}
	if !strings.Contains(string(v.Videos[1].Style), "border-radius: 16px") || strings.Contains(string(v.Videos[1].Style), "9999px") {
		t.Errorf("large videos use the video radius: %s", v.Videos[1].Style)
	}
	if v.Videos[0].Thumbnail != "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg" {
		t.Errorf("thumbnail = %q", v.Videos[0].Thumbnail)
	}
	if v.Videos[0].Title != "Video" {
		t.Errorf("title fallback = %q", v.Videos[0].Title)
	}
}

func TestBuildPage_RejectsUnsafeCSS(t *testing.T) {
	p := domain.DefaultProfile()
	p.Theme.BackgroundColor = "red; position: fixed"
	p.Theme.BackgroundImage = `https://cdn.test/x.png") ; background: url("javascript:alert(1)`
	p.Theme.BackgroundGradient = ""
	p.Theme.TextColor = "expression(alert(1))"
	p.Theme.FontFamily = "Evil}body{display:none"

	v := BuildPage(&p, nil, testOptions)
	css := string(v.ContainerStyle)
	for _, bad := range []string{"position: fixed", "javascript", "expression", "display:none", "background-image"} {
		if strings.Contains(css, bad) {
			t.Errorf("unsafe value %q leaked into %s", bad, css)
		}
	}
	if !strings.Contains(css, "font-family: system-ui, sans-serif") {
		t.Errorf("unsafe font should fall back to the system stack: %s", css)
	}
}

func TestRenderPage(t *testing.T) {
	p := domain.DefaultProfile()
	p.Theme.CustomFontURL = "https://fonts.googleapis.com/css2?family=Outfit"
	p.Links[0].Title = `<script>alert("x")</script>`

	out := renderHTML(t, &p, map[string]bool{"hemerald": true})

	if n := strings.Count(out, `id="custom-profile-font"`); n != 1 {
		t.Errorf("font link appears %d times, want 1", n)
	}
	for _, want := range []string{
		"<title>Hemerald (@hemerald) | LinkPulse</title>",
		`<meta property="og:type" content="profile">`,
		`<meta name="twitter:card" content="summary_large_image">`,
		`<meta property="og:url" content="https://linkpulse.test/u/hemerald">`,
		"LIVE",
		"NEW",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(out, `<script>alert("x")</script>`) {
		t.Error("link titles must be escaped")
	}
}

func TestRenderPage_NoFontLinkWithoutURL(t *testing.T) {
	p := domain.DefaultProfile()
	p.Theme.CustomFontURL = ""
	if out := renderHTML(t, &p, nil); strings.Contains(out, FontLinkID) {
		t.Error("font link rendered without a custom font")
	}

	p.Theme.CustomFontURL = "javascript:alert(1)"
	if out := renderHTML(t, &p, nil); strings.Contains(out, FontLinkID) {
		t.Error("non-http font url must be ignored")
	}
}

func TestRenderPage_EmbedVideo(t *testing.T) {
	p := domain.DefaultProfile()
	p.FeaturedVideos = []domain.Video{{ID: "v", URL: "https://youtu.be/dQw4w9WgXcQ", Title: "Clip", Type: domain.VideoEmbed}}

	out := renderHTML(t, &p, nil)
	if !strings.Contains(out, `src="https://www.youtube.com/embed/dQw4w9WgXcQ"`) {
		t.Error("embedded player missing")
	}

	p.FeaturedVideos = []domain.Video{{ID: "t", URL: "https://www.tiktok.com/@someone/video/7234567890", Platform: domain.PlatformTikTok, Type: domain.VideoEmbed}}
	out = renderHTML(t, &p, nil)
	if !strings.Contains(out, `src="https://www.tiktok.com/embed/v2/7234567890"`) {
		t.Error("tiktok player missing")
	}
}

func TestRenderNotFound(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderNotFound(&buf, "https://crewmaster.net"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "<title>LinkPulse</title>") || !strings.Contains(out, `href="https://crewmaster.net"`) {
		t.Errorf("unexpected not-found page:\n%s", out)
	}
}

func TestTerminal(t *testing.T) {
	p := domain.DefaultProfile()
	out := Terminal(&p, map[string]bool{"hemerald": true}, 40)

	for _, want := range []string{"@hemerald", "Twitch", "LIVE", "NEW", "CUPHEAD"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview missing %q", want)
		}
	}

	p.Links[1].Enabled = false
	if out := Terminal(&p, nil, 40); strings.Contains(out, "Twitch") {
		t.Error("disabled links must not be previewed")
	}
}

func TestTerminalWidthIsClamped(t *testing.T) {
	p := domain.DefaultProfile()

	tests := []struct {
		name  string
		width int
		want  int
	}{
		{"too narrow", 5, MinTerminalWidth},
		{"too wide", 100000, MaxTerminalWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			widest := 0
			for _, line := range strings.Split(Terminal(&p, nil, tt.width), "\n") {
				widest = max(widest, lipgloss.Width(line))
			}
			if widest != tt.want {
				t.Errorf("widest line = %d columns, want %d", widest, tt.want)
			}
		})
	}
}
