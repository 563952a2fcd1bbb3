package render

import (
	"html/template"
	"strings"

	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
)

const (
	// DefaultTitle is the page title when no profile is shown.
	DefaultTitle = "LinkPulse"
	// FontLinkID identifies the custom font stylesheet in the page head.
	FontLinkID = "custom-profile-font"

	avatarGradient = "linear-gradient(135deg, #667eea 0%, #764ba2 100%)"
	featuredShadow = "0 0 30px rgba(255,255,255,0.2), 0 0 60px rgba(255,255,255,0.1)"
)

// Head is the document metadata of a rendered page. It is built once per
// response and only the top-level page writes it.
type Head struct {
	Title       string
	Description string
	URL         string
	Image       string
	FontURL     string
}

// Options carries the deployment values a page needs.
type Options struct {
	PageURL        string
	HomepageURL    string
	DefaultOGImage string
}

type BadgeView struct {
	Text  string
	Style template.CSS
}

type LinkView struct {
	ID        string
	Title     string
	URL       string
	Thumbnail string
	Platform  domain.Platform
	Featured  bool
	Live      bool
	Badge     *BadgeView
	Style     template.CSS
}

type VideoView struct {
	Type      domain.VideoType
	URL       string
	Title     string
	Thumbnail string
	Platform  domain.Platform
	EmbedURL  string
	Style     template.CSS
}

// Embedded reports whether the video is shown as an inline player.
func (v VideoView) Embedded() bool { return v.Type == domain.VideoEmbed && v.EmbedURL != "" }

func (v VideoView) LargeCover() bool { return v.Type == domain.VideoLargeCover }

// PageView is everything the public page template reads.
type PageView struct {
	Head Head

	Username        string
	DisplayName     string
	ShowDisplayName bool
	Bio             string
	Avatar          string
	AvatarInitial   string
	AvatarStyle     template.CSS

	ContainerStyle template.CSS
	FooterStyle    template.CSS
	PlayStyle      template.CSS

	Videos []VideoView
	Links  []LinkView

	HomepageURL string
	ShareTitle  string
}

// BuildHead derives the title and social metadata of a profile page.
func BuildHead(p *domain.Profile, opts Options) Head {
	title := p.DisplayName + " (@" + p.Username + ") | " + DefaultTitle
	description := p.Bio
	if description == "" {
		description = "Scopri i link di " + p.DisplayName
	}
	image := p.Avatar
	if image == "" {
		image = opts.DefaultOGImage
	}

	h := Head{
		Title:       title,
		Description: description,
		URL:         opts.PageURL,
		Image:       image,
	}
	if domain.IsHTTPURL(p.Theme.CustomFontURL) {
		h.FontURL = p.Theme.CustomFontURL
	}
	return h
}

// BuildPage turns a profile into the view rendered on the public page.
// live maps lowercased Twitch usernames to their live flag.
func BuildPage(p *domain.Profile, live map[string]bool, opts Options) PageView {
	theme := p.Theme
	font := theme.FontStack()

	container := cssDecls{}
	container.add("background-color", domain.CSSValue(theme.BackgroundColor))
	if prop, value := theme.Background(); prop != "background-color" {
		container.add(prop, value)
	}
	container.add("background-size", "cover")
	container.add("background-position", "center")
	container.add("background-attachment", "fixed")
	container.add("color", domain.CSSValue(theme.TextColor))
	container.add("font-family", font)
	container.add("--font-heading", font)
	container.add("--font-body", font)
	container.add("min-height", "100vh")

	card := cardDecls(theme, font)

	v := PageView{
		Head:            BuildHead(p, opts),
		Username:        p.Username,
		DisplayName:     p.DisplayName,
		ShowDisplayName: p.DisplayName != "" && p.DisplayName != p.Username,
		Bio:             p.Bio,
		Avatar:          p.Avatar,
		AvatarInitial:   initial(p.DisplayName),
		AvatarStyle:     template.CSS("background: " + avatarGradient),
		ContainerStyle:  container.css(),
		FooterStyle:     template.CSS("border-color: " + orDefault(domain.CSSValue(theme.TextColor), "currentColor")),
		PlayStyle:       template.CSS("color: " + orDefault(domain.CSSValue(theme.CardColor), "inherit")),
		HomepageURL:     opts.HomepageURL,
		ShareTitle:      p.DisplayName + " | " + DefaultTitle,
	}

	for _, fv := range p.FeaturedVideos {
		v.Videos = append(v.Videos, buildVideo(fv, theme, card))
	}

	for _, l := range p.EnabledLinks() {
		v.Links = append(v.Links, buildLink(l, live, card))
	}
	return v
}

func cardDecls(theme domain.Theme, font string) cssDecls {
	card := cssDecls{}
	card.add("background-color", domain.CSSValue(theme.CardColor))
	card.add("color", domain.CSSValue(theme.CardTextColor))
	card.add("border-radius", theme.ButtonRadius())
	card.add("font-family", font)
	return card
}

func buildLink(l domain.Link, live map[string]bool, card cssDecls) LinkView {
	platform, _ := domain.DetectPlatform(l.URL)
	lv := LinkView{
		ID:        l.ID,
		Title:     l.Title,
		URL:       l.URL,
		Thumbnail: l.Thumbnail,
		Platform:  platform,
		Featured:  l.IsFeatured,
		Live:      isLive(l, platform, live),
	}

	style := card.clone()
	if l.IsFeatured {
		style.add("box-shadow", featuredShadow)
	}
	lv.Style = style.css()

	if b, ok := domain.ResolveBadge(l); ok {
		bs := cssDecls{}
		bs.add("background-color", domain.CSSValue(b.BackgroundColor))
		bs.add("color", domain.CSSValue(b.TextColor))
		lv.Badge = &BadgeView{Text: b.Text, Style: bs.css()}
	}
	return lv
}

// isLive is true only for Twitch links whose channel the live source reports as live.
func isLive(l domain.Link, platform domain.Platform, live map[string]bool) bool {
	if platform != domain.PlatformTwitch {
		return false
	}
	name, ok := domain.ExtractTwitchUsername(l.URL)
	return ok && live[strings.ToLower(name)]
}

func buildVideo(fv domain.Video, theme domain.Theme, card cssDecls) VideoView {
	vv := VideoView{
		Type:      fv.Type,
		URL:       fv.URL,
		Title:     orDefault(fv.Title, "Video"),
		Thumbnail: fv.Thumbnail,
		Platform:  fv.Platform,
	}
	if vv.Platform == "" {
		vv.Platform = domain.PlatformYouTube
	}
	if id, ok := domain.ExtractYouTubeVideoID(fv.URL); ok {
		if vv.Thumbnail == "" {
			vv.Thumbnail = domain.YouTubeThumbnail(id)
		}
		vv.EmbedURL = domain.YouTubeEmbedURL(id)
	} else if id, ok := domain.ExtractTikTokVideoID(fv.URL); ok {
		vv.EmbedURL = domain.TikTokEmbedURL(id)
	}

	style := card.clone()
	if fv.Type == domain.VideoLargeCover || fv.Type == domain.VideoEmbed {
		style.add("border-radius", theme.VideoRadius())
	}
	style.add("padding", "0")
	vv.Style = style.css()
	return vv
}

// cssDecls is an ordered list of CSS declarations. Later values for the
// same property replace earlier ones; empty values are skipped.
type cssDecls struct {
	props  []string
	values map[string]string
}

func (d *cssDecls) add(prop, value string) {
	if value == "" {
		return
	}
	if d.values == nil {
		d.values = make(map[string]string)
	}
	if _, ok := d.values[prop]; !ok {
		d.props = append(d.props, prop)
	}
	d.values[prop] = value
}

func (d cssDecls) clone() cssDecls {
	c := cssDecls{props: append([]string(nil), d.props...), values: make(map[string]string, len(d.values))}
	for k, v := range d.values {
		c.values[k] = v
	}
	return c
}

// css joins the declarations. Every value went through domain.CSSValue,
// domain.CSSURL or Theme.FontStack, so the result is trusted.
func (d cssDecls) css() template.CSS {
	parts := make([]string, 0, len(d.props))
	for _, p := range d.props {
		parts = append(parts, p+": "+d.values[p])
	}
	return template.CSS(strings.Join(parts, "; "))
}

func initial(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return ""
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
