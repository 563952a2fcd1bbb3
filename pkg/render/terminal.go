package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// termColor maps a theme colour to a terminal colour. Only hex colours
// translate; anything else (rgba, names, gradients) falls back to the default.
func termColor(c string) lipgloss.TerminalColor {
	c = strings.TrimSpace(c)
	if hexColor.MatchString(c) {
		return lipgloss.Color(c)
	}
	return lipgloss.NoColor{}
}

func termBorder(style domain.ButtonStyle) lipgloss.Border {
	if style == domain.ButtonSquare {
		return lipgloss.NormalBorder()
	}
	return lipgloss.RoundedBorder()
}

// Bounds of the terminal preview width.
const (
	MinTerminalWidth = 30
	MaxTerminalWidth = 200
)

// Terminal renders a text preview of a profile page, width columns wide.
// The width is clamped to [MinTerminalWidth, MaxTerminalWidth].
func Terminal(p *domain.Profile, live map[string]bool, width int) string {
	width = min(max(width, MinTerminalWidth), MaxTerminalWidth)
	theme := p.Theme
	card := termColor(theme.CardTextColor)
	text := termColor(theme.TextColor)

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	title := center.Bold(true).Foreground(text)
	muted := center.Foreground(lipgloss.Color("245"))

	var b strings.Builder
	b.WriteString(title.Render("@"+p.Username) + "\n")
	if p.DisplayName != "" && p.DisplayName != p.Username {
		b.WriteString(center.Foreground(text).Render(p.DisplayName) + "\n")
	}
	if p.Bio != "" {
		b.WriteString(muted.Render(p.Bio) + "\n")
	}
	b.WriteString("\n")

	box := lipgloss.NewStyle().
		Width(width-2).
		Align(lipgloss.Center).
		Border(termBorder(theme.ButtonStyle)).
		BorderForeground(termColor(theme.CardColor)).
		Foreground(card)

	for _, fv := range p.FeaturedVideos {
		label := fmt.Sprintf("▶ %s  (%s)", orDefault(fv.Title, "Video"), orDefault(string(fv.Platform), string(domain.PlatformYouTube)))
		b.WriteString(box.Render(label) + "\n")
	}

	for _, l := range p.EnabledLinks() {
		platform, _ := domain.DetectPlatform(l.URL)
		label := l.Title
		if isLive(l, platform, live) {
			label = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444")).Render("● LIVE") + " " + label
		}
		if badge, ok := domain.ResolveBadge(l); ok {
			label += " " + lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1).
				Background(termColor(badge.BackgroundColor)).
				Foreground(termColor(badge.TextColor)).
				Render(badge.Text)
		}
		style := box
		if l.IsFeatured {
			style = style.BorderStyle(lipgloss.ThickBorder()).Bold(true)
		}
		b.WriteString(style.Render(label) + "\n")
	}

	return b.String()
}
