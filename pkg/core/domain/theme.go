package domain

import "strings"

type ButtonStyle string

const (
	ButtonRounded ButtonStyle = "rounded"
	ButtonPill    ButtonStyle = "pill"
	ButtonSquare  ButtonStyle = "square"
)

// CustomThemeID is the id a theme takes once any preset field is edited.
const CustomThemeID = "custom"

// Theme is the visual style descriptor of a profile
type Theme struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	BackgroundColor    string      `json:"backgroundColor"`
	BackgroundGradient string      `json:"backgroundGradient,omitempty"`
	BackgroundImage    string      `json:"backgroundImage,omitempty" validate:"omitempty,url"`
	CardColor          string      `json:"cardColor"`
	CardTextColor      string      `json:"cardTextColor"`
	TextColor          string      `json:"textColor"`
	ButtonStyle        ButtonStyle `json:"buttonStyle" validate:"omitempty,oneof=rounded pill square"`
	FontFamily         string      `json:"fontFamily"`
	CustomFontURL      string      `json:"customFontUrl,omitempty" validate:"omitempty,url"`
	IsCustom           bool        `json:"isCustom,omitempty"`
}

var presetThemes = []Theme{
	{
		ID:              "minimal-light",
		Name:            "Minimal Light",
		BackgroundColor: "#f5f5f5",
		CardColor:       "#ffffff",
		CardTextColor:   "#1a1a1a",
		TextColor:       "#1a1a1a",
		ButtonStyle:     ButtonRounded,
		FontFamily:      "system-ui",
	},
	{
		ID:              "minimal-dark",
		Name:            "Minimal Dark",
		BackgroundColor: "#0a0a0a",
		CardColor:       "#1a1a1a",
		CardTextColor:   "#ffffff",
		TextColor:       "#ffffff",
		ButtonStyle:     ButtonRounded,
		FontFamily:      "system-ui",
	},
	{
		ID:                 "ocean-breeze",
		Name:               "Ocean Breeze",
		BackgroundColor:    "#0f172a",
		BackgroundGradient: "linear-gradient(135deg, #0f172a 0%, #1e3a5f 50%, #0f766e 100%)",
		CardColor:          "rgba(255,255,255,0.1)",
		CardTextColor:      "#ffffff",
		TextColor:          "#ffffff",
		ButtonStyle:        ButtonPill,
		FontFamily:         "system-ui",
	},
	{
		ID:                 "sunset-glow",
		Name:               "Sunset Glow",
		BackgroundColor:    "#1a0a1e",
		BackgroundGradient: "linear-gradient(180deg, #1a0a1e 0%, #4a1942 50%, #ff6b35 100%)",
		CardColor:          "rgba(255,255,255,0.15)",
		CardTextColor:      "#ffffff",
		TextColor:          "#ffffff",
		ButtonStyle:        ButtonRounded,
		FontFamily:         "Outfit",
	},
	{
		ID:                 "neon-nights",
		Name:               "Neon Nights",
		BackgroundColor:    "#0d0d0d",
		BackgroundGradient: "linear-gradient(135deg, #0d0d0d 0%, #1a0a2e 50%, #2d1b4e 100%)",
		CardColor:          "rgba(138,43,226,0.2)",
		CardTextColor:      "#e0b0ff",
		TextColor:          "#ffffff",
		ButtonStyle:        ButtonPill,
		FontFamily:         "Outfit",
	},
	{
		ID:                 "forest-calm",
		Name:               "Forest Calm",
		BackgroundColor:    "#0f1f0f",
		BackgroundGradient: "linear-gradient(180deg, #0f1f0f 0%, #1a3a1a 50%, #2d5a2d 100%)",
		CardColor:          "rgba(255,255,255,0.1)",
		CardTextColor:      "#b8e6b8",
		TextColor:          "#e0f0e0",
		ButtonStyle:        ButtonRounded,
		FontFamily:         "system-ui",
	},
	{
		ID:                 "pastel-dream",
		Name:               "Pastel Dream",
		BackgroundColor:    "#fdf2f8",
		BackgroundGradient: "linear-gradient(135deg, #fdf2f8 0%, #fce7f3 50%, #f5d0fe 100%)",
		CardColor:          "rgba(255,255,255,0.9)",
		CardTextColor:      "#831843",
		TextColor:          "#831843",
		ButtonStyle:        ButtonPill,
		FontFamily:         "Outfit",
	},
	{
		ID:                 "cyber-punk",
		Name:               "Cyber Punk",
		BackgroundColor:    "#0a0a0a",
		BackgroundGradient: "linear-gradient(135deg, #0a0a0a 0%, #1a0a2e 30%, #0a1a2e 70%, #0a0a0a 100%)",
		CardColor:          "rgba(0,255,255,0.1)",
		CardTextColor:      "#00ffff",
		TextColor:          "#ff00ff",
		ButtonStyle:        ButtonSquare,
		FontFamily:         "monospace",
	},
}

// PresetThemes returns a copy of the built-in themes in display order.
func PresetThemes() []Theme {
	return append([]Theme(nil), presetThemes...)
}

// PresetTheme selects a built-in theme by id. The result is never marked custom.
func PresetTheme(id string) (Theme, bool) {
	for _, t := range presetThemes {
		if t.ID == id {
			t.IsCustom = false
			return t, true
		}
	}
	return Theme{}, false
}

// ThemePatch carries hand-edited theme fields. Nil fields are left untouched.
type ThemePatch struct {
	BackgroundColor    *string      `json:"backgroundColor,omitempty"`
	BackgroundGradient *string      `json:"backgroundGradient,omitempty"`
	BackgroundImage    *string      `json:"backgroundImage,omitempty"`
	CardColor          *string      `json:"cardColor,omitempty"`
	CardTextColor      *string      `json:"cardTextColor,omitempty"`
	TextColor          *string      `json:"textColor,omitempty"`
	ButtonStyle        *ButtonStyle `json:"buttonStyle,omitempty"`
	FontFamily         *string      `json:"fontFamily,omitempty"`
	CustomFontURL      *string      `json:"customFontUrl,omitempty"`
}

// Apply forks the theme into a custom one and writes the patched fields.
func (p ThemePatch) Apply(t Theme) Theme {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&t.BackgroundColor, p.BackgroundColor)
	set(&t.BackgroundGradient, p.BackgroundGradient)
	set(&t.BackgroundImage, p.BackgroundImage)
	set(&t.CardColor, p.CardColor)
	set(&t.CardTextColor, p.CardTextColor)
	set(&t.TextColor, p.TextColor)
	set(&t.FontFamily, p.FontFamily)
	set(&t.CustomFontURL, p.CustomFontURL)
	if p.ButtonStyle != nil {
		t.ButtonStyle = *p.ButtonStyle
	}
	t.ID = CustomThemeID
	t.Name = "Custom"
	t.IsCustom = true
	return t
}

// ButtonRadius is the corner radius of link cards.
func (t Theme) ButtonRadius() string {
	switch t.ButtonStyle {
	case ButtonPill:
		return "9999px"
	case ButtonSquare:
		return "4px"
	default:
		return "12px"
	}
}

// VideoRadius is the corner radius of large and embedded videos; pills would
// crop the media so they get a large rounded corner instead.
func (t Theme) VideoRadius() string {
	switch t.ButtonStyle {
	case ButtonPill:
		return "16px"
	case ButtonSquare:
		return "4px"
	default:
		return "12px"
	}
}

// Background resolves the page background: image, then gradient, then
// colour. Unsafe values are skipped, so a rejected image falls through to
// the gradient. The value is ready to embed in a style attribute.
func (t Theme) Background() (property, value string) {
	if v := CSSURL(t.BackgroundImage); v != "" {
		return "background-image", v
	}
	if v := CSSValue(t.BackgroundGradient); v != "" {
		return "background-image", v
	}
	return "background-color", CSSValue(t.BackgroundColor)
}

// FontStack returns the CSS font-family value for the theme. A family that
// is not a plain CSS value yields the system stack.
func (t Theme) FontStack() string {
	plain := strings.NewReplacer(`"`, "", `'`, "").Replace(t.FontFamily)
	if CSSValue(plain) == "" {
		return FontStack("")
	}
	return FontStack(plain)
}

var genericFontFamilies = map[string]struct{}{
	"serif":         {},
	"sans-serif":    {},
	"monospace":     {},
	"cursive":       {},
	"fantasy":       {},
	"system-ui":     {},
	"ui-sans-serif": {},
	"ui-serif":      {},
	"ui-monospace":  {},
	"ui-rounded":    {},
	"emoji":         {},
	"math":          {},
	"fangsong":      {},
}

// FontStack builds a font-family list from a single family name. Generic
// keywords are never quoted, names with whitespace always are, and the
// system-ui, sans-serif fallback chain is appended.
func FontStack(family string) string {
	const fallback = "system-ui, sans-serif"

	clean := strings.NewReplacer(`"`, "", `'`, "").Replace(family)
	clean = strings.TrimSpace(strings.Split(clean, ",")[0])
	if clean == "" {
		return fallback
	}

	base := clean
	if _, generic := genericFontFamilies[strings.ToLower(clean)]; !generic && strings.ContainsAny(clean, " \t") {
		base = `"` + clean + `"`
	}
	return base + ", " + fallback
}
