package domain

import "strings"

// BadgeKind enumerates the badge variants a link can carry.
type BadgeKind int

const (
	BadgeNone BadgeKind = iota
	BadgeNew
	BadgeHot
	BadgeSale
	BadgeCustom
)

var badgeNames = map[BadgeKind]string{
	BadgeNew:    "NEW",
	BadgeHot:    "HOT",
	BadgeSale:   "SALE",
	BadgeCustom: "CUSTOM",
}

// CustomBadge holds the user-defined label of a CUSTOM badge.
type CustomBadge struct {
	Text            string `json:"text"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
}

// Badge is a closed union: none, a preset (NEW/HOT/SALE) or a custom label.
// The custom label only exists for BadgeCustom.
type Badge struct {
	kind   BadgeKind
	custom *CustomBadge
}

// NewPresetBadge returns a preset badge. Any kind other than NEW, HOT or SALE
// yields the empty badge.
func NewPresetBadge(kind BadgeKind) Badge {
	switch kind {
	case BadgeNew, BadgeHot, BadgeSale:
		return Badge{kind: kind}
	}
	return Badge{}
}

// NewCustomBadge returns a CUSTOM badge with the given label.
func NewCustomBadge(c CustomBadge) Badge {
	return Badge{kind: BadgeCustom, custom: &c}
}

// ParseBadge maps the wire name to a Badge. The custom label is kept only
// when name is CUSTOM; a CUSTOM badge without a label is still CUSTOM.
func ParseBadge(name string, custom *CustomBadge) Badge {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "NEW":
		return Badge{kind: BadgeNew}
	case "HOT":
		return Badge{kind: BadgeHot}
	case "SALE":
		return Badge{kind: BadgeSale}
	case "CUSTOM":
		b := Badge{kind: BadgeCustom}
		if custom != nil {
			c := *custom
			b.custom = &c
		}
		return b
	}
	return Badge{}
}

func (b Badge) Kind() BadgeKind { return b.kind }

// Custom returns the custom label, if one is set.
func (b Badge) Custom() (CustomBadge, bool) {
	if b.kind != BadgeCustom || b.custom == nil {
		return CustomBadge{}, false
	}
	return *b.custom, true
}

// String returns the wire name, or "" for no badge.
func (b Badge) String() string {
	return badgeNames[b.kind]
}

func (b Badge) clone() Badge {
	if b.custom != nil {
		c := *b.custom
		b.custom = &c
	}
	return b
}

// BadgeStyle is the resolved label drawn over a link.
type BadgeStyle struct {
	Text            string `json:"text"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
}

var defaultCustomBadge = BadgeStyle{Text: "CUSTOM", BackgroundColor: "#8b5cf6", TextColor: "#ffffff"}

var presetBadgeStyles = map[BadgeKind]BadgeStyle{
	BadgeNew:  {Text: "NEW", BackgroundColor: "#22c55e", TextColor: "#ffffff"},
	BadgeHot:  {Text: "HOT", BackgroundColor: "#f97316", TextColor: "#ffffff"},
	BadgeSale: {Text: "SALE", BackgroundColor: "#ef4444", TextColor: "#ffffff"},
}

// ResolveBadge returns the colours and text to draw for a link's badge.
// The second result is false when the link has no badge.
func ResolveBadge(l Link) (BadgeStyle, bool) {
	switch l.Badge.Kind() {
	case BadgeNone:
		return BadgeStyle{}, false
	case BadgeCustom:
		c, ok := l.Badge.Custom()
		if !ok {
			return defaultCustomBadge, true
		}
		return BadgeStyle(c), true
	}
	style, ok := presetBadgeStyles[l.Badge.Kind()]
	return style, ok
}
