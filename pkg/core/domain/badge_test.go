package domain

import (
	"encoding/json"
	"testing"
)

func TestResolveBadge_Presets(t *testing.T) {
	noise := &CustomBadge{Text: "IGNORED", BackgroundColor: "#000000", TextColor: "#000000"}

	tests := []struct {
		name string
		want BadgeStyle
	}{
		{"NEW", BadgeStyle{"NEW", "#22c55e", "#ffffff"}},
		{"HOT", BadgeStyle{"HOT", "#f97316", "#ffffff"}},
		{"SALE", BadgeStyle{"SALE", "#ef4444", "#ffffff"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain, _ := ResolveBadge(Link{Badge: ParseBadge(tt.name, nil)})
			withCustom, ok := ResolveBadge(Link{Badge: ParseBadge(tt.name, noise)})
			if !ok {
				t.Fatal("expected a badge")
			}
			if plain != tt.want || withCustom != tt.want {
				t.Errorf("got %+v / %+v, want %+v", plain, withCustom, tt.want)
			}
		})
	}
}

func TestResolveBadge_Custom(t *testing.T) {
	custom := CustomBadge{Text: "LIVE SOON", BackgroundColor: "#111111", TextColor: "#eeeeee"}
	got, ok := ResolveBadge(Link{Badge: NewCustomBadge(custom)})
	if !ok || got != BadgeStyle(custom) {
		t.Errorf("got %+v, want %+v", got, custom)
	}

	got, ok = ResolveBadge(Link{Badge: ParseBadge("CUSTOM", nil)})
	if !ok || got != (BadgeStyle{"CUSTOM", "#8b5cf6", "#ffffff"}) {
		t.Errorf("unset custom badge should fall back, got %+v", got)
	}
}

func TestResolveBadge_None(t *testing.T) {
	for _, name := range []string{"", "none", "bogus"} {
		if _, ok := ResolveBadge(Link{Badge: ParseBadge(name, nil)}); ok {
			t.Errorf("badge %q should resolve to none", name)
		}
	}
}

func TestLinkJSON_Badge(t *testing.T) {
	in := `{"id":"1","title":"Shop","url":"https://shop.example.com","enabled":true,"badge":"HOT","customBadge":{"text":"x","backgroundColor":"#000","textColor":"#fff"}}`
	var l Link
	if err := json.Unmarshal([]byte(in), &l); err != nil {
		t.Fatal(err)
	}
	if l.Badge.Kind() != BadgeHot {
		t.Errorf("kind = %v, want HOT", l.Badge.Kind())
	}
	if _, ok := l.Badge.Custom(); ok {
		t.Error("custom label must be dropped for preset badges")
	}

	out, err := json.Marshal(l)
	if err != nil {
		t.Fatal(err)
	}
	var back map[string]any
	_ = json.Unmarshal(out, &back)
	if back["badge"] != "HOT" {
		t.Errorf("badge = %v, want HOT", back["badge"])
	}
	if _, ok := back["customBadge"]; ok {
		t.Error("customBadge should be omitted for preset badges")
	}

	out, _ = json.Marshal(Link{ID: "2"})
	back = map[string]any{}
	_ = json.Unmarshal(out, &back)
	if v, ok := back["badge"]; !ok || v != nil {
		t.Errorf("no badge should encode as null, got %v", v)
	}
}
