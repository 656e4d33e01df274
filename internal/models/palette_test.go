package models

import (
	"errors"
	"reflect"
	"testing"
)

func completeColors() map[string]string {
	colors := DefaultLightColors()
	colors["primary"] = "#3b82f6"
	colors["primary-foreground"] = "#ffffff"
	return colors
}

func TestPaletteValidateComplete(t *testing.T) {
	palette := NewColorPalette(ModeLight, completeColors())

	result := palette.Validate()
	if !result.Valid {
		t.Fatalf("Validate() = %+v, want valid", result)
	}
	if result.Errors == nil || len(result.Errors) != 0 {
		t.Fatalf("Validate().Errors = %#v, want empty non-nil slice", result.Errors)
	}
}

func TestPaletteValidateReportsMissingRequiredColors(t *testing.T) {
	colors := completeColors()
	delete(colors, "ring")
	delete(colors, "input")
	palette := NewColorPalette(ModeLight, colors)

	got := palette.Validate()
	want := []string{"Missing required color: input", "Missing required color: ring"}
	if got.Valid {
		t.Fatalf("Validate().Valid = true, want false")
	}
	if !reflect.DeepEqual(got.Errors, want) {
		t.Fatalf("Validate().Errors = %#v, want %#v", got.Errors, want)
	}
}

func TestPaletteLinkRejectsCycles(t *testing.T) {
	palette := NewColorPalette(ModeLight, completeColors())

	if err := palette.LinkColor("background", "foreground"); err != nil {
		t.Fatalf("LinkColor(background, foreground) error = %v", err)
	}
	err := palette.LinkColor("foreground", "background")
	var cycle CircularLinkError
	if !errors.As(err, &cycle) {
		t.Fatalf("LinkColor(foreground, background) error = %v, want CircularLinkError", err)
	}
	if !errors.Is(err, ErrCircularLink) {
		t.Fatalf("errors.Is(err, ErrCircularLink) = false")
	}
	want := map[string]string{"background": "foreground"}
	if got := palette.Links(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Links() = %#v, want %#v", got, want)
	}
}

func TestPaletteLinkRejectsLongerCycles(t *testing.T) {
	palette := NewColorPalette(ModeLight, completeColors())
	for _, link := range [][2]string{{"card", "popover"}, {"popover", "muted"}} {
		if err := palette.LinkColor(link[0], link[1]); err != nil {
			t.Fatalf("LinkColor(%s, %s) error = %v", link[0], link[1], err)
		}
	}

	err := palette.LinkColor("muted", "card")
	var cycle CircularLinkError
	if !errors.As(err, &cycle) {
		t.Fatalf("LinkColor(muted, card) error = %v, want CircularLinkError", err)
	}
	wantPath := []string{"card", "popover", "muted"}
	if !reflect.DeepEqual(cycle.Path, wantPath) {
		t.Fatalf("cycle.Path = %#v, want %#v", cycle.Path, wantPath)
	}
	if len(palette.Links()) != 2 {
		t.Fatalf("Links() = %#v, want two links", palette.Links())
	}
}

func TestPaletteLinkErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		target string
		want   error
	}{
		{name: "self_link", source: "primary", target: "primary", want: ErrSelfLink},
		{name: "unknown_source", source: "brand", target: "primary", want: ErrUnknownColor},
		{name: "unknown_target", source: "primary", target: "brand", want: ErrUnknownColor},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			palette := NewColorPalette(ModeLight, completeColors())
			if err := palette.LinkColor(test.source, test.target); !errors.Is(err, test.want) {
				t.Fatalf("LinkColor(%q, %q) error = %v, want %v", test.source, test.target, err, test.want)
			}
			if len(palette.Links()) != 0 {
				t.Fatalf("Links() = %#v, want none", palette.Links())
			}
		})
	}
}

func TestPaletteColorResolvesTransitively(t *testing.T) {
	palette := NewColorPalette(ModeLight, completeColors())
	if err := palette.LinkColor("ring", "accent"); err != nil {
		t.Fatalf("LinkColor(ring, accent) error = %v", err)
	}
	if err := palette.LinkColor("accent", "primary"); err != nil {
		t.Fatalf("LinkColor(accent, primary) error = %v", err)
	}

	got, ok := palette.Color("ring")
	if !ok || got != "#3b82f6" {
		t.Fatalf("Color(ring) = %q, %t, want #3b82f6", got, ok)
	}

	if err := palette.UpdateColor("primary", "#ef4444"); err != nil {
		t.Fatalf("UpdateColor error = %v", err)
	}
	got, _ = palette.Color("ring")
	target, _ := palette.Color("primary")
	if got != target {
		t.Fatalf("Color(ring) = %q, want current primary %q", got, target)
	}
}

func TestPaletteUpdateColorClearsLink(t *testing.T) {
	palette := NewColorPalette(ModeLight, completeColors())
	if err := palette.LinkColor("ring", "primary"); err != nil {
		t.Fatalf("LinkColor error = %v", err)
	}
	if err := palette.UpdateColor("ring", "#000000"); err != nil {
		t.Fatalf("UpdateColor error = %v", err)
	}
	if _, linked := palette.LinkTarget("ring"); linked {
		t.Fatalf("ring still linked after UpdateColor")
	}
	if err := palette.UpdateColor("ring", "  "); !errors.Is(err, ErrEmptyValue) {
		t.Fatalf("UpdateColor(blank) error = %v, want ErrEmptyValue", err)
	}
}

func TestPaletteRemoveColor(t *testing.T) {
	t.Run("protected", func(t *testing.T) {
		palette := NewColorPalette(ModeLight, completeColors())
		before := palette.Clone()

		err := palette.RemoveColor("primary")
		var protected ProtectedColorError
		if !errors.As(err, &protected) || protected.Name != "primary" {
			t.Fatalf("RemoveColor(primary) error = %v, want ProtectedColorError", err)
		}
		if !palette.Equals(before) {
			t.Fatalf("palette changed after rejected removal")
		}
	})

	t.Run("cascades_links", func(t *testing.T) {
		palette := NewColorPalette(ModeLight, completeColors())
		if err := palette.AddColor("brand", "#ff6600"); err != nil {
			t.Fatalf("AddColor error = %v", err)
		}
		if err := palette.AddColor("brand-soft", "#ffd0b0"); err != nil {
			t.Fatalf("AddColor error = %v", err)
		}
		if err := palette.LinkColor("ring", "brand"); err != nil {
			t.Fatalf("LinkColor error = %v", err)
		}
		if err := palette.LinkColor("brand", "brand-soft"); err != nil {
			t.Fatalf("LinkColor error = %v", err)
		}

		if err := palette.RemoveColor("brand"); err != nil {
			t.Fatalf("RemoveColor(brand) error = %v", err)
		}
		if palette.Has("brand") {
			t.Fatalf("brand still present")
		}
		if len(palette.Links()) != 0 {
			t.Fatalf("Links() = %#v, want none", palette.Links())
		}
		if result := palette.Validate(); !result.Valid {
			t.Fatalf("Validate() = %+v, want valid", result)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		palette := NewColorPalette(ModeLight, completeColors())
		if err := palette.RemoveColor("brand"); !errors.Is(err, ErrUnknownColor) {
			t.Fatalf("RemoveColor(brand) error = %v, want ErrUnknownColor", err)
		}
	})
}

func TestPaletteAddColorDuplicate(t *testing.T) {
	palette := NewColorPalette(ModeLight, completeColors())
	err := palette.AddColor("primary", "#000000")
	var duplicate DuplicateColorError
	if !errors.As(err, &duplicate) || duplicate.Name != "primary" {
		t.Fatalf("AddColor(primary) error = %v, want DuplicateColorError", err)
	}
	if got, _ := palette.RawColor("primary"); got != "#3b82f6" {
		t.Fatalf("primary = %q after rejected add", got)
	}
}

func TestPaletteUnlinkIsNoOpWhenAbsent(t *testing.T) {
	palette := NewColorPalette(ModeLight, completeColors())
	palette.UnlinkColor("primary")
	if len(palette.Links()) != 0 {
		t.Fatalf("Links() = %#v, want none", palette.Links())
	}
}

func TestPaletteEquals(t *testing.T) {
	a := NewColorPalette(ModeLight, completeColors())
	b := a.Clone()
	if !a.Equals(b) {
		t.Fatalf("clone not equal to original")
	}
	if err := b.LinkColor("ring", "primary"); err != nil {
		t.Fatalf("LinkColor error = %v", err)
	}
	if a.Equals(b) {
		t.Fatalf("palettes with different links reported equal")
	}
	if a.Equals(nil) {
		t.Fatalf("Equals(nil) = true")
	}
}

func TestPaletteMerge(t *testing.T) {
	other := NewColorPalette(ModeLight, map[string]string{
		"primary": "#000000",
		"brand":   "#ff6600",
	})
	if err := other.LinkColor("brand", "primary"); err != nil {
		t.Fatalf("LinkColor error = %v", err)
	}

	t.Run("keep_existing", func(t *testing.T) {
		palette := NewColorPalette(ModeLight, completeColors())
		if skipped := palette.Merge(other, false); len(skipped) != 0 {
			t.Fatalf("Merge skipped = %v", skipped)
		}
		if got, _ := palette.RawColor("primary"); got != "#3b82f6" {
			t.Fatalf("primary = %q, want existing value", got)
		}
		if got, _ := palette.RawColor("brand"); got != "#ff6600" {
			t.Fatalf("brand = %q, want merged value", got)
		}
		if len(palette.Links()) != 0 {
			t.Fatalf("links adopted without overwrite: %#v", palette.Links())
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		palette := NewColorPalette(ModeLight, completeColors())
		if skipped := palette.Merge(other, true); len(skipped) != 0 {
			t.Fatalf("Merge skipped = %v", skipped)
		}
		if got, _ := palette.RawColor("primary"); got != "#000000" {
			t.Fatalf("primary = %q, want overwritten value", got)
		}
		if target, ok := palette.LinkTarget("brand"); !ok || target != "primary" {
			t.Fatalf("LinkTarget(brand) = %q, %t, want primary", target, ok)
		}
	})
}

func TestPaletteSearch(t *testing.T) {
	palette := NewColorPalette(ModeLight, completeColors())

	got := palette.Search("prim")
	if len(got) != 2 {
		t.Fatalf("Search(prim) = %#v, want primary and primary-foreground", got)
	}
	for _, name := range got {
		if name != "primary" && name != "primary-foreground" {
			t.Fatalf("Search(prim) returned %q", name)
		}
	}
	if all := palette.Search(""); len(all) != len(RequiredColors) {
		t.Fatalf("Search(\"\") returned %d names, want %d", len(all), len(RequiredColors))
	}
}
