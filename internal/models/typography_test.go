package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDefaultTypographyIsValid(t *testing.T) {
	if result := DefaultTypography().Validate(); !result.Valid {
		t.Fatalf("DefaultTypography().Validate() = %+v", result)
	}
}

func TestTypographyCloneKeepsNilMaps(t *testing.T) {
	var decoded Typography
	if err := json.Unmarshal([]byte(`{"fontFamily":"Inter","monoFontFamily":"Fira Code","fontSize":{"base":"1rem"}}`), &decoded); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	clone := decoded.Clone()
	if clone.FontWeight != nil || clone.Responsive != nil || clone.LineHeight != nil {
		t.Fatalf("Clone filled nil maps: %+v", clone)
	}
	if !jsonEqual(&decoded, clone) {
		t.Fatalf("clone differs from original in JSON form")
	}

	theme, err := NewTheme(ThemeConfig{Name: "Type", Typography: &decoded})
	if err != nil {
		t.Fatalf("NewTheme error = %v", err)
	}
	doc, err := theme.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON error = %v", err)
	}
	original, err := ThemeFromJSON(doc)
	if err != nil {
		t.Fatalf("ThemeFromJSON error = %v", err)
	}
	edited, err := ThemeFromJSON(doc)
	if err != nil {
		t.Fatalf("ThemeFromJSON error = %v", err)
	}
	if err := edited.UpdateTypography(edited.Typography()); err != nil {
		t.Fatalf("UpdateTypography error = %v", err)
	}
	if edited.HasChanges(original) {
		t.Fatalf("re-applying the same typography reported changes")
	}
}

func TestIsCSSLength(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "1rem", want: true},
		{value: "0.875rem", want: true},
		{value: ".5em", want: true},
		{value: "-0.025em", want: true},
		{value: "1.5", want: true},
		{value: "100%", want: true},
		{value: "16px", want: true},
		{value: "", want: false},
		{value: "1 rem", want: false},
		{value: "large", want: false},
		{value: "1.2.3px", want: false},
	}

	for _, test := range tests {
		if got := IsCSSLength(test.value); got != test.want {
			t.Fatalf("IsCSSLength(%q) = %t, want %t", test.value, got, test.want)
		}
	}
}

func TestTypographySetters(t *testing.T) {
	typography := DefaultTypography()

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{name: "size_ok", run: func() error { return typography.SetFontSize("lg", "1.2rem") }},
		{name: "size_unknown_scale", run: func() error { return typography.SetFontSize("6xl", "4rem") }, want: ErrInvalidFormat},
		{name: "size_bad_value", run: func() error { return typography.SetFontSize("lg", "big") }, want: ErrInvalidFormat},
		{name: "weight_ok", run: func() error { return typography.SetFontWeight("bold", 800) }},
		{name: "weight_not_hundred", run: func() error { return typography.SetFontWeight("bold", 750) }, want: ErrInvalidFormat},
		{name: "weight_out_of_range", run: func() error { return typography.SetFontWeight("black", 1000) }, want: ErrInvalidFormat},
		{name: "line_height_ok", run: func() error { return typography.SetLineHeight("tight", "1.2") }},
		{name: "spacing_bad", run: func() error { return typography.SetLetterSpacing("wide", "wide") }, want: ErrInvalidFormat},
		{name: "family_blank", run: func() error { return typography.SetFontFamily(" ", "mono") }, want: ErrEmptyValue},
		{name: "responsive_ok", run: func() error { return typography.SetResponsiveFontSize("md", "base", "1.125rem") }},
		{name: "responsive_bad_breakpoint", run: func() error { return typography.SetResponsiveFontSize("3xl", "base", "1rem") }, want: ErrInvalidFormat},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.run()
			if test.want == nil && err != nil {
				t.Fatalf("error = %v, want nil", err)
			}
			if test.want != nil && !errors.Is(err, test.want) {
				t.Fatalf("error = %v, want %v", err, test.want)
			}
		})
	}

	if typography.FontWeight["bold"] != 800 {
		t.Fatalf("bold = %d, want 800", typography.FontWeight["bold"])
	}
	if result := typography.Validate(); !result.Valid {
		t.Fatalf("Validate() = %+v", result)
	}
}

func TestTypographyValidateReportsBadValues(t *testing.T) {
	typography := DefaultTypography()
	typography.FontWeight["medium"] = 550
	typography.FontSize["huge"] = "5rem"
	typography.Responsive["tablet"] = ResponsiveTypography{}

	result := typography.Validate()
	if result.Valid {
		t.Fatalf("Validate().Valid = true")
	}
	if len(result.Errors) != 3 {
		t.Fatalf("Validate().Errors = %#v, want 3 errors", result.Errors)
	}
}

func TestFontWeightUnmarshal(t *testing.T) {
	var weights map[string]FontWeight
	if err := json.Unmarshal([]byte(`{"bold": 700, "light": "300"}`), &weights); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if weights["bold"] != 700 || weights["light"] != 300 {
		t.Fatalf("weights = %#v", weights)
	}
	if err := json.Unmarshal([]byte(`{"bold": "heavy"}`), &weights); err == nil {
		t.Fatalf("Unmarshal(heavy) error = nil")
	}
}
