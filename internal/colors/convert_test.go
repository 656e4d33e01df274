package colors

import (
	"errors"
	"math"
	"testing"
)

func TestConvertRoundTripsThroughOKLCH(t *testing.T) {
	hexes := []string{"#3b82f6", "#ffffff", "#000000", "#ef4444", "#16a34a", "#1f2937", "#f9fafb"}

	for _, hex := range hexes {
		t.Run(hex, func(t *testing.T) {
			triple, err := Convert(hex, FormatTriple)
			if err != nil {
				t.Fatalf("Convert(%q, triple) error = %v", hex, err)
			}
			if !IsValid(triple) {
				t.Fatalf("triple %q is not a valid color", triple)
			}
			back, err := Parse(triple)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", triple, err)
			}
			original, _ := Parse(hex)
			r1, g1, b1 := original.RGB.RGB255()
			r2, g2, b2 := back.RGB.RGB255()
			if absDiff(r1, r2) > 1 || absDiff(g1, g2) > 1 || absDiff(b1, b2) > 1 {
				t.Fatalf("round trip %s -> %s -> %s drifted", hex, triple, back.Hex())
			}
		})
	}
}

func TestConvertFormats(t *testing.T) {
	tests := []struct {
		value string
		to    Format
		want  string
	}{
		{value: "#ff0000", to: FormatRGB, want: "rgb(255, 0, 0)"},
		{value: "rgb(0, 0, 255)", to: FormatHex, want: "#0000ff"},
		{value: "hsl(0, 100%, 50%)", to: FormatHex, want: "#ff0000"},
		{value: "white", to: FormatHSL, want: "hsl(0, 0%, 100%)"},
		{value: "rgba(0, 0, 0, 0.5)", to: FormatHex, want: "#00000080"},
		{value: "#000", to: FormatTriple, want: "0% 0 0"},
		{value: "#fff", to: FormatOKLCH, want: "oklch(100% 0 0)"},
		{value: "rgba(255, 0, 0, 0.999)", to: FormatHex, want: "#ff0000"},
		{value: "rgba(0, 0, 0, 0.99999)", to: FormatRGB, want: "rgb(0, 0, 0)"},
		{value: "rgba(0, 0, 0, 0.99999)", to: FormatOKLCH, want: "oklch(0% 0 0)"},
	}

	for _, test := range tests {
		got, err := Convert(test.value, test.to)
		if err != nil {
			t.Fatalf("Convert(%q, %s) error = %v", test.value, test.to, err)
		}
		if got != test.want {
			t.Fatalf("Convert(%q, %s) = %q, want %q", test.value, test.to, got, test.want)
		}
	}
}

func TestParseRejectsContextualKeywords(t *testing.T) {
	if _, err := Parse("currentColor"); !errors.Is(err, ErrNotConvertible) {
		t.Fatalf("Parse(currentColor) error = %v, want ErrNotConvertible", err)
	}
	if _, err := Parse("not-a-color"); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("Parse(not-a-color) error = %v, want ErrInvalidColor", err)
	}
	if _, err := Convert("#fff", Format("cmyk")); !errors.Is(err, ErrUnsupportedTarget) {
		t.Fatalf("Convert to cmyk error = %v, want ErrUnsupportedTarget", err)
	}
}

func TestParseHSLTriple(t *testing.T) {
	c, err := Parse("0 0% 100%")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if got := c.Hex(); got != "#ffffff" {
		t.Fatalf("Parse(\"0 0%% 100%%\").Hex() = %q, want #ffffff", got)
	}
}

func TestContrastRatio(t *testing.T) {
	tests := []struct {
		name string
		fg   string
		bg   string
		want float64
	}{
		{name: "black_white_hex", fg: "#000000", bg: "#ffffff", want: 21},
		{name: "black_white_triple", fg: "0% 0 0", bg: "100% 0 0", want: 21},
		{name: "same_color", fg: "#3b82f6", bg: "#3b82f6", want: 1},
		{name: "order_independent", fg: "#ffffff", bg: "#000000", want: 21},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ContrastRatio(test.fg, test.bg)
			if err != nil {
				t.Fatalf("ContrastRatio error = %v", err)
			}
			if math.Abs(got-test.want) > 0.05 {
				t.Fatalf("ContrastRatio(%q, %q) = %.3f, want %.1f", test.fg, test.bg, got, test.want)
			}
		})
	}
}

func TestSuggestForeground(t *testing.T) {
	text, ratio, err := SuggestForeground("#1f2937")
	if err != nil {
		t.Fatalf("SuggestForeground error = %v", err)
	}
	if text != lightTextColor {
		t.Fatalf("SuggestForeground(dark) = %q, want %q", text, lightTextColor)
	}
	if ratio < AAContrastRatio {
		t.Fatalf("SuggestForeground ratio = %.2f, want >= %.1f", ratio, AAContrastRatio)
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestOKLCHChroma(t *testing.T) {
	tests := []struct {
		value  string
		want   float64
		wantOK bool
	}{
		{value: "oklch(62.1% 0.19 259.81)", want: 0.19, wantOK: true},
		{value: "70% 0.45 30", want: 0.45, wantOK: true},
		{value: "0.5 0.1 200", want: 0.1, wantOK: true},
		{value: "210 40% 50%", wantOK: false},
		{value: "#3b82f6", wantOK: false},
		{value: "bogus", wantOK: false},
	}

	for _, test := range tests {
		got, ok := OKLCHChroma(test.value)
		if ok != test.wantOK || math.Abs(got-test.want) > 1e-9 {
			t.Fatalf("OKLCHChroma(%q) = %v, %t, want %v, %t", test.value, got, ok, test.want, test.wantOK)
		}
	}
}
