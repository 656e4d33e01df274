package colors

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// WCAG AA for normal body text.
	AAContrastRatio = 4.5
	// WCAG AAA for normal body text.
	AAAContrastRatio = 7.0
	// WCAG AA for large text and UI components.
	AALargeContrastRatio = 3.0
)

const (
	darkTextColor  = "#000000"
	lightTextColor = "#ffffff"
)

// ContrastRatio returns the WCAG contrast ratio between two color strings.
// Alpha is ignored; translucent colors are measured as if opaque.
func ContrastRatio(foreground, background string) (float64, error) {
	fg, err := Parse(foreground)
	if err != nil {
		return 0, err
	}
	bg, err := Parse(background)
	if err != nil {
		return 0, err
	}
	return ContrastBetween(fg.RGB, bg.RGB), nil
}

// ContrastBetween returns the WCAG contrast ratio between two sRGB colors.
func ContrastBetween(a, b colorful.Color) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	lightest := math.Max(la, lb)
	darkest := math.Min(la, lb)
	return (lightest + 0.05) / (darkest + 0.05)
}

// RelativeLuminance is the WCAG 2 relative luminance of an sRGB color.
func RelativeLuminance(c colorful.Color) float64 {
	c = c.Clamped()
	return 0.2126*srgbToLinear(c.R) + 0.7152*srgbToLinear(c.G) + 0.0722*srgbToLinear(c.B)
}

// SuggestForeground picks black or white text, whichever contrasts more with background.
func SuggestForeground(background string) (string, float64, error) {
	bestRatio := 0.0
	bestText := ""
	for _, text := range []string{darkTextColor, lightTextColor} {
		ratio, err := ContrastRatio(text, background)
		if err != nil {
			return "", 0, err
		}
		if ratio > bestRatio {
			bestRatio = ratio
			bestText = text
		}
	}
	return bestText, bestRatio, nil
}

func srgbToLinear(value float64) float64 {
	if value <= 0.03928 {
		return value / 12.92
	}
	return math.Pow((value+0.055)/1.055, 2.4)
}
