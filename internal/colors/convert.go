package colors

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a parsed color in sRGB with its alpha and the format it came from.
type Color struct {
	RGB    colorful.Color
	Alpha  float64
	Source Format
}

// Parse converts any convertible color string to sRGB. Triples are read as
// OKLCH when the first component carries a percent sign and as HSL ("H S% L%")
// when only the last two do. Out-of-gamut colors are clamped.
func Parse(raw string) (Color, error) {
	p, err := recognize(raw)
	if err != nil {
		return Color{}, err
	}
	alpha := 1.0
	if p.hasAlpha {
		alpha = p.alpha
	}

	var rgb colorful.Color
	switch p.format {
	case FormatHex:
		rgb, err = colorful.Hex(p.hex[:7])
		if err != nil {
			return Color{}, fmt.Errorf("%w: %v", ErrInvalidColor, err)
		}
		if len(p.hex) == 9 {
			a, err := strconv.ParseUint(p.hex[7:], 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("%w: alpha %q", ErrInvalidColor, p.hex[7:])
			}
			alpha = float64(a) / 255
		}
	case FormatRGB, FormatRGBA:
		rgb = colorful.Color{R: p.values[0] / 255, G: p.values[1] / 255, B: p.values[2] / 255}
	case FormatHSL, FormatHSLA:
		rgb = colorful.Hsl(math.Mod(p.values[0], 360), p.values[1]/100, p.values[2]/100)
	case FormatOKLCH:
		rgb = colorful.OkLch(p.values[0], p.values[1], p.values[2])
	case FormatTriple:
		rgb, err = tripleToRGB(p)
		if err != nil {
			return Color{}, err
		}
	case FormatNamed:
		named := namedColors[strings.ToLower(p.name)]
		if named.canonical == "transparent" {
			return Color{Alpha: 0, Source: FormatNamed}, nil
		}
		if named.hex == "" {
			return Color{}, fmt.Errorf("%w: %q depends on context", ErrNotConvertible, p.name)
		}
		rgb, _ = colorful.Hex(named.hex)
	}
	return Color{RGB: rgb.Clamped(), Alpha: alpha, Source: p.format}, nil
}

func tripleToRGB(p parsed) (colorful.Color, error) {
	switch {
	case p.percent[0]:
		return colorful.OkLch(p.values[0]/100, p.values[1], p.values[2]), nil
	case p.percent[1] && p.percent[2]:
		return colorful.Hsl(math.Mod(p.values[0], 360), p.values[1]/100, p.values[2]/100), nil
	case p.values[0] >= 0 && p.values[0] <= 1:
		return colorful.OkLch(p.values[0], p.values[1], p.values[2]), nil
	}
	return colorful.Color{}, fmt.Errorf("%w: ambiguous triple", ErrNotConvertible)
}

// Hex renders the color as #rrggbb, or #rrggbbaa when translucent.
func (c Color) Hex() string {
	hex := c.RGB.Clamped().Hex()
	if a := math.Round(c.Alpha * 255); a < 255 {
		hex += fmt.Sprintf("%02x", uint8(a))
	}
	return hex
}

func (c Color) RGBString() string {
	r, g, b := c.RGB.Clamped().RGB255()
	if alpha := roundTo(c.Alpha, 4); alpha < 1 {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatNumber(alpha, 4))
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

func (c Color) HSLString() string {
	h, s, l := c.RGB.Clamped().Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	hue := int(math.Round(h)) % 360
	if alpha := roundTo(c.Alpha, 4); alpha < 1 {
		return fmt.Sprintf("hsla(%d, %d%%, %d%%, %s)", hue, int(math.Round(s*100)), int(math.Round(l*100)), formatNumber(alpha, 4))
	}
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hue, int(math.Round(s*100)), int(math.Round(l*100)))
}

// OKLCHTriple renders the color as the "L% C H" storage triple. Alpha is dropped.
func (c Color) OKLCHTriple() string {
	l, ch, h := c.RGB.OkLch()
	// Chroma that prints as zero is achromatic; its hue is noise.
	if formatNumber(ch, 4) == "0" || math.IsNaN(h) {
		ch, h = 0, 0
	}
	return oklchTriple(l, ch, h)
}

// OKLCH renders the color in CSS oklch() notation.
func (c Color) OKLCH() string {
	if alpha := roundTo(c.Alpha, 4); alpha < 1 {
		return fmt.Sprintf("oklch(%s / %s)", c.OKLCHTriple(), formatNumber(alpha, 4))
	}
	return fmt.Sprintf("oklch(%s)", c.OKLCHTriple())
}

// Convert re-encodes raw in the target format.
func Convert(raw string, to Format) (string, error) {
	c, err := Parse(raw)
	if err != nil {
		return "", err
	}
	switch to {
	case FormatHex:
		return c.Hex(), nil
	case FormatRGB, FormatRGBA:
		return c.RGBString(), nil
	case FormatHSL, FormatHSLA:
		return c.HSLString(), nil
	case FormatOKLCH:
		return c.OKLCH(), nil
	case FormatTriple:
		return c.OKLCHTriple(), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedTarget, to)
}

// OKLCHChroma returns the chroma of raw as written when raw is an oklch()
// value or a triple read as OKLCH. It reports false for every other form.
func OKLCHChroma(raw string) (float64, bool) {
	p, err := recognize(raw)
	if err != nil {
		return 0, false
	}
	switch p.format {
	case FormatOKLCH:
		return p.values[1], true
	case FormatTriple:
		if p.percent[0] || (!p.percent[1] && !p.percent[2] && p.values[0] >= 0 && p.values[0] <= 1) {
			return p.values[1], true
		}
	}
	return 0, false
}
