// Package colors recognizes, normalizes and converts CSS color strings.
//
// Every function in this package is stateless. Validation never panics and
// never returns an error value; the outcome is carried in a Result so callers
// can render per-field diagnostics.
package colors

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

type Format string

const (
	FormatHex    Format = "hex"
	FormatRGB    Format = "rgb"
	FormatRGBA   Format = "rgba"
	FormatHSL    Format = "hsl"
	FormatHSLA   Format = "hsla"
	FormatOKLCH  Format = "oklch"
	FormatTriple Format = "tailwind"
	FormatNamed  Format = "named"
)

const (
	// MaxOKLCHChroma is the hard cap for chroma. Real sRGB colors stay below 0.37.
	MaxOKLCHChroma = 0.5
	// WideGamutChroma marks chroma values that are accepted but rarely displayable.
	WideGamutChroma = 0.4
	// oklchPercentChroma is the chroma that "100%" maps to in CSS Color 4.
	oklchPercentChroma = 0.4
)

// Result is the outcome of validating a single color string.
type Result struct {
	Valid      bool   `json:"isValid"`
	Format     Format `json:"format,omitempty"`
	Normalized string `json:"normalizedValue,omitempty"`
	Error      string `json:"error,omitempty"`
}

// parsed holds the components of a recognized color in their native units.
type parsed struct {
	format   Format
	values   [3]float64
	percent  [3]bool
	alpha    float64
	hasAlpha bool
	hex      string
	name     string
}

type recognizer struct {
	format Format
	match  func(string) bool
	parse  func(string) (parsed, error)
}

var (
	hexPattern    = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	rgbPattern    = regexp.MustCompile(`(?i)^rgb\((.*)\)$`)
	rgbaPattern   = regexp.MustCompile(`(?i)^rgba\((.*)\)$`)
	hslPattern    = regexp.MustCompile(`(?i)^hsl\((.*)\)$`)
	hslaPattern   = regexp.MustCompile(`(?i)^hsla\((.*)\)$`)
	oklchPattern  = regexp.MustCompile(`(?i)^oklch\((.*)\)$`)
	triplePattern = regexp.MustCompile(`^[-+]?[0-9.]+%?\s+[-+]?[0-9.]+%?\s+[-+]?[0-9.]+%?$`)
)

// recognizers run in priority order; the first pattern that matches decides the format.
var recognizers = []recognizer{
	{format: FormatHex, match: hexPattern.MatchString, parse: parseHex},
	{format: FormatRGB, match: rgbPattern.MatchString, parse: parseRGB},
	{format: FormatRGBA, match: rgbaPattern.MatchString, parse: parseRGBA},
	{format: FormatHSL, match: hslPattern.MatchString, parse: parseHSL},
	{format: FormatHSLA, match: hslaPattern.MatchString, parse: parseHSLA},
	{format: FormatOKLCH, match: oklchPattern.MatchString, parse: parseOKLCH},
	{format: FormatTriple, match: triplePattern.MatchString, parse: parseTriple},
	{format: FormatNamed, match: isNamed, parse: parseNamed},
}

// Validate recognizes raw and returns its format and normalized form.
func Validate(raw string) Result {
	p, err := recognize(raw)
	if err != nil {
		return Result{Format: p.format, Error: err.Error()}
	}
	return Result{Valid: true, Format: p.format, Normalized: p.normalize()}
}

// IsValid reports whether raw is an accepted color string.
func IsValid(raw string) bool {
	_, err := recognize(raw)
	return err == nil
}

// Normalize returns the canonical form of raw. OKLCH colors without alpha
// normalize to the space-separated triple used for palette storage.
func Normalize(raw string) (string, error) {
	p, err := recognize(raw)
	if err != nil {
		return "", err
	}
	return p.normalize(), nil
}

// DetectFormat returns the format raw would be recognized as, or "" when none match.
func DetectFormat(raw string) Format {
	value := strings.TrimSpace(raw)
	for _, r := range recognizers {
		if r.match(value) {
			return r.format
		}
	}
	return ""
}

func recognize(raw string) (parsed, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return parsed{}, fmt.Errorf("%w: color value is required", ErrInvalidColor)
	}
	for _, r := range recognizers {
		if !r.match(value) {
			continue
		}
		p, err := r.parse(value)
		p.format = r.format
		if err != nil {
			return p, fmt.Errorf("%w: %s %v", ErrInvalidColor, r.format, err)
		}
		return p, nil
	}
	return parsed{}, fmt.Errorf("%w: unrecognized color format %q", ErrInvalidColor, value)
}

func parseHex(value string) (parsed, error) {
	digits := strings.ToLower(strings.TrimPrefix(value, "#"))
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	return parsed{hex: "#" + digits}, nil
}

func parseRGB(value string) (parsed, error) {
	return parseRGBArgs(rgbPattern.FindStringSubmatch(value)[1], false)
}

func parseRGBA(value string) (parsed, error) {
	return parseRGBArgs(rgbaPattern.FindStringSubmatch(value)[1], true)
}

func parseRGBArgs(body string, withAlpha bool) (parsed, error) {
	args := splitArgs(body)
	want := 3
	if withAlpha {
		want = 4
	}
	if len(args) != want {
		return parsed{}, fmt.Errorf("expects %d channels, got %d", want, len(args))
	}
	var p parsed
	for i := 0; i < 3; i++ {
		v, err := parseIntInRange(args[i], 0, 255)
		if err != nil {
			return parsed{}, fmt.Errorf("channel %d %v", i+1, err)
		}
		p.values[i] = float64(v)
	}
	if withAlpha {
		a, err := parseUnitAlpha(args[3])
		if err != nil {
			return parsed{}, err
		}
		p.alpha, p.hasAlpha = a, true
	}
	return p, nil
}

func parseHSL(value string) (parsed, error) {
	return parseHSLArgs(hslPattern.FindStringSubmatch(value)[1], false)
}

func parseHSLA(value string) (parsed, error) {
	return parseHSLArgs(hslaPattern.FindStringSubmatch(value)[1], true)
}

func parseHSLArgs(body string, withAlpha bool) (parsed, error) {
	args := splitArgs(body)
	want := 3
	if withAlpha {
		want = 4
	}
	if len(args) != want {
		return parsed{}, fmt.Errorf("expects %d components, got %d", want, len(args))
	}
	var p parsed
	hue, err := parseIntInRange(strings.TrimSuffix(args[0], "deg"), 0, 360)
	if err != nil {
		return parsed{}, fmt.Errorf("hue %v", err)
	}
	p.values[0] = float64(hue)
	for i, label := range []string{"saturation", "lightness"} {
		v, err := parseIntInRange(strings.TrimSuffix(args[i+1], "%"), 0, 100)
		if err != nil {
			return parsed{}, fmt.Errorf("%s %v", label, err)
		}
		p.values[i+1] = float64(v)
	}
	if withAlpha {
		a, err := parseUnitAlpha(args[3])
		if err != nil {
			return parsed{}, err
		}
		p.alpha, p.hasAlpha = a, true
	}
	return p, nil
}

func parseOKLCH(value string) (parsed, error) {
	body := oklchPattern.FindStringSubmatch(value)[1]
	alphaPart := ""
	if idx := strings.Index(body, "/"); idx >= 0 {
		alphaPart = strings.TrimSpace(body[idx+1:])
		body = body[:idx]
	}
	fields := strings.Fields(body)
	if len(fields) != 3 {
		return parsed{}, fmt.Errorf("expects 3 components, got %d", len(fields))
	}

	var p parsed
	lightness, err := parseLightness(fields[0])
	if err != nil {
		return parsed{}, err
	}
	p.values[0] = lightness

	chroma, err := parseChroma(fields[1])
	if err != nil {
		return parsed{}, err
	}
	p.values[1] = chroma

	hue, err := parseFloatInRange(strings.TrimSuffix(fields[2], "deg"), 0, 360)
	if err != nil {
		return parsed{}, fmt.Errorf("hue %v", err)
	}
	p.values[2] = hue

	if alphaPart != "" {
		a, err := parseFlexibleAlpha(alphaPart)
		if err != nil {
			return parsed{}, err
		}
		p.alpha, p.hasAlpha = a, true
	}
	return p, nil
}

func parseLightness(token string) (float64, error) {
	if strings.HasSuffix(token, "%") {
		v, err := parseFloatInRange(strings.TrimSuffix(token, "%"), 0, 100)
		if err != nil {
			return 0, fmt.Errorf("lightness %v", err)
		}
		return v / 100, nil
	}
	v, err := parseFloatInRange(token, 0, 1)
	if err != nil {
		return 0, fmt.Errorf("lightness %v", err)
	}
	return v, nil
}

func parseChroma(token string) (float64, error) {
	if strings.HasSuffix(token, "%") {
		v, err := parseFloatInRange(strings.TrimSuffix(token, "%"), 0, 100*MaxOKLCHChroma/oklchPercentChroma)
		if err != nil {
			return 0, fmt.Errorf("chroma %v", err)
		}
		return v / 100 * oklchPercentChroma, nil
	}
	v, err := parseFloatInRange(token, 0, MaxOKLCHChroma)
	if err != nil {
		return 0, fmt.Errorf("chroma %v", err)
	}
	return v, nil
}

func parseTriple(value string) (parsed, error) {
	var p parsed
	for i, token := range strings.Fields(value) {
		if strings.HasSuffix(token, "%") {
			p.percent[i] = true
			token = strings.TrimSuffix(token, "%")
		}
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return parsed{}, fmt.Errorf("component %d is not a number", i+1)
		}
		p.values[i] = v
	}
	return p, nil
}

func parseNamed(value string) (parsed, error) {
	return parsed{name: namedColors[strings.ToLower(value)].canonical}, nil
}

func (p parsed) normalize() string {
	switch p.format {
	case FormatHex:
		return p.hex
	case FormatRGB:
		return fmt.Sprintf("rgb(%s, %s, %s)", formatNumber(p.values[0], 0), formatNumber(p.values[1], 0), formatNumber(p.values[2], 0))
	case FormatRGBA:
		return fmt.Sprintf("rgba(%s, %s, %s, %s)", formatNumber(p.values[0], 0), formatNumber(p.values[1], 0), formatNumber(p.values[2], 0), formatNumber(p.alpha, 4))
	case FormatHSL:
		return fmt.Sprintf("hsl(%s, %s%%, %s%%)", formatNumber(p.values[0], 0), formatNumber(p.values[1], 0), formatNumber(p.values[2], 0))
	case FormatHSLA:
		return fmt.Sprintf("hsla(%s, %s%%, %s%%, %s)", formatNumber(p.values[0], 0), formatNumber(p.values[1], 0), formatNumber(p.values[2], 0), formatNumber(p.alpha, 4))
	case FormatOKLCH:
		triple := oklchTriple(p.values[0], p.values[1], p.values[2])
		if alpha := roundTo(p.alpha, 4); p.hasAlpha && alpha < 1 {
			return fmt.Sprintf("oklch(%s / %s)", triple, formatNumber(alpha, 4))
		}
		return triple
	case FormatTriple:
		tokens := make([]string, 3)
		for i, v := range p.values {
			tokens[i] = formatNumber(v, 4)
			if p.percent[i] {
				tokens[i] += "%"
			}
		}
		return strings.Join(tokens, " ")
	case FormatNamed:
		return p.name
	}
	return ""
}

// oklchTriple renders OKLCH components (lightness in [0,1]) as "L% C H".
func oklchTriple(l, c, h float64) string {
	return fmt.Sprintf("%s%% %s %s", formatNumber(l*100, 2), formatNumber(c, 4), formatNumber(h, 2))
}

func splitArgs(body string) []string {
	parts := strings.Split(body, ",")
	args := make([]string, 0, len(parts))
	for _, part := range parts {
		args = append(args, strings.TrimSpace(part))
	}
	return args
}

func parseIntInRange(token string, min, max int) (int, error) {
	token = strings.TrimSpace(token)
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("must be an integer, got %q", token)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("must be between %d and %d, got %d", min, max, v)
	}
	return v, nil
}

func parseFloatInRange(token string, min, max float64) (float64, error) {
	token = strings.TrimSpace(token)
	v, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("must be a number, got %q", token)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("must be between %s and %s, got %s", formatNumber(min, 4), formatNumber(max, 4), token)
	}
	return v, nil
}

func parseUnitAlpha(token string) (float64, error) {
	v, err := parseFloatInRange(token, 0, 1)
	if err != nil {
		return 0, fmt.Errorf("alpha %v", err)
	}
	return v, nil
}

func parseFlexibleAlpha(token string) (float64, error) {
	if strings.HasSuffix(token, "%") {
		v, err := parseFloatInRange(strings.TrimSuffix(token, "%"), 0, 100)
		if err != nil {
			return 0, fmt.Errorf("alpha %v", err)
		}
		return v / 100, nil
	}
	return parseUnitAlpha(token)
}

// formatNumber rounds v to the given decimals and drops trailing zeros.
// roundTo rounds v to the precision formatNumber prints.
func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

func formatNumber(v float64, decimals int) string {
	v = roundTo(v, decimals)
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
