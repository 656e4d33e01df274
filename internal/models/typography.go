package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	FontSizeScales      = []string{"xs", "sm", "base", "lg", "xl", "2xl", "3xl", "4xl", "5xl"}
	FontWeightScales    = []string{"thin", "extralight", "light", "normal", "medium", "semibold", "bold", "extrabold", "black"}
	LineHeightScales    = []string{"none", "tight", "snug", "normal", "relaxed", "loose"}
	LetterSpacingScales = []string{"tighter", "tight", "normal", "wide", "wider", "widest"}
	Breakpoints         = []string{"sm", "md", "lg", "xl", "2xl"}
)

var cssLengthRegex = regexp.MustCompile(`^-?(?:\d+|\d*\.\d+)(?:px|rem|em|%|pt|vh|vw|ch|ex)?$`)

// FontWeight accepts both JSON numbers and numeric strings.
type FontWeight int

func (w *FontWeight) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*w = FontWeight(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("font weight must be a number: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("font weight %q is not a number", s)
	}
	*w = FontWeight(n)
	return nil
}

// ResponsiveTypography overrides scales at one breakpoint.
type ResponsiveTypography struct {
	FontSize   map[string]string `json:"fontSize,omitempty"`
	LineHeight map[string]string `json:"lineHeight,omitempty"`
}

type Typography struct {
	FontFamily     string                          `json:"fontFamily"`
	MonoFontFamily string                          `json:"monoFontFamily"`
	FontSize       map[string]string               `json:"fontSize"`
	FontWeight     map[string]FontWeight           `json:"fontWeight"`
	LineHeight     map[string]string               `json:"lineHeight"`
	LetterSpacing  map[string]string               `json:"letterSpacing"`
	Responsive     map[string]ResponsiveTypography `json:"responsive"`
}

func DefaultTypography() *Typography {
	return &Typography{
		FontFamily:     "Inter, system-ui, sans-serif",
		MonoFontFamily: "JetBrains Mono, ui-monospace, monospace",
		FontSize: map[string]string{
			"xs":   "0.75rem",
			"sm":   "0.875rem",
			"base": "1rem",
			"lg":   "1.125rem",
			"xl":   "1.25rem",
			"2xl":  "1.5rem",
			"3xl":  "1.875rem",
			"4xl":  "2.25rem",
			"5xl":  "3rem",
		},
		FontWeight: map[string]FontWeight{
			"thin":       100,
			"extralight": 200,
			"light":      300,
			"normal":     400,
			"medium":     500,
			"semibold":   600,
			"bold":       700,
			"extrabold":  800,
			"black":      900,
		},
		LineHeight: map[string]string{
			"none":    "1",
			"tight":   "1.25",
			"snug":    "1.375",
			"normal":  "1.5",
			"relaxed": "1.625",
			"loose":   "2",
		},
		LetterSpacing: map[string]string{
			"tighter": "-0.05em",
			"tight":   "-0.025em",
			"normal":  "0em",
			"wide":    "0.025em",
			"wider":   "0.05em",
			"widest":  "0.1em",
		},
		Responsive: map[string]ResponsiveTypography{},
	}
}

func (t *Typography) Clone() *Typography {
	if t == nil {
		return nil
	}
	clone := &Typography{
		FontFamily:     t.FontFamily,
		MonoFontFamily: t.MonoFontFamily,
		FontSize:       copyStrings(t.FontSize),
		LineHeight:     copyStrings(t.LineHeight),
		LetterSpacing:  copyStrings(t.LetterSpacing),
	}
	if t.FontWeight != nil {
		clone.FontWeight = make(map[string]FontWeight, len(t.FontWeight))
		for scale, weight := range t.FontWeight {
			clone.FontWeight[scale] = weight
		}
	}
	if t.Responsive != nil {
		clone.Responsive = make(map[string]ResponsiveTypography, len(t.Responsive))
	}
	for bp, override := range t.Responsive {
		clone.Responsive[bp] = ResponsiveTypography{
			FontSize:   copyStrings(override.FontSize),
			LineHeight: copyStrings(override.LineHeight),
		}
	}
	return clone
}

func (t *Typography) SetFontFamily(primary, mono string) error {
	if strings.TrimSpace(primary) == "" {
		return EmptyValueError{Field: "font family"}
	}
	if strings.TrimSpace(mono) == "" {
		return EmptyValueError{Field: "monospace font family"}
	}
	t.FontFamily = strings.TrimSpace(primary)
	t.MonoFontFamily = strings.TrimSpace(mono)
	return nil
}

func (t *Typography) SetFontSize(scale, value string) error {
	if err := checkScale("font size", FontSizeScales, scale); err != nil {
		return err
	}
	if !IsCSSLength(value) {
		return InvalidFormatError{Field: "font size " + scale, Value: value, Reason: "expected a CSS length"}
	}
	if t.FontSize == nil {
		t.FontSize = make(map[string]string)
	}
	t.FontSize[scale] = value
	return nil
}

func (t *Typography) SetFontWeight(scale string, weight int) error {
	if err := checkScale("font weight", FontWeightScales, scale); err != nil {
		return err
	}
	if !IsFontWeight(weight) {
		return InvalidFormatError{Field: "font weight " + scale, Value: strconv.Itoa(weight), Reason: "must be a multiple of 100 between 100 and 900"}
	}
	if t.FontWeight == nil {
		t.FontWeight = make(map[string]FontWeight)
	}
	t.FontWeight[scale] = FontWeight(weight)
	return nil
}

func (t *Typography) SetLineHeight(scale, value string) error {
	if err := checkScale("line height", LineHeightScales, scale); err != nil {
		return err
	}
	if !IsCSSLength(value) {
		return InvalidFormatError{Field: "line height " + scale, Value: value, Reason: "expected a CSS length or unitless number"}
	}
	if t.LineHeight == nil {
		t.LineHeight = make(map[string]string)
	}
	t.LineHeight[scale] = value
	return nil
}

func (t *Typography) SetLetterSpacing(scale, value string) error {
	if err := checkScale("letter spacing", LetterSpacingScales, scale); err != nil {
		return err
	}
	if !IsCSSLength(value) {
		return InvalidFormatError{Field: "letter spacing " + scale, Value: value, Reason: "expected a CSS length"}
	}
	if t.LetterSpacing == nil {
		t.LetterSpacing = make(map[string]string)
	}
	t.LetterSpacing[scale] = value
	return nil
}

// SetResponsiveFontSize overrides a font size at one breakpoint.
func (t *Typography) SetResponsiveFontSize(breakpoint, scale, value string) error {
	if err := checkScale("breakpoint", Breakpoints, breakpoint); err != nil {
		return err
	}
	if err := checkScale("font size", FontSizeScales, scale); err != nil {
		return err
	}
	if !IsCSSLength(value) {
		return InvalidFormatError{Field: fmt.Sprintf("%s font size %s", breakpoint, scale), Value: value, Reason: "expected a CSS length"}
	}
	if t.Responsive == nil {
		t.Responsive = make(map[string]ResponsiveTypography)
	}
	override := t.Responsive[breakpoint]
	if override.FontSize == nil {
		override.FontSize = make(map[string]string)
	}
	override.FontSize[scale] = value
	t.Responsive[breakpoint] = override
	return nil
}

// Validate checks families, scale vocabularies and value grammars.
func (t *Typography) Validate() ValidationResult {
	var errs []string
	if strings.TrimSpace(t.FontFamily) == "" {
		errs = append(errs, "Font family is required")
	}
	if strings.TrimSpace(t.MonoFontFamily) == "" {
		errs = append(errs, "Monospace font family is required")
	}
	errs = append(errs, validateLengths("font size", FontSizeScales, t.FontSize)...)
	errs = append(errs, validateLengths("line height", LineHeightScales, t.LineHeight)...)
	errs = append(errs, validateLengths("letter spacing", LetterSpacingScales, t.LetterSpacing)...)

	for _, scale := range sortedWeightKeys(t.FontWeight) {
		if !contains(FontWeightScales, scale) {
			errs = append(errs, fmt.Sprintf("Unknown font weight scale: %s", scale))
			continue
		}
		if !IsFontWeight(int(t.FontWeight[scale])) {
			errs = append(errs, fmt.Sprintf("Font weight %s must be a multiple of 100 between 100 and 900, got %d", scale, t.FontWeight[scale]))
		}
	}

	breakpoints := make([]string, 0, len(t.Responsive))
	for bp := range t.Responsive {
		breakpoints = append(breakpoints, bp)
	}
	sort.Strings(breakpoints)
	for _, bp := range breakpoints {
		if !contains(Breakpoints, bp) {
			errs = append(errs, fmt.Sprintf("Unknown breakpoint: %s", bp))
			continue
		}
		override := t.Responsive[bp]
		errs = append(errs, validateLengths(bp+" font size", FontSizeScales, override.FontSize)...)
		errs = append(errs, validateLengths(bp+" line height", LineHeightScales, override.LineHeight)...)
	}
	return newValidationResult(errs)
}

// IsCSSLength matches a CSS length or a unitless number.
func IsCSSLength(value string) bool {
	return cssLengthRegex.MatchString(strings.TrimSpace(value))
}

func IsFontWeight(weight int) bool {
	return weight >= 100 && weight <= 900 && weight%100 == 0
}

func validateLengths(label string, vocabulary []string, values map[string]string) []string {
	var errs []string
	for _, scale := range sortedKeys(values) {
		if !contains(vocabulary, scale) {
			errs = append(errs, fmt.Sprintf("Unknown %s scale: %s", label, scale))
			continue
		}
		if !IsCSSLength(values[scale]) {
			errs = append(errs, fmt.Sprintf("Invalid %s %s: %q", label, scale, values[scale]))
		}
	}
	return errs
}

func checkScale(label string, vocabulary []string, scale string) error {
	if !contains(vocabulary, scale) {
		return InvalidFormatError{Field: label + " scale", Value: scale, Reason: "expected one of " + strings.Join(vocabulary, ", ")}
	}
	return nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func copyStrings(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedWeightKeys(m map[string]FontWeight) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
