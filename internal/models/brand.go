package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/codr1/themesmith/internal/colors"
)

type BrandColor string

const (
	BrandPrimaryText    BrandColor = "primaryText"
	BrandSecondaryText  BrandColor = "secondaryText"
	BrandIconBackground BrandColor = "iconBackground"
	BrandIcon           BrandColor = "icon"
)

var BrandColors = []BrandColor{BrandPrimaryText, BrandSecondaryText, BrandIconBackground, BrandIcon}

type MonochromeMode string

const (
	MonochromeNone  MonochromeMode = "none"
	MonochromeLight MonochromeMode = "light"
	MonochromeDark  MonochromeMode = "dark"
)

func ParseMonochromeMode(raw string) (MonochromeMode, error) {
	switch MonochromeMode(strings.ToLower(strings.TrimSpace(raw))) {
	case MonochromeNone, "":
		return MonochromeNone, nil
	case MonochromeLight:
		return MonochromeLight, nil
	case MonochromeDark:
		return MonochromeDark, nil
	}
	return "", InvalidFormatError{Field: "monochrome mode", Value: raw, Reason: "must be none, light or dark"}
}

func isBrandColor(property BrandColor) bool {
	for _, c := range BrandColors {
		if c == property {
			return true
		}
	}
	return false
}

// Brand holds the texts, marks and colors shown in the app header. Each of
// the four brand colors either carries an explicit value or links to a color
// name in the owning theme's palettes.
type Brand struct {
	primaryText   string
	secondaryText string
	logoSVG       string
	iconSVG       string
	colors        map[BrandColor]string
	links         map[BrandColor]string
	monochrome    MonochromeMode
}

// NewBrand returns a brand whose colors link to the theme's primary roles.
func NewBrand(primaryText, secondaryText string) (*Brand, error) {
	b := &Brand{
		colors: map[BrandColor]string{
			BrandPrimaryText:    "#0a0a0a",
			BrandSecondaryText:  "#525252",
			BrandIconBackground: "#171717",
			BrandIcon:           "#fafafa",
		},
		links: map[BrandColor]string{
			BrandPrimaryText:    "foreground",
			BrandSecondaryText:  "muted-foreground",
			BrandIconBackground: "primary",
			BrandIcon:           "primary-foreground",
		},
		monochrome: MonochromeNone,
	}
	if err := b.SetText(primaryText, secondaryText); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Brand) PrimaryText() string            { return b.primaryText }
func (b *Brand) SecondaryText() string          { return b.secondaryText }
func (b *Brand) LogoSVG() string                { return b.logoSVG }
func (b *Brand) IconSVG() string                { return b.iconSVG }
func (b *Brand) MonochromeMode() MonochromeMode { return b.monochrome }

// Color returns the explicit value stored for property, ignoring links.
func (b *Brand) Color(property BrandColor) string {
	return b.colors[property]
}

func (b *Brand) Link(property BrandColor) (string, bool) {
	target, ok := b.links[property]
	return target, ok
}

func (b *Brand) SetText(primary, secondary string) error {
	primary = strings.TrimSpace(primary)
	secondary = strings.TrimSpace(secondary)
	if primary == "" {
		return EmptyValueError{Field: "brand primary text"}
	}
	if secondary == "" {
		return EmptyValueError{Field: "brand secondary text"}
	}
	b.primaryText = primary
	b.secondaryText = secondary
	return nil
}

// SetColor stores an explicit value and drops any link on property.
func (b *Brand) SetColor(property BrandColor, value string) error {
	if !isBrandColor(property) {
		return UnknownColorError{Name: string(property)}
	}
	normalized, err := colors.Normalize(value)
	if err != nil {
		return InvalidFormatError{Field: "brand " + string(property) + " color", Value: value, Reason: err.Error()}
	}
	if b.colors == nil {
		b.colors = make(map[BrandColor]string)
	}
	b.colors[property] = normalized
	delete(b.links, property)
	return nil
}

// LinkColor points property at a color name of the owning theme. The target is
// checked against the theme palettes by Theme.UpdateBrand and ResolveColor.
func (b *Brand) LinkColor(property BrandColor, themeColor string) error {
	if !isBrandColor(property) {
		return UnknownColorError{Name: string(property)}
	}
	if strings.TrimSpace(themeColor) == "" {
		return EmptyValueError{Field: "brand " + string(property) + " link target"}
	}
	if b.links == nil {
		b.links = make(map[BrandColor]string)
	}
	b.links[property] = themeColor
	return nil
}

func (b *Brand) UnlinkColor(property BrandColor) {
	delete(b.links, property)
}

// ResolveColor returns the effective value of property, reading linked values
// from palette. A link to a name palette cannot resolve falls back to the
// explicit value.
func (b *Brand) ResolveColor(property BrandColor, palette *ColorPalette) string {
	if target, ok := b.links[property]; ok && palette != nil {
		if value, found := palette.Color(target); found {
			return value
		}
	}
	return b.colors[property]
}

func (b *Brand) SetLogoSVG(content string) error {
	if err := checkSVG("logo", content); err != nil {
		return err
	}
	b.logoSVG = strings.TrimSpace(content)
	return nil
}

func (b *Brand) SetIconSVG(content string) error {
	if err := checkSVG("icon", content); err != nil {
		return err
	}
	b.iconSVG = strings.TrimSpace(content)
	return nil
}

func (b *Brand) SetMonochromeMode(mode MonochromeMode) error {
	parsed, err := ParseMonochromeMode(string(mode))
	if err != nil {
		return err
	}
	b.monochrome = parsed
	return nil
}

// Validate checks texts, color formats and SVG content. Link targets are
// checked by the theme that owns the brand.
func (b *Brand) Validate() ValidationResult {
	var errs []string
	if strings.TrimSpace(b.primaryText) == "" {
		errs = append(errs, "Brand primary text is required")
	}
	if strings.TrimSpace(b.secondaryText) == "" {
		errs = append(errs, "Brand secondary text is required")
	}
	for _, property := range BrandColors {
		value, hasValue := b.colors[property]
		_, linked := b.links[property]
		if !hasValue && !linked {
			errs = append(errs, fmt.Sprintf("Brand color %s has no value or link", property))
			continue
		}
		if hasValue && !colors.IsValid(value) {
			errs = append(errs, fmt.Sprintf("Brand color %s has invalid value %q", property, value))
		}
	}
	if err := checkSVG("logo", b.logoSVG); err != nil {
		errs = append(errs, err.Error())
	}
	if err := checkSVG("icon", b.iconSVG); err != nil {
		errs = append(errs, err.Error())
	}
	if _, err := ParseMonochromeMode(string(b.monochrome)); err != nil {
		errs = append(errs, err.Error())
	}
	return newValidationResult(errs)
}

func (b *Brand) Clone() *Brand {
	if b == nil {
		return nil
	}
	clone := *b
	clone.colors = make(map[BrandColor]string, len(b.colors))
	for k, v := range b.colors {
		clone.colors[k] = v
	}
	clone.links = make(map[BrandColor]string, len(b.links))
	for k, v := range b.links {
		clone.links[k] = v
	}
	return &clone
}

// checkSVG accepts empty content or a document whose root element is <svg>.
// Script elements are refused since the content is inlined into pages.
func checkSVG(label, content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "<?xml") {
		if end := strings.Index(lower, "?>"); end >= 0 {
			lower = strings.TrimSpace(lower[end+2:])
		}
	}
	if !strings.HasPrefix(lower, "<svg") || !strings.HasSuffix(lower, "</svg>") {
		return InvalidFormatError{Field: "brand " + label + " svg", Value: truncate(trimmed, 32), Reason: "not an svg document"}
	}
	if strings.Contains(lower, "<script") {
		return InvalidFormatError{Field: "brand " + label + " svg", Value: truncate(trimmed, 32), Reason: "script elements are not allowed"}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

type brandDocument struct {
	PrimaryText         string            `json:"primaryText"`
	SecondaryText       string            `json:"secondaryText"`
	LogoSVG             string            `json:"logoSvg,omitempty"`
	IconSVG             string            `json:"iconSvg,omitempty"`
	PrimaryTextColor    string            `json:"primaryTextColor"`
	SecondaryTextColor  string            `json:"secondaryTextColor"`
	IconBackgroundColor string            `json:"iconBackgroundColor"`
	IconColor           string            `json:"iconColor"`
	ColorLinks          map[string]string `json:"colorLinks"`
	MonochromeMode      MonochromeMode    `json:"monochromeMode"`
}

func (b *Brand) MarshalJSON() ([]byte, error) {
	doc := brandDocument{
		PrimaryText:         b.primaryText,
		SecondaryText:       b.secondaryText,
		LogoSVG:             b.logoSVG,
		IconSVG:             b.iconSVG,
		PrimaryTextColor:    b.colors[BrandPrimaryText],
		SecondaryTextColor:  b.colors[BrandSecondaryText],
		IconBackgroundColor: b.colors[BrandIconBackground],
		IconColor:           b.colors[BrandIcon],
		ColorLinks:          make(map[string]string, len(b.links)),
		MonochromeMode:      b.monochrome,
	}
	for property, target := range b.links {
		doc.ColorLinks[string(property)] = target
	}
	return json.Marshal(doc)
}

// UnmarshalJSON accepts stored color values as written; invalid ones surface
// through Validate rather than failing the whole document.
func (b *Brand) UnmarshalJSON(data []byte) error {
	var doc brandDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse brand: %w", err)
	}
	mode, err := ParseMonochromeMode(string(doc.MonochromeMode))
	if err != nil {
		return err
	}

	decoded := Brand{
		primaryText:   doc.PrimaryText,
		secondaryText: doc.SecondaryText,
		logoSVG:       doc.LogoSVG,
		iconSVG:       doc.IconSVG,
		colors:        make(map[BrandColor]string),
		links:         make(map[BrandColor]string),
		monochrome:    mode,
	}
	for property, value := range map[BrandColor]string{
		BrandPrimaryText:    doc.PrimaryTextColor,
		BrandSecondaryText:  doc.SecondaryTextColor,
		BrandIconBackground: doc.IconBackgroundColor,
		BrandIcon:           doc.IconColor,
	} {
		if value != "" {
			decoded.colors[property] = value
		}
	}

	properties := make([]string, 0, len(doc.ColorLinks))
	for property := range doc.ColorLinks {
		properties = append(properties, property)
	}
	sort.Strings(properties)
	for _, property := range properties {
		if !isBrandColor(BrandColor(property)) {
			return UnknownColorError{Name: property}
		}
		decoded.links[BrandColor(property)] = doc.ColorLinks[property]
	}

	*b = decoded
	return nil
}
