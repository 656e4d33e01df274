package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeLight:
		return ModeLight, nil
	case ModeDark:
		return ModeDark, nil
	}
	return "", InvalidFormatError{Field: "mode", Value: raw, Reason: "must be light or dark"}
}

// RequiredColors are the semantic roles every complete palette defines, in
// declaration order.
var RequiredColors = []string{
	"primary",
	"primary-foreground",
	"secondary",
	"secondary-foreground",
	"background",
	"foreground",
	"card",
	"card-foreground",
	"popover",
	"popover-foreground",
	"muted",
	"muted-foreground",
	"accent",
	"accent-foreground",
	"destructive",
	"destructive-foreground",
	"border",
	"input",
	"ring",
}

var requiredColorSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(RequiredColors))
	for _, name := range RequiredColors {
		set[name] = struct{}{}
	}
	return set
}()

func IsRequiredColor(name string) bool {
	_, ok := requiredColorSet[name]
	return ok
}

// ColorPalette holds the named colors of one display mode and the link
// relation between them. A linked color reads its effective value from its
// target, following the chain until an unlinked color is reached. The link
// relation is kept acyclic by LinkColor.
type ColorPalette struct {
	mode   Mode
	colors map[string]string
	links  map[string]string
}

// NewColorPalette copies colors into a new palette with no links.
func NewColorPalette(mode Mode, colors map[string]string) *ColorPalette {
	p := &ColorPalette{
		mode:   mode,
		colors: make(map[string]string, len(colors)),
		links:  make(map[string]string),
	}
	for name, value := range colors {
		p.colors[name] = value
	}
	return p
}

func (p *ColorPalette) Mode() Mode {
	return p.mode
}

func (p *ColorPalette) Len() int {
	return len(p.colors)
}

func (p *ColorPalette) Has(name string) bool {
	_, ok := p.colors[name]
	return ok
}

// Color returns the effective value of name, resolving links transitively.
// It reports false when name or any link target along the chain is missing.
func (p *ColorPalette) Color(name string) (string, bool) {
	current := name
	visited := make(map[string]struct{})
	for {
		if _, seen := visited[current]; seen {
			return "", false
		}
		visited[current] = struct{}{}

		target, linked := p.links[current]
		if !linked {
			value, ok := p.colors[current]
			return value, ok
		}
		current = target
	}
}

// RawColor returns the value stored under name, ignoring any link.
func (p *ColorPalette) RawColor(name string) (string, bool) {
	value, ok := p.colors[name]
	return value, ok
}

// LinkTarget returns the direct link target of name.
func (p *ColorPalette) LinkTarget(name string) (string, bool) {
	target, ok := p.links[name]
	return target, ok
}

// Names returns all color names sorted.
func (p *ColorPalette) Names() []string {
	names := make([]string, 0, len(p.colors))
	for name := range p.colors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Colors returns a copy of the stored values.
func (p *ColorPalette) Colors() map[string]string {
	out := make(map[string]string, len(p.colors))
	for name, value := range p.colors {
		out[name] = value
	}
	return out
}

// Resolved returns the effective value of every color that resolves.
func (p *ColorPalette) Resolved() map[string]string {
	out := make(map[string]string, len(p.colors))
	for name := range p.colors {
		if value, ok := p.Color(name); ok {
			out[name] = value
		}
	}
	return out
}

// Links returns a copy of the link relation.
func (p *ColorPalette) Links() map[string]string {
	out := make(map[string]string, len(p.links))
	for source, target := range p.links {
		out[source] = target
	}
	return out
}

// UpdateColor stores value under name, creating the color if needed, and
// clears any link from name. Format checks belong to the caller.
func (p *ColorPalette) UpdateColor(name, value string) error {
	if strings.TrimSpace(name) == "" {
		return EmptyValueError{Field: "color name"}
	}
	if strings.TrimSpace(value) == "" {
		return EmptyValueError{Field: fmt.Sprintf("color %q value", name)}
	}
	p.colors[name] = value
	delete(p.links, name)
	return nil
}

func (p *ColorPalette) AddColor(name, value string) error {
	if _, exists := p.colors[name]; exists {
		return DuplicateColorError{Name: name}
	}
	return p.UpdateColor(name, value)
}

// RemoveColor deletes a non-required color together with every link from or
// to it, so no link is left dangling.
func (p *ColorPalette) RemoveColor(name string) error {
	if IsRequiredColor(name) {
		return ProtectedColorError{Name: name}
	}
	if _, exists := p.colors[name]; !exists {
		return UnknownColorError{Name: name}
	}
	delete(p.colors, name)
	delete(p.links, name)
	for source, target := range p.links {
		if target == name {
			delete(p.links, source)
		}
	}
	return nil
}

// CheckLink reports whether LinkColor(source, target) would succeed without
// changing the palette.
func (p *ColorPalette) CheckLink(source, target string) error {
	if source == target {
		return SelfLinkError{Name: source}
	}
	if _, ok := p.colors[source]; !ok {
		return UnknownColorError{Name: source}
	}
	if _, ok := p.colors[target]; !ok {
		return UnknownColorError{Name: target}
	}
	return p.checkCycle(source, target)
}

// checkCycle walks the chain starting at target. Reaching source means the
// new edge source -> target would close a cycle.
func (p *ColorPalette) checkCycle(source, target string) error {
	path := []string{target}
	visited := map[string]struct{}{target: {}}
	current := target
	for {
		if current == source {
			return CircularLinkError{Source: source, Target: target, Path: path}
		}
		next, linked := p.links[current]
		if !linked {
			return nil
		}
		if _, seen := visited[next]; seen {
			return nil
		}
		visited[next] = struct{}{}
		path = append(path, next)
		current = next
	}
}

func (p *ColorPalette) LinkColor(source, target string) error {
	if err := p.CheckLink(source, target); err != nil {
		return err
	}
	p.links[source] = target
	return nil
}

// restoreLink sets a link loaded from a document. Dangling targets are kept so
// Validate can report them; self links and cycles are still rejected.
func (p *ColorPalette) restoreLink(source, target string) error {
	if source == target {
		return SelfLinkError{Name: source}
	}
	if err := p.checkCycle(source, target); err != nil {
		return err
	}
	p.links[source] = target
	return nil
}

// UnlinkColor removes the link from name if there is one.
func (p *ColorPalette) UnlinkColor(name string) {
	delete(p.links, name)
}

// Validate reports missing required colors in declaration order, empty
// values, and links whose source or target no longer exists.
func (p *ColorPalette) Validate() ValidationResult {
	var errs []string
	for _, name := range RequiredColors {
		if _, ok := p.colors[name]; !ok {
			errs = append(errs, fmt.Sprintf("Missing required color: %s", name))
		}
	}
	for _, name := range p.Names() {
		if strings.TrimSpace(p.colors[name]) == "" {
			errs = append(errs, fmt.Sprintf("Color %s has an empty value", name))
		}
	}
	for _, source := range sortedKeys(p.links) {
		target := p.links[source]
		if _, ok := p.colors[source]; !ok {
			errs = append(errs, fmt.Sprintf("Link source %s does not exist", source))
		}
		if _, ok := p.colors[target]; !ok {
			errs = append(errs, fmt.Sprintf("Color %s links to missing color %s", source, target))
		}
	}
	return newValidationResult(errs)
}

// Equals compares effective values and link topology.
func (p *ColorPalette) Equals(other *ColorPalette) bool {
	if other == nil {
		return false
	}
	if len(p.colors) != len(other.colors) || len(p.links) != len(other.links) {
		return false
	}
	for name := range p.colors {
		if !other.Has(name) {
			return false
		}
		mine, myOK := p.Color(name)
		theirs, theirOK := other.Color(name)
		if myOK != theirOK || mine != theirs {
			return false
		}
	}
	for source, target := range p.links {
		if other.links[source] != target {
			return false
		}
	}
	return true
}

// Merge adds the colors of other. Existing names keep their value unless
// overwrite is set, and links from other are adopted only when overwrite is
// set. Links that would be invalid here are skipped and returned as errors.
func (p *ColorPalette) Merge(other *ColorPalette, overwrite bool) []error {
	if other == nil {
		return nil
	}
	for _, name := range other.Names() {
		if _, exists := p.colors[name]; exists && !overwrite {
			continue
		}
		p.colors[name] = other.colors[name]
		if overwrite {
			delete(p.links, name)
		}
	}
	if !overwrite {
		return nil
	}
	var skipped []error
	for _, source := range sortedKeys(other.links) {
		if err := p.LinkColor(source, other.links[source]); err != nil {
			skipped = append(skipped, err)
		}
	}
	return skipped
}

func (p *ColorPalette) Clone() *ColorPalette {
	clone := NewColorPalette(p.mode, p.colors)
	for source, target := range p.links {
		clone.links[source] = target
	}
	return clone
}

// Search returns color names that fuzzily match query, best match first.
// An empty query returns every name sorted.
func (p *ColorPalette) Search(query string) []string {
	names := p.Names()
	if strings.TrimSpace(query) == "" {
		return names
	}
	matches := fuzzy.Find(query, names)
	result := make([]string, len(matches))
	for i, match := range matches {
		result[i] = names[match.Index]
	}
	return result
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
