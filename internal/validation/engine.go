// Package validation scores whole themes: structural errors from the model,
// color format checks, WCAG contrast of the standard foreground/background
// pairs and link consistency between the two display modes.
package validation

import (
	"fmt"
	"math"
	"sort"

	"github.com/codr1/themesmith/internal/colors"
	"github.com/codr1/themesmith/internal/models"
)

const (
	errorPenalty     = 15
	warningPenalty   = 5
	completenessCap  = 10
	maxScore         = 100
	unlinkedTopology = "unlinked"
)

// ContrastPair names a foreground color and the background it sits on.
type ContrastPair struct {
	Foreground string
	Background string
}

// ContrastPairs are measured in both modes.
var ContrastPairs = []ContrastPair{
	{Foreground: "foreground", Background: "background"},
	{Foreground: "primary-foreground", Background: "primary"},
	{Foreground: "secondary-foreground", Background: "secondary"},
	{Foreground: "card-foreground", Background: "card"},
	{Foreground: "destructive-foreground", Background: "destructive"},
	{Foreground: "muted-foreground", Background: "muted"},
	{Foreground: "accent-foreground", Background: "accent"},
}

type ContrastCheck struct {
	Mode       models.Mode `json:"mode,omitempty"`
	Foreground string      `json:"foreground"`
	Background string      `json:"background"`
	Ratio      float64     `json:"ratio"`
	PassesAA   bool        `json:"passesAA"`
	PassesAAA  bool        `json:"passesAAA"`
}

type Report struct {
	IsValid       bool            `json:"isValid"`
	Errors        []string        `json:"errors"`
	Warnings      []string        `json:"warnings"`
	Score         int             `json:"score"`
	Contrast      []ContrastCheck `json:"contrast"`
	AAAMisses     []string        `json:"aaaMisses"`
	MissingColors []string        `json:"missingColors"`
}

type LinkReport struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Options tunes the engine. Zero values select the WCAG AA text threshold
// and the wide-gamut chroma limit of the colors package.
type Options struct {
	MinContrast     float64
	WideGamutChroma float64
}

// Engine holds no state beyond its options and is safe for concurrent use.
type Engine struct {
	minContrast     float64
	wideGamutChroma float64
}

func NewEngine(opts Options) *Engine {
	e := &Engine{
		minContrast:     opts.MinContrast,
		wideGamutChroma: opts.WideGamutChroma,
	}
	if e.minContrast <= 0 {
		e.minContrast = colors.AAContrastRatio
	}
	if e.wideGamutChroma <= 0 {
		e.wideGamutChroma = colors.WideGamutChroma
	}
	return e
}

// report collects messages once each, preserving first-seen order.
type report struct {
	Report
	seen map[string]struct{}
}

func newReport() *report {
	return &report{
		Report: Report{
			Errors:        []string{},
			Warnings:      []string{},
			Contrast:      []ContrastCheck{},
			AAAMisses:     []string{},
			MissingColors: []string{},
		},
		seen: make(map[string]struct{}),
	}
}

func (r *report) addError(msg string) {
	if _, ok := r.seen[msg]; ok {
		return
	}
	r.seen[msg] = struct{}{}
	r.Errors = append(r.Errors, msg)
}

func (r *report) addWarning(msg string) {
	if _, ok := r.seen[msg]; ok {
		return
	}
	r.seen[msg] = struct{}{}
	r.Warnings = append(r.Warnings, msg)
}

func modePrefix(mode models.Mode) string {
	if mode == models.ModeDark {
		return "Dark mode: "
	}
	return "Light mode: "
}

// ValidateTheme runs every check and returns the aggregated report. The score
// is advisory; IsValid only depends on Errors.
func (e *Engine) ValidateTheme(theme *models.Theme) Report {
	r := newReport()
	if theme == nil {
		r.addError("Theme is required")
		r.finish(0)
		return r.Report
	}

	for _, msg := range theme.Validate().Errors {
		r.addError(msg)
	}

	present := 0
	for _, palette := range []*models.ColorPalette{theme.Light(), theme.Dark()} {
		for _, name := range models.RequiredColors {
			if palette.Has(name) {
				present++
				continue
			}
			r.MissingColors = append(r.MissingColors, fmt.Sprintf("%s.%s", palette.Mode(), name))
		}
		e.checkFormats(r, palette)
		e.checkAccessibility(r, palette)
	}

	e.checkConsistency(r, theme)

	links := e.ValidateColorLinks(theme)
	for _, msg := range links.Errors {
		r.addError(msg)
	}
	for _, msg := range links.Warnings {
		r.addWarning(msg)
	}

	if typography := theme.Typography(); typography != nil {
		for _, msg := range typography.Validate().Errors {
			r.addError("Typography: " + msg)
		}
	}
	if brand := theme.Brand(); brand != nil {
		for _, msg := range brand.Validate().Errors {
			r.addError("Brand: " + msg)
		}
	}

	r.finish(present)
	return r.Report
}

func (r *report) finish(presentRequired int) {
	r.IsValid = len(r.Errors) == 0
	r.Score = score(len(r.Errors), len(r.Warnings), presentRequired)
}

func score(errorCount, warningCount, presentRequired int) int {
	total := 2 * len(models.RequiredColors)
	bonus := 0.0
	if total > 0 {
		bonus = completenessCap * float64(presentRequired) / float64(total)
	}
	value := maxScore - errorPenalty*errorCount - warningPenalty*warningCount + int(math.Round(bonus))
	if value < 0 {
		return 0
	}
	if value > maxScore {
		return maxScore
	}
	return value
}

func (e *Engine) checkFormats(r *report, palette *models.ColorPalette) {
	prefix := modePrefix(palette.Mode())
	for _, name := range palette.Names() {
		value, _ := palette.RawColor(name)
		result := colors.Validate(value)
		if !result.Valid {
			r.addError(fmt.Sprintf("%sColor %s has invalid value %q: %s", prefix, name, value, result.Error))
			continue
		}
		if chroma, ok := colors.OKLCHChroma(value); ok && chroma > e.wideGamutChroma {
			r.addWarning(fmt.Sprintf("%sColor %s has chroma %.3g, beyond what most displays can show", prefix, name, chroma))
		}
	}
}

func (e *Engine) checkAccessibility(r *report, palette *models.ColorPalette) {
	prefix := modePrefix(palette.Mode())
	for _, pair := range ContrastPairs {
		fg, fgOK := palette.Color(pair.Foreground)
		bg, bgOK := palette.Color(pair.Background)
		if !fgOK || !bgOK {
			continue
		}
		check, err := e.CheckContrast(fg, bg)
		if err != nil {
			r.addWarning(fmt.Sprintf("%sCannot measure contrast of %s on %s: %v", prefix, pair.Foreground, pair.Background, err))
			continue
		}
		check.Mode = palette.Mode()
		check.Foreground = pair.Foreground
		check.Background = pair.Background
		r.Contrast = append(r.Contrast, check)

		if !check.PassesAA {
			r.addWarning(fmt.Sprintf("%sContrast of %s on %s is %.2f:1, below %.1f:1", prefix, pair.Foreground, pair.Background, check.Ratio, e.minContrast))
		}
		if !check.PassesAAA {
			r.AAAMisses = append(r.AAAMisses, fmt.Sprintf("%s%s on %s is %.2f:1, below AAA %.0f:1", prefix, pair.Foreground, pair.Background, check.Ratio, colors.AAAContrastRatio))
		}
	}
}

func (e *Engine) checkConsistency(r *report, theme *models.Theme) {
	light, dark := theme.Light(), theme.Dark()
	for _, name := range light.Names() {
		if !dark.Has(name) {
			r.addWarning(fmt.Sprintf("Color %s is defined in light mode but not in dark mode", name))
		}
	}
	for _, name := range dark.Names() {
		if !light.Has(name) {
			r.addWarning(fmt.Sprintf("Color %s is defined in dark mode but not in light mode", name))
		}
	}
}

// CheckContrast measures two color values against the engine's threshold.
func (e *Engine) CheckContrast(foreground, background string) (ContrastCheck, error) {
	ratio, err := colors.ContrastRatio(foreground, background)
	if err != nil {
		return ContrastCheck{}, err
	}
	return ContrastCheck{
		Foreground: foreground,
		Background: background,
		Ratio:      math.Round(ratio*100) / 100,
		PassesAA:   ratio >= e.minContrast,
		PassesAAA:  ratio >= colors.AAAContrastRatio,
	}, nil
}

// ValidateColorLinks reports links whose ends are missing, chains that do
// not resolve, and links that differ between light and dark mode.
func (e *Engine) ValidateColorLinks(theme *models.Theme) LinkReport {
	r := newReport()
	if theme == nil {
		return LinkReport{Errors: r.Errors, Warnings: r.Warnings}
	}

	for _, palette := range []*models.ColorPalette{theme.Light(), theme.Dark()} {
		prefix := modePrefix(palette.Mode())
		links := palette.Links()
		for _, source := range sortedKeys(links) {
			target := links[source]
			switch {
			case !palette.Has(source):
				r.addError(fmt.Sprintf("%sLink source %s does not exist", prefix, source))
			case !palette.Has(target):
				r.addError(fmt.Sprintf("%sColor %s links to missing color %s", prefix, source, target))
			default:
				if _, ok := palette.Color(source); !ok {
					r.addError(fmt.Sprintf("%sColor %s cannot be resolved through its link chain", prefix, source))
				}
			}
		}
	}

	lightLinks, darkLinks := theme.Light().Links(), theme.Dark().Links()
	sources := make(map[string]string, len(lightLinks)+len(darkLinks))
	for source := range lightLinks {
		sources[source] = ""
	}
	for source := range darkLinks {
		sources[source] = ""
	}
	for _, source := range sortedKeys(sources) {
		lightTarget, ok := lightLinks[source]
		if !ok {
			lightTarget = unlinkedTopology
		}
		darkTarget, ok := darkLinks[source]
		if !ok {
			darkTarget = unlinkedTopology
		}
		if lightTarget != darkTarget {
			r.addWarning(fmt.Sprintf("Color %s is linked differently in light mode (%s) and dark mode (%s)", source, lightTarget, darkTarget))
		}
	}

	if brand := theme.Brand(); brand != nil {
		for _, property := range models.BrandColors {
			target, linked := brand.Link(property)
			if linked && !theme.Light().Has(target) && !theme.Dark().Has(target) {
				r.addWarning(fmt.Sprintf("Brand color %s links to missing theme color %s", property, target))
			}
		}
	}

	return LinkReport{Errors: r.Errors, Warnings: r.Warnings}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
