package colors

import (
	"errors"
	"strings"
)

var (
	ErrInvalidColor      = errors.New("invalid color")
	ErrNotConvertible    = errors.New("color cannot be converted")
	ErrUnsupportedTarget = errors.New("unsupported target format")
)

type namedColor struct {
	canonical string
	hex       string
}

// namedColors is the keyword allow-list. Keywords without a hex value resolve
// against the document and cannot be converted.
var namedColors = map[string]namedColor{
	"black":        {"black", "#000000"},
	"white":        {"white", "#ffffff"},
	"red":          {"red", "#ff0000"},
	"green":        {"green", "#008000"},
	"blue":         {"blue", "#0000ff"},
	"yellow":       {"yellow", "#ffff00"},
	"orange":       {"orange", "#ffa500"},
	"purple":       {"purple", "#800080"},
	"pink":         {"pink", "#ffc0cb"},
	"gray":         {"gray", "#808080"},
	"grey":         {"grey", "#808080"},
	"brown":        {"brown", "#a52a2a"},
	"cyan":         {"cyan", "#00ffff"},
	"magenta":      {"magenta", "#ff00ff"},
	"lime":         {"lime", "#00ff00"},
	"navy":         {"navy", "#000080"},
	"teal":         {"teal", "#008080"},
	"silver":       {"silver", "#c0c0c0"},
	"maroon":       {"maroon", "#800000"},
	"olive":        {"olive", "#808000"},
	"transparent":  {"transparent", ""},
	"currentcolor": {"currentColor", ""},
	"inherit":      {"inherit", ""},
}

func isNamed(value string) bool {
	_, ok := namedColors[strings.ToLower(value)]
	return ok
}
