package assets

import "embed"

// ThemesFS holds the preset themes shipped with the binary, one JSON document
// per file.
//
//go:embed themes/*.json
var ThemesFS embed.FS

const ThemesDir = "themes"
