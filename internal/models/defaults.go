package models

const DefaultThemeVersion = "1.0.0"

// DefaultLightColors returns a neutral light palette covering RequiredColors.
func DefaultLightColors() map[string]string {
	return map[string]string{
		"background":             "#ffffff",
		"foreground":             "#0a0a0a",
		"card":                   "#ffffff",
		"card-foreground":        "#0a0a0a",
		"popover":                "#ffffff",
		"popover-foreground":     "#0a0a0a",
		"primary":                "#171717",
		"primary-foreground":     "#fafafa",
		"secondary":              "#f5f5f5",
		"secondary-foreground":   "#171717",
		"muted":                  "#f5f5f5",
		"muted-foreground":       "#525252",
		"accent":                 "#f5f5f5",
		"accent-foreground":      "#171717",
		"destructive":            "#dc2626",
		"destructive-foreground": "#ffffff",
		"border":                 "#e5e5e5",
		"input":                  "#e5e5e5",
		"ring":                   "#0a0a0a",
	}
}

// DefaultDarkColors returns a neutral dark palette covering RequiredColors.
func DefaultDarkColors() map[string]string {
	return map[string]string{
		"background":             "#0a0a0a",
		"foreground":             "#fafafa",
		"card":                   "#171717",
		"card-foreground":        "#fafafa",
		"popover":                "#171717",
		"popover-foreground":     "#fafafa",
		"primary":                "#fafafa",
		"primary-foreground":     "#171717",
		"secondary":              "#262626",
		"secondary-foreground":   "#fafafa",
		"muted":                  "#262626",
		"muted-foreground":       "#a3a3a3",
		"accent":                 "#262626",
		"accent-foreground":      "#fafafa",
		"destructive":            "#b91c1c",
		"destructive-foreground": "#fafafa",
		"border":                 "#262626",
		"input":                  "#262626",
		"ring":                   "#d4d4d4",
	}
}
