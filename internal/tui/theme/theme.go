// Package theme provides color themes for the TUI.
package theme

import "strings"

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string
	Bg          string // Base background
	BgSelection string // Cursor, selection
	Fg          string // Primary foreground
	FgMuted     string // Help text, muted elements
	Accent      string // Title, borders
	Personal    string // Personal tasks
	Academic    string // Academic tasks
	Warning     string // Errors, overdue
}

var builtin = map[string]Theme{
	"mocha": {
		Name:        "mocha",
		Bg:          "#1e1e2e",
		BgSelection: "#45475a",
		Fg:          "#cdd6f4",
		FgMuted:     "#7f849c",
		Accent:      "#cba6f7",
		Personal:    "#a6e3a1",
		Academic:    "#89b4fa",
		Warning:     "#f38ba8",
	},
	"macchiato": {
		Name:        "macchiato",
		Bg:          "#24273a",
		BgSelection: "#494d64",
		Fg:          "#cad3f5",
		FgMuted:     "#8087a2",
		Accent:      "#c6a0f6",
		Personal:    "#a6da95",
		Academic:    "#8aadf4",
		Warning:     "#ed8796",
	},
	"latte": {
		Name:        "latte",
		Bg:          "#eff1f5",
		BgSelection: "#ccd0da",
		Fg:          "#4c4f69",
		FgMuted:     "#8c8fa1",
		Accent:      "#8839ef",
		Personal:    "#40a02b",
		Academic:    "#1e66f5",
		Warning:     "#d20f39",
	},
}

// Load returns a built-in theme by name.
// Falls back to mocha if the theme is not found.
func Load(name string) *Theme {
	t, ok := builtin[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		t = builtin["mocha"]
	}
	return &t
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "latte"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	_, ok := builtin[strings.ToLower(name)]
	return ok
}

// IsLight reports whether the theme has a light background.
func (t *Theme) IsLight() bool {
	return relativeLuminance(t.Bg) > 0.55
}
