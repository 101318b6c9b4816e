package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/taskpilot/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	TitleStyle    lipgloss.Style
	ItemStyle     lipgloss.Style
	SelectedStyle lipgloss.Style
	KeyStyle      lipgloss.Style
	HelpStyle     lipgloss.Style
	ErrorStyle    lipgloss.Style
	StatusStyle   lipgloss.Style
	PaneStyle     lipgloss.Style
}

// NewStyles creates the styles for a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	return &Styles{
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnAccent).
			Background(p.Accent).
			Padding(0, 1),
		ItemStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			PaddingLeft(2),
		SelectedStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnSelection).
			Background(p.BgSelection).
			PaddingLeft(1).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(p.Accent),
		KeyStyle: lipgloss.NewStyle().
			Foreground(p.Academic),
		HelpStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		ErrorStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Warning),
		StatusStyle: lipgloss.NewStyle().
			Italic(true).
			Foreground(p.Personal),
		PaneStyle: lipgloss.NewStyle().
			Foreground(p.Fg),
	}
}
