// Package tui provides the interactive menu for taskpilot.
package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/taskpilot/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeMenu   Mode = iota
	ModeResult      // Showing the output of an action
)

// Action is one menu entry. Run returns the text to show in the result pane.
type Action struct {
	Title string
	Key   string // Optional shortcut
	Run   func() (string, error)
}

// Model is the main TUI model.
type Model struct {
	actions []Action
	styles  *Styles

	cursor  int
	mode    Mode
	running bool
	title   string // Title of the action shown in the result pane
	err     error

	pane   viewport.Model
	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithTheme selects the color theme by name.
func WithTheme(name string) Option {
	return func(m *Model) {
		m.styles = NewStyles(theme.Load(name))
	}
}

// New creates a menu over the given actions.
func New(actions []Action, opts ...Option) Model {
	m := Model{
		actions: actions,
		styles:  NewStyles(theme.Load("")),
		pane:    viewport.New(0, 0),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Run starts the TUI and blocks until the user quits.
func Run(actions []Action, opts ...Option) error {
	p := tea.NewProgram(New(actions, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
