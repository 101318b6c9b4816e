package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// resultMsg carries the output of a finished action.
type resultMsg struct {
	title string
	body  string
	err   error
}

// paneChrome is the number of rows taken by the title and help lines.
const paneChrome = 4

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pane.Width = msg.Width
		m.pane.Height = max(msg.Height-paneChrome, 1)
		return m, nil

	case resultMsg:
		m.running = false
		m.mode = ModeResult
		m.title = msg.title
		m.err = msg.err
		body := msg.body
		if msg.err != nil {
			body = m.styles.ErrorStyle.Render("Error: " + msg.err.Error())
		}
		m.pane.SetContent(body)
		m.pane.GotoTop()
		return m, nil
	}

	if m.mode == ModeResult {
		var cmd tea.Cmd
		m.pane, cmd = m.pane.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.running {
		return m, nil
	}

	switch m.mode {
	case ModeResult:
		return m.handleResultKeys(msg)
	default:
		return m.handleMenuKeys(msg)
	}
}

// handleMenuKeys handles keys while the menu is shown.
func (m Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "esc":
		return m, tea.Quit
	case "j", "down":
		if len(m.actions) > 0 {
			m.cursor = (m.cursor + 1) % len(m.actions)
		}
	case "k", "up":
		if len(m.actions) > 0 {
			m.cursor = (m.cursor - 1 + len(m.actions)) % len(m.actions)
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = max(len(m.actions)-1, 0)
	case "enter":
		return m.runSelected()
	default:
		for i, a := range m.actions {
			if a.Key != "" && a.Key == key {
				m.cursor = i
				return m.runSelected()
			}
		}
	}
	return m, nil
}

// handleResultKeys handles keys while an action result is shown.
func (m Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "backspace":
		m.mode = ModeMenu
		m.err = nil
		return m, nil
	case "r":
		return m.runSelected()
	}

	var cmd tea.Cmd
	m.pane, cmd = m.pane.Update(msg)
	return m, cmd
}

// runSelected starts the action under the cursor.
func (m Model) runSelected() (tea.Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.actions) {
		return m, nil
	}
	a := m.actions[m.cursor]
	m.running = true
	return m, func() tea.Msg {
		body, err := a.Run()
		return resultMsg{title: a.Title, body: body, err: err}
	}
}
