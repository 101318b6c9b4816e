package tui

import (
	"fmt"
	"strings"
)

// View renders the menu or the result pane.
func (m Model) View() string {
	if m.mode == ModeResult {
		return m.renderResult()
	}
	return m.renderMenu()
}

func (m Model) renderMenu() string {
	var b strings.Builder
	b.WriteString(m.styles.TitleStyle.Render("taskpilot"))
	b.WriteString("\n\n")

	for i, a := range m.actions {
		label := a.Title
		if a.Key != "" {
			label = fmt.Sprintf("%s  %s", m.styles.KeyStyle.Render("["+a.Key+"]"), a.Title)
		}
		if i == m.cursor {
			b.WriteString(m.styles.SelectedStyle.Render(label))
		} else {
			b.WriteString(m.styles.ItemStyle.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.running {
		b.WriteString(m.styles.StatusStyle.Render("Working..."))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.HelpStyle.Render("↑/↓ select • enter run • q quit"))
	return b.String()
}

func (m Model) renderResult() string {
	var b strings.Builder
	b.WriteString(m.styles.TitleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.styles.PaneStyle.Render(m.pane.View()))
	b.WriteString("\n")

	help := "↑/↓ scroll • r rerun • esc back"
	if m.pane.TotalLineCount() > m.pane.Height {
		help = fmt.Sprintf("%3.0f%% • %s", m.pane.ScrollPercent()*100, help)
	}
	b.WriteString(m.styles.HelpStyle.Render(help))
	return b.String()
}
