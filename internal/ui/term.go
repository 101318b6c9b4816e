package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/taskpilot/internal/task"
)

// Color definitions for consistent styling across the UI.
var (
	// Academic: bold cyan
	colorAcademic = color.New(color.FgCyan, color.Bold)

	// Personal: magenta
	colorPersonal = color.New(color.FgMagenta)

	// Overdue and missed: red
	colorAlert = color.New(color.FgRed)

	// Completed: green
	colorDone = color.New(color.FgGreen)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatLabel(l task.Label) string {
	if l == task.LabelAcademic {
		return colorAcademic.Sprint("[A]")
	}
	return colorPersonal.Sprint("[P]")
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

func formatAlert(s string) string {
	return colorAlert.Sprint(s)
}

func formatDone(s string) string {
	return colorDone.Sprint(s)
}
