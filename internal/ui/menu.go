package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/javiermolinar/taskpilot/internal/sorter"
	"github.com/javiermolinar/taskpilot/internal/task"
	"github.com/javiermolinar/taskpilot/internal/tui"
)

// menu builds the interactive menu entries. Each entry renders into a
// buffer that the TUI shows in a scrollable pane.
func (a *App) menu(ctx context.Context) []tui.Action {
	return []tui.Action{
		{Title: "Upcoming tasks", Key: "u", Run: a.capture(func(w io.Writer) error {
			a.writeNext(w, a.now(), a.config.Reminders.NextCount)
			return nil
		})},
		{Title: "Optimal schedule", Key: "s", Run: a.capture(func(w io.Writer) error {
			pending, err := a.pendingIn("", "", a.now())
			if err != nil {
				return err
			}
			_, err = a.writeSchedule(w, pending, a.now(), true, true)
			return err
		})},
		{Title: "Workload density", Key: "d", Run: a.capture(func(w io.Writer) error {
			opts, err := a.densityOptions("", "", "", "", "")
			if err != nil {
				return err
			}
			return a.writeDensity(w, opts, false)
		})},
		{Title: "Tasks by category", Key: "c", Run: a.capture(func(w io.Writer) error {
			a.writeCategories(w)
			return nil
		})},
		{Title: "Mark overdue tasks as missed", Key: "m", Run: a.capture(func(w io.Writer) error {
			now := a.now()
			missed, err := a.sweep(ctx, now)
			if err != nil {
				return err
			}
			if len(missed) == 0 {
				fmt.Fprintln(w, "No overdue tasks.")
				return nil
			}
			fmt.Fprintln(w, formatAlert(fmt.Sprintf("Marked %d task(s) as missed:", len(missed))))
			PrintTasks(w, missed, RowOpts{Now: now}, "")
			return nil
		})},
	}
}

// capture adapts a writer function to a menu action.
func (a *App) capture(fn func(w io.Writer) error) func() (string, error) {
	return func() (string, error) {
		var b strings.Builder
		if err := fn(&b); err != nil {
			return "", err
		}
		return b.String(), nil
	}
}

// writeCategories prints pending tasks grouped by label.
func (a *App) writeCategories(w io.Writer) {
	var pending []*task.Task
	for t := range a.store.All() {
		if t.IsPending() {
			pending = append(pending, t)
		}
	}
	groups := sorter.GroupBy(pending, sorter.KeyLabel)
	if len(groups) == 0 {
		fmt.Fprintln(w, "No pending tasks.")
		return
	}
	PrintGroups(w, groups, RowOpts{Now: a.now()})
}
