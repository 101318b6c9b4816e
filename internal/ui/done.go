package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/taskpilot/internal/dateutil"
	"github.com/javiermolinar/taskpilot/internal/reminder"
	"github.com/javiermolinar/taskpilot/internal/task"
)

func (a *App) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [id]",
		Short: "Mark a task as completed",
		Long: `Mark a pending task as completed.

The id may be any unique prefix of the task id shown by list.`,
		Example: `  taskpilot done 3f2a`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}

			t, err := a.store.Resolve(args[0])
			if err != nil {
				return err
			}
			if err := a.updater(cmd.Context()).UpdateStatus(t.ID, task.StatusCompleted); err != nil {
				return fmt.Errorf("completing task: %w", err)
			}
			a.reindex()

			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s: %s\n", ShortID(t.ID), t.Title)
			return nil
		},
	}
}

func (a *App) sweepCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Mark overdue pending tasks as missed",
		Long: `Mark every pending task whose deadline has passed as missed.

Use --at to sweep as of another point in time.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			now, err := dateutil.ParseDateTime(at, a.now())
			if err != nil {
				return err
			}

			missed, err := a.sweep(cmd.Context(), now)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(missed) == 0 {
				fmt.Fprintln(out, "No overdue tasks.")
				return nil
			}
			fmt.Fprintln(out, formatAlert(fmt.Sprintf("Marked %d task(s) as missed:", len(missed))))
			PrintTasks(out, missed, RowOpts{Now: now}, "")
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "now", "Sweep as of this date-time")

	return cmd
}

func (a *App) sweep(ctx context.Context, now time.Time) ([]*task.Task, error) {
	missed, idx, err := reminder.Sweep(a.updater(ctx), a.idx, now)
	a.idx = idx
	if err != nil {
		return missed, fmt.Errorf("sweeping: %w", err)
	}
	a.logger.Info("sweep finished", "missed", len(missed), "at", FormatWhen(now))
	return missed, nil
}
