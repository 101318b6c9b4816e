package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/taskpilot/internal/dateutil"
	"github.com/javiermolinar/taskpilot/internal/task"
)

func (a *App) addCmd() *cobra.Command {
	var (
		label    string
		start    string
		deadline string
		weight   float64
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long: `Add a new task with a start time, a deadline and a priority weight.

Date-times accept YYYY-MM-DD HH:MM, YYYY-MM-DD, HH:MM (today), today,
tomorrow, a weekday name, now, or +DURATION (e.g. +3h, +2d).`,
		Example: `  taskpilot add "Calculus assignment" --label=academic --start="2025-01-10 09:00" --deadline="2025-01-10 14:00" --weight=3
  taskpilot add "Gym" --label=personal --deadline=+2h`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			now := a.now()

			l, err := task.ParseLabel(label)
			if err != nil {
				return err
			}
			s, err := dateutil.ParseDateTime(start, now)
			if err != nil {
				return fmt.Errorf("start: %w", err)
			}
			d, err := dateutil.ParseDateTime(deadline, now)
			if err != nil {
				return fmt.Errorf("deadline: %w", err)
			}

			t, err := task.New(args[0], l, s, d, weight)
			if err != nil {
				return err
			}
			t.CreatedAt = now

			if err := a.repo.CreateTask(cmd.Context(), t); err != nil {
				return fmt.Errorf("creating task: %w", err)
			}
			if err := a.store.Add(t); err != nil {
				return err
			}
			a.reindex()

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s [%s] %s → %s (weight %g)\n",
				ShortID(t.ID), t.Title, t.Label, FormatWhen(t.Start), FormatWhen(t.Deadline), t.Weight)
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "personal", "Label: personal or academic")
	cmd.Flags().StringVar(&start, "start", "now", "Start date-time")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline date-time (required)")
	cmd.Flags().Float64Var(&weight, "weight", 1, "Priority weight, higher is more important")

	_ = cmd.MarkFlagRequired("deadline")

	return cmd
}
