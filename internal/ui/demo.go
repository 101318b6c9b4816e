package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/taskpilot/internal/scheduler"
	"github.com/javiermolinar/taskpilot/internal/task"
)

type demoTask struct {
	title    string
	label    task.Label
	due      time.Duration // from now
	weight   float64
	duration time.Duration
}

var demoTasks = []demoTask{
	{"Calculus Assignment", task.LabelAcademic, 5 * time.Hour, 1, 2 * time.Hour},
	{"Project Report", task.LabelAcademic, 12 * time.Hour, 2, 3 * time.Hour},
	{"Self-Care", task.LabelPersonal, 8 * time.Hour, 3, time.Hour},
}

// DemoTasks returns the sample tasks relative to now. Each task ends at its
// deadline and starts duration earlier.
func DemoTasks(now time.Time) ([]*task.Task, error) {
	out := make([]*task.Task, 0, len(demoTasks))
	for _, d := range demoTasks {
		deadline := now.Add(d.due)
		t, err := task.New(d.title, d.label, deadline.Add(-d.duration), deadline, d.weight)
		if err != nil {
			return nil, err
		}
		t.CreatedAt = now
		out = append(out, t)
	}
	return out, nil
}

func (a *App) demoCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the scheduler on a few sample tasks",
		Long: `Build three sample tasks relative to now and show the next deadlines
and the optimal schedule. Nothing is stored unless --save is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := a.now()
			tasks, err := DemoTasks(now)
			if err != nil {
				return err
			}

			if save {
				if err := a.load(cmd.Context()); err != nil {
					return err
				}
				if err := a.repo.CreateTasks(cmd.Context(), tasks); err != nil {
					return fmt.Errorf("storing demo tasks: %w", err)
				}
				if err := a.addAll(tasks); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			opts := RowOpts{Now: now}
			fmt.Fprintln(out, formatHeader("Sample tasks:"))
			PrintTasks(out, tasks, opts, "")
			fmt.Fprintln(out)

			res, err := scheduler.Select(tasks)
			if err != nil {
				return err
			}
			PrintSchedule(out, res, opts, true)
			fmt.Fprintln(out)
			fmt.Fprint(out, RenderGantt(res.Selected, chartWidth(termWidth())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Store the sample tasks")

	return cmd
}
