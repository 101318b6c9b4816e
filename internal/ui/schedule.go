package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/taskpilot/internal/dateutil"
	"github.com/javiermolinar/taskpilot/internal/scheduler"
	"github.com/javiermolinar/taskpilot/internal/task"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

func (a *App) scheduleCmd() *cobra.Command {
	var (
		from     string
		to       string
		gantt    bool
		copyPlan bool
		excluded bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Pick the highest-weight set of non-overlapping tasks",
		Long: `Select the pending tasks that maximize total priority weight without any
two of them overlapping in time.

With --from/--to only tasks with a deadline in that range are considered.`,
		Example: `  taskpilot schedule
  taskpilot schedule --from=today --to=+7d --gantt
  taskpilot schedule --copy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			now := a.now()

			candidates, err := a.pendingIn(from, to, now)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			res, err := a.writeSchedule(out, candidates, now, gantt, excluded)
			if err != nil {
				return err
			}

			if copyPlan {
				if err := copyToClipboard(ScheduleText(res)); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(out, formatMuted("Schedule copied to clipboard."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Only consider tasks due from this date-time")
	cmd.Flags().StringVar(&to, "to", "", "Only consider tasks due until this date-time")
	cmd.Flags().BoolVar(&gantt, "gantt", false, "Draw the schedule as a Gantt chart")
	cmd.Flags().BoolVar(&copyPlan, "copy", false, "Copy the schedule to the clipboard")
	cmd.Flags().BoolVar(&excluded, "excluded", false, "Also list the tasks left out")

	return cmd
}

// writeSchedule selects the optimal schedule among candidates and prints it.
func (a *App) writeSchedule(out io.Writer, candidates []*task.Task, now time.Time, gantt, excluded bool) (*scheduler.Result, error) {
	res, err := scheduler.Select(candidates)
	if err != nil {
		return nil, fmt.Errorf("scheduling: %w", err)
	}

	PrintSchedule(out, res, RowOpts{Now: now}, excluded)
	if gantt && len(res.Selected) > 0 {
		fmt.Fprintln(out)
		fmt.Fprint(out, RenderGantt(res.Selected, chartWidth(termWidth())))
	}
	return res, nil
}

// pendingIn returns every pending task, or only those due within the range
// when either bound is set.
func (a *App) pendingIn(from, to string, now time.Time) ([]*task.Task, error) {
	if from == "" && to == "" {
		var out []*task.Task
		for t := range a.store.All() {
			if t.IsPending() {
				out = append(out, t)
			}
		}
		return out, nil
	}

	start := time.Time{}
	if from != "" {
		s, err := dateutil.ParseDateTime(from, now)
		if err != nil {
			return nil, err
		}
		start = s
	}
	end := time.Unix(1<<62, 0)
	if to != "" {
		e, err := dateutil.ParseDateTime(to, now)
		if err != nil {
			return nil, err
		}
		end = e
	}
	if end.Before(start) {
		return nil, dateutil.ErrEndDateBeforeStart
	}
	return a.idx.InRange(start, end), nil
}
