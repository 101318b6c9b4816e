package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/taskpilot/internal/dateutil"
	"github.com/javiermolinar/taskpilot/internal/reminder"
)

func (a *App) nextCmd() *cobra.Command {
	var (
		count int
		at    string
	)

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next pending tasks and what is due soon",
		Long: `Show the next pending tasks by deadline and every pending task due within
the configured reminder window.`,
		Example: `  taskpilot next
  taskpilot next --count=10 --at="2025-01-10 08:00"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			now, err := dateutil.ParseDateTime(at, a.now())
			if err != nil {
				return err
			}
			if count <= 0 {
				count = a.config.Reminders.NextCount
			}

			a.writeNext(cmd.OutOrStdout(), now, count)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "How many tasks to show (default from config)")
	cmd.Flags().StringVar(&at, "at", "now", "Look ahead from this date-time")

	return cmd
}

func (a *App) dueCmd() *cobra.Command {
	var (
		from   string
		to     string
		within string
	)

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List pending tasks with a deadline in a range",
		Long: `List pending tasks whose deadline falls within [from, to], earliest first.

Without flags, lists tasks due today. --within is relative to --from.`,
		Example: `  taskpilot due
  taskpilot due --from=2025-01-13 --to=2025-01-19
  taskpilot due --within=3d`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			if within != "" && to != "" {
				return fmt.Errorf("--to and --within are mutually exclusive")
			}

			now := a.now()
			r, err := dueRange(from, to, within, now)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatHeader(fmt.Sprintf("Due %s → %s:", FormatWhen(r.Start), FormatWhen(r.End))))
			PrintTasks(out, a.idx.InRange(r.Start, r.End), RowOpts{Now: now}, "nothing due")
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start (default: today)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (default: end of the start day)")
	cmd.Flags().StringVar(&within, "within", "", "Range length from --from, e.g. 24h or 3d")

	return cmd
}

// writeNext prints the next count pending tasks, the tasks due within the
// reminder window and any overdue tasks.
func (a *App) writeNext(out io.Writer, now time.Time, count int) {
	window := a.config.ReminderWindow()
	up := reminder.Due(a.idx, now, window, count)

	opts := RowOpts{Now: now}
	fmt.Fprintln(out, formatHeader(fmt.Sprintf("Next %d:", count)))
	PrintTasks(out, up.Next, opts, "nothing due")
	fmt.Fprintln(out)
	fmt.Fprintln(out, formatHeader(fmt.Sprintf("Due within %s:", FormatDuration(window))))
	PrintTasks(out, up.Window, opts, "nothing due")

	if overdue := a.idx.Overdue(now); len(overdue) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, formatAlert(fmt.Sprintf("Overdue (%d), run sweep to mark them missed:", len(overdue))))
		PrintTasks(out, overdue, opts, "")
	}
}

// dueRange resolves the due command flags. Without a start, --within counts
// from now and a plain range covers today.
func dueRange(from, to, within string, now time.Time) (*dateutil.Range, error) {
	if within == "" {
		if from == "" {
			from = "today"
		}
		return dateutil.NewRange(from, to, now)
	}

	d, err := dateutil.ParseDuration(within)
	if err != nil {
		return nil, err
	}
	start, err := dateutil.ParseDateTime(from, now)
	if err != nil {
		return nil, err
	}
	return &dateutil.Range{Start: start, End: start.Add(d)}, nil
}
