package ui

import (
	"github.com/spf13/cobra"

	"github.com/javiermolinar/taskpilot/internal/dateutil"
	"github.com/javiermolinar/taskpilot/internal/summary"
)

func (a *App) reportCmd() *cobra.Command {
	var (
		week bool
		from string
		to   string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize tasks, the optimal schedule and workload",
		Long: `Print an overview: counts per label, overdue tasks, what is due next,
the optimal schedule and the workload chart for a range.

The range defaults to the configured span starting today.`,
		Example: `  taskpilot report
  taskpilot report --week
  taskpilot report --from=2025-01-13 --to=2025-01-20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			now := a.now()

			opts := summary.Options{
				Now:           now,
				NextCount:     a.config.Reminders.NextCount,
				BucketWidth:   a.config.BucketWidth(),
				Mode:          a.config.DensityMode(),
				BusyThreshold: a.config.Density.BusyThreshold,
			}

			if week {
				ref := now
				if from != "" {
					r, err := dateutil.ParseDateTime(from, now)
					if err != nil {
						return err
					}
					ref = r
				}
				opts = summary.WeekOptions(ref, opts)
			} else {
				if from == "" {
					from = "today"
				}
				start, err := dateutil.ParseDateTime(from, now)
				if err != nil {
					return err
				}
				end := start.Add(a.config.DensitySpan())
				if to != "" {
					if end, err = dateutil.ParseDateTime(to, now); err != nil {
						return err
					}
				}
				opts.From, opts.To = start, end
			}

			r, err := summary.Build(a.idx, opts)
			if err != nil {
				return err
			}
			PrintReport(cmd.OutOrStdout(), r, RowOpts{Now: now}, chartWidth(termWidth()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&week, "week", false, "Report on the week containing --from (default: this week)")
	cmd.Flags().StringVar(&from, "from", "", "Range start (default: today)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (default: start plus the configured span)")
	cmd.MarkFlagsMutuallyExclusive("week", "to")

	return cmd
}
