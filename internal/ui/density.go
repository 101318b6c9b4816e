package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/taskpilot/internal/dateutil"
	"github.com/javiermolinar/taskpilot/internal/density"
	"github.com/javiermolinar/taskpilot/internal/task"
)

func (a *App) densityCmd() *cobra.Command {
	var (
		width     string
		from      string
		to        string
		threshold string
		mode      string
		dueCurve  bool
	)

	cmd := &cobra.Command{
		Use:   "density",
		Short: "Show how pending work is spread over time",
		Long: `Split a time range into buckets and show how much pending work falls into
each one. A task's load is spread over the buckets its [start, deadline)
interval covers. Buckets above the busy threshold are flagged.

Defaults come from the [density] config section. The range defaults to
the configured span starting today.`,
		Example: `  taskpilot density
  taskpilot density --width=1d --from=2025-01-13 --to=2025-01-20 --mode=weight
  taskpilot density --due-curve`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			opts, err := a.densityOptions(width, from, to, threshold, mode)
			if err != nil {
				return err
			}

			return a.writeDensity(cmd.OutOrStdout(), opts, dueCurve)
		},
	}

	cmd.Flags().StringVar(&width, "width", "", "Bucket width, e.g. 1h or 1d (default from config)")
	cmd.Flags().StringVar(&from, "from", "", "Range start (default: today)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (default: start plus the configured span)")
	cmd.Flags().StringVar(&threshold, "threshold", "", "Busy threshold (default from config)")
	cmd.Flags().StringVar(&mode, "mode", "", "unit or weight (default from config)")
	cmd.Flags().BoolVar(&dueCurve, "due-curve", false, "Show the cumulative deadline curve instead")

	return cmd
}

// writeDensity prints the workload chart and busy periods, or the
// cumulative deadline curve when dueCurve is set.
func (a *App) writeDensity(out io.Writer, opts density.Options, dueCurve bool) error {
	var pending []*task.Task
	for t := range a.store.All() {
		if t.IsPending() {
			pending = append(pending, t)
		}
	}
	bars := chartWidth(termWidth())

	if dueCurve {
		points, err := density.DueCurve(pending, opts.BucketWidth, opts.RangeStart, opts.RangeEnd)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, formatHeader("Pending deadlines due by:"))
		fmt.Fprint(out, RenderDueCurve(points, bars))
		return nil
	}

	buckets, err := density.Analyze(pending, opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, formatHeader(fmt.Sprintf("Workload %s → %s (%s buckets, %s mode)",
		FormatWhen(opts.RangeStart), FormatWhen(opts.RangeEnd), FormatDuration(opts.BucketWidth), opts.Mode)))
	if len(buckets) == 0 {
		fmt.Fprintln(out, formatMuted("  empty range"))
		return nil
	}
	fmt.Fprint(out, RenderDensity(buckets, bars))
	fmt.Fprintln(out)
	PrintBusy(out, buckets)
	return nil
}

// densityOptions merges flag overrides onto the configured defaults.
func (a *App) densityOptions(width, from, to, threshold, mode string) (density.Options, error) {
	now := a.now()
	opts := density.Options{
		BucketWidth:   a.config.BucketWidth(),
		Mode:          a.config.DensityMode(),
		BusyThreshold: a.config.Density.BusyThreshold,
	}

	if width != "" {
		d, err := dateutil.ParseDuration(width)
		if err != nil {
			return opts, err
		}
		opts.BucketWidth = d
	}
	if mode != "" {
		m, err := density.ParseMode(mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = m
	}
	if threshold != "" {
		f, err := strconv.ParseFloat(threshold, 64)
		if err != nil {
			return opts, fmt.Errorf("%w: threshold %q", density.ErrInvalidConfig, threshold)
		}
		opts.BusyThreshold = f
	}

	if from == "" {
		from = "today"
	}
	start, err := dateutil.ParseDateTime(from, now)
	if err != nil {
		return opts, err
	}
	end := start.Add(a.config.DensitySpan())
	if to != "" {
		if end, err = dateutil.ParseDateTime(to, now); err != nil {
			return opts, err
		}
	}
	opts.RangeStart, opts.RangeEnd = start, end
	return opts, nil
}
