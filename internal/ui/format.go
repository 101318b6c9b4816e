package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/taskpilot/internal/dateutil"
	"github.com/javiermolinar/taskpilot/internal/density"
	"github.com/javiermolinar/taskpilot/internal/scheduler"
	"github.com/javiermolinar/taskpilot/internal/sorter"
	"github.com/javiermolinar/taskpilot/internal/summary"
	"github.com/javiermolinar/taskpilot/internal/task"
)

// shortIDLen is how much of a task id listings show. Any unique prefix is
// accepted where an id is expected.
const shortIDLen = 8

// RowOpts configures task row printing.
type RowOpts struct {
	Now           time.Time
	MaxTitleWidth int // 0 = derive from terminal width
}

func (o RowOpts) titleWidth() int {
	if o.MaxTitleWidth > 0 {
		return o.MaxTitleWidth
	}
	// "  ○ 1234abcd [A] 2025-01-02 15:04 → 2025-01-02 18:00  w=10  " is about 60 columns
	return max(20, termWidth()-60)
}

// FormatDuration formats a duration as a compact human-readable string.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}
	d = d.Round(time.Minute)
	days := int(d / (24 * time.Hour))
	hours := int(d % (24 * time.Hour) / time.Hour)
	mins := int(d % time.Hour / time.Minute)

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if mins > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}
	return strings.Join(parts, "")
}

// FormatWhen formats a time in the command line date-time layout.
func FormatWhen(t time.Time) string {
	return t.Format(dateutil.DateTimeLayout)
}

// ShortID returns the displayed prefix of a task id.
func ShortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func statusSymbol(t *task.Task, now time.Time) string {
	switch t.Status {
	case task.StatusCompleted:
		return formatDone("✓")
	case task.StatusMissed:
		return formatAlert("✗")
	default:
		if !now.IsZero() && t.IsOverdue(now) {
			return formatAlert("!")
		}
		return "○"
	}
}

// PrintTaskRow prints a single task row with consistent formatting.
func PrintTaskRow(w io.Writer, t *task.Task, opts RowOpts) {
	title := ansi.Truncate(t.Title, opts.titleWidth(), "…")
	fmt.Fprintf(w, "  %s %s %s %s → %s  %s  %s\n",
		statusSymbol(t, opts.Now),
		formatMuted(ShortID(t.ID)),
		formatLabel(t.Label),
		FormatWhen(t.Start),
		FormatWhen(t.Deadline),
		formatMuted(fmt.Sprintf("w=%-4g", t.Weight)),
		title,
	)
}

// PrintTasks prints rows for every task, or a placeholder when empty.
func PrintTasks(w io.Writer, tasks []*task.Task, opts RowOpts, empty string) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, formatMuted("  "+empty))
		return
	}
	for _, t := range tasks {
		PrintTaskRow(w, t, opts)
	}
}

// PrintGroups prints grouped listings under a header per group.
func PrintGroups(w io.Writer, groups []sorter.Group, opts RowOpts) {
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, formatHeader(fmt.Sprintf("=== %s (%d) ===", g.Name, len(g.Tasks))))
		PrintTasks(w, g.Tasks, opts, "no tasks")
	}
}

// PrintSchedule prints the selected tasks and the total weight.
func PrintSchedule(w io.Writer, res *scheduler.Result, opts RowOpts, showExcluded bool) {
	fmt.Fprintln(w, formatHeader(fmt.Sprintf("Optimal schedule: %d tasks, total weight %g",
		len(res.Selected), res.TotalWeight)))
	PrintTasks(w, res.Selected, opts, "no tasks to schedule")

	if showExcluded && len(res.Excluded) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, formatMuted(fmt.Sprintf("Excluded (%d):", len(res.Excluded))))
		PrintTasks(w, res.Excluded, opts, "")
	}
}

// ScheduleText renders a schedule as plain text for the clipboard.
func ScheduleText(res *scheduler.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Schedule (total weight %g)\n", res.TotalWeight)
	for _, t := range res.Selected {
		fmt.Fprintf(&b, "- %s → %s [%s] %s (w=%g)\n",
			FormatWhen(t.Start), FormatWhen(t.Deadline), t.Label, t.Title, t.Weight)
	}
	return b.String()
}

// PrintReport prints a full report.
func PrintReport(w io.Writer, r *summary.Report, opts RowOpts, chartWidth int) {
	fmt.Fprintln(w, formatHeader(fmt.Sprintf("Report %s → %s", FormatWhen(r.From), FormatWhen(r.To))))
	for _, s := range r.Labels {
		fmt.Fprintf(w, "  %s %-8s %d pending (weight %g), %s, %s\n",
			formatLabel(s.Label), s.Label, s.Pending, s.PendingWeight,
			formatDone(fmt.Sprintf("%d completed", s.Completed)),
			formatAlert(fmt.Sprintf("%d missed", s.Missed)))
	}

	if len(r.Overdue) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, formatAlert(fmt.Sprintf("Overdue (%d):", len(r.Overdue))))
		PrintTasks(w, r.Overdue, opts, "")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, formatHeader("Next up:"))
	PrintTasks(w, r.Next, opts, "nothing due")

	fmt.Fprintln(w)
	PrintSchedule(w, r.Schedule, opts, false)

	fmt.Fprintln(w)
	fmt.Fprintln(w, formatHeader("Workload:"))
	fmt.Fprint(w, RenderDensity(r.Buckets, chartWidth))
	if r.Peak != nil {
		fmt.Fprintf(w, "  Peak: %s → %s (load %.2f)\n", FormatWhen(r.Peak.Start), FormatWhen(r.Peak.End), r.Peak.Load)
	}
}

// PrintBusy prints the busy buckets.
func PrintBusy(w io.Writer, buckets []density.Bucket) {
	busy := density.Busy(buckets)
	if len(busy) == 0 {
		fmt.Fprintln(w, formatMuted("  no busy periods"))
		return
	}
	fmt.Fprintln(w, formatAlert(fmt.Sprintf("Busy periods (%d):", len(busy))))
	for _, b := range busy {
		fmt.Fprintf(w, "  %s → %s  load %.2f\n", FormatWhen(b.Start), FormatWhen(b.End), b.Load)
	}
}
