package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/taskpilot/internal/density"
	"github.com/javiermolinar/taskpilot/internal/sorter"
	"github.com/javiermolinar/taskpilot/internal/task"
)

const (
	chartLabelWidth = 18
	minChartWidth   = 10
)

var (
	academicBar = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	personalBar = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	normalBar   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	busyBar     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	axisStyle   = lipgloss.NewStyle().Faint(true)
)

func barStyle(l task.Label) lipgloss.Style {
	if l == task.LabelAcademic {
		return academicBar
	}
	return personalBar
}

// chartWidth returns the bar area available for a terminal of width cols.
func chartWidth(cols int) int {
	return max(minChartWidth, cols-chartLabelWidth-14)
}

// rowLabel pads or truncates s to the label column.
func rowLabel(s string) string {
	s = ansi.Truncate(s, chartLabelWidth, "…")
	return s + strings.Repeat(" ", chartLabelWidth-ansi.StringWidth(s))
}

// RenderGantt draws one row per task, grouped by label, on a shared time
// axis spanning the earliest start to the latest deadline.
func RenderGantt(tasks []*task.Task, width int) string {
	if len(tasks) == 0 {
		return ""
	}
	width = max(width, minChartWidth)

	from, to := tasks[0].Start, tasks[0].Deadline
	for _, t := range tasks[1:] {
		if t.Start.Before(from) {
			from = t.Start
		}
		if t.Deadline.After(to) {
			to = t.Deadline
		}
	}
	span := to.Sub(from)

	col := func(at time.Time) int {
		if span <= 0 {
			return 0
		}
		return int(float64(at.Sub(from)) / float64(span) * float64(width))
	}

	var b strings.Builder
	for _, g := range sorter.GroupBy(tasks, sorter.KeyLabel) {
		b.WriteString(axisStyle.Render(g.Name))
		b.WriteString("\n")
		for _, t := range sorter.SortBy(g.Tasks, sorter.KeyStart, sorter.Ascending) {
			start := min(col(t.Start), width-1)
			end := max(start+1, min(col(t.Deadline), width))

			b.WriteString(rowLabel(t.Title))
			b.WriteString("│")
			b.WriteString(strings.Repeat(" ", start))
			b.WriteString(barStyle(t.Label).Render(strings.Repeat("█", end-start)))
			b.WriteString(strings.Repeat(" ", width-end))
			b.WriteString("│\n")
		}
	}

	fromLabel, toLabel := FormatWhen(from), FormatWhen(to)
	gap := max(1, width+2-len(fromLabel)-len(toLabel))
	b.WriteString(strings.Repeat(" ", chartLabelWidth))
	b.WriteString(axisStyle.Render(fromLabel + strings.Repeat(" ", gap) + toLabel))
	b.WriteString("\n")
	return b.String()
}

// RenderDensity draws one horizontal bar per bucket scaled to the peak load.
// Busy buckets are highlighted.
func RenderDensity(buckets []density.Bucket, width int) string {
	if len(buckets) == 0 {
		return ""
	}
	width = max(width, minChartWidth)

	peak := 0.0
	for _, bk := range buckets {
		peak = math.Max(peak, bk.Load)
	}

	var b strings.Builder
	for _, bk := range buckets {
		n := 0
		if peak > 0 {
			n = int(math.Round(bk.Load / peak * float64(width)))
		}
		style := normalBar
		marker := " "
		if bk.Busy {
			style = busyBar
			marker = "!"
		}
		b.WriteString(rowLabel(FormatWhen(bk.Start)))
		b.WriteString("│")
		b.WriteString(style.Render(strings.Repeat("█", n)))
		b.WriteString(strings.Repeat(" ", width-n))
		fmt.Fprintf(&b, "│ %6.2f %s\n", bk.Load, marker)
	}
	return b.String()
}

// RenderDueCurve draws the cumulative deadline count as horizontal bars.
func RenderDueCurve(points []density.Point, width int) string {
	if len(points) == 0 {
		return ""
	}
	width = max(width, minChartWidth)
	total := points[len(points)-1].Due

	var b strings.Builder
	for _, p := range points {
		n := 0
		if total > 0 {
			n = p.Due * width / total
		}
		b.WriteString(rowLabel(FormatWhen(p.At)))
		b.WriteString("│")
		b.WriteString(normalBar.Render(strings.Repeat("▇", n)))
		b.WriteString(strings.Repeat(" ", width-n))
		fmt.Fprintf(&b, "│ %d\n", p.Due)
	}
	return b.String()
}
