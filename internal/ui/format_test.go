package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/taskpilot/internal/scheduler"
	"github.com/javiermolinar/taskpilot/internal/task"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0m"},
		{-time.Hour, "0m"},
		{45 * time.Minute, "45m"},
		{90 * time.Minute, "1h30m"},
		{26 * time.Hour, "1d2h"},
		{7 * 24 * time.Hour, "7d"},
		{30 * time.Second, "1m"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("3f2a9c1e-0000-4000-8000-000000000000"); got != "3f2a9c1e" {
		t.Errorf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID(short) = %q", got)
	}
}

func TestPrintTaskRow(t *testing.T) {
	tk := &task.Task{
		ID:       "0123456789",
		Label:    task.LabelAcademic,
		Title:    "Statistics homework",
		Start:    testNow,
		Deadline: testNow.Add(2 * time.Hour),
		Weight:   4,
		Status:   task.StatusPending,
	}

	var buf bytes.Buffer
	PrintTaskRow(&buf, tk, RowOpts{Now: testNow, MaxTitleWidth: 40})
	assertContains(t, buf.String(), "○ 01234567 [A] 2025-01-15 10:00 → 2025-01-15 12:00", "w=4", "Statistics homework")

	buf.Reset()
	PrintTaskRow(&buf, tk, RowOpts{Now: testNow.Add(3 * time.Hour), MaxTitleWidth: 40})
	assertContains(t, buf.String(), "! 01234567")

	buf.Reset()
	PrintTaskRow(&buf, tk, RowOpts{Now: testNow, MaxTitleWidth: 5})
	if strings.Contains(buf.String(), "Statistics") {
		t.Errorf("title should be truncated: %q", buf.String())
	}
}

func TestPrintTasksEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintTasks(&buf, nil, RowOpts{}, "nothing due")
	if got := buf.String(); got != "  nothing due\n" {
		t.Errorf("PrintTasks(nil) = %q", got)
	}
}

func TestScheduleText(t *testing.T) {
	res := &scheduler.Result{
		Selected: []*task.Task{{
			ID: "x", Label: task.LabelPersonal, Title: "Gym",
			Start: testNow, Deadline: testNow.Add(time.Hour), Weight: 1.5,
		}},
		TotalWeight: 1.5,
	}

	want := "Schedule (total weight 1.5)\n- 2025-01-15 10:00 → 2025-01-15 11:00 [personal] Gym (w=1.5)\n"
	if got := ScheduleText(res); got != want {
		t.Errorf("ScheduleText() =\n%q\nwant\n%q", got, want)
	}
}
