package summary

import (
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/taskpilot/internal/dateutil"
	"github.com/javiermolinar/taskpilot/internal/density"
	"github.com/javiermolinar/taskpilot/internal/index"
	"github.com/javiermolinar/taskpilot/internal/sorter"
	"github.com/javiermolinar/taskpilot/internal/task"
)

// Wednesday.
var now = time.Date(2025, 1, 15, 12, 0, 0, 0, time.Local)

func mk(id string, label task.Label, start, deadline time.Duration, weight float64, status task.Status) *task.Task {
	return &task.Task{
		ID:       id,
		Label:    label,
		Title:    "task " + id,
		Start:    now.Add(start),
		Deadline: now.Add(deadline),
		Weight:   weight,
		Status:   status,
	}
}

func buildIndex(tasks ...*task.Task) *index.Index {
	return index.Build(sorter.SortBy(tasks, sorter.KeyDeadline, sorter.Ascending))
}

func TestBuild(t *testing.T) {
	idx := buildIndex(
		mk("a", task.LabelAcademic, 0, 4*time.Hour, 5, task.StatusPending),
		mk("b", task.LabelAcademic, 2*time.Hour, 6*time.Hour, 3, task.StatusPending),
		mk("c", task.LabelPersonal, 5*time.Hour, 8*time.Hour, 4, task.StatusPending),
		mk("late", task.LabelPersonal, -5*time.Hour, -time.Hour, 1, task.StatusPending),
		mk("done", task.LabelPersonal, -3*time.Hour, 2*time.Hour, 9, task.StatusCompleted),
		mk("gone", task.LabelAcademic, -9*time.Hour, -8*time.Hour, 2, task.StatusMissed),
	)

	r, err := Build(idx, Options{
		From:          now,
		To:            now.Add(24 * time.Hour),
		Now:           now,
		NextCount:     2,
		BucketWidth:   6 * time.Hour,
		Mode:          density.ModeUnit,
		BusyThreshold: 1,
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	personal, academic := r.Labels[0], r.Labels[1]
	if personal.Label != task.LabelPersonal || personal.Pending != 2 || personal.Completed != 1 || personal.PendingWeight != 5 {
		t.Errorf("unexpected personal stats: %+v", personal)
	}
	if academic.Pending != 2 || academic.Missed != 1 || academic.Total() != 3 {
		t.Errorf("unexpected academic stats: %+v", academic)
	}

	if len(r.Overdue) != 1 || r.Overdue[0].ID != "late" {
		t.Errorf("overdue = %v, want [late]", r.Overdue)
	}
	if len(r.Next) != 2 || r.Next[0].ID != "a" || r.Next[1].ID != "b" {
		t.Errorf("next = %v, want [a b]", r.Next)
	}
	if len(r.Window) != 3 {
		t.Errorf("window has %d tasks, want 3", len(r.Window))
	}

	// a (5) and c (4) fit together; b (3) overlaps both.
	if r.Schedule.TotalWeight != 9 || len(r.Schedule.Selected) != 2 {
		t.Errorf("schedule = %+v, want a and c with weight 9", r.Schedule)
	}

	if len(r.Buckets) != 4 {
		t.Fatalf("got %d buckets, want 4", len(r.Buckets))
	}
	if r.Peak == nil || !r.Peak.Start.Equal(now) {
		t.Errorf("peak = %+v, want the first bucket", r.Peak)
	}
}

func TestBuild_Empty(t *testing.T) {
	r, err := Build(buildIndex(), Options{
		From:        now,
		To:          now.Add(time.Hour),
		Now:         now,
		NextCount:   3,
		BucketWidth: time.Hour,
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if r.Peak != nil {
		t.Errorf("expected no peak, got %+v", r.Peak)
	}
	if len(r.Schedule.Selected) != 0 || r.Schedule.TotalWeight != 0 {
		t.Errorf("expected empty schedule, got %+v", r.Schedule)
	}
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build(buildIndex(), Options{From: now, To: now.Add(-time.Hour), BucketWidth: time.Hour})
	if !errors.Is(err, dateutil.ErrEndDateBeforeStart) {
		t.Errorf("got error %v, want ErrEndDateBeforeStart", err)
	}

	_, err = Build(buildIndex(), Options{From: now, To: now.Add(time.Hour)})
	if !errors.Is(err, density.ErrInvalidConfig) {
		t.Errorf("got error %v, want ErrInvalidConfig", err)
	}
}

func TestWeekOptions(t *testing.T) {
	opts := WeekOptions(now, Options{NextCount: 4})
	monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local)
	if !opts.From.Equal(monday) || !opts.To.Equal(monday.AddDate(0, 0, 7)) {
		t.Errorf("got range %v - %v", opts.From, opts.To)
	}
	if opts.NextCount != 4 {
		t.Errorf("other options were not kept: %+v", opts)
	}
}
