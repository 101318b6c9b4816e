// Package summary aggregates the task views into one report.
package summary

import (
	"fmt"
	"time"

	"github.com/javiermolinar/taskpilot/internal/dateutil"
	"github.com/javiermolinar/taskpilot/internal/density"
	"github.com/javiermolinar/taskpilot/internal/index"
	"github.com/javiermolinar/taskpilot/internal/scheduler"
	"github.com/javiermolinar/taskpilot/internal/task"
)

// LabelStats counts the tasks of one label by status.
type LabelStats struct {
	Label         task.Label
	Pending       int
	Completed     int
	Missed        int
	PendingWeight float64
}

// Total returns the number of tasks with this label.
func (s LabelStats) Total() int {
	return s.Pending + s.Completed + s.Missed
}

// Report is a point-in-time overview of the task collection.
type Report struct {
	From     time.Time
	To       time.Time
	Now      time.Time
	Labels   []LabelStats // personal first, then academic
	Overdue  []*task.Task
	Next     []*task.Task
	Window   []*task.Task // pending tasks due within [From, To]
	Schedule *scheduler.Result
	Buckets  []density.Bucket
	Peak     *density.Bucket
}

// Options configures Build.
type Options struct {
	From          time.Time
	To            time.Time
	Now           time.Time
	NextCount     int
	BucketWidth   time.Duration
	Mode          density.Mode
	BusyThreshold float64
}

// WeekOptions returns opts spanning the ISO week containing ref, from
// Monday midnight to the following Monday midnight.
func WeekOptions(ref time.Time, opts Options) Options {
	monday, _ := dateutil.WeekRange(ref)
	opts.From = monday
	opts.To = monday.AddDate(0, 0, 7)
	return opts
}

// Build computes a report from an index. The index is not modified.
func Build(idx *index.Index, opts Options) (*Report, error) {
	if opts.To.Before(opts.From) {
		return nil, dateutil.ErrEndDateBeforeStart
	}

	all := idx.Tasks()
	window := idx.InRange(opts.From, opts.To)

	schedule, err := scheduler.Select(window)
	if err != nil {
		return nil, fmt.Errorf("selecting schedule: %w", err)
	}

	var pending []*task.Task
	for _, t := range all {
		if t.IsPending() {
			pending = append(pending, t)
		}
	}

	buckets, err := density.Analyze(pending, density.Options{
		BucketWidth:   opts.BucketWidth,
		RangeStart:    opts.From,
		RangeEnd:      opts.To,
		Mode:          opts.Mode,
		BusyThreshold: opts.BusyThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("analyzing density: %w", err)
	}

	r := &Report{
		From:     opts.From,
		To:       opts.To,
		Now:      opts.Now,
		Labels:   labelStats(all),
		Overdue:  idx.Overdue(opts.Now),
		Next:     idx.NextDue(opts.Now, opts.NextCount),
		Window:   window,
		Schedule: schedule,
		Buckets:  buckets,
	}
	if peak, ok := density.Peak(buckets); ok && peak.Load > 0 {
		r.Peak = &peak
	}
	return r, nil
}

func labelStats(tasks []*task.Task) []LabelStats {
	stats := []LabelStats{{Label: task.LabelPersonal}, {Label: task.LabelAcademic}}
	for _, t := range tasks {
		s := &stats[0]
		if t.IsAcademic() {
			s = &stats[1]
		}
		switch t.Status {
		case task.StatusPending:
			s.Pending++
			s.PendingWeight += t.Weight
		case task.StatusCompleted:
			s.Completed++
		case task.StatusMissed:
			s.Missed++
		}
	}
	return stats
}
