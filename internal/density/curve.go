package density

import (
	"fmt"
	"time"

	"github.com/javiermolinar/taskpilot/internal/index"
	"github.com/javiermolinar/taskpilot/internal/sorter"
	"github.com/javiermolinar/taskpilot/internal/task"
)

// Point is one sample of the cumulative deadline curve.
type Point struct {
	At  time.Time
	Due int // tasks with a deadline at or before At
}

// DueCurve samples, every step from `from` to `to` inclusive, how many of the
// tasks are due by that instant.
func DueCurve(tasks []*task.Task, step time.Duration, from, to time.Time) ([]Point, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: step must be positive, got %s", ErrInvalidConfig, step)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end is before range start", ErrInvalidConfig)
	}

	sorted := sorter.SortBy(tasks, sorter.KeyDeadline, sorter.Ascending)
	deadline := func(i int) time.Time { return sorted[i].Deadline }

	var points []Point
	for at := from; !at.After(to); at = at.Add(step) {
		points = append(points, Point{
			At:  at,
			Due: index.UpperBound(len(sorted), deadline, at),
		})
	}
	return points, nil
}
