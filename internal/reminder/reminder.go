// Package reminder decides which tasks to remind about and retires tasks
// whose deadline has passed.
package reminder

import (
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/taskpilot/internal/index"
	"github.com/javiermolinar/taskpilot/internal/task"
)

// StatusUpdater is the slice of the task store the sweep needs.
type StatusUpdater interface {
	UpdateStatus(id string, to task.Status) error
}

// Sweep marks every pending task whose deadline is before now as missed and
// returns the affected tasks together with a rebuilt index.
// Tasks that were completed after idx was built are skipped.
func Sweep(store StatusUpdater, idx *index.Index, now time.Time) ([]*task.Task, *index.Index, error) {
	var missed []*task.Task
	for _, t := range idx.Overdue(now) {
		err := store.UpdateStatus(t.ID, task.StatusMissed)
		if errors.Is(err, task.ErrInvalidTransition) {
			continue
		}
		if err != nil {
			return missed, idx.Rebuild(), fmt.Errorf("marking task %s missed: %w", t.ID, err)
		}
		m := t.Clone()
		m.Status = task.StatusMissed
		missed = append(missed, m)
	}
	if len(missed) == 0 {
		return nil, idx, nil
	}
	return missed, idx.Rebuild(), nil
}

// Upcoming is what a reminder run should notify about.
type Upcoming struct {
	Next   []*task.Task // the next few pending tasks, earliest deadline first
	Window []*task.Task // every pending task due within the window
}

// Due returns the next count pending tasks from now and every pending task
// due in [now, now+window].
func Due(idx *index.Index, now time.Time, window time.Duration, count int) Upcoming {
	return Upcoming{
		Next:   idx.NextDue(now, count),
		Window: idx.InRange(now, now.Add(window)),
	}
}
