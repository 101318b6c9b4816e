// Package index provides a deadline-sorted index over task snapshots for
// logarithmic "what is due next" and range queries.
package index

import (
	"time"

	"github.com/javiermolinar/taskpilot/internal/sorter"
	"github.com/javiermolinar/taskpilot/internal/task"
)

// Source is anything that can hand out a snapshot of its tasks.
type Source interface {
	Snapshot() []*task.Task
}

// Index is an immutable, deadline-ascending array of tasks.
// It does not follow later changes to its source; call Rebuild after a
// mutation that matters to subsequent queries.
type Index struct {
	tasks   []*task.Task
	src     Source
	builtAt time.Time
}

// Build materializes an index from a view already sorted by deadline
// ascending. It does not re-sort.
func Build(sorted []*task.Task) *Index {
	tasks := make([]*task.Task, len(sorted))
	copy(tasks, sorted)
	return &Index{tasks: tasks, builtAt: time.Now()}
}

// New snapshots src, sorts the snapshot by deadline and builds an index that
// remembers src for Rebuild.
func New(src Source) *Index {
	idx := Build(sorter.SortBy(src.Snapshot(), sorter.KeyDeadline, sorter.Ascending))
	idx.src = src
	return idx
}

// Rebuild returns a fresh index over a new snapshot of the source.
// An index made with Build has no source and is returned unchanged.
func (x *Index) Rebuild() *Index {
	if x.src == nil {
		return x
	}
	return New(x.src)
}

// Len returns the number of indexed tasks, whatever their status.
func (x *Index) Len() int {
	return len(x.tasks)
}

// BuiltAt returns when the index was materialized.
func (x *Index) BuiltAt() time.Time {
	return x.builtAt
}

// Tasks returns copies of the indexed tasks in deadline order.
func (x *Index) Tasks() []*task.Task {
	out := make([]*task.Task, len(x.tasks))
	for i, t := range x.tasks {
		out[i] = t.Clone()
	}
	return out
}

func (x *Index) deadline(i int) time.Time {
	return x.tasks[i].Deadline
}

// NextDue returns up to count pending tasks whose deadline is not before
// asOf, earliest first. Query results are copies; changing them leaves the
// index untouched.
func (x *Index) NextDue(asOf time.Time, count int) []*task.Task {
	if count <= 0 {
		return nil
	}

	var out []*task.Task
	for i := LowerBound(len(x.tasks), x.deadline, asOf); i < len(x.tasks) && len(out) < count; i++ {
		if x.tasks[i].IsPending() {
			out = append(out, x.tasks[i].Clone())
		}
	}
	return out
}

// InRange returns the pending tasks with a deadline in [from, to].
func (x *Index) InRange(from, to time.Time) []*task.Task {
	if to.Before(from) {
		return nil
	}

	lo := LowerBound(len(x.tasks), x.deadline, from)
	hi := UpperBound(len(x.tasks), x.deadline, to)

	return pending(x.tasks[lo:hi])
}

// Overdue returns the pending tasks whose deadline is before asOf.
func (x *Index) Overdue(asOf time.Time) []*task.Task {
	hi := LowerBound(len(x.tasks), x.deadline, asOf)
	return pending(x.tasks[:hi])
}

func pending(tasks []*task.Task) []*task.Task {
	var out []*task.Task
	for _, t := range tasks {
		if t.IsPending() {
			out = append(out, t.Clone())
		}
	}
	return out
}
