// Package scheduler selects the maximum-weight set of non-conflicting tasks.
package scheduler

import (
	"time"

	"github.com/javiermolinar/taskpilot/internal/index"
	"github.com/javiermolinar/taskpilot/internal/sorter"
	"github.com/javiermolinar/taskpilot/internal/task"
)

// Result is the outcome of a scheduling run.
type Result struct {
	Selected    []*task.Task // conflict-free, ordered by start time
	TotalWeight float64
	Excluded    []*task.Task // everything else, ordered by deadline
}

// Conflicts returns true if the [Start, Deadline) intervals of a and b
// overlap by a positive amount of time.
func Conflicts(a, b *task.Task) bool {
	return task.Overlaps(a.Start, a.Deadline, b.Start, b.Deadline)
}

// ConflictFree returns true if no two tasks in the slice conflict.
func ConflictFree(tasks []*task.Task) bool {
	sorted := sorter.SortBy(tasks, sorter.KeyStart, sorter.Ascending)
	var end time.Time
	for _, t := range sorted {
		if t.Start.Equal(t.Deadline) {
			continue
		}
		if t.Start.Before(end) {
			return false
		}
		if t.Deadline.After(end) {
			end = t.Deadline
		}
	}
	return true
}

// value is a DP cell: best total weight and how many tasks achieve it.
type value struct {
	weight float64
	count  int
}

// takes reports whether including a task of weight w, giving v, beats the
// alternative o. Weights compare exactly. Equal weight keeps o unless the
// task weighs nothing and v fits more tasks.
func (v value) takes(w float64, o value) bool {
	if v.weight != o.weight {
		return v.weight > o.weight
	}
	return w == 0 && v.count > o.count
}

// Select solves weighted interval scheduling over the pending tasks.
//
// Tasks are sorted by deadline; p(i) is the last task that ends no later than
// task i starts. OPT(i) = max(OPT(i-1), w(i) + OPT(p(i))) is filled bottom-up
// and the chosen set is recovered by walking the table backwards. When two
// choices tie on weight, the one without task i wins, which yields the
// earliest back-tracked solution in deadline order. Zero-weight tasks that
// fit are the one exception and are taken.
//
// Non-pending tasks are excluded without being considered. Zero-length tasks
// conflict with nothing and are always selected.
func Select(tasks []*task.Task) (*Result, error) {
	for _, t := range tasks {
		if err := t.CheckInterval(); err != nil {
			return nil, err
		}
	}

	var (
		candidates []*task.Task
		selected   []*task.Task
		excluded   []*task.Task
	)
	for _, t := range tasks {
		switch {
		case !t.IsPending():
			excluded = append(excluded, t)
		case t.Start.Equal(t.Deadline):
			selected = append(selected, t)
		default:
			candidates = append(candidates, t)
		}
	}

	sorted := sorter.SortBy(candidates, sorter.KeyDeadline, sorter.Ascending)
	p := predecessors(sorted)

	// opt[i+1] holds OPT(i); opt[0] is OPT(-1).
	opt := make([]value, len(sorted)+1)
	for i, t := range sorted {
		skip := opt[i]
		take := opt[p[i]+1]
		take.weight += t.Weight
		take.count++
		if take.takes(t.Weight, skip) {
			opt[i+1] = take
		} else {
			opt[i+1] = skip
		}
	}

	chosen := make([]bool, len(sorted))
	for i := len(sorted) - 1; i >= 0; {
		if opt[i+1] == opt[i] {
			i--
			continue
		}
		chosen[i] = true
		i = p[i]
	}

	for i, t := range sorted {
		if chosen[i] {
			selected = append(selected, t)
		} else {
			excluded = append(excluded, t)
		}
	}

	res := &Result{
		Selected: sorter.SortBy(selected, sorter.KeyStart, sorter.Ascending),
		Excluded: sorter.SortBy(excluded, sorter.KeyDeadline, sorter.Ascending),
	}
	for _, t := range res.Selected {
		res.TotalWeight += t.Weight
	}
	return res, nil
}

// predecessors computes p(i) for a deadline-sorted slice: the largest j < i
// with sorted[j].Deadline <= sorted[i].Start, or -1.
func predecessors(sorted []*task.Task) []int {
	deadline := func(i int) time.Time { return sorted[i].Deadline }

	p := make([]int, len(sorted))
	for i, t := range sorted {
		p[i] = index.UpperBound(i, deadline, t.Start) - 1
	}
	return p
}
