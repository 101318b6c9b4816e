// Package sorter produces ordered views of tasks for listings and indexes.
package sorter

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/javiermolinar/taskpilot/internal/task"
)

// Key selects the task field a view is ordered by.
type Key string

const (
	KeyDeadline Key = "deadline"
	KeyStart    Key = "start"
	KeyPriority Key = "priority"
	KeyLabel    Key = "label"
	KeyTitle    Key = "title"
)

// Order is the direction of the primary key.
type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// ParseKey parses a key name.
func ParseKey(s string) (Key, error) {
	switch k := Key(strings.ToLower(strings.TrimSpace(s))); k {
	case KeyDeadline, KeyStart, KeyPriority, KeyLabel, KeyTitle:
		return k, nil
	case "weight":
		return KeyPriority, nil
	case "type":
		return KeyLabel, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// ParseOrder parses "asc"/"ascending" or "desc"/"descending".
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}

// Compare orders a and b by key in the given order. Ties on the key are
// broken by id ascending, whatever the order, so the result is total.
func Compare(a, b *task.Task, key Key, order Order) int {
	c := compareKey(a, b, key)
	if order == Descending {
		c = -c
	}
	if c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

func compareKey(a, b *task.Task, key Key) int {
	switch key {
	case KeyDeadline:
		return a.Deadline.Compare(b.Deadline)
	case KeyStart:
		return a.Start.Compare(b.Start)
	case KeyPriority:
		return cmp.Compare(a.Weight, b.Weight)
	case KeyLabel:
		return strings.Compare(string(a.Label), string(b.Label))
	case KeyTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	default:
		return 0
	}
}

// SortBy returns a new view ordered by key using merge sort.
// The input slice is not modified.
func SortBy(view []*task.Task, key Key, order Order) []*task.Task {
	out := make([]*task.Task, len(view))
	copy(out, view)
	if len(out) < 2 {
		return out
	}
	buf := make([]*task.Task, len(out))
	mergeSort(out, buf, func(a, b *task.Task) int {
		return Compare(a, b, key, order)
	})
	return out
}

func mergeSort(s, buf []*task.Task, cmpFn func(a, b *task.Task) int) {
	if len(s) < 2 {
		return
	}
	mid := len(s) / 2
	mergeSort(s[:mid], buf[:mid], cmpFn)
	mergeSort(s[mid:], buf[mid:], cmpFn)

	// Already in order, nothing to merge.
	if cmpFn(s[mid-1], s[mid]) <= 0 {
		return
	}

	copy(buf, s)
	i, j, k := 0, mid, 0
	for i < mid && j < len(s) {
		if cmpFn(buf[j], buf[i]) < 0 {
			s[k] = buf[j]
			j++
		} else {
			s[k] = buf[i]
			i++
		}
		k++
	}
	for i < mid {
		s[k] = buf[i]
		i++
		k++
	}
	for j < len(s) {
		s[k] = buf[j]
		j++
		k++
	}
}

// SortInPlace orders view by key using quicksort with a median-of-three
// pivot. It produces the same order as SortBy.
func SortInPlace(view []*task.Task, key Key, order Order) {
	quickSort(view, func(a, b *task.Task) int {
		return Compare(a, b, key, order)
	})
}

const insertionThreshold = 12

func quickSort(s []*task.Task, cmpFn func(a, b *task.Task) int) {
	// Recurse into the smaller side and loop on the larger one to keep the
	// stack at O(log n).
	for len(s) > insertionThreshold {
		p := partition(s, cmpFn)
		if p < len(s)-p-1 {
			quickSort(s[:p], cmpFn)
			s = s[p+1:]
		} else {
			quickSort(s[p+1:], cmpFn)
			s = s[:p]
		}
	}
	insertionSort(s, cmpFn)
}

// partition places the median-of-three pivot at its final position and
// returns that position.
func partition(s []*task.Task, cmpFn func(a, b *task.Task) int) int {
	lo, mid, hi := 0, len(s)/2, len(s)-1
	if cmpFn(s[mid], s[lo]) < 0 {
		s[mid], s[lo] = s[lo], s[mid]
	}
	if cmpFn(s[hi], s[lo]) < 0 {
		s[hi], s[lo] = s[lo], s[hi]
	}
	if cmpFn(s[hi], s[mid]) < 0 {
		s[hi], s[mid] = s[mid], s[hi]
	}
	// s[lo] <= s[mid] <= s[hi]; park the pivot next to the end.
	s[mid], s[hi-1] = s[hi-1], s[mid]
	pivot := s[hi-1]

	i, j := lo, hi-1
	for {
		for i++; cmpFn(s[i], pivot) < 0; i++ {
		}
		for j--; cmpFn(pivot, s[j]) < 0; j-- {
		}
		if i >= j {
			break
		}
		s[i], s[j] = s[j], s[i]
	}
	s[i], s[hi-1] = s[hi-1], s[i]
	return i
}

func insertionSort(s []*task.Task, cmpFn func(a, b *task.Task) int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && cmpFn(s[j], s[j-1]) < 0; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// Group is a run of tasks sharing the same key value.
type Group struct {
	Name  string
	Tasks []*task.Task
}

// GroupBy sorts view ascending by key and splits it into runs of equal key
// values. Within a group tasks are ordered by id.
func GroupBy(view []*task.Task, key Key) []Group {
	sorted := SortBy(view, key, Ascending)

	var groups []Group
	for _, t := range sorted {
		name := groupName(t, key)
		if n := len(groups); n > 0 && compareKey(groups[n-1].Tasks[0], t, key) == 0 {
			groups[n-1].Tasks = append(groups[n-1].Tasks, t)
			continue
		}
		groups = append(groups, Group{Name: name, Tasks: []*task.Task{t}})
	}
	return groups
}

func groupName(t *task.Task, key Key) string {
	switch key {
	case KeyDeadline:
		return t.Deadline.Format("2006-01-02 15:04")
	case KeyStart:
		return t.Start.Format("2006-01-02 15:04")
	case KeyPriority:
		return fmt.Sprintf("weight %g", t.Weight)
	case KeyLabel:
		return string(t.Label)
	case KeyTitle:
		return t.Title
	default:
		return ""
	}
}
