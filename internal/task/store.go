package task

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"
)

// Store holds the canonical, unordered collection of tasks.
// Writers are mutually exclusive; snapshots wait for an in-flight write.
type Store struct {
	mu    sync.RWMutex
	tasks map[string]*Task
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{tasks: make(map[string]*Task)}
}

// Add inserts a task. The store keeps its own copy.
// Returns ErrDuplicateID if a task with the same id is already present.
func (s *Store) Add(t *Task) error {
	if t == nil {
		return fmt.Errorf("adding task: nil task")
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("adding task %s: %w", t.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[t.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
	}
	s.tasks[t.ID] = t.Clone()
	return nil
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *t, nil
}

// Resolve looks a task up by its full id or by a unique id prefix.
func (s *Store) Resolve(prefix string) (Task, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return Task{}, fmt.Errorf("%w: empty id", ErrNotFound)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.tasks[prefix]; ok {
		return *t, nil
	}

	var match *Task
	for id, t := range s.tasks {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if match != nil {
			return Task{}, fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
		}
		match = t
	}
	if match == nil {
		return Task{}, fmt.Errorf("%w: %s", ErrNotFound, prefix)
	}
	return *match, nil
}

// UpdateStatus moves a task to a new status in place.
// Only Pending -> Completed and Pending -> Missed are accepted.
// Previously built views and indexes are not updated.
func (s *Store) UpdateStatus(id string, to Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next, err := Transition(t.Status, to)
	if err != nil {
		return fmt.Errorf("task %s: %w", id, err)
	}
	t.Status = next
	return nil
}

// Len returns the number of stored tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Snapshot returns copies of all tasks ordered by id.
func (s *Store) Snapshot() []*Task {
	s.mu.RLock()
	out := make([]*Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.Clone())
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Task) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// All returns a lazy sequence over the tasks present when All is called.
// The sequence can be ranged over repeatedly and always yields that snapshot.
func (s *Store) All() iter.Seq[*Task] {
	snap := s.Snapshot()
	return func(yield func(*Task) bool) {
		for _, t := range snap {
			if !yield(t.Clone()) {
				return
			}
		}
	}
}

// LoadStore builds a Store from every task in the repository.
func LoadStore(ctx context.Context, repo Repository) (*Store, error) {
	tasks, err := repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	s := NewStore()
	for _, t := range tasks {
		if err := s.Add(t); err != nil {
			return nil, fmt.Errorf("loading task %s: %w", t.ID, err)
		}
	}
	return s, nil
}
