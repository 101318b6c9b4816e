package reminder

import (
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/taskpilot/internal/index"
	"github.com/javiermolinar/taskpilot/internal/task"
)

var now = time.Date(2025, 5, 12, 12, 0, 0, 0, time.UTC)

func mk(id string, deadline time.Duration) *task.Task {
	return &task.Task{
		ID:       id,
		Label:    task.LabelAcademic,
		Title:    "task " + id,
		Start:    now.Add(-48 * time.Hour),
		Deadline: now.Add(deadline),
		Weight:   1,
		Status:   task.StatusPending,
	}
}

func newStore(t *testing.T, tasks ...*task.Task) *task.Store {
	t.Helper()
	s := task.NewStore()
	for _, tk := range tasks {
		if err := s.Add(tk); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	return s
}

func TestSweep(t *testing.T) {
	store := newStore(t,
		mk("old", -2*time.Hour),
		mk("edge", 0),
		mk("future", 3*time.Hour),
	)
	idx := index.New(store)

	missed, fresh, err := Sweep(store, idx, now)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if len(missed) != 1 || missed[0].ID != "old" {
		t.Fatalf("missed = %v, want [old]", missed)
	}
	if missed[0].Status != task.StatusMissed {
		t.Errorf("returned task status = %q, want missed", missed[0].Status)
	}

	got, _ := store.Get("old")
	if got.Status != task.StatusMissed {
		t.Errorf("stored status = %q, want missed", got.Status)
	}
	if got, _ := store.Get("edge"); got.Status != task.StatusPending {
		t.Errorf("task due exactly now should stay pending, got %q", got.Status)
	}

	if fresh == idx {
		t.Error("expected a rebuilt index after a sweep that changed tasks")
	}
	if n := len(fresh.Overdue(now)); n != 0 {
		t.Errorf("rebuilt index still has %d overdue tasks", n)
	}
}

func TestSweep_SkipsTasksCompletedSinceBuild(t *testing.T) {
	store := newStore(t, mk("done", -time.Hour), mk("late", -time.Hour))
	idx := index.New(store)

	if err := store.UpdateStatus("done", task.StatusCompleted); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	missed, _, err := Sweep(store, idx, now)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if len(missed) != 1 || missed[0].ID != "late" {
		t.Errorf("missed = %v, want [late]", missed)
	}
	if got, _ := store.Get("done"); got.Status != task.StatusCompleted {
		t.Errorf("completed task changed to %q", got.Status)
	}
}

func TestSweep_NothingOverdue(t *testing.T) {
	store := newStore(t, mk("future", time.Hour))
	idx := index.New(store)

	missed, same, err := Sweep(store, idx, now)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if len(missed) != 0 {
		t.Errorf("missed = %v, want none", missed)
	}
	if same != idx {
		t.Error("index should be reused when nothing changed")
	}
}

type failingStore struct{}

func (failingStore) UpdateStatus(string, task.Status) error {
	return errors.New("disk full")
}

func TestSweep_PropagatesErrors(t *testing.T) {
	idx := index.Build([]*task.Task{mk("old", -time.Hour)})
	if _, _, err := Sweep(failingStore{}, idx, now); err == nil {
		t.Error("expected error from store")
	}
}

func TestDue(t *testing.T) {
	store := newStore(t,
		mk("soon", time.Hour),
		mk("later", 20*time.Hour),
		mk("next-week", 7*24*time.Hour),
		mk("past", -time.Hour),
	)
	idx := index.New(store)

	up := Due(idx, now, 24*time.Hour, 2)
	if len(up.Next) != 2 || up.Next[0].ID != "soon" || up.Next[1].ID != "later" {
		t.Errorf("next = %v, want [soon later]", up.Next)
	}
	if len(up.Window) != 2 {
		t.Errorf("window = %v, want soon and later", up.Window)
	}
}
