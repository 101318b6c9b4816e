// Package task defines the core domain types for taskpilot.
package task

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrInvalidLabel    = errors.New("label must be 'personal' or 'academic'")
	ErrInvalidWeight   = errors.New("priority weight must be a non-negative number")
	ErrInvalidInterval = errors.New("deadline must not be before start")
)

// Domain errors.
var (
	ErrDuplicateID       = errors.New("task id already exists")
	ErrNotFound          = errors.New("task not found")
	ErrAmbiguousID       = errors.New("task id prefix is ambiguous")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Label is the category tag of a task.
type Label string

const (
	LabelPersonal Label = "personal"
	LabelAcademic Label = "academic"
)

// ParseLabel parses a label name, case-insensitively.
func ParseLabel(s string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "personal":
		return LabelPersonal, nil
	case "academic":
		return LabelAcademic, nil
	default:
		return "", ErrInvalidLabel
	}
}

// Valid returns true if the label is a known value.
func (l Label) Valid() bool {
	return l == LabelPersonal || l == LabelAcademic
}

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusMissed    Status = "missed"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusMissed:
		return true
	default:
		return false
	}
}

// Terminal returns true for states that allow no further transition.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusMissed
}

// CanTransition reports whether moving from s to the target status is allowed.
// Only Pending may move, and only to Completed or Missed.
func (s Status) CanTransition(to Status) bool {
	return s == StatusPending && (to == StatusCompleted || to == StatusMissed)
}

// Transition validates a status change and returns the new status.
func Transition(from, to Status) (Status, error) {
	if !from.CanTransition(to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return to, nil
}

// Task is a labeled activity bound to a start time and a deadline.
type Task struct {
	ID        string
	Label     Label
	Title     string
	Start     time.Time
	Deadline  time.Time
	Weight    float64 // priority weight, higher is more important
	Status    Status
	CreatedAt time.Time
}

// New creates a pending Task with a fresh id after validating its fields.
func New(title string, label Label, start, deadline time.Time, weight float64) (*Task, error) {
	t := &Task{
		ID:        uuid.NewString(),
		Label:     label,
		Title:     strings.TrimSpace(title),
		Start:     start,
		Deadline:  deadline,
		Weight:    weight,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the invariants every stored task must satisfy.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if !t.Label.Valid() {
		return ErrInvalidLabel
	}
	if t.Weight < 0 || math.IsNaN(t.Weight) || math.IsInf(t.Weight, 0) {
		return ErrInvalidWeight
	}
	if err := t.CheckInterval(); err != nil {
		return err
	}
	if !t.Status.Valid() {
		return fmt.Errorf("unknown status %q", t.Status)
	}
	return nil
}

// CheckInterval returns ErrInvalidInterval if the task starts after its deadline.
func (t *Task) CheckInterval() error {
	if t.Start.After(t.Deadline) {
		return fmt.Errorf("%w: task %s", ErrInvalidInterval, t.ID)
	}
	return nil
}

// IsPending returns true if the task has pending status.
func (t *Task) IsPending() bool {
	return t.Status == StatusPending
}

// IsPersonal returns true if the task is labeled personal.
func (t *Task) IsPersonal() bool {
	return t.Label == LabelPersonal
}

// IsAcademic returns true if the task is labeled academic.
func (t *Task) IsAcademic() bool {
	return t.Label == LabelAcademic
}

// Duration returns the length of the task's [Start, Deadline) interval.
func (t *Task) Duration() time.Duration {
	return t.Deadline.Sub(t.Start)
}

// OverlapsWith returns true if both intervals share a positive amount of time.
func (t *Task) OverlapsWith(other *Task) bool {
	if other == nil {
		return false
	}
	return Overlaps(t.Start, t.Deadline, other.Start, other.Deadline)
}

// IsOverdue returns true if the task is still pending and now is past its deadline.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.IsPending() && now.After(t.Deadline)
}

// Clone returns a copy of the task that shares no state with the original.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}
