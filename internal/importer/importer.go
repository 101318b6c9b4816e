// Package importer reads tasks from YAML documents.
//
// A document looks like:
//
//	tasks:
//	  - title: Write report
//	    label: academic
//	    start: "2025-05-01 09:00"
//	    deadline: "2025-05-02"
//	    weight: 3
//	  - title: Gym
//	    label: personal
//	    start: tomorrow
//	    deadline: "+26h"
//
// Omitted ids are generated, omitted starts default to the deadline,
// omitted weights default to 1, and omitted statuses default to pending.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/taskpilot/internal/dateutil"
	"github.com/javiermolinar/taskpilot/internal/task"
)

// ErrNoTasks is returned for documents without any task entries.
var ErrNoTasks = errors.New("no tasks in document")

// DefaultWeight is used for entries that do not set a weight.
const DefaultWeight = 1.0

type document struct {
	Tasks []entry `yaml:"tasks"`
}

type entry struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Label    string   `yaml:"label"`
	Start    string   `yaml:"start"`
	Deadline string   `yaml:"deadline"`
	Weight   *float64 `yaml:"weight"`
	Status   string   `yaml:"status"`
}

// Load parses a YAML document into validated tasks.
// Relative date-times are resolved against now.
func Load(r io.Reader, now time.Time) ([]*task.Task, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoTasks
		}
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if len(doc.Tasks) == 0 {
		return nil, ErrNoTasks
	}

	seen := make(map[string]int, len(doc.Tasks))
	tasks := make([]*task.Task, 0, len(doc.Tasks))
	for i, e := range doc.Tasks {
		t, err := e.toTask(now)
		if err != nil {
			return nil, fmt.Errorf("task %d (%q): %w", i+1, e.Title, err)
		}
		if prev, ok := seen[t.ID]; ok {
			return nil, fmt.Errorf("task %d: %w: %s also used by task %d", i+1, task.ErrDuplicateID, t.ID, prev)
		}
		seen[t.ID] = i + 1
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// LoadFile opens path and parses it with Load.
func LoadFile(path string, now time.Time) ([]*task.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Load(f, now)
}

func (e entry) toTask(now time.Time) (*task.Task, error) {
	label, err := task.ParseLabel(e.Label)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(e.Deadline) == "" {
		return nil, fmt.Errorf("deadline: %w", dateutil.ErrInvalidDateFormat)
	}
	deadline, err := dateutil.ParseDateTime(e.Deadline, now)
	if err != nil {
		return nil, fmt.Errorf("deadline: %w", err)
	}
	start := deadline
	if strings.TrimSpace(e.Start) != "" {
		if start, err = dateutil.ParseDateTime(e.Start, now); err != nil {
			return nil, fmt.Errorf("start: %w", err)
		}
	}

	weight := DefaultWeight
	if e.Weight != nil {
		weight = *e.Weight
	}

	status := task.StatusPending
	if e.Status != "" {
		status = task.Status(strings.ToLower(strings.TrimSpace(e.Status)))
	}

	id := strings.TrimSpace(e.ID)
	if id == "" {
		id = uuid.NewString()
	}

	t := &task.Task{
		ID:        id,
		Label:     label,
		Title:     strings.TrimSpace(e.Title),
		Start:     start,
		Deadline:  deadline,
		Weight:    weight,
		Status:    status,
		CreatedAt: now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
