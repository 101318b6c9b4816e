// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/javiermolinar/taskpilot/internal/task"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const selectColumns = `
	SELECT id, label, title, start_at, deadline, weight, status, created_at
	FROM tasks
`

const insertQuery = `
	INSERT INTO tasks (id, label, title, start_at, deadline, weight, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

// SQLite implements task.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ task.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// CreateTask adds a new task to the repository.
// Returns task.ErrDuplicateID if the id is already stored.
func (s *SQLite) CreateTask(ctx context.Context, t *task.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, insertQuery, args(t)...); err != nil {
		return insertError(t, err)
	}
	return nil
}

// CreateTasks adds multiple tasks in a batch using a transaction.
// Either every task is stored or none is.
func (s *SQLite) CreateTasks(ctx context.Context, tasks []*task.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("task %q: %w", t.Title, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range tasks {
		if _, err := stmt.ExecContext(ctx, args(t)...); err != nil {
			return insertError(t, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// GetTask retrieves a task by ID.
// Returns task.ErrNotFound if no such task exists.
func (s *SQLite) GetTask(ctx context.Context, id string) (*task.Task, error) {
	return getTask(ctx, s.db, id)
}

// ListTasks returns every stored task ordered by id.
func (s *SQLite) ListTasks(ctx context.Context) ([]*task.Task, error) {
	return s.list(ctx, selectColumns+` ORDER BY id`)
}

// ListTasksByDeadline returns tasks whose deadline falls within [from, to],
// earliest deadline first.
func (s *SQLite) ListTasksByDeadline(ctx context.Context, from, to time.Time) ([]*task.Task, error) {
	return s.list(ctx, selectColumns+` WHERE deadline >= ? AND deadline <= ? ORDER BY deadline, id`,
		formatTime(from), formatTime(to))
}

// UpdateStatus persists a status transition.
// Returns task.ErrNotFound or task.ErrInvalidTransition.
func (s *SQLite) UpdateStatus(ctx context.Context, id string, status task.Status) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := getTask(ctx, tx, id)
	if err != nil {
		return err
	}
	next, err := task.Transition(current.Status, status)
	if err != nil {
		return fmt.Errorf("task %s: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE tasks SET status = ? WHERE id = ?`, next, id); err != nil {
		return fmt.Errorf("updating task status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func getTask(ctx context.Context, q queryer, id string) (*task.Task, error) {
	t, err := scanTask(q.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", task.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying task: %w", err)
	}
	return t, nil
}

func (s *SQLite) list(ctx context.Context, query string, queryArgs ...any) ([]*task.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	return tasks, nil
}

func scanTask(row scanner) (*task.Task, error) {
	var (
		t                            task.Task
		start, deadline, createdAt string
	)
	if err := row.Scan(&t.ID, &t.Label, &t.Title, &start, &deadline, &t.Weight, &t.Status, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if t.Start, err = parseTime(start); err != nil {
		return nil, fmt.Errorf("parsing start: %w", err)
	}
	if t.Deadline, err = parseTime(deadline); err != nil {
		return nil, fmt.Errorf("parsing deadline: %w", err)
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	return &t, nil
}

func args(t *task.Task) []any {
	createdAt := t.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return []any{
		t.ID,
		t.Label,
		t.Title,
		formatTime(t.Start),
		formatTime(t.Deadline),
		t.Weight,
		t.Status,
		formatTime(createdAt),
	}
}

// insertError maps primary key violations to task.ErrDuplicateID.
func insertError(t *task.Task, err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return fmt.Errorf("%w: %s", task.ErrDuplicateID, t.ID)
		}
	}
	return fmt.Errorf("inserting task %q: %w", t.Title, err)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime parses a stored timestamp and returns it in the local timezone.
func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Local(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}
