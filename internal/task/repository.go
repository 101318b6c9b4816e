package task

import "context"

// Repository defines the durable storage interface for tasks.
type Repository interface {
	// CreateTask adds a new task to the repository.
	// Returns ErrDuplicateID if the id is already stored.
	CreateTask(ctx context.Context, task *Task) error

	// CreateTasks adds multiple tasks atomically.
	CreateTasks(ctx context.Context, tasks []*Task) error

	// GetTask retrieves a task by ID. Returns ErrNotFound if absent.
	GetTask(ctx context.Context, id string) (*Task, error)

	// ListTasks returns every stored task ordered by id.
	ListTasks(ctx context.Context) ([]*Task, error)

	// UpdateStatus persists a status transition.
	// The same transition rules as Store.UpdateStatus apply.
	UpdateStatus(ctx context.Context, id string, status Status) error

	// Close releases any resources held by the repository.
	Close() error
}
