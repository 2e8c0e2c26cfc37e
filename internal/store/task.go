package store

import (
	"context"
	"database/sql"

	"github.com/tasktrack/tasktrack-api/internal/domain"
)

// TaskFilter holds the optional equality predicates for listing tasks.
// A nil field means the predicate is skipped entirely, not "matches null":
// a filter with only Status set matches tasks of that status regardless of
// priority or assignee.
type TaskFilter struct {
	Status       *domain.TaskStatus
	Priority     *domain.TaskPriority
	AssignedToID *int64
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store and assigns its generated ID.
	// Returns validation errors from the domain Task if data is invalid.
	// Returns ErrInvalidEntity if the assignee references a missing user
	// (foreign key violation).
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List returns the page of tasks matching the conjunction of the
	// provided filters, in insertion order, together with the total count
	// of matching rows.
	List(ctx context.Context, filter TaskFilter, page PageRequest) (Page[domain.Task], error)

	// Update persists changes to an existing task and refreshes its
	// UpdatedAt timestamp.
	// Returns ErrTaskNotFound if the task does not exist.
	// Returns ErrInvalidEntity if the assignee references a missing user.
	Update(ctx context.Context, task *domain.Task) error

	// Delete permanently removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service).
	WithTx(tx *sql.Tx) TaskStore
}
