package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/platform/logger"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// taskColumns is the column list shared by every task SELECT.
const taskColumns = "id, title, description, status, priority, due_date, created_at, updated_at, assigned_to_id"

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, the default
// logger is used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create
// It saves a new task to the database and assigns its generated ID.
// Returns store.ErrInvalidEntity if the assignee references a missing user
// (foreign key violation).
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO tasks (title, description, status, priority, due_date, created_at, updated_at, assigned_to_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		dueDateValue(task.DueDate),
		task.CreatedAt,
		task.UpdatedAt,
		assigneeValue(task.AssignedToID),
	).Scan(&task.ID)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("error", err.Error()),
				slog.Any("assigned_to_id", task.AssignedToID))
			return fmt.Errorf("%w: assignee does not exist", store.ErrInvalidEntity)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.String("status", string(task.Status)),
		slog.String("priority", string(task.Priority)))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = $1", taskColumns)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, MapError(err)
	}

	return task, nil
}

// List implements store.TaskStore.List
// It applies the conjunction of the provided filters, counts the full set of
// matching rows, and returns the requested page in insertion order.
func (s *TaskStore) List(ctx context.Context, filter store.TaskFilter, page store.PageRequest) (store.Page[domain.Task], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildTaskPredicate(filter)

	result := store.Page[domain.Task]{
		Number: page.Number,
		Size:   page.Size,
	}

	countQuery := "SELECT COUNT(*) FROM tasks" + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&result.TotalElements); err != nil {
		log.Error("failed to count tasks", slog.String("error", err.Error()))
		return store.Page[domain.Task]{}, MapError(err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM tasks%s ORDER BY id LIMIT $%d OFFSET $%d",
		taskColumns,
		where,
		len(args)+1,
		len(args)+2,
	)
	listArgs := append(args, page.Size, page.Offset())

	rows, err := s.db.QueryContext(ctx, query, listArgs...)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return store.Page[domain.Task]{}, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return store.Page[domain.Task]{}, MapError(err)
		}
		result.Items = append(result.Items, *task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return store.Page[domain.Task]{}, MapError(err)
	}

	return result, nil
}

// Update implements store.TaskStore.Update
// It overwrites every mutable column and refreshes the UpdatedAt timestamp.
// Returns store.ErrTaskNotFound if the task does not exist.
// Returns store.ErrInvalidEntity if the assignee references a missing user.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}

	task.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4,
		    due_date = $5, updated_at = $6, assigned_to_id = $7
		WHERE id = $8
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		dueDateValue(task.DueDate),
		task.UpdatedAt,
		assigneeValue(task.AssignedToID),
		task.ID,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task update",
				slog.String("error", err.Error()),
				slog.Int64("task_id", task.ID),
				slog.Any("assigned_to_id", task.AssignedToID))
			return fmt.Errorf("%w: assignee does not exist", store.ErrInvalidEntity)
		}

		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	log.Info("task updated successfully", slog.Int64("task_id", task.ID))
	return nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		log.Debug("task not found during delete", slog.Int64("task_id", id))
		return store.ErrTaskNotFound
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return nil
}

// WithTx implements store.TaskStore.WithTx
// It returns a new TaskStore that runs all operations on the provided
// transaction.
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanTask.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row, converting the nullable due_date and
// assigned_to_id columns into their pointer representations.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var dueDate sql.NullTime
	var assignedToID sql.NullInt64

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&dueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
		&assignedToID,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		d := domain.DateOf(dueDate.Time)
		task.DueDate = &d
	}
	if assignedToID.Valid {
		id := assignedToID.Int64
		task.AssignedToID = &id
	}

	return &task, nil
}

// dueDateValue converts an optional Date into a driver-friendly value.
func dueDateValue(d *domain.Date) any {
	if d == nil || d.IsZero() {
		return nil
	}
	return d.Time()
}

// assigneeValue converts an optional assignee id into a driver-friendly value.
func assigneeValue(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
