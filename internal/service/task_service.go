package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// TaskService provides task lifecycle operations.
type TaskService interface {
	// CreateTask creates a new task. Status defaults to TODO and priority to
	// MEDIUM when the input leaves them empty. When the input names an
	// assignee, the user must exist; otherwise a NotFoundError is returned
	// and nothing is persisted.
	CreateTask(ctx context.Context, input TaskInput) (*TaskDTO, error)

	// ListTasks returns the page of tasks matching the conjunction of the
	// provided filters. Absent filters impose no restriction.
	ListTasks(ctx context.Context, filter store.TaskFilter, page store.PageRequest) (store.Page[TaskDTO], error)

	// GetTaskByID returns the task with the given id or a NotFoundError.
	GetTaskByID(ctx context.Context, id int64) (*TaskDTO, error)

	// UpdateTask overwrites title, description, and due date unconditionally,
	// retains status/priority when the input leaves them empty, and reassigns
	// or clears the assignee. Returns a NotFoundError when the task or the
	// named assignee does not exist.
	UpdateTask(ctx context.Context, id int64, input TaskInput) (*TaskDTO, error)

	// UpdateTaskStatus sets only the task's status, leaving every other
	// field untouched. Returns a NotFoundError when the task does not exist.
	UpdateTaskStatus(ctx context.Context, id int64, status domain.TaskStatus) (*TaskDTO, error)

	// DeleteTask permanently removes the task with the given id.
	// Returns a NotFoundError when the task does not exist.
	DeleteTask(ctx context.Context, id int64) error
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	tasks  store.TaskStore
	users  store.UserStore
	db     *sql.DB
	logger *slog.Logger
}

// NewTaskService creates a new TaskService. The db handle is used to run
// each mutation within a single transaction; a nil db runs mutations
// directly, which is only appropriate for tests backed by fake stores.
// It returns an error if the required store dependencies are nil.
func NewTaskService(
	tasks store.TaskStore,
	users store.UserStore,
	db *sql.DB,
	logger *slog.Logger,
) (TaskService, error) {
	if tasks == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "tasks store cannot be nil"}
	}
	if users == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "users store cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		users:  users,
		db:     db,
		logger: logger.With("component", "task_service"),
	}, nil
}

// inTransaction runs fn within a database transaction when a db handle is
// configured, and directly otherwise.
func (s *taskServiceImpl) inTransaction(ctx context.Context, fn store.TxFn) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return store.RunInTransaction(ctx, s.db, fn)
}

// taskStore returns the task store bound to the given transaction, or the
// plain store when tx is nil.
func (s *taskServiceImpl) taskStore(tx *sql.Tx) store.TaskStore {
	if tx == nil {
		return s.tasks
	}
	return s.tasks.WithTx(tx)
}

// userStore returns the user store bound to the given transaction, or the
// plain store when tx is nil.
func (s *taskServiceImpl) userStore(tx *sql.Tx) store.UserStore {
	if tx == nil {
		return s.users
	}
	return s.users.WithTx(tx)
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, input TaskInput) (*TaskDTO, error) {
	task, err := domain.NewTask(input.Title, input.Description, input.Status, input.Priority, input.DueDate)
	if err != nil {
		s.logger.Warn("invalid task input", "error", err)
		return nil, err
	}

	var assigneeName string

	err = s.inTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if input.AssignedToID != nil {
			assignee, err := s.userStore(tx).GetByID(ctx, *input.AssignedToID)
			if err != nil {
				if errors.Is(err, store.ErrUserNotFound) {
					return NewUserNotFoundError(*input.AssignedToID)
				}
				return err
			}
			task.AssignedToID = &assignee.ID
			assigneeName = assignee.Name
		}

		return s.taskStore(tx).Create(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"status", string(task.Status),
		"priority", string(task.Priority))

	return taskToDTO(task, assigneeName), nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context, filter store.TaskFilter, page store.PageRequest) (store.Page[TaskDTO], error) {
	tasks, err := s.tasks.List(ctx, filter, page)
	if err != nil {
		return store.Page[TaskDTO]{}, err
	}

	result := store.Page[TaskDTO]{
		Items:         make([]TaskDTO, 0, len(tasks.Items)),
		Number:        tasks.Number,
		Size:          tasks.Size,
		TotalElements: tasks.TotalElements,
	}

	// Resolve assignee names once per distinct user on this page.
	names := make(map[int64]string)
	for i := range tasks.Items {
		task := &tasks.Items[i]

		var assigneeName string
		if task.AssignedToID != nil {
			name, ok := names[*task.AssignedToID]
			if !ok {
				name, err = s.assigneeName(ctx, *task.AssignedToID)
				if err != nil {
					return store.Page[TaskDTO]{}, err
				}
				names[*task.AssignedToID] = name
			}
			assigneeName = name
		}

		result.Items = append(result.Items, *taskToDTO(task, assigneeName))
	}

	return result, nil
}

// GetTaskByID implements TaskService.GetTaskByID
func (s *taskServiceImpl) GetTaskByID(ctx context.Context, id int64) (*TaskDTO, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, NewTaskNotFoundError(id)
		}
		return nil, err
	}

	return s.toDTO(ctx, task)
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(ctx context.Context, id int64, input TaskInput) (*TaskDTO, error) {
	var task *domain.Task
	var assigneeName string

	err := s.inTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		taskStore := s.taskStore(tx)

		var err error
		task, err = taskStore.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				return NewTaskNotFoundError(id)
			}
			return err
		}

		task.Title = input.Title
		task.Description = input.Description
		task.DueDate = input.DueDate
		if input.Status != "" {
			task.Status = input.Status
		}
		if input.Priority != "" {
			task.Priority = input.Priority
		}

		if input.AssignedToID != nil {
			assignee, err := s.userStore(tx).GetByID(ctx, *input.AssignedToID)
			if err != nil {
				if errors.Is(err, store.ErrUserNotFound) {
					return NewUserNotFoundError(*input.AssignedToID)
				}
				return err
			}
			task.AssignedToID = &assignee.ID
			assigneeName = assignee.Name
		} else {
			task.AssignedToID = nil
		}

		return taskStore.Update(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task updated", "task_id", task.ID)

	return taskToDTO(task, assigneeName), nil
}

// UpdateTaskStatus implements TaskService.UpdateTaskStatus
func (s *taskServiceImpl) UpdateTaskStatus(ctx context.Context, id int64, status domain.TaskStatus) (*TaskDTO, error) {
	var task *domain.Task

	err := s.inTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		taskStore := s.taskStore(tx)

		var err error
		task, err = taskStore.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				return NewTaskNotFoundError(id)
			}
			return err
		}

		if err := task.UpdateStatus(status); err != nil {
			return err
		}

		return taskStore.Update(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task status updated",
		"task_id", task.ID,
		"status", string(task.Status))

	return s.toDTO(ctx, task)
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	err := s.inTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore(tx).Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return NewTaskNotFoundError(id)
		}
		return err
	}

	s.logger.Info("task deleted", "task_id", id)
	return nil
}

// toDTO maps a task to its transfer representation, resolving the assignee
// name when the task is assigned. A dangling assignee reference (user
// removed out-of-band) degrades to an id without a name.
func (s *taskServiceImpl) toDTO(ctx context.Context, task *domain.Task) (*TaskDTO, error) {
	var assigneeName string
	if task.AssignedToID != nil {
		name, err := s.assigneeName(ctx, *task.AssignedToID)
		if err != nil {
			return nil, err
		}
		assigneeName = name
	}

	return taskToDTO(task, assigneeName), nil
}

// assigneeName resolves a user's name, treating a missing user as an empty
// name rather than an error.
func (s *taskServiceImpl) assigneeName(ctx context.Context, id int64) (string, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Warn("task references missing assignee", "assigned_to_id", id)
			return "", nil
		}
		return "", err
	}
	return user.Name, nil
}
