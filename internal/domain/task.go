package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// TaskStatus represents the workflow state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// TaskPriority represents the urgency of a task.
type TaskPriority string

// Possible task priority values
const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// Common validation errors for Task. Each wraps ErrValidation.
var (
	ErrEmptyTaskTitle         = fmt.Errorf("%w: task title cannot be empty", ErrValidation)
	ErrTaskTitleTooShort      = fmt.Errorf("%w: task title must be at least 3 characters long", ErrValidation)
	ErrTaskTitleTooLong       = fmt.Errorf("%w: task title must be at most 100 characters long", ErrValidation)
	ErrTaskDescriptionTooLong = fmt.Errorf("%w: task description must be at most 500 characters long", ErrValidation)
	ErrInvalidTaskStatus      = fmt.Errorf("%w: invalid task status", ErrValidation)
	ErrInvalidTaskPriority    = fmt.Errorf("%w: invalid task priority", ErrValidation)
)

// Task represents a trackable unit of work with status, priority, an optional
// due date, and an optional assignee.
//
// AssignedToID is a weak reference by id: the task does not own the user, and
// many tasks may reference one user. A nil AssignedToID means the task is
// unassigned.
type Task struct {
	ID           int64        `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	DueDate      *Date        `json:"due_date,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	AssignedToID *int64       `json:"assigned_to_id,omitempty"`
}

// NewTask creates a new Task with the given title, description, and due date.
// Status defaults to TODO and priority to MEDIUM when the supplied values are
// empty. The ID is assigned by the store on insert.
// Returns an error if validation fails.
func NewTask(title, description string, status TaskStatus, priority TaskPriority, dueDate *Date) (*Task, error) {
	if status == "" {
		status = TaskStatusTodo
	}
	if priority == "" {
		priority = TaskPriorityMedium
	}

	now := time.Now().UTC()
	task := &Task{
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation. Lengths are measured in
// characters, not bytes, so multibyte titles get the full budget.
func (t *Task) Validate() error {
	title := strings.TrimSpace(t.Title)
	if title == "" {
		return ErrEmptyTaskTitle
	}
	if utf8.RuneCountInString(title) < 3 {
		return ErrTaskTitleTooShort
	}
	if utf8.RuneCountInString(title) > 100 {
		return ErrTaskTitleTooLong
	}

	if utf8.RuneCountInString(t.Description) > 500 {
		return ErrTaskDescriptionTooLong
	}

	if !IsValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}
	if !IsValidTaskPriority(t.Priority) {
		return ErrInvalidTaskPriority
	}

	return nil
}

// UpdateStatus sets the task's status and refreshes the UpdatedAt timestamp.
// Returns an error if the new status is invalid. All other fields are left
// untouched.
func (t *Task) UpdateStatus(status TaskStatus) error {
	if !IsValidTaskStatus(status) {
		return ErrInvalidTaskStatus
	}

	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// IsValidTaskStatus checks if the given status is a valid TaskStatus.
func IsValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// IsValidTaskPriority checks if the given priority is a valid TaskPriority.
func IsValidTaskPriority(priority TaskPriority) bool {
	switch priority {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}
