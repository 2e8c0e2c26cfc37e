package service

import (
	"fmt"

	"github.com/tasktrack/tasktrack-api/internal/store"
)

// NotFoundError indicates that a referenced entity does not exist.
// It unwraps to store.ErrNotFound so callers can classify it with errors.Is,
// while carrying the entity name and id for a precise client-facing message.
type NotFoundError struct {
	Entity string // "Task" or "User"
	ID     int64
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %d", e.Entity, e.ID)
}

// Unwrap returns store.ErrNotFound to support errors.Is.
func (e *NotFoundError) Unwrap() error {
	return store.ErrNotFound
}

// NewTaskNotFoundError creates a NotFoundError for a missing task.
func NewTaskNotFoundError(id int64) *NotFoundError {
	return &NotFoundError{Entity: "Task", ID: id}
}

// NewUserNotFoundError creates a NotFoundError for a missing user.
func NewUserNotFoundError(id int64) *NotFoundError {
	return &NotFoundError{Entity: "User", ID: id}
}

// DuplicateEmailError indicates that a user with the given email is already
// registered. It unwraps to store.ErrDuplicate.
type DuplicateEmailError struct {
	Email string
}

// Error implements the error interface for DuplicateEmailError.
func (e *DuplicateEmailError) Error() string {
	return "Email already exists: " + e.Email
}

// Unwrap returns store.ErrDuplicate to support errors.Is.
func (e *DuplicateEmailError) Unwrap() error {
	return store.ErrDuplicate
}

// ServiceError wraps unexpected errors from a service with operation context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
