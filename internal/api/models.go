package api

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// TaskRequest defines the payload for creating or fully updating a task.
// Status and priority are optional; empty values fall back to the defaults
// on create and to the existing values on update. Omitting assignedToId
// creates the task unassigned, or clears the assignment on update.
type TaskRequest struct {
	Title        string       `json:"title"        validate:"required,min=3,max=100"`
	Description  string       `json:"description"  validate:"omitempty,max=500"`
	Status       string       `json:"status"       validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority     string       `json:"priority"     validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate      *domain.Date `json:"dueDate"`
	AssignedToID *int64       `json:"assignedToId"`
}

// TaskStatusUpdateRequest defines the payload for the status patch endpoint.
type TaskStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=TODO IN_PROGRESS DONE"`
}

// UserRequest defines the payload for creating a user.
type UserRequest struct {
	Name  string `json:"name"  validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// PageResponse is the wire representation of one page of results.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPageResponse converts a store page into its wire representation.
func NewPageResponse[T any](page store.Page[T]) PageResponse[T] {
	content := page.Items
	if content == nil {
		content = []T{}
	}

	return PageResponse[T]{
		Content:       content,
		Number:        page.Number,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages(),
		First:         page.First(),
		Last:          page.Last(),
	}
}

// newValidator creates the validator used by the handlers, configured to
// report JSON field names in violation messages.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
