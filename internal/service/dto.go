package service

import (
	"time"

	"github.com/tasktrack/tasktrack-api/internal/domain"
)

// TaskDTO is the transfer representation of a task returned to the API
// layer. When the task is assigned, AssignedToID and AssignedToName carry
// the assignee's id and denormalized name; otherwise both are absent.
type TaskDTO struct {
	ID             int64               `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description,omitempty"`
	Status         domain.TaskStatus   `json:"status"`
	Priority       domain.TaskPriority `json:"priority"`
	DueDate        *domain.Date        `json:"dueDate,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
	AssignedToID   *int64              `json:"assignedToId,omitempty"`
	AssignedToName string              `json:"assignedToName,omitempty"`
}

// UserDTO is the transfer representation of a user returned to the API layer.
type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TaskInput carries the fields accepted when creating or fully updating a
// task. Status and Priority are optional: an empty value means "use the
// default" on create and "retain the existing value" on update. A nil
// AssignedToID creates the task unassigned, or clears the assignment on
// update.
type TaskInput struct {
	Title        string
	Description  string
	Status       domain.TaskStatus
	Priority     domain.TaskPriority
	DueDate      *domain.Date
	AssignedToID *int64
}

// UserInput carries the fields accepted when creating a user.
type UserInput struct {
	Name  string
	Email string
}

// userToDTO maps a user entity to its transfer representation.
func userToDTO(user *domain.User) *UserDTO {
	return &UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// taskToDTO maps a task entity to its transfer representation. assigneeName
// is the denormalized name of the assignee, empty when the task is
// unassigned.
func taskToDTO(task *domain.Task, assigneeName string) *TaskDTO {
	dto := &TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.AssignedToID != nil {
		id := *task.AssignedToID
		dto.AssignedToID = &id
		dto.AssignedToName = assigneeName
	}

	return dto
}
