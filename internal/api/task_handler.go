package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tasktrack/tasktrack-api/internal/api/shared"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/service"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		validator:   newValidator(),
		logger:      logger.With("component", "task_handler"),
	}
}

// CreateTask handles POST /api/tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, ValidationErrorDetails(err))
		return
	}

	dto, err := h.taskService.CreateTask(r.Context(), taskInputFromRequest(req))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, dto)
}

// ListTasks handles GET /api/tasks requests. The status, priority, and
// assignedToId query parameters are optional equality filters; each is
// skipped entirely when absent.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	filter, violations := taskFilterFromQuery(r)
	if len(violations) > 0 {
		shared.RespondWithValidationErrors(w, r, violations)
		return
	}

	page, err := parsePageRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), filter, page)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewPageResponse(tasks))
}

// GetTask handles GET /api/tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	dto, err := h.taskService.GetTaskByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto)
}

// UpdateTask handles PUT /api/tasks/{id} requests.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, ValidationErrorDetails(err))
		return
	}

	dto, err := h.taskService.UpdateTask(r.Context(), id, taskInputFromRequest(req))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto)
}

// UpdateTaskStatus handles PATCH /api/tasks/{id}/status requests.
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req TaskStatusUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, ValidationErrorDetails(err))
		return
	}

	dto, err := h.taskService.UpdateTaskStatus(r.Context(), id, domain.TaskStatus(req.Status))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto)
}

// DeleteTask handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// taskInputFromRequest maps a validated request payload to a service input.
func taskInputFromRequest(req TaskRequest) service.TaskInput {
	return service.TaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       domain.TaskStatus(req.Status),
		Priority:     domain.TaskPriority(req.Priority),
		DueDate:      req.DueDate,
		AssignedToID: req.AssignedToID,
	}
}

// taskFilterFromQuery builds the task filter from the query string,
// collecting violation messages for values outside the enumerations.
func taskFilterFromQuery(r *http.Request) (store.TaskFilter, map[string]string) {
	var filter store.TaskFilter
	violations := make(map[string]string)

	query := r.URL.Query()

	if raw := query.Get("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if !domain.IsValidTaskStatus(status) {
			violations["status"] = "must be one of: TODO IN_PROGRESS DONE"
		} else {
			filter.Status = &status
		}
	}

	if raw := query.Get("priority"); raw != "" {
		priority := domain.TaskPriority(raw)
		if !domain.IsValidTaskPriority(priority) {
			violations["priority"] = "must be one of: LOW MEDIUM HIGH"
		} else {
			filter.Priority = &priority
		}
	}

	if raw := query.Get("assignedToId"); raw != "" {
		id, err := parseQueryInt64(raw)
		if err != nil {
			violations["assignedToId"] = "must be a positive integer"
		} else {
			filter.AssignedToID = &id
		}
	}

	if len(violations) == 0 {
		violations = nil
	}
	return filter, violations
}

// respondServiceError translates a service error into an HTTP response.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
