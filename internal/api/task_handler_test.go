package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/service"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// MockTaskService is a mock implementation of service.TaskService for testing
type MockTaskService struct {
	CreateTaskFn       func(ctx context.Context, input service.TaskInput) (*service.TaskDTO, error)
	ListTasksFn        func(ctx context.Context, filter store.TaskFilter, page store.PageRequest) (store.Page[service.TaskDTO], error)
	GetTaskByIDFn      func(ctx context.Context, id int64) (*service.TaskDTO, error)
	UpdateTaskFn       func(ctx context.Context, id int64, input service.TaskInput) (*service.TaskDTO, error)
	UpdateTaskStatusFn func(ctx context.Context, id int64, status domain.TaskStatus) (*service.TaskDTO, error)
	DeleteTaskFn       func(ctx context.Context, id int64) error
}

func (m *MockTaskService) CreateTask(ctx context.Context, input service.TaskInput) (*service.TaskDTO, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, input)
	}
	return nil, nil
}

func (m *MockTaskService) ListTasks(ctx context.Context, filter store.TaskFilter, page store.PageRequest) (store.Page[service.TaskDTO], error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, filter, page)
	}
	return store.Page[service.TaskDTO]{}, nil
}

func (m *MockTaskService) GetTaskByID(ctx context.Context, id int64) (*service.TaskDTO, error) {
	if m.GetTaskByIDFn != nil {
		return m.GetTaskByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskService) UpdateTask(ctx context.Context, id int64, input service.TaskInput) (*service.TaskDTO, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, input)
	}
	return nil, nil
}

func (m *MockTaskService) UpdateTaskStatus(ctx context.Context, id int64, status domain.TaskStatus) (*service.TaskDTO, error) {
	if m.UpdateTaskStatusFn != nil {
		return m.UpdateTaskStatusFn(ctx, id, status)
	}
	return nil, nil
}

func (m *MockTaskService) DeleteTask(ctx context.Context, id int64) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return nil
}

// newTaskTestRouter mounts the task handler on a chi router so route
// parameters resolve the same way they do in production.
func newTaskTestRouter(mock *MockTaskService) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewTaskHandler(mock, logger)

	r := chi.NewRouter()
	r.Post("/api/tasks", handler.CreateTask)
	r.Get("/api/tasks", handler.ListTasks)
	r.Get("/api/tasks/{id}", handler.GetTask)
	r.Put("/api/tasks/{id}", handler.UpdateTask)
	r.Patch("/api/tasks/{id}/status", handler.UpdateTaskStatus)
	r.Delete("/api/tasks/{id}", handler.DeleteTask)
	return r
}

func sampleTaskDTO() *service.TaskDTO {
	fixedTime := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	return &service.TaskDTO{
		ID:        1,
		Title:     "Write report",
		Status:    domain.TaskStatusTodo,
		Priority:  domain.TaskPriorityMedium,
		CreatedAt: fixedTime,
		UpdatedAt: fixedTime,
	}
}

func TestTaskHandler_CreateTask(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockTaskService)
		expectedStatus int
		expectedErrMsg string
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name:        "successful_creation",
			requestBody: TaskRequest{Title: "Write report"},
			setupMock: func(ms *MockTaskService) {
				ms.CreateTaskFn = func(ctx context.Context, input service.TaskInput) (*service.TaskDTO, error) {
					return sampleTaskDTO(), nil
				}
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, float64(1), body["id"])
				assert.Equal(t, "Write report", body["title"])
				assert.Equal(t, "TODO", body["status"])
				assert.Equal(t, "MEDIUM", body["priority"])
			},
		},
		{
			name:           "invalid_request_format",
			requestBody:    `{"title": "Broken`,
			setupMock:      func(ms *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Invalid request format",
		},
		{
			name:           "title_too_short",
			requestBody:    TaskRequest{Title: "ab"},
			setupMock:      func(ms *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Validation failed",
			checkResponse: func(t *testing.T, body map[string]interface{}) {
				violations, ok := body["validationErrors"].(map[string]interface{})
				require.True(t, ok, "expected validationErrors in response")
				assert.Contains(t, violations, "title")
			},
		},
		{
			// Whitespace padding slips past the request validator's length
			// check; the domain rejection must still come back as a 400.
			name:        "whitespace_padded_title",
			requestBody: TaskRequest{Title: "  a  "},
			setupMock: func(ms *MockTaskService) {
				ms.CreateTaskFn = func(ctx context.Context, input service.TaskInput) (*service.TaskDTO, error) {
					return nil, domain.ErrTaskTitleTooShort
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "at least 3 characters",
		},
		{
			name:           "unknown_status",
			requestBody:    map[string]string{"title": "Write report", "status": "PENDING"},
			setupMock:      func(ms *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Validation failed",
		},
		{
			name:        "assignee_not_found",
			requestBody: TaskRequest{Title: "Write report", AssignedToID: ptrInt64(99)},
			setupMock: func(ms *MockTaskService) {
				ms.CreateTaskFn = func(ctx context.Context, input service.TaskInput) (*service.TaskDTO, error) {
					return nil, service.NewUserNotFoundError(99)
				}
			},
			expectedStatus: http.StatusNotFound,
			expectedErrMsg: "User not found with id: 99",
		},
		{
			name:        "service_error",
			requestBody: TaskRequest{Title: "Write report"},
			setupMock: func(ms *MockTaskService) {
				ms.CreateTaskFn = func(ctx context.Context, input service.TaskInput) (*service.TaskDTO, error) {
					return nil, errors.New("unexpected service error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			expectedErrMsg: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockTaskService{}
			tt.setupMock(mockService)
			router := newTaskTestRouter(mockService)

			reqBody := marshalBody(t, tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var respBody map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))

			if tt.expectedErrMsg != "" {
				message, _ := respBody["message"].(string)
				assert.Contains(t, message, tt.expectedErrMsg)
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, respBody)
			}
		})
	}
}

func TestTaskHandler_ListTasks(t *testing.T) {
	t.Run("returns a page envelope", func(t *testing.T) {
		mockService := &MockTaskService{
			ListTasksFn: func(ctx context.Context, filter store.TaskFilter, page store.PageRequest) (store.Page[service.TaskDTO], error) {
				assert.Equal(t, 0, page.Number)
				assert.Equal(t, 10, page.Size)
				return store.Page[service.TaskDTO]{
					Items:         []service.TaskDTO{*sampleTaskDTO()},
					Number:        0,
					Size:          10,
					TotalElements: 1,
				}, nil
			},
		}
		router := newTaskTestRouter(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(1), resp["totalElements"])
		assert.Equal(t, float64(1), resp["totalPages"])
		assert.Equal(t, true, resp["first"])
		assert.Equal(t, true, resp["last"])
		content, ok := resp["content"].([]interface{})
		require.True(t, ok)
		assert.Len(t, content, 1)
	})

	t.Run("forwards filters and pagination", func(t *testing.T) {
		var gotFilter store.TaskFilter
		var gotPage store.PageRequest
		mockService := &MockTaskService{
			ListTasksFn: func(ctx context.Context, filter store.TaskFilter, page store.PageRequest) (store.Page[service.TaskDTO], error) {
				gotFilter = filter
				gotPage = page
				return store.Page[service.TaskDTO]{Number: page.Number, Size: page.Size}, nil
			},
		}
		router := newTaskTestRouter(mockService)

		req := httptest.NewRequest(
			http.MethodGet,
			"/api/tasks?status=DONE&priority=HIGH&assignedToId=4&page=2&size=5",
			nil,
		)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, gotFilter.Status)
		assert.Equal(t, domain.TaskStatusDone, *gotFilter.Status)
		require.NotNil(t, gotFilter.Priority)
		assert.Equal(t, domain.TaskPriorityHigh, *gotFilter.Priority)
		require.NotNil(t, gotFilter.AssignedToID)
		assert.Equal(t, int64(4), *gotFilter.AssignedToID)
		assert.Equal(t, 2, gotPage.Number)
		assert.Equal(t, 5, gotPage.Size)
	})

	t.Run("empty page serializes content as an empty array", func(t *testing.T) {
		mockService := &MockTaskService{
			ListTasksFn: func(ctx context.Context, filter store.TaskFilter, page store.PageRequest) (store.Page[service.TaskDTO], error) {
				return store.Page[service.TaskDTO]{Number: 0, Size: 10}, nil
			},
		}
		router := newTaskTestRouter(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"content":[]`)
	})

	t.Run("rejects unknown filter values", func(t *testing.T) {
		router := newTaskTestRouter(&MockTaskService{})

		for _, query := range []string{
			"status=PENDING",
			"priority=URGENT",
			"assignedToId=abc",
		} {
			req := httptest.NewRequest(http.MethodGet, "/api/tasks?"+query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", query)
		}
	})

	t.Run("rejects bad pagination", func(t *testing.T) {
		router := newTaskTestRouter(&MockTaskService{})

		for _, query := range []string{"page=-1", "size=0", "page=x"} {
			req := httptest.NewRequest(http.MethodGet, "/api/tasks?"+query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", query)
		}
	})
}

func TestTaskHandler_GetTask(t *testing.T) {
	t.Run("returns the task", func(t *testing.T) {
		mockService := &MockTaskService{
			GetTaskByIDFn: func(ctx context.Context, id int64) (*service.TaskDTO, error) {
				assert.Equal(t, int64(1), id)
				return sampleTaskDTO(), nil
			},
		}
		router := newTaskTestRouter(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"title":"Write report"`)
	})

	t.Run("missing task returns 404 with the id", func(t *testing.T) {
		mockService := &MockTaskService{
			GetTaskByIDFn: func(ctx context.Context, id int64) (*service.TaskDTO, error) {
				return nil, service.NewTaskNotFoundError(id)
			},
		}
		router := newTaskTestRouter(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks/7", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Task not found with id: 7")
	})

	t.Run("non-numeric id returns 400", func(t *testing.T) {
		router := newTaskTestRouter(&MockTaskService{})

		req := httptest.NewRequest(http.MethodGet, "/api/tasks/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandler_UpdateTaskStatus(t *testing.T) {
	t.Run("updates the status", func(t *testing.T) {
		mockService := &MockTaskService{
			UpdateTaskStatusFn: func(ctx context.Context, id int64, status domain.TaskStatus) (*service.TaskDTO, error) {
				assert.Equal(t, int64(1), id)
				assert.Equal(t, domain.TaskStatusDone, status)
				dto := sampleTaskDTO()
				dto.Status = status
				return dto, nil
			},
		}
		router := newTaskTestRouter(mockService)

		reqBody := marshalBody(t, TaskStatusUpdateRequest{Status: "DONE"})
		req := httptest.NewRequest(http.MethodPatch, "/api/tasks/1/status", bytes.NewReader(reqBody))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"DONE"`)
	})

	t.Run("rejects unknown status values", func(t *testing.T) {
		router := newTaskTestRouter(&MockTaskService{})

		reqBody := marshalBody(t, map[string]string{"status": "ARCHIVED"})
		req := httptest.NewRequest(http.MethodPatch, "/api/tasks/1/status", bytes.NewReader(reqBody))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "status")
	})

	t.Run("rejects a missing status field", func(t *testing.T) {
		router := newTaskTestRouter(&MockTaskService{})

		reqBody := marshalBody(t, map[string]string{})
		req := httptest.NewRequest(http.MethodPatch, "/api/tasks/1/status", bytes.NewReader(reqBody))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	t.Run("forwards the full payload", func(t *testing.T) {
		var gotInput service.TaskInput
		mockService := &MockTaskService{
			UpdateTaskFn: func(ctx context.Context, id int64, input service.TaskInput) (*service.TaskDTO, error) {
				gotInput = input
				return sampleTaskDTO(), nil
			},
		}
		router := newTaskTestRouter(mockService)

		reqBody := marshalBody(t, map[string]interface{}{
			"title":    "Renamed",
			"priority": "HIGH",
			"dueDate":  "2026-10-01",
		})
		req := httptest.NewRequest(http.MethodPut, "/api/tasks/1", bytes.NewReader(reqBody))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Renamed", gotInput.Title)
		assert.Equal(t, domain.TaskPriorityHigh, gotInput.Priority)
		require.NotNil(t, gotInput.DueDate)
		assert.Equal(t, "2026-10-01", gotInput.DueDate.String())
	})

	t.Run("missing task returns 404", func(t *testing.T) {
		mockService := &MockTaskService{
			UpdateTaskFn: func(ctx context.Context, id int64, input service.TaskInput) (*service.TaskDTO, error) {
				return nil, service.NewTaskNotFoundError(id)
			},
		}
		router := newTaskTestRouter(mockService)

		reqBody := marshalBody(t, TaskRequest{Title: "Renamed"})
		req := httptest.NewRequest(http.MethodPut, "/api/tasks/12", bytes.NewReader(reqBody))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Task not found with id: 12")
	})
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	t.Run("returns 204 with no body", func(t *testing.T) {
		called := false
		mockService := &MockTaskService{
			DeleteTaskFn: func(ctx context.Context, id int64) error {
				called = true
				assert.Equal(t, int64(3), id)
				return nil
			},
		}
		router := newTaskTestRouter(mockService)

		req := httptest.NewRequest(http.MethodDelete, "/api/tasks/3", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		assert.True(t, called)
	})

	t.Run("missing task returns 404", func(t *testing.T) {
		mockService := &MockTaskService{
			DeleteTaskFn: func(ctx context.Context, id int64) error {
				return service.NewTaskNotFoundError(id)
			},
		}
		router := newTaskTestRouter(mockService)

		req := httptest.NewRequest(http.MethodDelete, "/api/tasks/8", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Task not found with id: 8")
	})
}

// marshalBody serializes a request body, passing raw strings through so
// tests can send malformed JSON.
func marshalBody(t *testing.T, body interface{}) []byte {
	t.Helper()

	if str, ok := body.(string); ok {
		return []byte(str)
	}
	data, err := json.Marshal(body)
	require.NoError(t, err)
	return data
}

func ptrInt64(v int64) *int64 {
	return &v
}
