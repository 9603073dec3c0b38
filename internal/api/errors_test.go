package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not owned", service.NewServiceError("update_task", "task belongs to another user", service.ErrNotOwned), http.StatusForbidden},
		{"task not found", service.NewServiceError("delete_task", "task not found", store.ErrTaskNotFound), http.StatusNotFound},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"username exists", store.ErrUsernameExists, http.StatusBadRequest},
		{"email exists", fmt.Errorf("insert: %w", store.ErrEmailExists), http.StatusBadRequest},
		{"validation", domain.NewValidationError("title", "is required", domain.ErrEmptyTitle), http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"bare not found", fmt.Errorf("lookup: %w", store.ErrNotFound), http.StatusNotFound},
		{"store internal", store.NewStoreError("task", "list", "query failed", store.ErrInternal), http.StatusInternalServerError},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"expired token", auth.ErrExpiredToken, "Token expired"},
		{"invalid token", auth.ErrInvalidToken, "Invalid token"},
		{"missing token", auth.ErrMissingToken, "Authorization header required"},
		{"bad credentials", service.ErrInvalidCredentials, "Invalid username or password"},
		{"not owned", service.ErrNotOwned, "Forbidden: You do not own this task"},
		{"task not found", store.ErrTaskNotFound, "Task not found"},
		{"username exists", store.ErrUsernameExists, "Username already exists"},
		{"email exists", store.ErrEmailExists, "Email already registered"},
		{"field validation", domain.NewValidationError("status", "must be one of todo, in_progress, done", domain.ErrInvalidTaskStatus), "invalid status: must be one of todo, in_progress, done"},
		{"bare validation", domain.ErrValidation, "Validation error"},
		{"internal details hidden", errors.New("pq: password authentication failed for user admin"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	validate := validator.New()

	err := validate.Struct(CreateTaskRequest{})
	assert.Equal(t, "Invalid title: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("Key: 'X.Y' Error:something")))
}

func TestHandleAPIError(t *testing.T) {
	t.Run("server errors use the fallback message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleAPIError(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil),
			errors.New("dial tcp 10.1.2.3:5432: connection refused"), "Failed to list tasks")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to list tasks", decodeError(t, rec))
		assert.NotContains(t, rec.Body.String(), "10.1.2.3")
	})

	t.Run("client errors keep the safe message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleAPIError(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil),
			service.ErrNotOwned, "Failed to update task")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Forbidden: You do not own this task", decodeError(t, rec))
	})
}
