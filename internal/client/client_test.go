package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the fake API received.
type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]interface{}
}

// newFakeAPI starts a server that records the request and answers with
// status and body.
func newFakeAPI(t *testing.T, status int, body string) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Auth = r.Header.Get("Authorization")
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			require.NoError(t, json.Unmarshal(data, &rec.Body))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestNew(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.baseURL.String())

	_, err = New("not a url")
	assert.Error(t, err)
}

func TestClient_Register(t *testing.T) {
	srv, rec := newFakeAPI(t, http.StatusCreated, `{"message":"User registered successfully","user_id":4}`)
	c, err := New(srv.URL)
	require.NoError(t, err)

	reg, err := c.Register(context.Background(), "alice", "alice@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, int64(4), reg.UserID)
	assert.Equal(t, "User registered successfully", reg.Message)
	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/api/register", rec.Path)
	assert.Empty(t, rec.Auth)
	assert.Equal(t, "alice@example.com", rec.Body["email"])
}

func TestClient_Login(t *testing.T) {
	t.Run("returns token", func(t *testing.T) {
		srv, _ := newFakeAPI(t, http.StatusOK, `{"access_token":"abc.def.ghi"}`)
		c, err := New(srv.URL)
		require.NoError(t, err)

		token, err := c.Login(context.Background(), "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, "abc.def.ghi", token)
	})

	t.Run("unauthorized", func(t *testing.T) {
		srv, _ := newFakeAPI(t, http.StatusUnauthorized, `{"error":"Invalid username or password"}`)
		c, err := New(srv.URL)
		require.NoError(t, err)

		_, err = c.Login(context.Background(), "alice", "wrong")

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "Invalid username or password", apiErr.Message)
	})
}

func TestClient_ListTasks(t *testing.T) {
	srv, rec := newFakeAPI(t, http.StatusOK,
		`{"tasks":[{"id":1,"title":"a","description":null,"status":"todo"},{"id":2,"title":"b","description":"x","status":"done"}]}`)
	c, err := New(srv.URL, WithToken("tok"))
	require.NoError(t, err)

	tasks, err := c.ListTasks(context.Background())

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Nil(t, tasks[0].Description)
	require.NotNil(t, tasks[1].Description)
	assert.Equal(t, "x", *tasks[1].Description)
	assert.Equal(t, "Bearer tok", rec.Auth)
	assert.Equal(t, "/api/tasks", rec.Path)
}

func TestClient_CreateTask(t *testing.T) {
	srv, rec := newFakeAPI(t, http.StatusCreated, `{"message":"Task created successfully","task_id":9}`)
	c, err := New(srv.URL, WithToken("tok"))
	require.NoError(t, err)

	res, err := c.CreateTask(context.Background(), "Buy milk", "")

	require.NoError(t, err)
	assert.Equal(t, int64(9), res.TaskID)
	assert.Equal(t, "Buy milk", rec.Body["title"])
	assert.Equal(t, "", rec.Body["description"])
}

func TestClient_UpdateTask(t *testing.T) {
	t.Run("sends only set fields", func(t *testing.T) {
		srv, rec := newFakeAPI(t, http.StatusOK, `{"message":"Task updated successfully","task_id":3}`)
		c, err := New(srv.URL, WithToken("tok"))
		require.NoError(t, err)

		status := "done"
		res, err := c.UpdateTask(context.Background(), 3, TaskUpdate{Status: &status})

		require.NoError(t, err)
		assert.Equal(t, int64(3), res.TaskID)
		assert.Equal(t, http.MethodPut, rec.Method)
		assert.Equal(t, "/api/tasks/3", rec.Path)
		assert.Equal(t, map[string]interface{}{"status": "done"}, rec.Body)
	})

	t.Run("empty update makes no request", func(t *testing.T) {
		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()
		c, err := New(srv.URL, WithToken("tok"))
		require.NoError(t, err)

		_, err = c.UpdateTask(context.Background(), 3, TaskUpdate{})

		assert.ErrorIs(t, err, ErrNothingToUpdate)
		assert.False(t, called)
	})

	t.Run("forbidden", func(t *testing.T) {
		srv, _ := newFakeAPI(t, http.StatusForbidden, `{"error":"Forbidden: You do not own this task"}`)
		c, err := New(srv.URL, WithToken("tok"))
		require.NoError(t, err)

		title := "x"
		_, err = c.UpdateTask(context.Background(), 3, TaskUpdate{Title: &title})
		assert.Equal(t, http.StatusForbidden, StatusCode(err))
	})
}

func TestClient_DeleteTask(t *testing.T) {
	srv, rec := newFakeAPI(t, http.StatusOK, `{"message":"Task deleted successfully"}`)
	c, err := New(srv.URL, WithToken("tok"))
	require.NoError(t, err)

	msg, err := c.DeleteTask(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, "Task deleted successfully", msg)
	assert.Equal(t, http.MethodDelete, rec.Method)
	assert.Equal(t, "/api/tasks/5", rec.Path)
}

func TestClient_NoTokenMakesNoRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.ListTasks(context.Background())

	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.False(t, called)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := New(url, WithToken("tok"))
	require.NoError(t, err)

	_, err = c.ListTasks(context.Background())

	assert.ErrorIs(t, err, ErrUnreachable)
	assert.Equal(t, 0, StatusCode(err))
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		action   Action
		expected string
	}{
		{"not logged in", ErrNotLoggedIn, ActionList, "You must be logged in. Run 'task login'"},
		{"nothing to update", ErrNothingToUpdate, ActionUpdate, "Nothing to update! Provide --status, --title, or --desc."},
		{"unreachable", ErrUnreachable, ActionCreate, "Error: Could not connect to the API."},
		{"registration conflict", &APIError{StatusCode: 400, Message: "Username already exists"}, ActionRegister, "Registration failed: Username already exists"},
		{"bad login", &APIError{StatusCode: 401, Message: "Invalid username or password"}, ActionLogin, "Login failed: Invalid username or password"},
		{"expired token", &APIError{StatusCode: 401, Message: "Token expired"}, ActionList, "Login failed or token expired. Please log in again."},
		{"forbidden update", &APIError{StatusCode: 403}, ActionUpdate, "Error: You do not have permission to update this task."},
		{"forbidden delete", &APIError{StatusCode: 403}, ActionDelete, "Error: You do not have permission to delete this task."},
		{"missing task", &APIError{StatusCode: 404}, ActionDelete, "Error: Task with ID 12 not found."},
		{"validation", &APIError{StatusCode: 400, Message: "invalid status: must be one of todo, in_progress, done"}, ActionUpdate, "Error: invalid status: must be one of todo, in_progress, done"},
		{"server error", &APIError{StatusCode: 500, Message: "Failed to list tasks"}, ActionList, "An error occurred: 500 Internal Server Error"},
		{"other", errors.New("boom"), ActionList, "An unexpected error occurred: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Describe(tt.err, tt.action, 12))
		})
	}
}
