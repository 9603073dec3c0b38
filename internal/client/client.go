package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// DefaultBaseURL is the API address used when none is configured.
const DefaultBaseURL = "http://127.0.0.1:8080"

// DefaultTimeout bounds a single request.
const DefaultTimeout = 15 * time.Second

// Task is a task as returned by the API.
type Task struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
}

// TaskUpdate holds the fields to change. Nil fields are not sent.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil
}

// Registration is the API's answer to a successful registration.
type Registration struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// TaskResult is the API's answer to a create or update.
type TaskResult struct {
	Message string `json:"message"`
	TaskID  int64  `json:"task_id"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken sets the bearer token sent with task requests.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// Client talks to the task manager API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	token      string
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API URL %q", baseURL)
	}

	hc := cleanhttp.DefaultClient()
	hc.Timeout = DefaultTimeout

	c := &Client{
		baseURL:    u,
		httpClient: hc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, username, email, password string) (*Registration, error) {
	payload := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}
	var out Registration
	if err := c.do(ctx, http.MethodPost, "/api/register", false, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	payload := map[string]string{
		"username": username,
		"password": password,
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/login", false, payload, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.New("login response did not include an access token")
	}
	return out.AccessToken, nil
}

// ListTasks returns the caller's tasks.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var out struct {
		Tasks []Task `json:"tasks"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tasks", true, nil, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

// CreateTask creates a task. An empty description is sent as an empty string.
func (c *Client) CreateTask(ctx context.Context, title, description string) (*TaskResult, error) {
	payload := map[string]string{
		"title":       title,
		"description": description,
	}
	var out TaskResult
	if err := c.do(ctx, http.MethodPost, "/api/tasks", true, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTask sends the fields set in update. An empty update returns
// ErrNothingToUpdate without contacting the API.
func (c *Client) UpdateTask(ctx context.Context, id int64, update TaskUpdate) (*TaskResult, error) {
	if update.IsEmpty() {
		return nil, ErrNothingToUpdate
	}
	var out TaskResult
	if err := c.do(ctx, http.MethodPut, taskPath(id), true, update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask deletes a task and returns the API's confirmation message.
func (c *Client) DeleteTask(ctx context.Context, id int64) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodDelete, taskPath(id), true, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func taskPath(id int64) string {
	return "/api/tasks/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, authenticated bool, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		if c.token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &errBody) == nil {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
