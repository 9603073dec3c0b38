package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLength mirrors the tasks.title column size.
const MaxTitleLength = 255

// TaskStatus represents the workflow state of a task.
type TaskStatus string

const (
	// TaskStatusTodo is the initial state of every new task.
	TaskStatusTodo TaskStatus = "todo"
	// TaskStatusInProgress indicates work on the task has started.
	TaskStatusInProgress TaskStatus = "in_progress"
	// TaskStatusDone indicates the task is complete.
	TaskStatusDone TaskStatus = "done"
)

// TaskStatuses lists every valid status in workflow order.
var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}

// Valid reports whether s is one of the enumerated statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// Task is a unit of work owned by exactly one user.
//
// DueDate is persisted but not exposed through any API operation.
type Task struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	DueDate     *time.Time `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new task owned by userID with status todo.
// The ID is assigned by the store on insert.
func NewTask(userID int64, title string, description *string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: description,
		Status:      TaskStatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.UserID <= 0 {
		return NewValidationError("user_id", "is required", ErrEmptyOwner)
	}
	if err := validateTitle(t.Title); err != nil {
		return err
	}
	if !t.Status.Valid() {
		return NewValidationError("status", "must be one of todo, in_progress, done", ErrInvalidTaskStatus)
	}
	return nil
}

// IsOwnedBy reports whether userID is the task's owner.
func (t *Task) IsOwnedBy(userID int64) bool {
	return t.UserID == userID
}

// TaskPatch is a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// Validate checks the fields that are present in the patch.
func (p TaskPatch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(strings.TrimSpace(*p.Title)); err != nil {
			return err
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return NewValidationError("status", "must be one of todo, in_progress, done", ErrInvalidTaskStatus)
	}
	return nil
}

// Apply overwrites the task fields present in p and bumps UpdatedAt.
// The owner is never modified.
func (t *Task) Apply(p TaskPatch) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		description := *p.Description
		t.Description = &description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	t.UpdatedAt = time.Now().UTC()

	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return NewValidationError("title", "is required", ErrEmptyTitle)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return NewValidationError("title", "must be at most 255 characters", ErrTitleTooLong)
	}
	return nil
}
