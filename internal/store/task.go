package store

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Ownership is not enforced here: callers look a task up, compare its
// UserID with the caller and only then mutate it.
type TaskStore interface {
	// Create inserts a new task and sets task.ID to the assigned id.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by id.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// ListByUser returns every task owned by userID ordered by id.
	// An empty slice is returned when the user owns no tasks.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error)

	// Update writes title, description, status and updated_at of an existing task.
	// The owner column is never written.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete permanently removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error
}
