package store

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
// Users are never updated or deleted once registered.
type UserStore interface {
	// Create inserts a new user and sets user.ID to the assigned id.
	// The user must carry a HashedPassword; the plaintext Password is never stored.
	// Returns ErrUsernameExists or ErrEmailExists when a unique constraint fails.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by id.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by exact username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail retrieves a user by exact email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
