package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Column limits mirrored from the users table.
const (
	MaxUsernameLength = 50
	MaxEmailLength    = 100
	// MaxPasswordBytes is bcrypt's input limit.
	MaxPasswordBytes = 72
)

var validate = validator.New()

// User represents a registered user of the task manager.
// Users are immutable after registration.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, only present during registration
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a new User with the given username, email and plaintext password.
// The ID is assigned by the store on insert. Surrounding whitespace is trimmed
// from username and email. Returns an error if validation fails.
//
// The caller is responsible for hashing the password before storing the user.
func NewUser(username, email, password string) (*User, error) {
	user := &User{
		Username:  strings.TrimSpace(username),
		Email:     strings.TrimSpace(email),
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// A user must carry either a plaintext password (before hashing) or a hash.
func (u *User) Validate() error {
	if u.Username == "" {
		return NewValidationError("username", "is required", ErrEmptyUsername)
	}
	if utf8.RuneCountInString(u.Username) > MaxUsernameLength {
		return NewValidationError("username", "must be at most 50 characters", ErrUsernameTooLong)
	}

	if u.Email == "" {
		return NewValidationError("email", "is required", ErrEmptyEmail)
	}
	if utf8.RuneCountInString(u.Email) > MaxEmailLength ||
		validate.Var(u.Email, "email") != nil {
		return NewValidationError("email", "must be a valid email address", ErrInvalidEmail)
	}

	if u.Password != "" {
		if len(u.Password) > MaxPasswordBytes {
			return NewValidationError("password", "must be at most 72 bytes", ErrPasswordTooLong)
		}
		return nil
	}

	if u.HashedPassword == "" {
		return NewValidationError("password", "is required", ErrEmptyPassword)
	}

	return nil
}
