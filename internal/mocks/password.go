package mocks

import (
	"strings"

	"github.com/phrazzld/task-api/internal/service/auth"
)

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	// ShouldSucceed determines whether the password comparison should succeed
	ShouldSucceed bool

	CompareFn func(hashedPassword, password string) error

	CompareCalledWith struct {
		HashedPassword string
		Password       string
	}
	CompareCallCount int
}

var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCalledWith.HashedPassword = hashedPassword
	m.CompareCalledWith.Password = password
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return auth.ErrPasswordMismatch
}

// PlainHasher implements auth.PasswordHasher and auth.PasswordVerifier with a
// reversible "hashed:" prefix, so tests avoid bcrypt's cost.
type PlainHasher struct {
	HashErr error
}

var (
	_ auth.PasswordHasher   = (*PlainHasher)(nil)
	_ auth.PasswordVerifier = (*PlainHasher)(nil)
)

const plainHashPrefix = "hashed:"

// Hash implements auth.PasswordHasher.
func (h *PlainHasher) Hash(password string) (string, error) {
	if h.HashErr != nil {
		return "", h.HashErr
	}
	return plainHashPrefix + password, nil
}

// Compare implements auth.PasswordVerifier.
func (h *PlainHasher) Compare(hashedPassword, password string) error {
	if !strings.HasPrefix(hashedPassword, plainHashPrefix) ||
		strings.TrimPrefix(hashedPassword, plainHashPrefix) != password {
		return auth.ErrPasswordMismatch
	}
	return nil
}
