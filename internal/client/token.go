package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// DefaultTokenFile is the token path used when none is configured.
const DefaultTokenFile = ".token"

// TokenStore persists the bearer token in a single file.
type TokenStore struct {
	Path string
}

// NewTokenStore creates a TokenStore for path, or DefaultTokenFile if path is empty.
func NewTokenStore(path string) *TokenStore {
	if path == "" {
		path = DefaultTokenFile
	}
	return &TokenStore{Path: path}
}

// Load returns the saved token, or ErrNotLoggedIn if there is none.
func (s *TokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotLoggedIn
		}
		return "", fmt.Errorf("read token file: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}

// Save writes the token, readable only by the current user.
func (s *TokenStore) Save(token string) error {
	if err := os.WriteFile(s.Path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(s.Path, 0o600); err != nil {
		return fmt.Errorf("restrict token file: %w", err)
	}
	return nil
}

// Remove deletes the token file. It reports false if there was nothing to remove.
func (s *TokenStore) Remove() (bool, error) {
	if err := os.Remove(s.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("remove token file: %w", err)
	}
	return true, nil
}
