package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".token")
	s := NewTokenStore(path)

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	require.NoError(t, s.Save("abc.def.ghi"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	removed, err := s.Remove()
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Remove()
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestTokenStore_BlankFileIsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".token")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	_, err := NewTokenStore(path).Load()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestNewTokenStore_Default(t *testing.T) {
	assert.Equal(t, DefaultTokenFile, NewTokenStore("").Path)
}
