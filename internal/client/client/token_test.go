package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	s := NewTokenStore(path)

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	require.NoError(t, s.Save("abc.def.ghi"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	tok, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())

	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
