package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateKey_CreatesThenReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "master.key")

	created, err := LoadOrCreateKey(path)
	require.NoError(t, err)
	assert.Len(t, created, KeyLen)

	loaded, err := LoadOrCreateKey(path)
	require.NoError(t, err)
	assert.Equal(t, created, loaded)
}

func TestLoadOrCreateKey_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.key")
	require.NoError(t, os.WriteFile(path, []byte("not base64 ***"), 0o600))

	_, err := LoadOrCreateKey(path)
	assert.Error(t, err)
}

func TestLoadOrCreateKey_WrongLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.key")
	// Valid base64 of fewer than KeyLen bytes.
	require.NoError(t, os.WriteFile(path, []byte("c2hvcnQ=\n"), 0o600))

	_, err := LoadOrCreateKey(path)
	assert.Error(t, err)
}
