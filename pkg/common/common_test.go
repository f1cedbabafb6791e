package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDint64Unique(t *testing.T) {
	seen := make(map[int64]struct{})
	for i := 0; i < 1000; i++ {
		id := UUIDint64()
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestIsEmptyOrAll(t *testing.T) {
	assert.True(t, IsEmptyOrAll(""))
	assert.True(t, IsEmptyOrAll(" all "))
	assert.True(t, IsEmptyOrAll("ALL"))
	assert.False(t, IsEmptyOrAll("In Stock"))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	assert.False(t, FileExists(path))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	assert.True(t, FileExists(path))
	assert.False(t, FileExists(dir))
}

func TestRandomHex(t *testing.T) {
	assert.Len(t, RandomHex(16), 32)
	assert.NotEqual(t, RandomHex(8), RandomHex(8))
}
