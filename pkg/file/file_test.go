package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	assert.False(t, Exists(path))

	assert.NoError(t, os.WriteFile(path, []byte("DATAGEN_LOG_LEVEL=debug\n"), 0o644))
	assert.True(t, Exists(path))
	assert.True(t, Exists(dir))
}
