package testbase

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureWorkDir_CreatesUnderTempArea(t *testing.T) {
	dir, err := EnsureWorkDir()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(dir, os.TempDir()))
	assert.Equal(t, workDirName, filepath.Base(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureWorkDir_Idempotent(t *testing.T) {
	first, err := EnsureWorkDir()
	require.NoError(t, err)

	// Calling again with the directory already present is success and does
	// not disturb existing contents.
	marker := filepath.Join(first, "marker")
	require.NoError(t, os.WriteFile(marker, []byte("x"), 0o644))
	defer os.Remove(marker)

	second, err := EnsureWorkDir()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = os.Stat(marker)
	assert.NoError(t, err)
}

func TestEnsureWorkDir_DoesNotAlterCache(t *testing.T) {
	cache, builder := newTestCache(t)
	extra := []string{writeExtraConfig(t, "extra.yaml", extraConfig)}

	first, err := cache.Get(extra)
	require.NoError(t, err)

	_, err = EnsureWorkDir()
	require.NoError(t, err)

	second, err := cache.Get(extra)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, builder.builds)
}
