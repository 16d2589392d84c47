package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "z.hcl"))
	touch(t, filepath.Join(root, "a", "b.ltl"))
	touch(t, filepath.Join(root, "a", "c.md"))

	files, err := FindFilesByExtension(root, ".ltl", ".hcl")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a", "b.ltl"),
		filepath.Join(root, "z.hcl"),
	}, files)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	single := filepath.Join(root, "one.ltl")
	touch(t, single)
	touch(t, filepath.Join(root, "dir", "two.ltl"))

	t.Run("dedupes files named twice", func(t *testing.T) {
		files, err := Discover([]string{single, root}, ".ltl")
		require.NoError(t, err)
		assert.Equal(t, []string{single, filepath.Join(root, "dir", "two.ltl")}, files)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := Discover([]string{filepath.Join(root, "nope")}, ".ltl")
		require.Error(t, err)
	})
}
