package git

import (
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	// t.TempDir may sit behind a symlink (macOS /var -> /private/var).
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	return resolved
}

func TestProjectRootFromTopLevel(t *testing.T) {
	dir := setupTestRepo(t)

	root, err := ProjectRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, root)
}

func TestProjectRootFromSubdirectory(t *testing.T) {
	dir := setupTestRepo(t)
	sub := filepath.Join(dir, "pkg", "inner")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	root, err := ProjectRoot(sub)
	require.NoError(t, err)
	assert.Equal(t, dir, root)
}

func TestProjectRootOutsideRepo(t *testing.T) {
	dir := t.TempDir()

	_, err := ProjectRoot(dir)
	require.ErrorIs(t, err, ErrNotRepo)
}
