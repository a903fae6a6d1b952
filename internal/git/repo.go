// Package git locates the project a chime session belongs to.
package git

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepo is returned when dir is not inside a git repository.
var ErrNotRepo = errors.New("not a git repository")

// ProjectRoot returns the top-level worktree directory of the repository
// containing dir.
func ProjectRoot(dir string) (string, error) {
	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", ErrNotRepo
		}
		return "", fmt.Errorf("open git repo at %s: %w", dir, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return "", fmt.Errorf("get worktree: %w", err)
	}
	return filepath.Clean(wt.Filesystem.Root()), nil
}
