package repo

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotRepository is returned when the path is not inside a Git work tree
// or the git binary is unavailable.
var ErrNotRepository = errors.New("not inside a git repository")

// Locator finds repository roots by invoking the git CLI.
type Locator struct {
	// GitPath is the git executable. Defaults to "git" resolved via PATH.
	GitPath string
}

// NewLocator creates a Locator that uses git from PATH.
func NewLocator() *Locator {
	return &Locator{GitPath: "git"}
}

// Root returns the absolute path of the top-level directory of the work
// tree containing path. For a linked worktree this is the worktree root,
// not the main repository.
func (l *Locator) Root(path string) (string, error) {
	output, err := l.runGit(path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	root := strings.TrimSpace(output)
	if root == "" {
		return "", ErrNotRepository
	}
	return filepath.Clean(root), nil
}

// runGit executes git with -C path so the process working directory is
// never changed.
func (l *Locator) runGit(path string, args ...string) (string, error) {
	gitPath := l.GitPath
	if gitPath == "" {
		gitPath = "git"
	}
	if _, err := exec.LookPath(gitPath); err != nil {
		return "", fmt.Errorf("%w: git not available: %v", ErrNotRepository, err)
	}

	fullArgs := append([]string{"-C", path}, args...)

	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.Command(gitPath, fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := strings.TrimSpace(stderr.String())
		if message == "" {
			message = err.Error()
		}
		return "", fmt.Errorf("%w: git %s: %s", ErrNotRepository, strings.Join(args, " "), message)
	}
	return stdout.String(), nil
}
