// Package repo locates the Git repository that contains a directory.
//
// Configuration discovery falls back to the repository root so that the
// indexers can be run from any subdirectory of a checkout. The package
// shells out to `git` rather than using a Go Git library: only
// `rev-parse --show-toplevel` is needed, and the git CLI resolves
// worktrees and submodules the same way the user's shell does.
package repo
