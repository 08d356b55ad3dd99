// Package scan reads directory listings for the indexers and translates
// filesystem failures into CLI errors carrying the right exit code.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/shinji-kodama/webdemo-index/internal/model"
)

// Entry is a single directory entry that survived ignore filtering.
type Entry struct {
	// Name is the base name of the entry.
	Name string

	// Path is the entry's filesystem path (the listed directory joined
	// with Name).
	Path string

	// IsDir reports whether the entry is a directory. Symbolic links are
	// resolved, so a link to a directory counts as a directory.
	IsDir bool
}

// ReadDir lists dir and returns its entries sorted by name, skipping any
// entry whose name matches one of the ignore globs (filepath.Match syntax).
//
// A missing directory yields a CLIError with ExitNotFound; every other
// failure (permissions, dir being a regular file) yields ExitIOError.
// Entry names must be valid UTF-8, since they end up in JSON strings;
// anything else is an ExitParseError.
func ReadDir(dir string, ignore []string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ReadError(dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if Ignored(name, ignore) {
			continue
		}
		if !utf8.ValidString(name) {
			return nil, model.NewCLIError(model.ExitParseError,
				fmt.Sprintf("entry name %q in %s is not valid UTF-8", name, dir))
		}

		path := filepath.Join(dir, name)
		isDir := de.IsDir()
		if de.Type()&fs.ModeSymlink != 0 {
			// A dangling link is reported as a non-directory rather than
			// failing the whole listing.
			if info, statErr := os.Stat(path); statErr == nil {
				isDir = info.IsDir()
			}
		}
		entries = append(entries, Entry{Name: name, Path: path, IsDir: isDir})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Ignored reports whether name matches any of the glob patterns.
// Malformed patterns never match; config.Validate rejects them earlier.
func Ignored(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// ReadError classifies a filesystem error for path into a CLIError.
func ReadError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return model.WrapCLIError(model.ExitNotFound,
			fmt.Sprintf("directory not found: %s", path), err)
	}
	return model.WrapCLIError(model.ExitIOError,
		fmt.Sprintf("failed to read %s", path), err)
}
