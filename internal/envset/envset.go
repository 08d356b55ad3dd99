// Package envset builds the base environment index consumed by the web
// demo: the sorted names of every entry in the base environment directory.
package envset

import (
	"io"
	"log/slog"
	"sort"

	"github.com/shinji-kodama/webdemo-index/internal/model"
	"github.com/shinji-kodama/webdemo-index/internal/scan"
)

// DefaultDir is the directory listed when no other is configured.
const DefaultDir = "web_demo/base_envs_set"

// Lister lists a base environment directory.
type Lister struct {
	// Dir is the directory whose direct entries are listed.
	Dir string

	// Ignore holds glob patterns for entry names to leave out.
	Ignore []string

	// Logger receives debug output. A nil Logger discards it.
	Logger *slog.Logger
}

// List returns every direct entry name under Dir, files and
// subdirectories alike, in ascending lexicographic order.
func (l *Lister) List() (model.EnvironmentSet, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	entries, err := scan.ReadDir(l.Dir, l.Ignore)
	if err != nil {
		return model.EnvironmentSet{}, err
	}

	filenames := make([]string, 0, len(entries))
	for _, e := range entries {
		filenames = append(filenames, e.Name)
	}
	sort.Strings(filenames)

	logger.Debug("listed base environments", "dir", l.Dir, "count", len(filenames))
	return model.EnvironmentSet{Filenames: filenames}, nil
}
