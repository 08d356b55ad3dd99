package policy

import (
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"sort"

	"github.com/shinji-kodama/webdemo-index/internal/model"
	"github.com/shinji-kodama/webdemo-index/internal/scan"
)

// DefaultRoot is the policy root used when no other is configured.
const DefaultRoot = "policy_models"

// Indexer walks a policy root and builds the catalog.
type Indexer struct {
	// Dir is the filesystem location of the policy root.
	Dir string

	// Root is the policy root as it should appear in SeedEntry.Path.
	// Defaults to Dir. Keeping it separate lets the CLI resolve Dir
	// against a base directory while still emitting the path as written
	// in the configuration.
	Root string

	// NameFile is the per-seed display name file. Defaults to DefaultNameFile.
	NameFile string

	// SeedOrder controls seed ordering. Defaults to model.SeedOrderNumeric.
	SeedOrder model.SeedOrder

	// Ignore holds glob patterns for entry names skipped at every level.
	Ignore []string

	// Logger receives debug output. A nil Logger discards it.
	Logger *slog.Logger
}

// Collect walks the policy root and returns the catalog. Any missing
// directory, unreadable entry or malformed seed directory name aborts the
// walk; no partial catalog is returned.
func (ix *Indexer) Collect() ([]model.TypeEntry, error) {
	root := ix.Root
	if root == "" {
		root = ix.Dir
	}
	return ix.collectTypes(ix.Dir, path.Clean(filepath.ToSlash(root)))
}

func (ix *Indexer) collectTypes(dir, display string) ([]model.TypeEntry, error) {
	subdirs, err := ix.subdirs(dir)
	if err != nil {
		return nil, err
	}

	types := make([]model.TypeEntry, 0, len(subdirs))
	for _, e := range subdirs {
		morphologies, err := ix.collectMorphologies(e.Path, path.Join(display, e.Name))
		if err != nil {
			return nil, err
		}
		types = append(types, model.TypeEntry{Type: e.Name, Morphologies: morphologies})
	}
	return types, nil
}

func (ix *Indexer) collectMorphologies(dir, display string) ([]model.MorphologyEntry, error) {
	subdirs, err := ix.subdirs(dir)
	if err != nil {
		return nil, err
	}

	morphologies := make([]model.MorphologyEntry, 0, len(subdirs))
	for _, e := range subdirs {
		seeds, err := ix.collectSeeds(e.Path, path.Join(display, e.Name))
		if err != nil {
			return nil, err
		}
		morphologies = append(morphologies, model.MorphologyEntry{Morphology: e.Name, Seeds: seeds})
	}
	return morphologies, nil
}

func (ix *Indexer) collectSeeds(dir, display string) ([]model.SeedEntry, error) {
	subdirs, err := ix.subdirs(dir)
	if err != nil {
		return nil, err
	}

	seeds := make([]model.SeedEntry, 0, len(subdirs))
	for _, e := range subdirs {
		seed, err := ix.seedEntry(e, path.Join(display, e.Name))
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, seed)
	}

	SortSeeds(seeds, ix.seedOrder())
	return seeds, nil
}

func (ix *Indexer) seedEntry(e scan.Entry, display string) (model.SeedEntry, error) {
	id, err := ParseSeedID(e.Name)
	if err != nil {
		return model.SeedEntry{}, err
	}

	name, err := ReadSeedName(e.Path, ix.nameFile())
	if err != nil {
		return model.SeedEntry{}, err
	}

	ix.logger().Debug("indexed seed", "path", display, "seed", id, "name", name)
	return model.SeedEntry{Seed: id, Path: display, Name: name}, nil
}

// subdirs lists the directories directly under dir, sorted by name.
// Regular files found between levels are skipped.
func (ix *Indexer) subdirs(dir string) ([]scan.Entry, error) {
	entries, err := scan.ReadDir(dir, ix.Ignore)
	if err != nil {
		return nil, err
	}

	subdirs := make([]scan.Entry, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir {
			ix.logger().Debug("skipping non-directory entry", "path", e.Path)
			continue
		}
		subdirs = append(subdirs, e)
	}
	return subdirs, nil
}

func (ix *Indexer) nameFile() string {
	if ix.NameFile == "" {
		return DefaultNameFile
	}
	return ix.NameFile
}

func (ix *Indexer) seedOrder() model.SeedOrder {
	if ix.SeedOrder == "" {
		return model.SeedOrderNumeric
	}
	return ix.SeedOrder
}

func (ix *Indexer) logger() *slog.Logger {
	if ix.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return ix.Logger
}

// SortSeeds orders seeds by seed id under order. Seeds with equal ids
// (e.g. "01" and "1" under numeric order) fall back to the id text and
// then the path, so the result never depends on the input order.
func SortSeeds(seeds []model.SeedEntry, order model.SeedOrder) {
	sort.Slice(seeds, func(i, j int) bool {
		if c := model.CompareSeedIDs(order, seeds[i].Seed, seeds[j].Seed); c != 0 {
			return c < 0
		}
		if seeds[i].Seed != seeds[j].Seed {
			return seeds[i].Seed < seeds[j].Seed
		}
		return seeds[i].Path < seeds[j].Path
	})
}
