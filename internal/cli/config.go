package cli

import (
	"path/filepath"

	"github.com/shinji-kodama/webdemo-index/internal/config"
	"github.com/shinji-kodama/webdemo-index/internal/output"
	"github.com/shinji-kodama/webdemo-index/internal/repo"
)

// loadConfig returns the effective configuration for a run.
//
// Resolution order:
//  1. --config, when given, is loaded (and must exist).
//  2. Otherwise a configuration file is searched in the base directory and
//     then in the root of the Git repository containing it.
//  3. Otherwise the defaults apply, with relative paths resolved against
//     --base-dir (or the working directory).
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return loadConfigFile(configPath)
	}

	start := baseDir
	if start == "" {
		start = "."
	}
	if abs, err := filepath.Abs(start); err == nil {
		start = abs
	}

	repoRoot, err := repo.NewLocator().Root(start)
	if err != nil {
		VerboseLog("No repository root for %s: %v", start, err)
		repoRoot = ""
	}

	path, err := config.Find(start, repoRoot)
	if err != nil {
		return nil, err
	}
	if path != "" {
		return loadConfigFile(path)
	}

	cfg := config.Default()
	cfg.BaseDir = baseDir
	return cfg, nil
}

func loadConfigFile(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	VerboseLog("Using config %s (paths relative to %s)", cfg.Source, cfg.BaseDir)
	return cfg, nil
}

func outputOptions(cfg *config.Config) output.Options {
	return output.Options{Indent: cfg.Indent}
}
