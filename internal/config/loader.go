package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/webdemo-index/internal/model"
)

// FileNames lists the configuration file names searched by Find, in
// priority order.
var FileNames = []string{
	".webdemo-index.yaml",
	".webdemo-index.yml",
	".webdemo-index.jsonc",
	".webdemo-index.json",
}

// fileConfig is the on-disk shape. Every field is optional; empty values
// keep the defaults.
type fileConfig struct {
	Envs struct {
		Dir    string `yaml:"dir" json:"dir"`
		Output string `yaml:"output" json:"output"`
	} `yaml:"envs" json:"envs"`
	Policies struct {
		Root      string `yaml:"root" json:"root"`
		Output    string `yaml:"output" json:"output"`
		NameFile  string `yaml:"name_file" json:"name_file"`
		SeedOrder string `yaml:"seed_order" json:"seed_order"`
	} `yaml:"policies" json:"policies"`
	Ignore []string `yaml:"ignore" json:"ignore"`
	Indent string   `yaml:"indent" json:"indent"`
}

// Load reads the configuration file at path, applies it over Default and
// validates the result. BaseDir is set to the file's directory.
//
// Files ending in .yaml or .yml are parsed as YAML; .json and .jsonc are
// parsed as JSON after stripping comments and trailing commas. Unknown
// keys are rejected in both formats.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, configError(fmt.Sprintf("config file not found: %s", path), err)
		}
		return nil, configError(fmt.Sprintf("failed to read config file %s", path), err)
	}

	var raw fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = decodeYAML(data, &raw)
	case ".json", ".jsonc":
		err = decodeJSONC(data, &raw)
	default:
		return nil, configError(fmt.Sprintf("unsupported config file extension %q (use .yaml, .yml, .json or .jsonc)", ext), nil)
	}
	if err != nil {
		return nil, configError(fmt.Sprintf("failed to parse config file %s", path), err)
	}

	cfg, err := apply(Default(), &raw)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	cfg.Source = abs
	cfg.BaseDir = filepath.Dir(abs)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, out *fileConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		// io.EOF means an empty document, which keeps every default.
		return err
	}
	return nil
}

func decodeJSONC(data []byte, out *fileConfig) error {
	clean := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(clean)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(clean))
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

// apply copies every non-empty field of raw onto cfg.
func apply(cfg *Config, raw *fileConfig) (*Config, error) {
	setIfNotEmpty(&cfg.Envs.Dir, raw.Envs.Dir)
	setIfNotEmpty(&cfg.Envs.Output, raw.Envs.Output)
	setIfNotEmpty(&cfg.Policies.Root, raw.Policies.Root)
	setIfNotEmpty(&cfg.Policies.Output, raw.Policies.Output)
	setIfNotEmpty(&cfg.Policies.NameFile, raw.Policies.NameFile)

	if raw.Policies.SeedOrder != "" {
		order, err := model.ParseSeedOrder(raw.Policies.SeedOrder)
		if err != nil {
			return nil, configError("invalid policies.seed_order", err)
		}
		cfg.Policies.SeedOrder = order
	}
	if raw.Ignore != nil {
		cfg.Ignore = raw.Ignore
	}
	cfg.Indent = raw.Indent
	return cfg, nil
}

func setIfNotEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// Find looks for a configuration file in startDir and then in repoRoot
// (skipped when empty or equal to startDir). It returns "" when neither
// directory holds one.
func Find(startDir, repoRoot string) (string, error) {
	dirs := []string{startDir}
	if repoRoot != "" && filepath.Clean(repoRoot) != filepath.Clean(startDir) {
		dirs = append(dirs, repoRoot)
	}

	for _, dir := range dirs {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err == nil && !info.IsDir() {
				return path, nil
			}
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return "", configError(fmt.Sprintf("failed to check %s", path), err)
			}
		}
	}
	return "", nil
}
