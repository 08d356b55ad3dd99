package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shinji-kodama/webdemo-index/internal/envset"
	"github.com/shinji-kodama/webdemo-index/internal/model"
	"github.com/shinji-kodama/webdemo-index/internal/policy"
)

// Default output locations, relative to the base directory.
const (
	DefaultEnvsOutput     = "web_demo/base_envs_set.json"
	DefaultPoliciesOutput = "web_demo/policies.json"
)

// Config is the effective configuration of a run.
type Config struct {
	Envs     EnvsConfig     `yaml:"envs" json:"envs"`
	Policies PoliciesConfig `yaml:"policies" json:"policies"`

	// Ignore holds glob patterns for entry names skipped by both indexers.
	Ignore []string `yaml:"ignore" json:"ignore"`

	// Indent is the JSON indentation of the output files. Empty means
	// compact output.
	Indent string `yaml:"indent" json:"indent"`

	// BaseDir is the directory relative paths resolve against. It is the
	// configuration file's directory, or the working directory when no
	// file was loaded. Empty means the process working directory.
	BaseDir string `yaml:"-" json:"-"`

	// Source is the configuration file that was loaded, if any.
	Source string `yaml:"-" json:"-"`
}

// EnvsConfig configures the Environment Lister.
type EnvsConfig struct {
	Dir    string `yaml:"dir" json:"dir"`
	Output string `yaml:"output" json:"output"`
}

// PoliciesConfig configures the Policy Indexer.
type PoliciesConfig struct {
	Root      string          `yaml:"root" json:"root"`
	Output    string          `yaml:"output" json:"output"`
	NameFile  string          `yaml:"name_file" json:"name_file"`
	SeedOrder model.SeedOrder `yaml:"seed_order" json:"seed_order"`
}

// Default returns the configuration reproducing the original fixed paths.
func Default() *Config {
	return &Config{
		Envs: EnvsConfig{
			Dir:    envset.DefaultDir,
			Output: DefaultEnvsOutput,
		},
		Policies: PoliciesConfig{
			Root:      policy.DefaultRoot,
			Output:    DefaultPoliciesOutput,
			NameFile:  policy.DefaultNameFile,
			SeedOrder: model.SeedOrderNumeric,
		},
		Ignore: []string{},
	}
}

// Validate checks the configuration for empty paths, unknown seed orders,
// malformed ignore globs and non-whitespace indentation.
func (c *Config) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"envs.dir", c.Envs.Dir},
		{"envs.output", c.Envs.Output},
		{"policies.root", c.Policies.Root},
		{"policies.output", c.Policies.Output},
		{"policies.name_file", c.Policies.NameFile},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return configError(fmt.Sprintf("%s must not be empty", r.field), nil)
		}
	}

	if strings.ContainsAny(c.Policies.NameFile, `/\`) {
		return configError(fmt.Sprintf("policies.name_file %q must be a plain file name", c.Policies.NameFile), nil)
	}

	if !c.Policies.SeedOrder.IsValid() {
		return configError(fmt.Sprintf("invalid policies.seed_order %q (valid: numeric, lexical)", c.Policies.SeedOrder), nil)
	}

	for _, pattern := range c.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return configError(fmt.Sprintf("invalid ignore pattern %q", pattern), err)
		}
	}

	if strings.Trim(c.Indent, " \t") != "" {
		return configError(fmt.Sprintf("indent %q must contain only spaces or tabs", c.Indent), nil)
	}
	return nil
}

// Resolve returns p joined onto the base directory unless p is absolute.
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

func configError(message string, err error) error {
	if err == nil {
		return model.NewCLIError(model.ExitConfigError, message)
	}
	return model.WrapCLIError(model.ExitConfigError, message, err)
}
