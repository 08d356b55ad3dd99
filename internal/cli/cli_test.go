package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/webdemo-index/internal/model"
)

// runCommand executes cmd with args and returns captured stdout and stderr.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// setupDemo builds a project directory with the reference policy tree and
// a small base environment set.
func setupDemo(t *testing.T) string {
	t.Helper()
	base := t.TempDir()

	envs := filepath.Join(base, "web_demo", "base_envs_set")
	require.NoError(t, os.MkdirAll(envs, 0o755))
	for _, name := range []string{"stairs.json", "flat.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(envs, name), []byte("{}"), 0o644))
	}

	s3 := filepath.Join(base, "policy_models", "ppo", "biped", "biped_s3")
	require.NoError(t, os.MkdirAll(s3, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(s3, "name.txt"), []byte("Walker\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "policy_models", "ppo", "biped", "biped_s1"), 0o755))

	return base
}

const expectedPolicies = `[{"type":"ppo","morphologies":[{"morphology":"biped","seeds":[` +
	`{"seed":"1","path":"policy_models/ppo/biped/biped_s1","name":""},` +
	`{"seed":"3","path":"policy_models/ppo/biped/biped_s3","name":"Walker"}]}]}]` + "\n"

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPolicies_EndToEnd(t *testing.T) {
	base := setupDemo(t)

	stdout, _, err := runCommand(t, NewRootCommand(), "policies", "-C", base)
	require.NoError(t, err)

	out := filepath.Join(base, "web_demo", "policies.json")
	assert.Equal(t, expectedPolicies, readFile(t, out))
	assert.Contains(t, stdout, "wrote")
	assert.Contains(t, stdout, "(1 types, 1 morphologies, 2 seeds)")
}

// TestPolicies_Idempotent runs the indexer twice on an unchanged tree.
func TestPolicies_Idempotent(t *testing.T) {
	base := setupDemo(t)
	out := filepath.Join(base, "web_demo", "policies.json")

	_, _, err := runCommand(t, NewPoliciesToJSONCommand(), "-C", base)
	require.NoError(t, err)
	first := readFile(t, out)

	stdout, _, err := runCommand(t, NewPoliciesToJSONCommand(), "-C", base)
	require.NoError(t, err)
	assert.Equal(t, first, readFile(t, out))
	assert.Contains(t, stdout, "unchanged")
}

func TestPolicies_InvalidSeedLeavesNoOutput(t *testing.T) {
	base := setupDemo(t)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "policy_models", "ppo", "biped", "biped_latest"), 0o755))

	_, _, err := runCommand(t, NewRootCommand(), "policies", "-C", base)
	require.Error(t, err)
	assert.Equal(t, model.ExitParseError, ExitCodeOf(err))

	_, statErr := os.Stat(filepath.Join(base, "web_demo", "policies.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestPolicies_InvalidSeedKeepsPreviousOutput(t *testing.T) {
	base := setupDemo(t)
	out := filepath.Join(base, "web_demo", "policies.json")
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "policy_models", "sac", "fish", "fish"), 0o755))

	_, _, err := runCommand(t, NewRootCommand(), "policies", "-C", base)
	require.Error(t, err)
	assert.Equal(t, "previous", readFile(t, out))
}

func TestPolicies_MissingRoot(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "web_demo"), 0o755))

	_, _, err := runCommand(t, NewRootCommand(), "policies", "-C", base)
	require.Error(t, err)
	assert.Equal(t, model.ExitNotFound, ExitCodeOf(err))
}

func TestPolicies_SeedOrderFlag(t *testing.T) {
	base := t.TempDir()
	for _, s := range []string{"a_s2", "a_s10", "a_s1"} {
		require.NoError(t, os.MkdirAll(filepath.Join(base, "policy_models", "ppo", "a", s), 0o755))
	}

	ids := func(stdout string) []string {
		var catalog []model.TypeEntry
		require.NoError(t, json.Unmarshal([]byte(stdout), &catalog))
		var out []string
		for _, s := range catalog[0].Morphologies[0].Seeds {
			out = append(out, s.Seed)
		}
		return out
	}

	stdout, _, err := runCommand(t, NewRootCommand(), "policies", "-C", base, "--stdout")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "10"}, ids(stdout))

	stdout, _, err = runCommand(t, NewRootCommand(), "policies", "-C", base, "--stdout", "--seed-order", "lexical")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "10", "2"}, ids(stdout))

	_, _, err = runCommand(t, NewRootCommand(), "policies", "-C", base, "--stdout", "--seed-order", "random")
	require.Error(t, err)
	assert.Equal(t, model.ExitConfigError, ExitCodeOf(err))
}

func TestPolicies_JSONResult(t *testing.T) {
	base := setupDemo(t)

	stdout, _, err := runCommand(t, NewRootCommand(), "policies", "-C", base, "--json")
	require.NoError(t, err)

	var result struct {
		Command string             `json:"command"`
		Path    string             `json:"path"`
		Digest  string             `json:"digest"`
		Changed bool               `json:"changed"`
		Stats   model.CatalogStats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "policies", result.Command)
	assert.Equal(t, filepath.Join(base, "web_demo", "policies.json"), result.Path)
	assert.Len(t, result.Digest, 64)
	assert.True(t, result.Changed)
	assert.Equal(t, model.CatalogStats{Types: 1, Morphologies: 1, Seeds: 2}, result.Stats)
}

func TestListBaseEnvs(t *testing.T) {
	base := setupDemo(t)

	stdout, _, err := runCommand(t, NewListBaseEnvsCommand(), "-C", base)
	require.NoError(t, err)

	out := filepath.Join(base, "web_demo", "base_envs_set.json")
	assert.Equal(t, `{"filenames":["flat.json","stairs.json"]}`+"\n", readFile(t, out))
	assert.Contains(t, stdout, "(2 filenames)")
}

func TestEnvs_MissingDirectory(t *testing.T) {
	base := t.TempDir()

	_, _, err := runCommand(t, NewRootCommand(), "envs", "-C", base)
	require.Error(t, err)
	assert.Equal(t, model.ExitNotFound, ExitCodeOf(err))
}

func TestEnvs_FlagOverrides(t *testing.T) {
	base := t.TempDir()
	envs := filepath.Join(base, "envs")
	require.NoError(t, os.Mkdir(envs, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(envs, "gaps.json"), nil, 0o644))

	_, _, err := runCommand(t, NewRootCommand(), "envs", "-C", base, "--dir", "envs", "--output", "envs.json")
	require.NoError(t, err)
	assert.Equal(t, `{"filenames":["gaps.json"]}`+"\n", readFile(t, filepath.Join(base, "envs.json")))
}

func TestAll(t *testing.T) {
	base := setupDemo(t)

	stdout, _, err := runCommand(t, NewRootCommand(), "all", "-C", base)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(base, "web_demo", "base_envs_set.json"))
	assert.Equal(t, expectedPolicies, readFile(t, filepath.Join(base, "web_demo", "policies.json")))
	assert.Contains(t, stdout, "filenames")
	assert.Contains(t, stdout, "seeds")
}

// TestConfigDiscovery loads .webdemo-index.yaml from the base directory.
func TestConfigDiscovery(t *testing.T) {
	base := setupDemo(t)
	require.NoError(t, os.WriteFile(filepath.Join(base, ".webdemo-index.yaml"), []byte(`
policies:
  output: web_demo/agents.json
indent: "  "
`), 0o644))

	_, stderr, err := runCommand(t, NewRootCommand(), "policies", "-C", base, "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Using config")
	assert.Contains(t, stderr, ".webdemo-index.yaml")

	data := readFile(t, filepath.Join(base, "web_demo", "agents.json"))
	assert.Contains(t, data, "\n  {\n    \"type\": \"ppo\"")

	var catalog []model.TypeEntry
	require.NoError(t, json.Unmarshal([]byte(data), &catalog))
	assert.Equal(t, "Walker", catalog[0].Morphologies[0].Seeds[1].Name)
}

func TestExplicitConfigMissing(t *testing.T) {
	_, _, err := runCommand(t, NewRootCommand(), "envs", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, model.ExitConfigError, ExitCodeOf(err))
}

func TestRejectsArguments(t *testing.T) {
	_, _, err := runCommand(t, NewListBaseEnvsCommand(), "extra")
	assert.Error(t, err)

	_, _, err = runCommand(t, NewRootCommand(), "policies", "extra")
	assert.Error(t, err)
}

func TestVerboseLogsToStderr(t *testing.T) {
	base := setupDemo(t)

	_, stderr, err := runCommand(t, NewRootCommand(), "policies", "-C", base, "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "indexed seed")
	assert.Contains(t, stderr, "level=DEBUG")
}

func TestExitCodeOf(t *testing.T) {
	assert.Equal(t, model.ExitSuccess, ExitCodeOf(nil))
	assert.Equal(t, model.ExitGeneralError, ExitCodeOf(errors.New("boom")))
	assert.Equal(t, model.ExitIOError, ExitCodeOf(model.NewCLIError(model.ExitIOError, "x")))

	wrapped := errors.Join(errors.New("context"), model.NewCLIError(model.ExitNotFound, "y"))
	assert.Equal(t, model.ExitNotFound, ExitCodeOf(wrapped))
}

func TestPrintError(t *testing.T) {
	err := model.WrapCLIError(model.ExitParseError, `invalid seed directory name "biped"`, errors.New("missing _s<digits> suffix"))

	t.Run("text", func(t *testing.T) {
		jsonOutput = false
		var buf bytes.Buffer
		printError(&buf, err)
		assert.Equal(t, "Error: invalid seed directory name \"biped\": missing _s<digits> suffix\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		jsonOutput = true
		defer func() { jsonOutput = false }()

		var buf bytes.Buffer
		printError(&buf, err)

		var payload struct {
			Error struct {
				Message string `json:"message"`
				Detail  string `json:"detail"`
				Code    int    `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
		assert.Equal(t, `invalid seed directory name "biped"`, payload.Error.Message)
		assert.Equal(t, "missing _s<digits> suffix", payload.Error.Detail)
		assert.Equal(t, 3, payload.Error.Code)
	})
}
