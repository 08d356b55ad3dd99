// Package cli implements the cobra-based commands of the webdemo-index
// tools.
//
// Each indexer is defined in its own file (envs.go, policies.go) and is
// exposed twice: as a subcommand of the umbrella "webdemo-index" command,
// and as the root of its own standalone binary (list-base-envs,
// policies-to-json). This file defines the shared global flags, logging,
// and error handling.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/webdemo-index/internal/model"
)

// Global flag variables shared across all commands.
// These are bound to cobra persistent flags on each root command.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When true, results and errors use structured JSON for machine consumption.
	jsonOutput bool

	// verbose enables debug logging on stderr.
	verbose bool

	// configPath is an explicit configuration file. When empty the file
	// is discovered (see loadConfig).
	configPath string

	// baseDir is the directory relative paths and config discovery start
	// from. Empty means the working directory.
	baseDir string

	// logger is rebuilt by setupLogging before every command runs.
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates the umbrella "webdemo-index" command with the
// envs, policies and all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "webdemo-index",
		Short: "Generate the JSON index files of the web demo",
		Long: `webdemo-index scans the base environment directory and the trained policy
tree and writes the JSON index files the web demo front-end loads.

  envs      web_demo/base_envs_set/ -> web_demo/base_envs_set.json
  policies  policy_models/          -> web_demo/policies.json
  all       both of the above`,
		Args: cobra.NoArgs,
	}
	configureRoot(rootCmd)

	rootCmd.AddCommand(NewEnvsCommand())
	rootCmd.AddCommand(NewPoliciesCommand())
	rootCmd.AddCommand(NewAllCommand())

	return rootCmd
}

// NewListBaseEnvsCommand creates the root command of the standalone
// list-base-envs binary.
func NewListBaseEnvsCommand() *cobra.Command {
	cmd := newEnvsCommand("list-base-envs")
	configureRoot(cmd)
	return cmd
}

// NewPoliciesToJSONCommand creates the root command of the standalone
// policies-to-json binary.
func NewPoliciesToJSONCommand() *cobra.Command {
	cmd := newPoliciesCommand("policies-to-json")
	configureRoot(cmd)
	return cmd
}

// configureRoot applies the settings every root command shares: silenced
// cobra error output, version string, global flags and logging setup.
func configureRoot(cmd *cobra.Command) {
	// Errors are printed by Execute in text or JSON form.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)

	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default: discover .webdemo-index.{yaml,yml,jsonc,json})")
	cmd.PersistentFlags().StringVarP(&baseDir, "base-dir", "C", "", "Directory relative paths resolve against (default: working directory)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		setupLogging(cmd.ErrOrStderr())
		return nil
	}
}

// setupLogging points the package logger at w, at debug level when
// --verbose is set.
func setupLogging(w io.Writer) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command and exits the process with the exit code
// carried by the error (1 for errors without one).
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(int(ExitCodeOf(err)))
	}
}

// ExitCodeOf returns the exit code for err: ExitSuccess for nil, the code
// of the first CLIError in the chain, or ExitGeneralError.
func ExitCodeOf(err error) model.ExitCode {
	if err == nil {
		return model.ExitSuccess
	}
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return model.ExitGeneralError
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, err error) {
	message := err.Error()
	var detail string
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		message = cliErr.Message
		if cliErr.Err != nil {
			detail = cliErr.Err.Error()
		}
	}

	if jsonOutput {
		errObj := map[string]interface{}{
			"message": message,
			"code":    int(ExitCodeOf(err)),
		}
		if detail != "" {
			errObj["detail"] = detail
		}
		// stderr, even in JSON mode: stdout is reserved for results.
		data, _ := json.MarshalIndent(map[string]interface{}{"error": errObj}, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if detail != "" {
		fmt.Fprintf(w, "Error: %s: %s\n", message, detail)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// VerboseLog writes a debug message, shown only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	logger.Debug(fmt.Sprintf(format, args...))
}

// IsJSONOutput returns whether the --json flag is set.
// Commands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
