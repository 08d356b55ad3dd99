package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/webdemo-index/internal/envset"
	"github.com/shinji-kodama/webdemo-index/internal/output"
)

// envsFlags holds the flag values for the envs command.
type envsFlags struct {
	// dir overrides envs.dir.
	dir string

	// output overrides envs.output.
	output string

	// stdout prints the document instead of writing the output file.
	stdout bool
}

// NewEnvsCommand creates the "envs" subcommand.
func NewEnvsCommand() *cobra.Command {
	return newEnvsCommand("envs")
}

func newEnvsCommand(use string) *cobra.Command {
	flags := &envsFlags{}

	cmd := &cobra.Command{
		Use:   use,
		Short: "Write the base environment index",
		Long: `List every entry of the base environment directory, sorted, and write
them as {"filenames": [...]} to the environment index file.

Defaults: web_demo/base_envs_set -> web_demo/base_envs_set.json

Examples:
  ` + use + `
  ` + use + ` --dir demo/envs --output demo/envs.json
  ` + use + ` --stdout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvs(cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.dir, "dir", "", "Base environment directory (default: web_demo/base_envs_set)")
	cmd.Flags().StringVar(&flags.output, "output", "", "Output file (default: web_demo/base_envs_set.json)")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "Print the index to stdout instead of writing the output file")

	return cmd
}

// runEnvs lists the base environment directory and writes the index.
func runEnvs(w io.Writer, flags *envsFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setIfNotEmpty(&cfg.Envs.Dir, flags.dir)
	setIfNotEmpty(&cfg.Envs.Output, flags.output)
	if err := cfg.Validate(); err != nil {
		return err
	}

	lister := &envset.Lister{
		Dir:    cfg.Resolve(cfg.Envs.Dir),
		Ignore: cfg.Ignore,
		Logger: logger,
	}
	VerboseLog("Listing %s", lister.Dir)

	set, err := lister.List()
	if err != nil {
		return err
	}

	if flags.stdout {
		data, err := output.Encode(set, outputOptions(cfg))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	result, err := output.Write(cfg.Resolve(cfg.Envs.Output), set, outputOptions(cfg))
	if err != nil {
		return err
	}
	VerboseLog("Digest %s", result.Digest)

	printEnvsResult(w, result, len(set.Filenames))
	return nil
}

// envsResultJSON is the --json output of the envs command.
type envsResultJSON struct {
	Command string `json:"command"`
	output.Result
	Filenames int `json:"filenames"`
}

func printEnvsResult(w io.Writer, result output.Result, count int) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(envsResultJSON{Command: "envs", Result: result, Filenames: count}, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintf(w, "%s %s (%d filenames)\n", writeVerb(result), result.Path, count)
}

// writeVerb describes a write result in text output.
func writeVerb(result output.Result) string {
	if result.Changed {
		return "wrote"
	}
	return "unchanged"
}

func setIfNotEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
