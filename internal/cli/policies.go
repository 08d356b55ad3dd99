package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/webdemo-index/internal/model"
	"github.com/shinji-kodama/webdemo-index/internal/output"
	"github.com/shinji-kodama/webdemo-index/internal/policy"
)

// policiesFlags holds the flag values for the policies command.
type policiesFlags struct {
	root      string
	output    string
	nameFile  string
	seedOrder string
	stdout    bool
}

// NewPoliciesCommand creates the "policies" subcommand.
func NewPoliciesCommand() *cobra.Command {
	return newPoliciesCommand("policies")
}

func newPoliciesCommand(use string) *cobra.Command {
	flags := &policiesFlags{}

	cmd := &cobra.Command{
		Use:   use,
		Short: "Write the trained policy index",
		Long: `Walk the policy tree (agent type / morphology / <morphology>_s<seed>) and
write the nested catalog to the policy index file. A seed's display name is
the first line of its name.txt, or "" when the file is absent.

Every level is sorted: agent types and morphologies by name, seeds by seed
id (numeric by default, so _s2 comes before _s10).

Defaults: policy_models -> web_demo/policies.json

Examples:
  ` + use + `
  ` + use + ` --seed-order lexical
  ` + use + ` --root models --stdout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPolicies(cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.root, "root", "", "Policy root directory (default: policy_models)")
	cmd.Flags().StringVar(&flags.output, "output", "", "Output file (default: web_demo/policies.json)")
	cmd.Flags().StringVar(&flags.nameFile, "name-file", "", "Per-seed display name file (default: name.txt)")
	cmd.Flags().StringVar(&flags.seedOrder, "seed-order", "", "Seed ordering: numeric or lexical (default: numeric)")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "Print the index to stdout instead of writing the output file")

	return cmd
}

// runPolicies walks the policy tree and writes the catalog.
func runPolicies(w io.Writer, flags *policiesFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setIfNotEmpty(&cfg.Policies.Root, flags.root)
	setIfNotEmpty(&cfg.Policies.Output, flags.output)
	setIfNotEmpty(&cfg.Policies.NameFile, flags.nameFile)
	if flags.seedOrder != "" {
		order, err := model.ParseSeedOrder(flags.seedOrder)
		if err != nil {
			return model.WrapCLIError(model.ExitConfigError, "invalid --seed-order", err)
		}
		cfg.Policies.SeedOrder = order
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	indexer := &policy.Indexer{
		Dir:       cfg.Resolve(cfg.Policies.Root),
		Root:      cfg.Policies.Root,
		NameFile:  cfg.Policies.NameFile,
		SeedOrder: cfg.Policies.SeedOrder,
		Ignore:    cfg.Ignore,
		Logger:    logger,
	}
	VerboseLog("Indexing %s (seed order: %s)", indexer.Dir, indexer.SeedOrder)

	catalog, err := indexer.Collect()
	if err != nil {
		return err
	}

	if flags.stdout {
		data, err := output.Encode(catalog, outputOptions(cfg))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	result, err := output.Write(cfg.Resolve(cfg.Policies.Output), catalog, outputOptions(cfg))
	if err != nil {
		return err
	}
	VerboseLog("Digest %s", result.Digest)

	printPoliciesResult(w, result, model.Stats(catalog))
	return nil
}

// policiesResultJSON is the --json output of the policies command.
type policiesResultJSON struct {
	Command string `json:"command"`
	output.Result
	Stats model.CatalogStats `json:"stats"`
}

func printPoliciesResult(w io.Writer, result output.Result, stats model.CatalogStats) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(policiesResultJSON{Command: "policies", Result: result, Stats: stats}, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintf(w, "%s %s (%d types, %d morphologies, %d seeds)\n",
		writeVerb(result), result.Path, stats.Types, stats.Morphologies, stats.Seeds)
}
