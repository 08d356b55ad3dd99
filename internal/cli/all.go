package cli

import (
	"github.com/spf13/cobra"
)

// NewAllCommand creates the "all" subcommand, which regenerates both index
// files. The environment index is written first; any failure stops the run
// before the policy index is touched.
func NewAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Write both the base environment and the policy index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runEnvs(cmd.OutOrStdout(), &envsFlags{}); err != nil {
				return err
			}
			return runPolicies(cmd.OutOrStdout(), &policiesFlags{})
		},
	}
}
