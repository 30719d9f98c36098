package cli

import (
	"fmt"

	"github.com/me/funcscan/internal/params"
	"github.com/spf13/cobra"
)

func newFlagsCmd() *cobra.Command {
	var opts paramOptions
	var command bool
	var handle string

	cmd := &cobra.Command{
		Use:   "flags",
		Short: "Print the pipeline flags for a set of parameters",
		Long: `Print the engine flags derived from the parameters, one token per line.
With --command, print the environment overrides and the full engine command instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.resolve()
			if err != nil {
				return err
			}
			if command {
				return printPlan(cmd.OutOrStdout(), handle, p)
			}
			for _, tok := range params.Flags(p) {
				fmt.Fprintln(cmd.OutOrStdout(), tok)
			}
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&command, "command", false, "Print the full engine command")
	cmd.Flags().StringVar(&handle, "storage-handle", dryRunHandle, "Volume handle shown with --command")

	return cmd
}
