package cli

import (
	"fmt"

	"github.com/me/funcscan/internal/provision"
	"github.com/spf13/cobra"
)

func newProvisionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Provision a shared storage volume and print its handle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := provision.NewClient(cfg.Provision, logger).Provision(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), handle)
			return nil
		},
	}
}
