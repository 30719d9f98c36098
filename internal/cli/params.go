package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/me/funcscan/internal/params"
	"github.com/spf13/cobra"
)

func newParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "List pipeline parameters with their kinds and defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := params.Defaults()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tKIND\tREQUIRED\tDEFAULT")
			for _, p := range params.Table() {
				def, ok := p.Value(defaults)
				if !ok {
					def = "-"
				}
				required := ""
				if p.Required {
					required = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.Kind, required, def)
			}
			return tw.Flush()
		},
	}
}
