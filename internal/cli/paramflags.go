package cli

import (
	"github.com/me/funcscan/internal/params"
	"github.com/spf13/cobra"
)

// paramOptions collects pipeline parameters from the command line.
type paramOptions struct {
	file   string
	input  string
	outdir string
	sets   []string
	unsets []string
}

func (o *paramOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.file, "params", "", "YAML or JSON file of pipeline parameters")
	cmd.Flags().StringVar(&o.input, "input", "", "Samplesheet path (sets the input parameter)")
	cmd.Flags().StringVar(&o.outdir, "outdir", "", "Output directory (sets the outdir parameter)")
	cmd.Flags().StringArrayVar(&o.sets, "param", nil, "Set a parameter as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&o.unsets, "unset", nil, "Clear a parameter's default (repeatable)")
}

// resolve layers defaults, the params file, --unset, --param and the
// --input/--outdir shorthands, in that order.
func (o *paramOptions) resolve() (*params.Config, error) {
	p := params.Defaults()
	if o.file != "" {
		var err error
		if p, err = params.Load(o.file); err != nil {
			return nil, err
		}
	}
	for _, name := range o.unsets {
		if err := params.Unset(p, name); err != nil {
			return nil, err
		}
	}
	for _, s := range o.sets {
		name, value, err := params.ParseAssignment(s)
		if err != nil {
			return nil, err
		}
		if err := params.Set(p, name, value); err != nil {
			return nil, err
		}
	}
	if o.input != "" {
		if err := params.Set(p, "input", o.input); err != nil {
			return nil, err
		}
	}
	if o.outdir != "" {
		if err := params.Set(p, "outdir", o.outdir); err != nil {
			return nil, err
		}
	}
	return p, nil
}
