package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sandsim/internal/core"
)

func newParamsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Print the tunable parameters of the configured simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := buildSim(cmd, opts)
			if err != nil {
				return err
			}
			provider, ok := sim.(core.ParameterProvider)
			if !ok {
				return fmt.Errorf("%s exposes no parameters", sim.Name())
			}
			out := cmd.OutOrStdout()
			for _, group := range provider.Parameters().Groups {
				fmt.Fprintf(out, "[%s]\n", group.Name)
				for _, p := range group.Params {
					fmt.Fprintf(out, "  %-18s %-8s %s\n", p.Key, p.Value, p.Label)
				}
			}
			return nil
		},
	}
}
