package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"sandsim/internal/app"
	"sandsim/internal/term"
)

func newGUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the simulation in a window (requires the ebiten build tag)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := buildSim(cmd, opts)
			if err != nil {
				return err
			}
			return app.Run(sim, opts.app)
		},
	}
}

func newTermCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "term",
		Short: "Run the simulation inside the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := buildSim(cmd, opts)
			if err != nil {
				return err
			}
			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()

			err = term.New(sim, screen, opts.app).Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
