package main

import (
	"github.com/spf13/cobra"

	"course_assembler/internal/app"
)

func newServeCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the assembly workers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			a, err := app.New(ctx, cc.cfg, cc.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			cc.logger.Info("starting course assembler",
				"addr", cc.cfg.HTTP.Addr,
				"workers", cc.cfg.Workers.Count,
				"fallback_policy", cc.cfg.Pipeline.FallbackPolicy,
				"shared_pool", cc.cfg.Pipeline.SharedPool,
			)
			return a.Serve(ctx)
		},
	}
}
