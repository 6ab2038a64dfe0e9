package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akansha-code/volumemcpserver/internal/domain/volume"
	"github.com/akansha-code/volumemcpserver/internal/infra/config"
	"github.com/akansha-code/volumemcpserver/internal/mcpserver"
)

func statusCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the current volume and mute state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			ctrl := volume.NewController(ctx, openerFor(cfg.Audio.Backend), logger)
			defer ctrl.Close() //nolint:errcheck

			st, err := ctrl.Status(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mcpserver.StatusText(st))
			return nil
		},
	}
}
