package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/hugohenrick/emceep/internal/config"
	"github.com/hugohenrick/emceep/pkg/logger"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	v := config.New()
	var configPath string

	cmd := &cobra.Command{
		Use:          "emceep-api",
		Short:        "Servidor REST, MCP e websocket do evento",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configPath)
			if err != nil {
				return err
			}
			log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := NewApp(ctx, cfg, log)
			if err != nil {
				log.Error("failed to start", "error", err)
				return err
			}
			defer app.Close()

			return app.Run(ctx)
		},
	}

	config.RegisterFlags(cmd, v, &configPath)
	cmd.Flags().String("addr", "", "HTTP listen address (default :8080)")
	_ = v.BindPFlag("http.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
