package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hugohenrick/emceep/internal/app"
	"github.com/hugohenrick/emceep/internal/config"
	"github.com/hugohenrick/emceep/pkg/logger"
	"github.com/hugohenrick/emceep/pkg/mcp"
	"github.com/hugohenrick/emceep/pkg/mcp/intent"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// stdout é o canal do protocolo; avisos vão para stderr
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Aviso: Arquivo .env não encontrado: %v\n", err)
	}

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := config.New()
	var configPath string

	cmd := &cobra.Command{
		Use:          "emceep-mcp",
		Short:        "Servidor MCP do evento sobre stdio",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configPath)
			if err != nil {
				return err
			}
			log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: os.Stderr})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			container, err := app.Build(ctx, cfg, log, app.Options{})
			if err != nil {
				log.Error("failed to start", "error", err)
				return err
			}
			defer container.Close()

			log.Info("MCP server listening on stdio",
				"data_file", cfg.DataPath,
				"tools", len(container.Dispatcher.Tools()))
			return mcp.NewServer(container.Dispatcher, log).ServeStdio(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	config.RegisterFlags(cmd, v, &configPath)

	cmd.AddCommand(newClassifyCommand())
	return cmd
}

// newClassifyCommand classifica um texto sem tocar nos dados do evento
func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <text>",
		Short: "Classifica um comando de voz e imprime o resultado em JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			classification := intent.NewClassifier(nil).Classify(strings.Join(args, " "))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(classification)
		},
	}
}
