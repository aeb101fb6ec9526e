package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/hugohenrick/emceep/internal/config"
	"github.com/hugohenrick/emceep/internal/infrastructure/database"
	"github.com/hugohenrick/emceep/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := config.New()
	var configPath string

	cmd := &cobra.Command{
		Use:          "emceep-migration",
		Short:        "Migrações do arquivo SQLite do changelog",
		SilenceUsage: true,
	}
	config.RegisterFlags(cmd, v, &configPath)
	cmd.PersistentFlags().String("archive", "", "archive database path")
	_ = v.BindPFlag("archive.path", cmd.PersistentFlags().Lookup("archive"))

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplica as migrações pendentes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withArchive(cmd.Context(), v, configPath, func(db *sql.DB, log logger.Logger) error {
				if err := database.RunMigrations(db, log); err != nil {
					return err
				}
				log.Info("Migrações executadas com sucesso!")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Reverte migrações; sem argumento reverte todas",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 0
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("steps deve ser um inteiro positivo: %q", args[0])
				}
				steps = n
			}
			return withArchive(cmd.Context(), v, configPath, func(db *sql.DB, log logger.Logger) error {
				return database.RollbackMigrations(db, steps, log)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Mostra a versão atual do schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withArchive(cmd.Context(), v, configPath, func(db *sql.DB, _ logger.Logger) error {
				version, dirty, err := database.MigrationVersion(db)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
				return nil
			})
		},
	})

	return cmd
}

func withArchive(ctx context.Context, v *viper.Viper, configPath string, fn func(*sql.DB, logger.Logger) error) error {
	cfg, err := config.Load(v, configPath)
	if err != nil {
		return err
	}
	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	db, err := database.OpenSQLite(ctx, database.SQLiteConfig{
		Path:        cfg.Archive.Path,
		BusyTimeout: cfg.Archive.BusyTimeout,
	})
	if err != nil {
		log.Error("Erro ao conectar com o banco de dados", "error", err)
		return err
	}
	defer db.Close()

	return fn(db, log)
}
