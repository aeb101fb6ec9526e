package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hugohenrick/emceep/internal/adapter/repository"
	"github.com/hugohenrick/emceep/internal/config"
	"github.com/hugohenrick/emceep/internal/domain/event"
	"github.com/hugohenrick/emceep/internal/infrastructure/database"
	"github.com/hugohenrick/emceep/pkg/feed"
	"github.com/hugohenrick/emceep/pkg/logger"
	"github.com/hugohenrick/emceep/pkg/mcp"
	"github.com/hugohenrick/emceep/pkg/mcp/intent"
	"github.com/hugohenrick/emceep/pkg/metrics"
	"github.com/hugohenrick/emceep/pkg/notify"
)

// Container reúne as dependências compartilhadas pelos binários
type Container struct {
	Config *config.Config
	Logger logger.Logger

	Repository *repository.EventRepository
	Archive    *repository.ChangelogArchive
	Hub        *feed.Hub
	Metrics    *metrics.Collector
	Executor   *intent.Executor
	Dispatcher *mcp.Dispatcher

	db *sql.DB
}

// Options escolhe quais componentes opcionais são montados
type Options struct {
	// Feed liga o hub de websocket do changelog
	Feed bool
}

// Build monta o repositório, os sinks do changelog, o executor e o dispatcher
func Build(ctx context.Context, cfg *config.Config, log logger.Logger, opts Options) (*Container, error) {
	log = logger.OrNop(log)
	c := &Container{Config: cfg, Logger: log}

	var sinks []event.ChangelogSink

	if cfg.Archive.Enabled {
		db, err := database.OpenSQLite(ctx, database.SQLiteConfig{
			Path:        cfg.Archive.Path,
			BusyTimeout: cfg.Archive.BusyTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("erro ao abrir arquivo do changelog: %w", err)
		}
		if err := database.RunMigrations(db, log); err != nil {
			db.Close()
			return nil, err
		}
		c.db = db
		c.Archive = repository.NewChangelogArchive(db, log)
		sinks = append(sinks, c.Archive)
	}

	if cfg.Metrics.Enabled {
		collector, err := metrics.New()
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("erro ao registrar métricas: %w", err)
		}
		c.Metrics = collector
		sinks = append(sinks, collector)
	}

	if opts.Feed {
		c.Hub = feed.NewHub(log)
		sinks = append(sinks, c.Hub)
	}

	repo, err := repository.NewEventRepository(cfg.DataPath,
		repository.WithLogger(log),
		repository.WithSinks(sinks...))
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("erro ao carregar dados do evento: %w", err)
	}
	c.Repository = repo

	if c.Archive != nil {
		c.backfill(ctx)
	}

	executorOpts := []intent.ExecutorOption{
		intent.WithThreshold(cfg.Executor.Threshold),
		intent.WithLogger(log),
	}
	dispatcherOpts := []mcp.DispatcherOption{mcp.WithDispatcherLogger(log)}
	if c.Metrics != nil {
		executorOpts = append(executorOpts, intent.WithObserver(c.Metrics))
		dispatcherOpts = append(dispatcherOpts, mcp.WithToolObserver(c.Metrics))
	}
	c.Executor = intent.NewExecutor(intent.NewClassifier(log), repo, executorOpts...)

	sms := notify.NewSender(cfg.Twilio.Notify(), log)
	c.Dispatcher = mcp.NewDispatcher(repo, c.Executor, sms, dispatcherOpts...)

	return c, nil
}

// backfill copia para o arquivo as entradas que já estavam no documento
func (c *Container) backfill(ctx context.Context) {
	entries, _, err := c.Repository.Changelog(ctx, 0)
	if err != nil {
		c.Logger.Warn("could not read changelog for backfill", "error", err)
		return
	}
	if _, err := c.Archive.Backfill(ctx, entries); err != nil {
		c.Logger.Warn("changelog backfill failed", "error", err)
	}
}

// Close libera os recursos do container
func (c *Container) Close() {
	if c.db != nil {
		c.db.Close()
		c.db = nil
	}
}
