package main

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/hugohenrick/emceep/docs"
	"github.com/hugohenrick/emceep/internal/adapter/api/controller"
	"github.com/hugohenrick/emceep/internal/adapter/api/route"
	"github.com/hugohenrick/emceep/internal/app"
	"github.com/hugohenrick/emceep/internal/config"
	"github.com/hugohenrick/emceep/pkg/logger"
	"github.com/hugohenrick/emceep/pkg/mcp"
	"github.com/hugohenrick/emceep/pkg/middleware"
	"golang.org/x/sync/errgroup"
)

// App representa a aplicação e suas dependências
type App struct {
	router    *gin.Engine
	container *app.Container
	config    *config.Config
	logger    logger.Logger
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	container, err := app.Build(ctx, cfg, log, app.Options{Feed: true})
	if err != nil {
		return nil, err
	}

	if !cfg.HTTP.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(), middleware.AccessLog(log))
	router.Use(cors.New(corsConfig(cfg.HTTP.CORSOrigins)))
	if container.Metrics != nil {
		router.Use(container.Metrics.Middleware())
	}

	a := &App{router: router, container: container, config: cfg, logger: log}
	a.SetupRoutes()
	return a, nil
}

// SetupRoutes configura as rotas da aplicação
func (a *App) SetupRoutes() {
	c := a.container
	cfg := a.config

	var archive controller.ArchiveReader
	if c.Archive != nil {
		archive = c.Archive
	}

	handlers := route.Handlers{
		Event:     controller.NewEventController(c.Repository, cfg.DataPath, a.logger),
		Schedule:  controller.NewScheduleController(c.Repository, a.logger),
		Attendee:  controller.NewAttendeeController(c.Repository, a.logger),
		Changelog: controller.NewChangelogController(c.Repository, archive, a.logger),
		Command:   controller.NewCommandController(c.Executor, c.Dispatcher, a.logger),
		MCP:       mcp.NewServer(c.Dispatcher, a.logger),
		Stream:    c.Hub.Handler(),
		Swagger:   true,
	}
	if c.Metrics != nil {
		handlers.Metrics = c.Metrics.Handler()
	}

	route.Register(a.router, handlers)
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Run serve HTTP e o feed do changelog até ctx ser cancelado
func (a *App) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.HTTP.Addr,
		Handler: a.router,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.container.Hub.Run(ctx)
		return nil
	})

	g.Go(func() error {
		a.logger.Info("starting HTTP server",
			"addr", a.config.HTTP.Addr,
			"data_file", a.config.DataPath,
			"archive", a.config.Archive.Enabled)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.HTTP.ShutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	a.container.Close()
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowWebSockets = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
