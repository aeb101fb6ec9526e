package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/emceep/internal/adapter/api/controller"
	"github.com/hugohenrick/emceep/pkg/mcp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers agrupa tudo o que é montado no router
type Handlers struct {
	Event     *controller.EventController
	Schedule  *controller.ScheduleController
	Attendee  *controller.AttendeeController
	Changelog *controller.ChangelogController
	Command   *controller.CommandController
	MCP       *mcp.Server

	// Opcionais
	Stream  gin.HandlerFunc
	Metrics gin.HandlerFunc
	Swagger bool
}

// Register monta todas as rotas no engine
func Register(engine *gin.Engine, h Handlers) {
	engine.GET("/", h.Event.Index)
	engine.GET("/health", h.Event.Health)

	api := engine.Group("/api")
	SetupEventRoutes(api, h.Event)
	SetupScheduleRoutes(api, h.Schedule)
	SetupAttendeeRoutes(api, h.Attendee)
	SetupChangelogRoutes(api, h.Changelog, h.Stream)
	SetupCommandRoutes(api, h.Command)

	if h.MCP != nil {
		ConfigureMCPRoutes(engine, h.MCP)
	}
	if h.Metrics != nil {
		engine.GET("/metrics", h.Metrics)
	}
	if h.Swagger {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	engine.NoRoute(controller.NotFound)
}
