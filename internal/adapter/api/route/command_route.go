package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/emceep/internal/adapter/api/controller"
)

// SetupCommandRoutes configura as rotas de comandos de voz e ferramentas
func SetupCommandRoutes(router *gin.RouterGroup, commandController *controller.CommandController) {
	commandRouter := router.Group("/commands")
	{
		commandRouter.POST("", commandController.Process)
		commandRouter.POST("/classify", commandController.Classify)
	}

	toolRouter := router.Group("/tools")
	{
		toolRouter.GET("", commandController.ListTools)
		toolRouter.POST("/:name", commandController.CallTool)
	}
}
