package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/emceep/internal/adapter/api/controller"
)

// SetupChangelogRoutes configura as rotas do changelog. stream pode ser nil
// quando o feed em websocket não está ativo.
func SetupChangelogRoutes(router *gin.RouterGroup, changelogController *controller.ChangelogController, stream gin.HandlerFunc) {
	changelogRouter := router.Group("/changelog")
	{
		changelogRouter.GET("", changelogController.List)
		changelogRouter.GET("/archive", changelogController.Archive)
		changelogRouter.GET("/stats", changelogController.Stats)
		if stream != nil {
			changelogRouter.GET("/stream", stream)
		}
	}
}
