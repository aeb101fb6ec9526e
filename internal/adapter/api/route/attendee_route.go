package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/emceep/internal/adapter/api/controller"
)

// SetupAttendeeRoutes configura as rotas dos participantes
func SetupAttendeeRoutes(router *gin.RouterGroup, attendeeController *controller.AttendeeController) {
	attendeeRouter := router.Group("/attendees")
	{
		attendeeRouter.GET("", attendeeController.List)
		attendeeRouter.POST("", attendeeController.Create)
		attendeeRouter.GET("/:id", attendeeController.GetByID)
		attendeeRouter.PATCH("/:id", attendeeController.Update)
		attendeeRouter.DELETE("/:id", attendeeController.Delete)
	}
}
