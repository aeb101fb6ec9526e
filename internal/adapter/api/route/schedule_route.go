package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/emceep/internal/adapter/api/controller"
)

// SetupScheduleRoutes configura as rotas da agenda
func SetupScheduleRoutes(router *gin.RouterGroup, scheduleController *controller.ScheduleController) {
	scheduleRouter := router.Group("/schedule")
	{
		scheduleRouter.GET("", scheduleController.List)
		scheduleRouter.POST("", scheduleController.Create)
		scheduleRouter.GET("/:id", scheduleController.GetByID)
		scheduleRouter.PUT("/:id/time", scheduleController.UpdateTime)
		scheduleRouter.PUT("/:id/location", scheduleController.UpdateLocation)
		scheduleRouter.DELETE("/:id", scheduleController.Delete)
	}
}
