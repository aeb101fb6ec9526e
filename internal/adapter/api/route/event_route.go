package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/emceep/internal/adapter/api/controller"
)

// SetupEventRoutes configura as rotas dos dados gerais do evento
func SetupEventRoutes(router *gin.RouterGroup, eventController *controller.EventController) {
	eventRouter := router.Group("/event")
	{
		eventRouter.GET("", eventController.GetEvent)
		eventRouter.GET("/info", eventController.GetEventInfo)
	}

	router.GET("/organizers", eventController.GetOrganizers)
	router.GET("/dietary", eventController.GetDietary)

	faqRouter := router.Group("/faq")
	{
		faqRouter.GET("", eventController.GetFAQ)
		faqRouter.PUT("/:key", eventController.UpdateFAQ)
	}
}
