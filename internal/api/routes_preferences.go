package api

import (
	"github.com/gin-gonic/gin"

	"github.com/calebgil/tandem/internal/handlers"
)

func registerPreferenceRoutes(api *gin.RouterGroup, handler *handlers.PreferenceHandler) {
	group := api.Group("/preferences")
	{
		group.GET("", handler.Get)
		group.PATCH("", handler.Update)
		group.POST("/reset", handler.Reset)
		group.GET("/quiet-hours", handler.QuietHours)
	}
}
