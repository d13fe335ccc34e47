package api

import (
	"github.com/gin-gonic/gin"

	"github.com/calebgil/tandem/internal/handlers"
)

func registerMoodRoutes(api *gin.RouterGroup, handler *handlers.MoodHandler) {
	group := api.Group("/moods")
	{
		group.GET("", handler.History)
		group.POST("", handler.Record)
		group.GET("/partner", handler.PartnerLatest)
	}
}
