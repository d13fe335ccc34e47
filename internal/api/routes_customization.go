package api

import (
	"github.com/gin-gonic/gin"

	"github.com/calebgil/tandem/internal/handlers"
)

func registerCustomizationRoutes(api *gin.RouterGroup, handler *handlers.CustomizationHandler) {
	group := api.Group("/customization")
	{
		group.GET("", handler.Get)
		group.PATCH("", handler.Update)
		group.GET("/presets", handler.Presets)
		group.POST("/presets", handler.ApplyPreset)
		group.POST("/reset", handler.Reset)
		group.PATCH("/groups/:group/colors", handler.UpdateGroupColors)
		group.PATCH("/groups/:group/style", handler.UpdateGroupStyle)
	}
}
