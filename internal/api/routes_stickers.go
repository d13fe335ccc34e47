package api

import (
	"github.com/gin-gonic/gin"

	"github.com/calebgil/tandem/internal/handlers"
)

func registerStickerRoutes(api *gin.RouterGroup, handler *handlers.StickerHandler) {
	group := api.Group("/stickers")
	{
		group.POST("/send", handler.Send)
	}
	api.POST("/nudge", handler.Nudge)
}
