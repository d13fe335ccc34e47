package api

import (
	"github.com/gin-gonic/gin"

	"github.com/calebgil/tandem/internal/handlers"
)

func registerFavoriteRoutes(api *gin.RouterGroup, handler *handlers.FavoriteHandler) {
	group := api.Group("/favorites")
	{
		group.GET("", handler.List)
		group.POST("", handler.Add)
		group.DELETE("/:id", handler.Remove)
	}
}
