package api

import (
	"github.com/gin-gonic/gin"

	"github.com/calebgil/tandem/internal/handlers"
)

func registerTodoRoutes(api *gin.RouterGroup, handler *handlers.TodoHandler) {
	group := api.Group("/todos")
	{
		group.GET("", handler.List)
		group.POST("", handler.Create)
		group.GET("/:id", handler.Get)
		group.PATCH("/:id", handler.Update)
		group.POST("/:id/complete", handler.Complete)
		group.DELETE("/:id", handler.Delete)
	}
}
