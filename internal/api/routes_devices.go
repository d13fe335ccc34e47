package api

import (
	"github.com/gin-gonic/gin"

	"github.com/calebgil/tandem/internal/handlers"
)

func registerDeviceRoutes(api *gin.RouterGroup, handler *handlers.DeviceHandler) {
	group := api.Group("/devices")
	{
		group.GET("", handler.List)
		group.POST("", handler.Register)
		group.DELETE("", handler.Unregister)
	}
}
