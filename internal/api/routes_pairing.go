package api

import (
	"github.com/gin-gonic/gin"

	"github.com/calebgil/tandem/internal/handlers"
)

func registerPairingRoutes(api *gin.RouterGroup, handler *handlers.PairingHandler) {
	group := api.Group("/pairing")
	{
		group.GET("/status", handler.Status)
		group.POST("/code", handler.GenerateCode)
		group.GET("/code/qr", handler.GenerateCodeQR)
		group.POST("/redeem", handler.RedeemCode)
		group.POST("/unpair", handler.Unpair)
	}
}
