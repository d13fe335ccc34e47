package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calebgil/tandem/internal/middleware"
	"github.com/calebgil/tandem/internal/services"
	"github.com/calebgil/tandem/pkg/response"
)

// DeviceHandler exposes the push token registry.
type DeviceHandler struct {
	devices *services.DeviceService
}

// NewDeviceHandler constructs a DeviceHandler.
func NewDeviceHandler(devices *services.DeviceService) *DeviceHandler {
	return &DeviceHandler{devices: devices}
}

type registerDeviceRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"omitempty,oneof=ios android web"`
}

// Register stores or refreshes the caller's device token.
func (h *DeviceHandler) Register(c *gin.Context) {
	var req registerDeviceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	device, err := h.devices.Register(c.Request.Context(), middleware.UserID(c), req.Token, req.Platform)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, device)
}

type unregisterDeviceRequest struct {
	Token string `json:"token" validate:"required"`
}

// Unregister drops one of the caller's device tokens, typically on sign-out.
func (h *DeviceHandler) Unregister(c *gin.Context) {
	var req unregisterDeviceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.devices.Unregister(c.Request.Context(), middleware.UserID(c), req.Token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

// List returns the caller's registered devices.
func (h *DeviceHandler) List(c *gin.Context) {
	devices, err := h.devices.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, devices)
}
