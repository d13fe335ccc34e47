package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calebgil/tandem/internal/middleware"
	"github.com/calebgil/tandem/internal/notify"
	"github.com/calebgil/tandem/internal/services"
	"github.com/calebgil/tandem/pkg/response"
)

// CustomizationHandler exposes notification appearance settings.
type CustomizationHandler struct {
	customization *services.CustomizationService
}

// NewCustomizationHandler constructs a CustomizationHandler.
func NewCustomizationHandler(customization *services.CustomizationService) *CustomizationHandler {
	return &CustomizationHandler{customization: customization}
}

// Get returns the caller's customization.
func (h *CustomizationHandler) Get(c *gin.Context) {
	custom, err := h.customization.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, custom)
}

// Presets lists the selectable preset ids.
func (h *CustomizationHandler) Presets(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"presets": notify.PresetIDs()})
}

type applyPresetRequest struct {
	Preset string `json:"preset" validate:"required"`
}

// ApplyPreset replaces the caller's customization with a built-in preset.
func (h *CustomizationHandler) ApplyPreset(c *gin.Context) {
	var req applyPresetRequest
	if !bindAndValidate(c, &req) {
		return
	}

	custom, err := h.customization.ApplyPreset(c.Request.Context(), middleware.UserID(c), req.Preset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, custom)
}

// Update merges a partial customization edit.
func (h *CustomizationHandler) Update(c *gin.Context) {
	var patch notify.CustomizationPatch
	if !bindAndValidate(c, &patch) {
		return
	}

	custom, err := h.customization.Update(c.Request.Context(), middleware.UserID(c), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, custom)
}

// UpdateGroupColors overrides one style group's colors.
func (h *CustomizationHandler) UpdateGroupColors(c *gin.Context) {
	var patch notify.ColorSetPatch
	if !bindAndValidate(c, &patch) {
		return
	}

	custom, err := h.customization.UpdateGroupColors(c.Request.Context(), middleware.UserID(c), c.Param("group"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, custom)
}

type groupStyleRequest struct {
	Style notify.VisualStyle `json:"style" validate:"required"`
}

// UpdateGroupStyle overrides one style group's visual style.
func (h *CustomizationHandler) UpdateGroupStyle(c *gin.Context) {
	var req groupStyleRequest
	if !bindAndValidate(c, &req) {
		return
	}

	custom, err := h.customization.UpdateGroupStyle(c.Request.Context(), middleware.UserID(c), c.Param("group"), req.Style)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, custom)
}

// Reset restores the default preset.
func (h *CustomizationHandler) Reset(c *gin.Context) {
	custom, err := h.customization.Reset(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, custom)
}
