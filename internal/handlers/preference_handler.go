package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/calebgil/tandem/internal/middleware"
	"github.com/calebgil/tandem/internal/notify"
	"github.com/calebgil/tandem/internal/services"
	"github.com/calebgil/tandem/pkg/response"
)

// PreferenceHandler exposes notification preference management.
type PreferenceHandler struct {
	preferences *services.PreferenceService
}

// NewPreferenceHandler constructs a PreferenceHandler.
func NewPreferenceHandler(preferences *services.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences}
}

// Get returns the caller's preferences.
func (h *PreferenceHandler) Get(c *gin.Context) {
	prefs, err := h.preferences.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, prefs)
}

// Update merges a partial preference update.
func (h *PreferenceHandler) Update(c *gin.Context) {
	var patch notify.PreferencesPatch
	if !bindAndValidate(c, &patch) {
		return
	}

	prefs, err := h.preferences.Update(c.Request.Context(), middleware.UserID(c), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, prefs)
}

// Reset restores the defaults.
func (h *PreferenceHandler) Reset(c *gin.Context) {
	prefs, err := h.preferences.Reset(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, prefs)
}

// QuietHours reports whether the caller is currently inside their quiet
// window. Clients use it to soften in-app presentation.
func (h *PreferenceHandler) QuietHours(c *gin.Context) {
	quiet, err := h.preferences.InQuietHours(c.Request.Context(), middleware.UserID(c), time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"quiet": quiet})
}
