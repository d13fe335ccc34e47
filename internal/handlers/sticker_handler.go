package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calebgil/tandem/internal/middleware"
	"github.com/calebgil/tandem/internal/services"
	"github.com/calebgil/tandem/pkg/response"
)

// StickerHandler exposes sticker sends and nudges. Both deliver directly to
// the partner; the send IS the user action, so pairing preconditions surface
// as errors instead of being swallowed.
type StickerHandler struct {
	notifier *services.Notifier
}

// NewStickerHandler constructs a StickerHandler.
func NewStickerHandler(notifier *services.Notifier) *StickerHandler {
	return &StickerHandler{notifier: notifier}
}

type sendStickerRequest struct {
	Name        string `json:"name" validate:"required,max=64"`
	Description string `json:"description" validate:"max=255"`
}

// Send delivers a sticker to the partner.
func (h *StickerHandler) Send(c *gin.Context) {
	var req sendStickerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	err := h.notifier.SendSticker(c.Request.Context(), middleware.UserID(c), services.StickerInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sent": true})
}

// Nudge pokes the partner.
func (h *StickerHandler) Nudge(c *gin.Context) {
	if err := h.notifier.Nudge(c.Request.Context(), middleware.UserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sent": true})
}
