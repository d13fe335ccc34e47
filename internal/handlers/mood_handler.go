package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calebgil/tandem/internal/middleware"
	"github.com/calebgil/tandem/internal/services"
	"github.com/calebgil/tandem/pkg/response"
)

// MoodHandler exposes mood check-ins.
type MoodHandler struct {
	moods    *services.MoodService
	pairs    *services.PairService
	users    *services.UserService
	notifier *services.Notifier
}

// NewMoodHandler constructs a MoodHandler.
func NewMoodHandler(moods *services.MoodService, pairs *services.PairService, users *services.UserService, notifier *services.Notifier) *MoodHandler {
	return &MoodHandler{moods: moods, pairs: pairs, users: users, notifier: notifier}
}

type recordMoodRequest struct {
	Level     int    `json:"level" validate:"required,min=1,max=5"`
	Note      string `json:"note" validate:"max=500"`
	IsPrivate bool   `json:"is_private"`
}

// Record stores a check-in and shares it with the partner unless private.
func (h *MoodHandler) Record(c *gin.Context) {
	var req recordMoodRequest
	if !bindAndValidate(c, &req) {
		return
	}

	uid := middleware.UserID(c)
	mood, err := h.moods.Record(c.Request.Context(), uid, services.MoodInput{
		Level:     req.Level,
		Note:      req.Note,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.notifier.MoodUpdated(c.Request.Context(), uid, mood)

	response.Success(c, http.StatusCreated, mood)
}

// History returns the caller's own check-ins.
func (h *MoodHandler) History(c *gin.Context) {
	moods, err := h.moods.History(c.Request.Context(), middleware.UserID(c), parseIntQuery(c, "limit", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, moods)
}

// PartnerLatest returns the partner's most recent shareable check-in.
func (h *MoodHandler) PartnerLatest(c *gin.Context) {
	ctx := c.Request.Context()
	uid := middleware.UserID(c)

	user, err := h.users.Get(ctx, uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	partnerID, err := h.pairs.PartnerID(ctx, uid, user.PairID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if partnerID == "" {
		response.Success(c, http.StatusOK, nil)
		return
	}

	mood, err := h.moods.PartnerLatest(ctx, partnerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, mood)
}
