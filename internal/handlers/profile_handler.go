package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calebgil/tandem/internal/middleware"
	"github.com/calebgil/tandem/internal/services"
	"github.com/calebgil/tandem/pkg/response"
)

// ProfileHandler exposes the caller's own account profile.
type ProfileHandler struct {
	users    *services.UserService
	notifier *services.Notifier
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(users *services.UserService, notifier *services.Notifier) *ProfileHandler {
	return &ProfileHandler{users: users, notifier: notifier}
}

// Get returns the caller's profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,max=100"`
	AvatarURL   *string `json:"avatar_url" validate:"omitempty,max=2048"`
}

// Update applies a partial profile update and pings the partner when
// something actually changed.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}

	uid := middleware.UserID(c)
	user, changed, err := h.users.UpdateProfile(c.Request.Context(), uid, services.ProfilePatch{
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if changed {
		h.notifier.ProfileUpdated(c.Request.Context(), uid)
	}

	response.Success(c, http.StatusOK, user)
}
