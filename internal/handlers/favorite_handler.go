package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calebgil/tandem/internal/middleware"
	"github.com/calebgil/tandem/internal/services"
	"github.com/calebgil/tandem/pkg/response"
)

// FavoriteHandler exposes the pair's shared bookmarks.
type FavoriteHandler struct {
	favorites *services.FavoriteService
	notifier  *services.Notifier
}

// NewFavoriteHandler constructs a FavoriteHandler.
func NewFavoriteHandler(favorites *services.FavoriteService, notifier *services.Notifier) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, notifier: notifier}
}

type addFavoriteRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Category string `json:"category" validate:"max=64"`
	URL      string `json:"url" validate:"omitempty,url,max=2048"`
	Note     string `json:"note" validate:"max=500"`
}

// Add stores a bookmark and notifies the partner.
func (h *FavoriteHandler) Add(c *gin.Context) {
	var req addFavoriteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	uid := middleware.UserID(c)
	favorite, err := h.favorites.Add(c.Request.Context(), uid, services.FavoriteInput{
		Title:    req.Title,
		Category: req.Category,
		URL:      req.URL,
		Note:     req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.notifier.FavoriteAdded(c.Request.Context(), uid, favorite)

	response.Success(c, http.StatusCreated, favorite)
}

// List returns the pair's bookmarks.
func (h *FavoriteHandler) List(c *gin.Context) {
	favorites, err := h.favorites.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, favorites)
}

// Remove deletes one bookmark.
func (h *FavoriteHandler) Remove(c *gin.Context) {
	err := h.favorites.Remove(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
