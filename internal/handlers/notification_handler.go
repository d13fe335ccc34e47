package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calebgil/tandem/internal/middleware"
	"github.com/calebgil/tandem/internal/realtime"
	"github.com/calebgil/tandem/internal/services"
	"github.com/calebgil/tandem/pkg/response"
)

// NotificationHandler exposes the in-app notification feed.
type NotificationHandler struct {
	notifications *services.NotificationService
	hub           *realtime.Hub
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(notifications *services.NotificationService, hub *realtime.Hub) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, hub: hub}
}

// List returns the caller's feed, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	records, err := h.notifications.ListForUser(
		c.Request.Context(),
		middleware.UserID(c),
		parseIntQuery(c, "limit", 0),
		parseIntQuery(c, "offset", 0),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, records)
}

// UnreadCount returns the caller's unread badge count.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notifications.UnreadCount(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread": count})
}

// MarkRead flags one notification as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	err := h.notifications.MarkRead(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"read": true})
}

// MarkAllRead flags the whole feed as read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	updated, err := h.notifications.MarkAllRead(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": updated})
}

// Delete removes one notification from the feed.
func (h *NotificationHandler) Delete(c *gin.Context) {
	err := h.notifications.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ClearAll empties the feed.
func (h *NotificationHandler) ClearAll(c *gin.Context) {
	deleted, err := h.notifications.ClearAll(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}

// Stream upgrades to a WebSocket delivering new notifications to foregrounded
// clients.
func (h *NotificationHandler) Stream(c *gin.Context) {
	h.hub.Serve(middleware.UserID(c), c.Writer, c.Request)
}
