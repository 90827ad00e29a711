package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentops/talentops/internal/api/middleware"
	"github.com/talentops/talentops/internal/service"
)

// NotificationsHandler serves per-user notifications.
type NotificationsHandler struct {
	svc *service.NotificationService
}

// NewNotificationsHandler creates a NotificationsHandler.
func NewNotificationsHandler(svc *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{svc: svc}
}

// Inbox lists the caller's notifications, newest first.
func (h *NotificationsHandler) Inbox(c *gin.Context) {
	sess := middleware.GetSession(c)
	items := h.svc.Inbox(c.Request.Context(), sess.UserID, sess)
	c.JSON(http.StatusOK, gin.H{"data": items, "count": len(items)})
}

// UnreadCount returns the caller's unread notification count.
func (h *NotificationsHandler) UnreadCount(c *gin.Context) {
	sess := middleware.GetSession(c)
	c.JSON(http.StatusOK, gin.H{"count": h.svc.UnreadCount(c.Request.Context(), sess.UserID, sess)})
}

// MarkRead acknowledges one notification.
func (h *NotificationsHandler) MarkRead(c *gin.Context) {
	sess := middleware.GetSession(c)
	record, err := h.svc.MarkRead(c.Request.Context(), c.Param("id"), sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": record})
}

// MarkAllRead acknowledges everything in the caller's inbox.
func (h *NotificationsHandler) MarkAllRead(c *gin.Context) {
	sess := middleware.GetSession(c)
	if err := h.svc.MarkAllRead(c.Request.Context(), sess.UserID, sess); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
