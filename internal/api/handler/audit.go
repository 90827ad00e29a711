package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentops/talentops/internal/api/middleware"
	"github.com/talentops/talentops/internal/gateway"
)

// AuditHandler serves the audit trail.
type AuditHandler struct {
	gw *gateway.Gateway
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(gw *gateway.Gateway) *AuditHandler {
	return &AuditHandler{gw: gw}
}

// List returns audit entries, newest first, narrowed by query parameters.
// Supported filters: entity, entityId, userId, action.
func (h *AuditHandler) List(c *gin.Context) {
	sess := middleware.GetSession(c)
	entries := h.gw.AuditLog(c.Request.Context(), gateway.AuditFilter{
		Entity:   c.Query("entity"),
		EntityID: c.Query("entityId"),
		UserID:   c.Query("userId"),
		Action:   c.Query("action"),
	}, sess.OrgID)
	c.JSON(http.StatusOK, gin.H{"data": entries, "count": len(entries)})
}
