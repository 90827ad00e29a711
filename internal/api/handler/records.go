package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentops/talentops/internal/api/middleware"
	"github.com/talentops/talentops/internal/gateway"
	"github.com/talentops/talentops/internal/schema"
	"gorm.io/gorm"
)

// RecordsHandler exposes the generic per-table CRUD operations.
type RecordsHandler struct {
	gw *gateway.Gateway
}

// NewRecordsHandler creates a RecordsHandler.
func NewRecordsHandler(gw *gateway.Gateway) *RecordsHandler {
	return &RecordsHandler{gw: gw}
}

// List returns all records of a table for the caller's org, newest first.
func (h *RecordsHandler) List(c *gin.Context) {
	sess := middleware.GetSession(c)
	records := h.gw.List(c.Request.Context(), c.Param("table"), sess.OrgID)
	c.JSON(http.StatusOK, gin.H{"data": records, "count": len(records)})
}

// Get returns one record by id.
func (h *RecordsHandler) Get(c *gin.Context) {
	sess := middleware.GetSession(c)
	record, err := h.gw.Get(c.Request.Context(), c.Param("table"), c.Param("id"), sess.OrgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": record})
}

// Create inserts a record from the JSON body.
func (h *RecordsHandler) Create(c *gin.Context) {
	var fields schema.Record
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	sess := middleware.GetSession(c)
	record, err := h.gw.Create(c.Request.Context(), c.Param("table"), fields, sess.UserID, sess.OrgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": record})
}

// Update applies the JSON body fields to one record.
func (h *RecordsHandler) Update(c *gin.Context) {
	var fields schema.Record
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	sess := middleware.GetSession(c)
	record, err := h.gw.Update(c.Request.Context(), c.Param("table"), c.Param("id"), fields, sess.UserID, sess.OrgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": record})
}

// Delete removes one record. Deleting a record that is already gone still
// returns success.
func (h *RecordsHandler) Delete(c *gin.Context) {
	sess := middleware.GetSession(c)
	ok, err := h.gw.Remove(c.Request.Context(), c.Param("table"), c.Param("id"), sess.UserID, sess.OrgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": ok})
}

// respondError maps gateway errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gateway.ErrUnknownTable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gateway.ErrNoAttachments):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gateway.ErrImmutableTable):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
