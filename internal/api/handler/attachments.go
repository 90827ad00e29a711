package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentops/talentops/internal/api/middleware"
	"github.com/talentops/talentops/internal/gateway"
)

// AttachmentsHandler accepts file uploads for records with an attachment
// column (resumes, avatars, payslip PDFs).
type AttachmentsHandler struct {
	gw *gateway.Gateway
}

// NewAttachmentsHandler creates an AttachmentsHandler.
func NewAttachmentsHandler(gw *gateway.Gateway) *AttachmentsHandler {
	return &AttachmentsHandler{gw: gw}
}

// Upload stores the multipart "file" field and writes its URL onto the
// owning record.
func (h *AttachmentsHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	sess := middleware.GetSession(c)
	record, err := h.gw.UploadAttachment(
		c.Request.Context(),
		c.Param("table"), c.Param("id"),
		fileHeader.Filename, contentType,
		file, fileHeader.Size,
		sess.UserID, sess.OrgID,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": record})
}
