package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"khata/internal/service"
)

// AttachmentHandler handles bill and invoice attachment uploads.
type AttachmentHandler struct {
	attachmentService service.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler.
func NewAttachmentHandler(attachmentService service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// Upload handles POST /api/v1/attachments
// @Summary Upload an attachment
// @Description Upload a PDF, JPG or PNG. Reference the returned id from an invoice or bill.
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload (PDF, JPG, or PNG)"
// @Success 201 {object} Response{data=domain.Attachment} "Attachment stored"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Security BearerAuth
// @Router /attachments [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	att, err := h.attachmentService.Upload(c.Request.Context(), service.UploadAttachmentInput{
		TenantID:   tenantID,
		UploadedBy: userID,
		FileName:   header.Filename,
		Size:       header.Size,
		Body:       file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, att)
}

// Download handles GET /api/v1/attachments/:id/download
// @Summary Download an attachment
// @Tags attachments
// @Produce application/pdf,image/jpeg,image/png
// @Param id path string true "Attachment ID (UUID)"
// @Success 200 {file} file "File content"
// @Failure 404 {object} ErrorResponseBody "Attachment not found"
// @Security BearerAuth
// @Router /attachments/{id}/download [get]
func (h *AttachmentHandler) Download(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	attachmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	att, data, err := h.attachmentService.Download(c.Request.Context(), tenantID, attachmentID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", att.FileName))
	c.Data(http.StatusOK, att.ContentType, data)
}

// Delete handles DELETE /api/v1/attachments/:id
// @Summary Delete an attachment
// @Description Attachments still referenced by a document cannot be deleted.
// @Tags attachments
// @Produce json
// @Param id path string true "Attachment ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Attachment deleted"
// @Failure 400 {object} ErrorResponseBody "Attachment is referenced"
// @Failure 404 {object} ErrorResponseBody "Attachment not found"
// @Security BearerAuth
// @Router /attachments/{id} [delete]
func (h *AttachmentHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	attachmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), tenantID, attachmentID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "attachment deleted"})
}
