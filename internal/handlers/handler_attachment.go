package handlers

import (
	"mime"
	"net/http"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
	"github.com/SscSPs/movement_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

type attachmentHandler struct {
	attachmentService portssvc.AttachmentSvc
}

func registerAttachmentRoutes(rg *gin.RouterGroup, attachmentService portssvc.AttachmentSvc) {
	h := &attachmentHandler{attachmentService: attachmentService}

	rg.POST("/movements/:movementID/attachments", h.upload)
	rg.GET("/movements/:movementID/attachments", h.list)
	rg.GET("/attachments/:attachmentID", h.download)
	rg.DELETE("/attachments/:attachmentID", h.delete)
}

// upload godoc
// @Summary Attach a file to a movement
// @Description Creator or area manager. Accepts pdf, png, jpeg, webp, csv and xlsx.
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Param movementID path string true "Movement ID"
// @Param file formData file true "File"
// @Success 201 {object} dto.AttachmentResponse
// @Failure 400 {object} middleware.ErrorResponse "Missing file, type not allowed or too large"
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /movements/{movementID}/attachments [post]
func (h *attachmentHandler) upload(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperrors.NewBadRequestError("multipart field \"file\" is required"), "Attachment upload without file")
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, err, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	attachment, err := h.attachmentService.UploadAttachment(c.Request.Context(), caller, c.Param("movementID"), header.Filename, file)
	if err != nil {
		respondError(c, err, "Failed to upload attachment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAttachmentResponse(attachment))
}

// list godoc
// @Summary List the attachments of a movement
// @Tags attachments
// @Produce json
// @Param movementID path string true "Movement ID"
// @Success 200 {array} dto.AttachmentResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /movements/{movementID}/attachments [get]
func (h *attachmentHandler) list(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	attachments, err := h.attachmentService.ListAttachments(c.Request.Context(), caller, c.Param("movementID"))
	if err != nil {
		respondError(c, err, "Failed to list attachments")
		return
	}
	c.JSON(http.StatusOK, dto.ToAttachmentResponses(attachments))
}

// download godoc
// @Summary Download an attachment
// @Tags attachments
// @Produce octet-stream
// @Param attachmentID path string true "Attachment ID"
// @Success 200 {file} file
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /attachments/{attachmentID} [get]
func (h *attachmentHandler) download(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	attachment, content, err := h.attachmentService.OpenAttachment(c.Request.Context(), caller, c.Param("attachmentID"))
	if err != nil {
		respondError(c, err, "Failed to open attachment")
		return
	}
	defer content.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": attachment.FileName})
	c.DataFromReader(http.StatusOK, attachment.SizeBytes, attachment.ContentType, content, map[string]string{
		"Content-Disposition": disposition,
	})
}

// delete godoc
// @Summary Delete an attachment
// @Description Uploader only
// @Tags attachments
// @Param attachmentID path string true "Attachment ID"
// @Success 204 "No Content"
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /attachments/{attachmentID} [delete]
func (h *attachmentHandler) delete(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	if err := h.attachmentService.DeleteAttachment(c.Request.Context(), caller, c.Param("attachmentID")); err != nil {
		respondError(c, err, "Failed to delete attachment")
		return
	}
	c.Status(http.StatusNoContent)
}
