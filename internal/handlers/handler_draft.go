package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
	"github.com/SscSPs/movement_tracker/internal/dto"
	"github.com/SscSPs/movement_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// draftHandler handles imported movements awaiting categorization.
type draftHandler struct {
	draftService portssvc.DraftSvcFacade
}

func registerDraftRoutes(rg *gin.RouterGroup, draftService portssvc.DraftSvcFacade) {
	h := &draftHandler{draftService: draftService}

	drafts := rg.Group("/drafts")
	{
		drafts.POST("/import", h.importDrafts)
		drafts.POST("/import/xlsx", h.importDraftsXLSX)
		drafts.GET("", h.listDrafts)
		drafts.GET("/stats", h.getStats)
		drafts.POST("/bulk/update", h.bulkUpdate) // Admin only, enforced by the service
		drafts.POST("/bulk/finalize", h.bulkFinalize)
		drafts.POST("/bulk/delete", h.bulkDelete)

		drafts.PATCH("/:movementID", h.updateDraft)
		drafts.POST("/:movementID/finalize", h.finalizeDraft)
		drafts.DELETE("/:movementID", h.deleteDraft)
	}
}

func importResponse(movements []domain.Movement) dto.ImportDraftsResponse {
	ids := make([]string, len(movements))
	for i := range movements {
		ids[i] = movements[i].MovementID
	}
	return dto.ImportDraftsResponse{Count: len(movements), MovementIDs: ids}
}

// importDrafts godoc
// @Summary Import drafts
// @Description Creates up to 500 DRAFT movements in one transaction
// @Tags drafts
// @Accept json
// @Produce json
// @Param body body dto.ImportDraftsRequest true "Rows"
// @Success 201 {object} dto.ImportDraftsResponse
// @Failure 400 {object} middleware.ErrorResponse "A row is invalid"
// @Failure 404 {object} middleware.ErrorResponse "An area is not visible"
// @Security BearerAuth
// @Router /drafts/import [post]
func (h *draftHandler) importDrafts(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.ImportDraftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	movements, err := h.draftService.ImportDrafts(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to import drafts")
		return
	}
	middleware.GetLoggerFromContext(c).Info("Drafts imported", slog.Int("count", len(movements)))
	c.JSON(http.StatusCreated, importResponse(movements))
}

// importDraftsXLSX godoc
// @Summary Import drafts from a workbook
// @Description Reads the first sheet. Columns: date, type, amount, currency, description, category, reference, department.
// @Tags drafts
// @Accept multipart/form-data
// @Produce json
// @Param areaID formData string true "Area every row is imported into"
// @Param file formData file true "XLSX workbook"
// @Success 201 {object} dto.ImportDraftsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /drafts/import/xlsx [post]
func (h *draftHandler) importDraftsXLSX(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	areaID := c.PostForm("areaID")
	if areaID == "" {
		respondError(c, apperrors.NewBadRequestError("form field \"areaID\" is required"), "Workbook import without area")
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperrors.NewBadRequestError("multipart field \"file\" is required"), "Workbook import without file")
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, err, "Failed to open uploaded workbook")
		return
	}
	defer file.Close()

	movements, err := h.draftService.ImportDraftsFromXLSX(c.Request.Context(), caller, areaID, file)
	if err != nil {
		respondError(c, err, "Failed to import workbook")
		return
	}
	middleware.GetLoggerFromContext(c).Info("Drafts imported from workbook", slog.Int("count", len(movements)))
	c.JSON(http.StatusCreated, importResponse(movements))
}

// listDrafts godoc
// @Summary List drafts
// @Tags drafts
// @Produce json
// @Param areaID query string false "Area"
// @Param uncategorizedOnly query bool false "Only drafts without a department"
// @Param search query string false "Matches description, reference or category"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListMovementsResponse
// @Security BearerAuth
// @Router /drafts [get]
func (h *draftHandler) listDrafts(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListDraftsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	drafts, nextToken, err := h.draftService.ListDrafts(c.Request.Context(), caller, params)
	if err != nil {
		respondError(c, err, "Failed to list drafts")
		return
	}
	c.JSON(http.StatusOK, dto.ListMovementsResponse{Movements: dto.ToMovementResponses(drafts), NextToken: nextToken})
}

// getStats godoc
// @Summary Draft counts
// @Tags drafts
// @Produce json
// @Success 200 {object} domain.DraftStats
// @Security BearerAuth
// @Router /drafts/stats [get]
func (h *draftHandler) getStats(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	stats, err := h.draftService.GetDraftStats(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to get draft stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// updateDraft godoc
// @Summary Categorize a draft
// @Description Moving a draft to another area clears its department and bank account
// @Tags drafts
// @Accept json
// @Produce json
// @Param movementID path string true "Draft ID"
// @Param body body dto.UpdateDraftRequest true "Categorization"
// @Success 200 {object} dto.MovementResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /drafts/{movementID} [patch]
func (h *draftHandler) updateDraft(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	draft, err := h.draftService.UpdateDraft(c.Request.Context(), caller, c.Param("movementID"), req)
	if err != nil {
		respondError(c, err, "Failed to update draft")
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(draft))
}

// finalizeDraft godoc
// @Summary Send a draft to review
// @Description The draft must have a department. It becomes PENDING.
// @Tags drafts
// @Produce json
// @Param movementID path string true "Draft ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 400 {object} middleware.ErrorResponse "No department"
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /drafts/{movementID}/finalize [post]
func (h *draftHandler) finalizeDraft(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	movement, err := h.draftService.FinalizeDraft(c.Request.Context(), caller, c.Param("movementID"))
	if err != nil {
		respondError(c, err, "Failed to finalize draft")
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// deleteDraft godoc
// @Summary Delete a draft
// @Tags drafts
// @Param movementID path string true "Draft ID"
// @Success 204 "No Content"
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /drafts/{movementID} [delete]
func (h *draftHandler) deleteDraft(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	if err := h.draftService.DeleteDraft(c.Request.Context(), caller, c.Param("movementID")); err != nil {
		respondError(c, err, "Failed to delete draft")
		return
	}
	c.Status(http.StatusNoContent)
}

// bulkUpdate godoc
// @Summary Categorize up to 100 drafts
// @Description Admin only. Returns how many drafts actually changed.
// @Tags drafts
// @Accept json
// @Produce json
// @Param body body dto.BulkUpdateDraftsRequest true "Drafts and categorization"
// @Success 200 {object} dto.BulkResultResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /drafts/bulk/update [post]
func (h *draftHandler) bulkUpdate(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.BulkUpdateDraftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	count, err := h.draftService.BulkUpdateDrafts(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Bulk draft update failed")
		return
	}
	c.JSON(http.StatusOK, dto.BulkResultResponse{Count: count})
}

// bulkFinalize godoc
// @Summary Send up to 100 drafts to review
// @Tags drafts
// @Accept json
// @Produce json
// @Param body body dto.BulkDraftIDsRequest true "Draft ids"
// @Success 200 {object} dto.BulkResultResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /drafts/bulk/finalize [post]
func (h *draftHandler) bulkFinalize(c *gin.Context) {
	h.bulkIDs(c, "Bulk draft finalize failed", h.draftService.BulkFinalizeDrafts)
}

// bulkDelete godoc
// @Summary Delete up to 100 drafts
// @Tags drafts
// @Accept json
// @Produce json
// @Param body body dto.BulkDraftIDsRequest true "Draft ids"
// @Success 200 {object} dto.BulkResultResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /drafts/bulk/delete [post]
func (h *draftHandler) bulkDelete(c *gin.Context) {
	h.bulkIDs(c, "Bulk draft delete failed", h.draftService.BulkDeleteDrafts)
}

func (h *draftHandler) bulkIDs(c *gin.Context, failMsg string, apply func(ctx context.Context, caller domain.Caller, req dto.BulkDraftIDsRequest) (int, error)) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.BulkDraftIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	count, err := apply(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, failMsg)
		return
	}
	c.JSON(http.StatusOK, dto.BulkResultResponse{Count: count})
}
