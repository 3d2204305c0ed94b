package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
	"github.com/SscSPs/movement_tracker/internal/dto"
	"github.com/SscSPs/movement_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// movementHandler handles the movement lifecycle: recording, editing and review.
type movementHandler struct {
	movementService portssvc.MovementSvcFacade
}

func newMovementHandler(ms portssvc.MovementSvcFacade) *movementHandler {
	return &movementHandler{movementService: ms}
}

func registerMovementRoutes(rg *gin.RouterGroup, movementService portssvc.MovementSvcFacade) {
	h := newMovementHandler(movementService)

	movements := rg.Group("/movements")
	{
		movements.POST("", h.createMovement)
		movements.GET("", h.listMovements)
		movements.POST("/bulk/approve", h.bulkApprove)
		movements.POST("/bulk/reject", h.bulkReject)

		movements.GET("/:movementID", h.getMovement)
		movements.PATCH("/:movementID", h.updateMovement)
		movements.DELETE("/:movementID", h.deleteMovement)
		movements.POST("/:movementID/approve", h.approveMovement)
		movements.POST("/:movementID/reject", h.rejectMovement)
		movements.POST("/:movementID/comments", h.addComment)
		movements.GET("/:movementID/history", h.getHistory)
	}
}

// createMovement godoc
// @Summary Record a movement
// @Description Creates a PENDING movement in an area the caller belongs to
// @Tags movements
// @Accept json
// @Produce json
// @Param movement body dto.CreateMovementRequest true "Movement"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse "Email not verified"
// @Failure 404 {object} middleware.ErrorResponse "Area not found"
// @Security BearerAuth
// @Router /movements [post]
func (h *movementHandler) createMovement(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	movement, err := h.movementService.CreateMovement(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to create movement")
		return
	}

	middleware.GetLoggerFromContext(c).Info("Movement created", slog.String("movement_id", movement.MovementID))
	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

// listMovements godoc
// @Summary List movements
// @Description Pages through movements in the caller's areas, newest first. Drafts are only listed when status=DRAFT.
// @Tags movements
// @Produce json
// @Param areaID query string false "Area"
// @Param departmentID query string false "Department"
// @Param status query string false "Status"
// @Param type query string false "Movement type"
// @Param category query string false "Category"
// @Param mine query bool false "Only movements created by the caller"
// @Param dateFrom query string false "From date (YYYY-MM-DD)"
// @Param dateTo query string false "To date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /movements [get]
func (h *movementHandler) listMovements(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	movements, nextToken, err := h.movementService.ListMovements(c.Request.Context(), caller, params)
	if err != nil {
		respondError(c, err, "Failed to list movements")
		return
	}
	c.JSON(http.StatusOK, dto.ListMovementsResponse{
		Movements: dto.ToMovementResponses(movements),
		NextToken: nextToken,
	})
}

// getMovement godoc
// @Summary Get a movement
// @Tags movements
// @Produce json
// @Param movementID path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /movements/{movementID} [get]
func (h *movementHandler) getMovement(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	movement, err := h.movementService.GetMovement(c.Request.Context(), caller, c.Param("movementID"))
	if err != nil {
		respondError(c, err, "Failed to get movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// updateMovement godoc
// @Summary Edit a movement
// @Description Creator only. Editing an approved or rejected movement sends it back to PENDING.
// @Tags movements
// @Accept json
// @Produce json
// @Param movementID path string true "Movement ID"
// @Param movement body dto.UpdateMovementRequest true "Fields to change"
// @Success 200 {object} dto.MovementResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /movements/{movementID} [patch]
func (h *movementHandler) updateMovement(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	movement, err := h.movementService.UpdateMovement(c.Request.Context(), caller, c.Param("movementID"), req)
	if err != nil {
		respondError(c, err, "Failed to update movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// deleteMovement godoc
// @Summary Delete a movement
// @Description Soft deletes a movement. Creator only.
// @Tags movements
// @Param movementID path string true "Movement ID"
// @Success 204 "No Content"
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /movements/{movementID} [delete]
func (h *movementHandler) deleteMovement(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	if err := h.movementService.DeleteMovement(c.Request.Context(), caller, c.Param("movementID")); err != nil {
		respondError(c, err, "Failed to delete movement")
		return
	}
	c.Status(http.StatusNoContent)
}

// approveMovement godoc
// @Summary Approve a pending movement
// @Tags review
// @Accept json
// @Produce json
// @Param movementID path string true "Movement ID"
// @Param body body dto.ApproveMovementRequest false "Optional comment"
// @Success 200 {object} dto.MovementResponse
// @Failure 403 {object} middleware.ErrorResponse "Not a manager of the area"
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Movement is not pending"
// @Security BearerAuth
// @Router /movements/{movementID}/approve [post]
func (h *movementHandler) approveMovement(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.ApproveMovementRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	movement, err := h.movementService.ApproveMovement(c.Request.Context(), caller, c.Param("movementID"), req)
	if err != nil {
		respondError(c, err, "Failed to approve movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// rejectMovement godoc
// @Summary Reject a pending movement
// @Tags review
// @Accept json
// @Produce json
// @Param movementID path string true "Movement ID"
// @Param body body dto.RejectMovementRequest false "Optional reason and comment"
// @Success 200 {object} dto.MovementResponse
// @Failure 403 {object} middleware.ErrorResponse "Not a manager of the area"
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Movement is not pending"
// @Security BearerAuth
// @Router /movements/{movementID}/reject [post]
func (h *movementHandler) rejectMovement(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.RejectMovementRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	movement, err := h.movementService.RejectMovement(c.Request.Context(), caller, c.Param("movementID"), req)
	if err != nil {
		respondError(c, err, "Failed to reject movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// bulkApprove godoc
// @Summary Approve up to 50 movements
// @Description All or nothing: one invalid id fails the whole batch
// @Tags review
// @Accept json
// @Produce json
// @Param body body dto.BulkReviewRequest true "Movement ids"
// @Success 200 {object} dto.BulkResultResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /movements/bulk/approve [post]
func (h *movementHandler) bulkApprove(c *gin.Context) {
	h.bulkReview(c, h.movementService.BulkApprove)
}

// bulkReject godoc
// @Summary Reject up to 50 movements
// @Description All or nothing: one invalid id fails the whole batch
// @Tags review
// @Accept json
// @Produce json
// @Param body body dto.BulkReviewRequest true "Movement ids"
// @Success 200 {object} dto.BulkResultResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /movements/bulk/reject [post]
func (h *movementHandler) bulkReject(c *gin.Context) {
	h.bulkReview(c, h.movementService.BulkReject)
}

func (h *movementHandler) bulkReview(c *gin.Context, review func(ctx context.Context, caller domain.Caller, req dto.BulkReviewRequest) (int, error)) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.BulkReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	count, err := review(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Bulk review failed")
		return
	}
	c.JSON(http.StatusOK, dto.BulkResultResponse{Count: count})
}

// addComment godoc
// @Summary Comment on a movement
// @Tags review
// @Accept json
// @Produce json
// @Param movementID path string true "Movement ID"
// @Param body body dto.AddCommentRequest true "Comment"
// @Success 201 {object} dto.ApprovalResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /movements/{movementID}/comments [post]
func (h *movementHandler) addComment(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.movementService.AddComment(c.Request.Context(), caller, c.Param("movementID"), req)
	if err != nil {
		respondError(c, err, "Failed to add comment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToApprovalResponse(entry))
}

// getHistory godoc
// @Summary Approval history of a movement
// @Description Oldest entry first. Creator only.
// @Tags review
// @Produce json
// @Param movementID path string true "Movement ID"
// @Success 200 {array} dto.ApprovalResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /movements/{movementID}/history [get]
func (h *movementHandler) getHistory(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	history, err := h.movementService.GetApprovalHistory(c.Request.Context(), caller, c.Param("movementID"))
	if err != nil {
		respondError(c, err, "Failed to get approval history")
		return
	}
	c.JSON(http.StatusOK, dto.ToApprovalResponses(history))
}

// bindOptionalJSON binds a body that may be absent entirely.
func bindOptionalJSON(c *gin.Context, obj any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}
