package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
	"github.com/SscSPs/movement_tracker/internal/dto"
	"github.com/SscSPs/movement_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// areaHandler handles areas, their departments, members and bank accounts.
type areaHandler struct {
	areaService portssvc.AreaSvcFacade
	bankService portssvc.BankAccountSvc
}

func newAreaHandler(as portssvc.AreaSvcFacade, bs portssvc.BankAccountSvc) *areaHandler {
	return &areaHandler{areaService: as, bankService: bs}
}

func registerAreaRoutes(rg *gin.RouterGroup, areaService portssvc.AreaSvcFacade, bankService portssvc.BankAccountSvc) {
	h := newAreaHandler(areaService, bankService)

	areas := rg.Group("/areas")
	{
		areas.GET("", h.listAreas)
		areas.GET("/:areaID", h.getArea)
		areas.GET("/:areaID/departments", h.listDepartments)
		areas.GET("/:areaID/bank-accounts", h.listBankAccounts)
		areas.POST("/:areaID/bank-accounts", h.createBankAccount) // Area managers
	}
}

// registerAreaAdminRoutes registers area administration. rg must already require an admin.
func registerAreaAdminRoutes(rg *gin.RouterGroup, areaService portssvc.AreaSvcFacade) {
	h := newAreaHandler(areaService, nil)

	areas := rg.Group("/areas")
	{
		areas.POST("", h.createArea)
		areas.POST("/:areaID/departments", h.createDepartment)
		areas.PUT("/:areaID/members", h.setMemberRole)
		areas.DELETE("/:areaID/members/:userID", h.removeMember)
	}
}

// listAreas godoc
// @Summary List areas
// @Description Lists the areas the caller belongs to, or every area for admins
// @Tags areas
// @Produce json
// @Success 200 {array} dto.AreaResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /areas [get]
func (h *areaHandler) listAreas(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	areas, err := h.areaService.ListAreas(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to list areas")
		return
	}
	c.JSON(http.StatusOK, dto.ToAreaResponses(areas))
}

// getArea godoc
// @Summary Get an area
// @Tags areas
// @Produce json
// @Param areaID path string true "Area ID"
// @Success 200 {object} dto.AreaResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /areas/{areaID} [get]
func (h *areaHandler) getArea(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	area, err := h.areaService.GetArea(c.Request.Context(), caller, c.Param("areaID"))
	if err != nil {
		respondError(c, err, "Failed to get area")
		return
	}
	c.JSON(http.StatusOK, dto.ToAreaResponse(area))
}

// listDepartments godoc
// @Summary List the departments of an area
// @Tags areas
// @Produce json
// @Param areaID path string true "Area ID"
// @Success 200 {array} dto.DepartmentResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /areas/{areaID}/departments [get]
func (h *areaHandler) listDepartments(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	departments, err := h.areaService.ListDepartments(c.Request.Context(), caller, c.Param("areaID"))
	if err != nil {
		respondError(c, err, "Failed to list departments")
		return
	}
	c.JSON(http.StatusOK, dto.ToDepartmentResponses(departments))
}

// listBankAccounts godoc
// @Summary List the bank accounts of an area
// @Description Account numbers are masked
// @Tags areas
// @Produce json
// @Param areaID path string true "Area ID"
// @Success 200 {array} dto.BankAccountResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /areas/{areaID}/bank-accounts [get]
func (h *areaHandler) listBankAccounts(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	accounts, err := h.bankService.ListBankAccounts(c.Request.Context(), caller, c.Param("areaID"))
	if err != nil {
		respondError(c, err, "Failed to list bank accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponses(accounts))
}

// createBankAccount godoc
// @Summary Register a bank account in an area
// @Tags areas
// @Accept json
// @Produce json
// @Param areaID path string true "Area ID"
// @Param account body dto.CreateBankAccountRequest true "Bank account"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /areas/{areaID}/bank-accounts [post]
func (h *areaHandler) createBankAccount(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	account, err := h.bankService.CreateBankAccount(c.Request.Context(), caller, c.Param("areaID"), req)
	if err != nil {
		respondError(c, err, "Failed to create bank account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

// createArea godoc
// @Summary Create an area
// @Tags admin
// @Accept json
// @Produce json
// @Param area body dto.CreateAreaRequest true "Area"
// @Success 201 {object} dto.AreaResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /admin/areas [post]
func (h *areaHandler) createArea(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	area, err := h.areaService.CreateArea(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to create area")
		return
	}
	middleware.GetLoggerFromContext(c).Info("Area created", slog.String("area_id", area.AreaID))
	c.JSON(http.StatusCreated, dto.ToAreaResponse(area))
}

// createDepartment godoc
// @Summary Add a department to an area
// @Tags admin
// @Accept json
// @Produce json
// @Param areaID path string true "Area ID"
// @Param department body dto.CreateDepartmentRequest true "Department"
// @Success 201 {object} dto.DepartmentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Code already used in the area"
// @Security BearerAuth
// @Router /admin/areas/{areaID}/departments [post]
func (h *areaHandler) createDepartment(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	department, err := h.areaService.CreateDepartment(c.Request.Context(), caller, c.Param("areaID"), req)
	if err != nil {
		respondError(c, err, "Failed to create department")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDepartmentResponse(department))
}

// setMemberRole godoc
// @Summary Add a user to an area or change their role
// @Tags admin
// @Accept json
// @Produce json
// @Param areaID path string true "Area ID"
// @Param membership body dto.SetAreaRoleRequest true "Membership"
// @Success 200 {object} dto.UserAreaResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /admin/areas/{areaID}/members [put]
func (h *areaHandler) setMemberRole(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.SetAreaRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	membership, err := h.areaService.SetUserAreaRole(c.Request.Context(), caller, c.Param("areaID"), req)
	if err != nil {
		respondError(c, err, "Failed to set area role")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserAreaResponse(membership))
}

// removeMember godoc
// @Summary Remove a user from an area
// @Tags admin
// @Param areaID path string true "Area ID"
// @Param userID path string true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /admin/areas/{areaID}/members/{userID} [delete]
func (h *areaHandler) removeMember(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	if err := h.areaService.RemoveUserFromArea(c.Request.Context(), caller, c.Param("areaID"), c.Param("userID")); err != nil {
		respondError(c, err, "Failed to remove area member")
		return
	}
	c.Status(http.StatusNoContent)
}
