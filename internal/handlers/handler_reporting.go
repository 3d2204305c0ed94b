package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
	"github.com/SscSPs/movement_tracker/internal/dto"
	"github.com/SscSPs/movement_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reportingHandler serves read-only aggregations over approved movements.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	currency         string
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, currency string) {
	h := &reportingHandler{reportingService: reportingService, currency: currency}

	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.getDashboard)
		reports.GET("/balance", h.getBalance)
		reports.GET("/by-area", h.byArea)
		reports.GET("/by-department", h.byDepartment)
		reports.GET("/by-category", h.byCategory)
		reports.GET("/monthly", h.monthlyTrend)
		reports.GET("/export.xlsx", h.exportXLSX)
	}
}

func (h *reportingHandler) bindParams(c *gin.Context) (domain.Caller, dto.ReportParams, bool) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return caller, dto.ReportParams{}, false
	}
	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return caller, params, false
	}
	return caller, params, true
}

// getBalance godoc
// @Summary Balance of approved movements
// @Description Income minus expenses. Transfers and distributions are reported but not part of the balance.
// @Tags reports
// @Produce json
// @Param areaID query string false "Area"
// @Param departmentID query string false "Department"
// @Param dateFrom query string false "From date (YYYY-MM-DD)"
// @Param dateTo query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /reports/balance [get]
func (h *reportingHandler) getBalance(c *gin.Context) {
	caller, params, ok := h.bindParams(c)
	if !ok {
		return
	}
	balance, err := h.reportingService.GetBalance(c.Request.Context(), caller, params)
	if err != nil {
		respondError(c, err, "Failed to compute balance")
		return
	}

	resp := dto.BalanceResponse{Balance: *balance, CurrencyCode: h.currency}
	resp.Formatted.Income = utils.FormatMinorUnits(balance.Income, h.currency)
	resp.Formatted.Expenses = utils.FormatMinorUnits(balance.Expenses, h.currency)
	resp.Formatted.Balance = utils.FormatMinorUnits(balance.Balance, h.currency)
	c.JSON(http.StatusOK, resp)
}

type groupSummary func(ctx context.Context, caller domain.Caller, params dto.ReportParams) ([]domain.GroupTotal, error)

func (h *reportingHandler) summary(c *gin.Context, groupBy string, fetch groupSummary) {
	caller, params, ok := h.bindParams(c)
	if !ok {
		return
	}
	groups, err := fetch(c.Request.Context(), caller, params)
	if err != nil {
		respondError(c, err, "Failed to compute totals by "+groupBy)
		return
	}
	c.JSON(http.StatusOK, dto.GroupTotalsResponse{GroupBy: groupBy, Groups: groups})
}

// byArea godoc
// @Summary Totals per area
// @Tags reports
// @Produce json
// @Param dateFrom query string false "From date (YYYY-MM-DD)"
// @Param dateTo query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} dto.GroupTotalsResponse
// @Security BearerAuth
// @Router /reports/by-area [get]
func (h *reportingHandler) byArea(c *gin.Context) {
	h.summary(c, "area", h.reportingService.SummaryByArea)
}

// byDepartment godoc
// @Summary Totals per department
// @Tags reports
// @Produce json
// @Param areaID query string false "Area"
// @Param dateFrom query string false "From date (YYYY-MM-DD)"
// @Param dateTo query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} dto.GroupTotalsResponse
// @Security BearerAuth
// @Router /reports/by-department [get]
func (h *reportingHandler) byDepartment(c *gin.Context) {
	h.summary(c, "department", h.reportingService.SummaryByDepartment)
}

// byCategory godoc
// @Summary Totals per category
// @Tags reports
// @Produce json
// @Param areaID query string false "Area"
// @Param dateFrom query string false "From date (YYYY-MM-DD)"
// @Param dateTo query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} dto.GroupTotalsResponse
// @Security BearerAuth
// @Router /reports/by-category [get]
func (h *reportingHandler) byCategory(c *gin.Context) {
	h.summary(c, "category", h.reportingService.SummaryByCategory)
}

// monthlyTrend godoc
// @Summary Income and expenses per month
// @Tags reports
// @Produce json
// @Param areaID query string false "Area"
// @Param dateFrom query string false "From date (YYYY-MM-DD)"
// @Param dateTo query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} dto.MonthlyTrendResponse
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) monthlyTrend(c *gin.Context) {
	caller, params, ok := h.bindParams(c)
	if !ok {
		return
	}
	months, err := h.reportingService.MonthlyTrend(c.Request.Context(), caller, params)
	if err != nil {
		respondError(c, err, "Failed to compute monthly trend")
		return
	}
	c.JSON(http.StatusOK, dto.MonthlyTrendResponse{Months: months})
}

// getDashboard godoc
// @Summary Landing page summary
// @Tags reports
// @Produce json
// @Success 200 {object} domain.Dashboard
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	dashboard, err := h.reportingService.GetDashboard(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// exportXLSX godoc
// @Summary Export approved movements as a workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param areaID query string false "Area"
// @Param departmentID query string false "Department"
// @Param dateFrom query string false "From date (YYYY-MM-DD)"
// @Param dateTo query string false "To date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} middleware.ErrorResponse "Too many rows"
// @Security BearerAuth
// @Router /reports/export.xlsx [get]
func (h *reportingHandler) exportXLSX(c *gin.Context) {
	caller, params, ok := h.bindParams(c)
	if !ok {
		return
	}
	// Buffered so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := h.reportingService.ExportMovementsXLSX(c.Request.Context(), caller, params, &buf); err != nil {
		respondError(c, err, "Failed to export movements")
		return
	}

	fileName := fmt.Sprintf("movements-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
