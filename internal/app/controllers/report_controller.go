package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skuldata/skuldata/internal/app/models/dto"
	"github.com/skuldata/skuldata/internal/app/services"
	"github.com/skuldata/skuldata/internal/middleware"
	"github.com/skuldata/skuldata/internal/pkg/helpers"
)

// ReportController handles generated reports and report requests
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// GetReport retrieves a generated report by ID
// @Summary Get report details
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Report} "Report retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid report ID"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/{id} [get]
func (c *ReportController) GetReport(ctx *gin.Context) {
	schoolID, ok := schoolScope(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "report")
	if !ok {
		return
	}

	report, err := c.reportService.GetReport(ctx, schoolID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      report,
		Timestamp: time.Now(),
	})
}

// ListReports lists generated reports in the caller's school
// @Summary List reports
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.Report} "Reports retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports [get]
func (c *ReportController) ListReports(ctx *gin.Context) {
	schoolID, ok := schoolScope(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	reports, total, err := c.reportService.ListReports(ctx, schoolID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	pagination := helpers.NewPaginationInfo(total, page, size)
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:       reports,
		Pagination: &pagination,
		Timestamp:  time.Now(),
	})
}

// DeleteReport deletes a generated report
// @Summary Delete a report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Report deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid report ID"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/{id} [delete]
func (c *ReportController) DeleteReport(ctx *gin.Context) {
	schoolID, ok := schoolScope(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "report")
	if !ok {
		return
	}

	if err := c.reportService.DeleteReport(ctx, schoolID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Report deleted successfully"},
		Timestamp: time.Now(),
	})
}

// RequestReport enqueues a student term-report request
// @Summary Request a student report
// @Description Enqueues a PENDING report request; the scheduled pipeline generates the report on its next cycle
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReportRequestRequest true "Report request"
// @Success 202 {object} dto.APIResponse{data=models.ReportRequest} "Report request accepted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/requests [post]
func (c *ReportController) RequestReport(ctx *gin.Context) {
	schoolID, ok := schoolScope(ctx)
	if !ok {
		return
	}

	var req dto.CreateReportRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	request, err := c.reportService.RequestReport(ctx, schoolID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.APIResponse{
		Data:      request,
		Timestamp: time.Now(),
	})
}

// GetReportRequest retrieves a report request by ID
// @Summary Get report request details
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report request ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.ReportRequest} "Report request retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid report request ID"
// @Failure 404 {object} dto.ErrorResponse "Report request not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/requests/{id} [get]
func (c *ReportController) GetReportRequest(ctx *gin.Context) {
	schoolID, ok := schoolScope(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "report request")
	if !ok {
		return
	}

	request, err := c.reportService.GetReportRequest(ctx, schoolID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      request,
		Timestamp: time.Now(),
	})
}

// ListReportRequests lists report requests in the caller's school
// @Summary List report requests
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.ReportRequest} "Report requests retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/requests [get]
func (c *ReportController) ListReportRequests(ctx *gin.Context) {
	schoolID, ok := schoolScope(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	requests, total, err := c.reportService.ListReportRequests(ctx, schoolID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	pagination := helpers.NewPaginationInfo(total, page, size)
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:       requests,
		Pagination: &pagination,
		Timestamp:  time.Now(),
	})
}
