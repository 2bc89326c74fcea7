package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skuldata/skuldata/internal/app/models/dto"
	"github.com/skuldata/skuldata/internal/app/services"
	"github.com/skuldata/skuldata/internal/middleware"
	"github.com/skuldata/skuldata/internal/pkg/apperrors"
)

// DashboardController serves the superuser dashboard aggregates
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns the per-school entity counts
// @Summary Superuser dashboard counts
// @Description Returns teacher, parent, student, document and report counts for the caller's school. Superuser only.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardCounts "Dashboard counts"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.UnauthorisedResponse "Caller is not a superuser"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	role, ok := middleware.GetRole(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	schoolID, ok := middleware.GetSchoolID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	counts, err := c.dashboardService.GetCounts(ctx, role, schoolID)
	if err != nil {
		// The dashboard keeps its fixed authorization-failure body
		if errors.Is(err, apperrors.ErrPermissionDenied) {
			ctx.JSON(http.StatusForbidden, dto.UnauthorisedResponse{Error: "Unauthorised"})
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, counts)
}
