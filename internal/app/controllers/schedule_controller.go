package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skuldata/skuldata/internal/app/models/dto"
	"github.com/skuldata/skuldata/internal/app/services"
	"github.com/skuldata/skuldata/internal/middleware"
)

// ScheduleController manages the persisted beat schedule over the API.
// Superuser only; schedule entries apply across the whole deployment.
type ScheduleController struct {
	scheduleService services.ScheduleService
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(scheduleService services.ScheduleService) *ScheduleController {
	return &ScheduleController{
		scheduleService: scheduleService,
	}
}

// ListSchedules lists every periodic task entry
// @Summary List schedule entries
// @Description Lists the persisted periodic task schedule, enabled or not
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.PeriodicTask} "Schedule entries retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - superuser only"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules [get]
func (c *ScheduleController) ListSchedules(ctx *gin.Context) {
	tasks, err := c.scheduleService.ListSchedules(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      tasks,
		Timestamp: time.Now(),
	})
}

// GetSchedule retrieves a schedule entry by name
// @Summary Get schedule entry
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param name path string true "Schedule entry name"
// @Success 200 {object} dto.APIResponse{data=models.PeriodicTask} "Schedule entry retrieved"
// @Failure 404 {object} dto.ErrorResponse "Schedule entry not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/{name} [get]
func (c *ScheduleController) GetSchedule(ctx *gin.Context) {
	name := ctx.Param("name")

	task, err := c.scheduleService.GetSchedule(ctx, name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      task,
		Timestamp: time.Now(),
	})
}

// UpdateSchedule applies a partial edit to a schedule entry
// @Summary Update schedule entry
// @Description Toggles or re-times a periodic task. The worker applies the change on its next reload.
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "Schedule entry name"
// @Param request body dto.UpdateScheduleRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.PeriodicTask} "Schedule entry updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid trigger definition"
// @Failure 404 {object} dto.ErrorResponse "Schedule entry not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedules/{name} [patch]
func (c *ScheduleController) UpdateSchedule(ctx *gin.Context) {
	name := ctx.Param("name")

	var req dto.UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	task, err := c.scheduleService.UpdateSchedule(ctx, name, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      task,
		Timestamp: time.Now(),
	})
}
