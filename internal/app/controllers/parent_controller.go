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

// ParentController handles parent record operations
type ParentController struct {
	parentService services.ParentService
}

// NewParentController creates a new ParentController
func NewParentController(parentService services.ParentService) *ParentController {
	return &ParentController{
		parentService: parentService,
	}
}

// CreateParent handles parent creation
// @Summary Create a parent
// @Description Creates a parent record in the caller's school
// @Tags parents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateParentRequest true "Parent information"
// @Success 201 {object} dto.APIResponse{data=models.Parent} "Parent created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /parents [post]
func (c *ParentController) CreateParent(ctx *gin.Context) {
	schoolID, ok := schoolScope(ctx)
	if !ok {
		return
	}

	var req dto.CreateParentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	parent, err := c.parentService.CreateParent(ctx, schoolID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      parent,
		Timestamp: time.Now(),
	})
}

// GetParent retrieves a parent by ID
// @Summary Get parent details
// @Tags parents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Parent ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Parent} "Parent retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid parent ID"
// @Failure 404 {object} dto.ErrorResponse "Parent not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /parents/{id} [get]
func (c *ParentController) GetParent(ctx *gin.Context) {
	schoolID, ok := schoolScope(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "parent")
	if !ok {
		return
	}

	parent, err := c.parentService.GetParent(ctx, schoolID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      parent,
		Timestamp: time.Now(),
	})
}

// ListParents lists parents in the caller's school
// @Summary List parents
// @Tags parents
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.Parent} "Parents retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /parents [get]
func (c *ParentController) ListParents(ctx *gin.Context) {
	schoolID, ok := schoolScope(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	parents, total, err := c.parentService.ListParents(ctx, schoolID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	pagination := helpers.NewPaginationInfo(total, page, size)
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:       parents,
		Pagination: &pagination,
		Timestamp:  time.Now(),
	})
}

// UpdateParent updates an existing parent
// @Summary Update a parent
// @Tags parents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Parent ID" Format(int64) minimum(1)
// @Param request body dto.UpdateParentRequest true "Updated parent information"
// @Success 200 {object} dto.APIResponse{data=models.Parent} "Parent updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Parent not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /parents/{id} [put]
func (c *ParentController) UpdateParent(ctx *gin.Context) {
	schoolID, ok := schoolScope(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "parent")
	if !ok {
		return
	}

	var req dto.UpdateParentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	parent, err := c.parentService.UpdateParent(ctx, schoolID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      parent,
		Timestamp: time.Now(),
	})
}

// DeleteParent deletes a parent
// @Summary Delete a parent
// @Tags parents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Parent ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Parent deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid parent ID"
// @Failure 404 {object} dto.ErrorResponse "Parent not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /parents/{id} [delete]
func (c *ParentController) DeleteParent(ctx *gin.Context) {
	schoolID, ok := schoolScope(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "parent")
	if !ok {
		return
	}

	if err := c.parentService.DeleteParent(ctx, schoolID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Parent deleted successfully"},
		Timestamp: time.Now(),
	})
}
