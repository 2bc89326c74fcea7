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

// DocumentController handles document metadata operations
type DocumentController struct {
	documentService services.DocumentService
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(documentService services.DocumentService) *DocumentController {
	return &DocumentController{
		documentService: documentService,
	}
}

// CreateDocument registers document metadata
// @Summary Register a document
// @Description Registers document file metadata for the caller's school
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDocumentRequest true "Document metadata"
// @Success 201 {object} dto.APIResponse{data=models.Document} "Document registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /documents [post]
func (c *DocumentController) CreateDocument(ctx *gin.Context) {
	schoolID, ok := schoolScope(ctx)
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.CreateDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	doc, err := c.documentService.CreateDocument(ctx, schoolID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      doc,
		Timestamp: time.Now(),
	})
}

// GetDocument retrieves a document by ID
// @Summary Get document details
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Document} "Document retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid document ID"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /documents/{id} [get]
func (c *DocumentController) GetDocument(ctx *gin.Context) {
	schoolID, ok := schoolScope(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "document")
	if !ok {
		return
	}

	doc, err := c.documentService.GetDocument(ctx, schoolID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      doc,
		Timestamp: time.Now(),
	})
}

// ListDocuments lists documents in the caller's school
// @Summary List documents
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.Document} "Documents retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /documents [get]
func (c *DocumentController) ListDocuments(ctx *gin.Context) {
	schoolID, ok := schoolScope(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	docs, total, err := c.documentService.ListDocuments(ctx, schoolID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	pagination := helpers.NewPaginationInfo(total, page, size)
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:       docs,
		Pagination: &pagination,
		Timestamp:  time.Now(),
	})
}

// DeleteDocument deletes a document
// @Summary Delete a document
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Document deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid document ID"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /documents/{id} [delete]
func (c *DocumentController) DeleteDocument(ctx *gin.Context) {
	schoolID, ok := schoolScope(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "document")
	if !ok {
		return
	}

	if err := c.documentService.DeleteDocument(ctx, schoolID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Document deleted successfully"},
		Timestamp: time.Now(),
	})
}
