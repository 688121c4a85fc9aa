package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cfascholars/backend/internal/app/models"
	"github.com/cfascholars/backend/internal/app/models/dto"
	"github.com/cfascholars/backend/internal/app/repositories"
	"github.com/cfascholars/backend/internal/app/services"
	"github.com/cfascholars/backend/internal/middleware"
	"github.com/cfascholars/backend/internal/pkg/apperrors"
	"github.com/cfascholars/backend/internal/pkg/helpers"
)

// ApplicationController handles scholarship application operations
type ApplicationController struct {
	applicationService services.ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService services.ApplicationService) *ApplicationController {
	return &ApplicationController{applicationService: applicationService}
}

func (c *ApplicationController) create(ctx *gin.Context, appType models.ApplicationType) {
	var req dto.CreateApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "missing required application sections").WithDetails(err.Error())))
		return
	}

	app, err := c.applicationService.CreateApplication(ctx, appType, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewApplicationResponse("Application submitted", app))
}

// CreateNew godoc
// @Summary Submit a first-time application
// @Tags applications
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.CreateApplicationRequest true "Application payload"
// @Success 201 {object} dto.ApplicationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/applications/new [post]
func (c *ApplicationController) CreateNew(ctx *gin.Context) {
	c.create(ctx, models.ApplicationTypeNew)
}

// CreateRenewal godoc
// @Summary Submit a renewal application
// @Tags applications
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.CreateApplicationRequest true "Application payload"
// @Success 201 {object} dto.ApplicationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/applications/renewal [post]
func (c *ApplicationController) CreateRenewal(ctx *gin.Context) {
	c.create(ctx, models.ApplicationTypeRenewal)
}

// GetAll godoc
// @Summary List applications
// @Tags applications
// @Produce json
// @Security CookieAuth
// @Param userId query int false "Filter by owner"
// @Param status query string false "Filter by status"
// @Param applicationType query string false "Filter by type"
// @Param academicYear query string false "Filter by academic year"
// @Param limit query int false "Page size (default 50)"
// @Param skip query int false "Offset"
// @Success 200 {object} dto.ApplicationListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/applications [get]
func (c *ApplicationController) GetAll(ctx *gin.Context) {
	limit, skip := helpers.ParseLimitSkip(ctx)
	params := repositories.ApplicationListParams{
		UserID:       parseInt64Query(ctx, "userId"),
		AcademicYear: stringQuery(ctx, "academicYear"),
		Limit:        limit,
		Skip:         skip,
	}
	if raw := ctx.Query("status"); raw != "" {
		status := models.ApplicationStatus(raw)
		params.Status = &status
	}
	if raw := ctx.Query("applicationType"); raw != "" {
		appType := models.ApplicationType(raw)
		params.Type = &appType
	}

	apps, total, err := c.applicationService.GetAllApplications(ctx, params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &dto.ApplicationListResponse{
		Success:      true,
		Applications: apps,
		Total:        total,
		Limit:        limit,
		Skip:         skip,
	})
}

// GetByID godoc
// @Summary Get an application by ID
// @Description Students can only read their own applications
// @Tags applications
// @Produce json
// @Security CookieAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/applications/{id} [get]
func (c *ApplicationController) GetByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid application id"))
		return
	}

	app, err := c.applicationService.GetApplicationByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user := middleware.CurrentUser(ctx)
	if user.Role != models.RoleAdmin && app.UserID != user.ID {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewApplicationResponse("", app))
}

// UpdateStatus godoc
// @Summary Update the review status
// @Tags applications
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/applications/{id}/status [patch]
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid application id"))
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "status and reviewedBy are required")))
		return
	}

	app, err := c.applicationService.UpdateStatus(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewApplicationResponse("Status updated", app))
}

// AddNote godoc
// @Summary Append an admin note
// @Tags applications
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "Application ID"
// @Param request body dto.AddApplicationNoteRequest true "Note payload"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/applications/{id}/notes [post]
func (c *ApplicationController) AddNote(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid application id"))
		return
	}

	var req dto.AddApplicationNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "note and createdBy are required")))
		return
	}

	app, err := c.applicationService.AddAdminNote(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewApplicationResponse("Note added", app))
}

// Delete godoc
// @Summary Delete an application
// @Tags applications
// @Produce json
// @Security CookieAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/applications/{id} [delete]
func (c *ApplicationController) Delete(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid application id"))
		return
	}

	if err := c.applicationService.DeleteApplication(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Application deleted"))
}
