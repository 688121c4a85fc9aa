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

// ChecklistController handles renewal checklist operations
type ChecklistController struct {
	checklistService services.ChecklistService
}

// NewChecklistController creates a new ChecklistController
func NewChecklistController(checklistService services.ChecklistService) *ChecklistController {
	return &ChecklistController{checklistService: checklistService}
}

// Create godoc
// @Summary Submit a renewal checklist
// @Tags renewal-checklists
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.CreateChecklistRequest true "Checklist payload"
// @Success 201 {object} dto.ChecklistResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/renewal-checklists [post]
func (c *ChecklistController) Create(ctx *gin.Context) {
	var req dto.CreateChecklistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "missing required checklist sections").WithDetails(err.Error())))
		return
	}

	checklist, err := c.checklistService.CreateChecklist(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewChecklistResponse("Renewal checklist submitted", checklist))
}

// GetAll godoc
// @Summary List renewal checklists
// @Tags renewal-checklists
// @Produce json
// @Security CookieAuth
// @Param userId query int false "Filter by owner"
// @Param applicationId query int false "Filter by application"
// @Param status query string false "Filter by status"
// @Param academicYear query string false "Filter by academic year"
// @Param limit query int false "Page size (default 50)"
// @Param skip query int false "Offset"
// @Success 200 {object} dto.ChecklistListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/renewal-checklists [get]
func (c *ChecklistController) GetAll(ctx *gin.Context) {
	limit, skip := helpers.ParseLimitSkip(ctx)
	params := repositories.ChecklistListParams{
		UserID:        parseInt64Query(ctx, "userId"),
		ApplicationID: parseInt64Query(ctx, "applicationId"),
		AcademicYear:  stringQuery(ctx, "academicYear"),
		Limit:         limit,
		Skip:          skip,
	}
	if raw := ctx.Query("status"); raw != "" {
		status := models.ChecklistStatus(raw)
		params.Status = &status
	}

	checklists, total, err := c.checklistService.GetAllChecklists(ctx, params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &dto.ChecklistListResponse{
		Success:    true,
		Checklists: checklists,
		Total:      total,
		Limit:      limit,
		Skip:       skip,
	})
}

// GetByID godoc
// @Summary Get a renewal checklist by ID
// @Description Students can only read their own checklists
// @Tags renewal-checklists
// @Produce json
// @Security CookieAuth
// @Param id path int true "Checklist ID"
// @Success 200 {object} dto.ChecklistResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/renewal-checklists/{id} [get]
func (c *ChecklistController) GetByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid checklist id"))
		return
	}

	checklist, err := c.checklistService.GetChecklistByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user := middleware.CurrentUser(ctx)
	if user.Role != models.RoleAdmin && checklist.UserID != user.ID {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewChecklistResponse("", checklist))
}

// Review godoc
// @Summary Review a renewal checklist
// @Tags renewal-checklists
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "Checklist ID"
// @Param request body dto.ReviewChecklistRequest true "Review payload"
// @Success 200 {object} dto.ChecklistResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/renewal-checklists/{id}/review [patch]
func (c *ChecklistController) Review(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid checklist id"))
		return
	}

	var req dto.ReviewChecklistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "reviewedBy is required")))
		return
	}

	checklist, err := c.checklistService.ReviewChecklist(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewChecklistResponse("Checklist reviewed", checklist))
}

// Delete godoc
// @Summary Delete a renewal checklist
// @Tags renewal-checklists
// @Produce json
// @Security CookieAuth
// @Param id path int true "Checklist ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/renewal-checklists/{id} [delete]
func (c *ChecklistController) Delete(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid checklist id"))
		return
	}

	if err := c.checklistService.DeleteChecklist(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Checklist deleted"))
}
