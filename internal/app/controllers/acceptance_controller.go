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

// AcceptanceController handles award acceptance form operations
type AcceptanceController struct {
	acceptanceService services.AcceptanceService
}

// NewAcceptanceController creates a new AcceptanceController
func NewAcceptanceController(acceptanceService services.AcceptanceService) *AcceptanceController {
	return &AcceptanceController{acceptanceService: acceptanceService}
}

// Create godoc
// @Summary Record an award acceptance
// @Description Captures the signing IP address; the record is immutable afterwards
// @Tags acceptance-forms
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.CreateAcceptanceRequest true "Acceptance payload"
// @Success 201 {object} dto.AcceptanceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/acceptance-forms [post]
func (c *AcceptanceController) Create(ctx *gin.Context) {
	var req dto.CreateAcceptanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "userId, applicationId, and acceptedTerms are required")))
		return
	}

	form, err := c.acceptanceService.CreateAcceptance(ctx, &req, ctx.ClientIP())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAcceptanceResponse("Acceptance recorded", form))
}

// GetAll godoc
// @Summary List acceptance forms
// @Tags acceptance-forms
// @Produce json
// @Security CookieAuth
// @Param userId query int false "Filter by owner"
// @Param applicationId query int false "Filter by application"
// @Param limit query int false "Page size (default 50)"
// @Param skip query int false "Offset"
// @Success 200 {object} dto.AcceptanceListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/acceptance-forms [get]
func (c *AcceptanceController) GetAll(ctx *gin.Context) {
	limit, skip := helpers.ParseLimitSkip(ctx)
	params := repositories.AcceptanceListParams{
		UserID:        parseInt64Query(ctx, "userId"),
		ApplicationID: parseInt64Query(ctx, "applicationId"),
		Limit:         limit,
		Skip:          skip,
	}

	forms, total, err := c.acceptanceService.GetAllAcceptances(ctx, params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &dto.AcceptanceListResponse{
		Success:     true,
		Acceptances: forms,
		Total:       total,
		Limit:       limit,
		Skip:        skip,
	})
}

// GetByID godoc
// @Summary Get an acceptance form by ID
// @Description Students can only read their own acceptance forms
// @Tags acceptance-forms
// @Produce json
// @Security CookieAuth
// @Param id path int true "Acceptance form ID"
// @Success 200 {object} dto.AcceptanceResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/acceptance-forms/{id} [get]
func (c *AcceptanceController) GetByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid acceptance form id"))
		return
	}

	form, err := c.acceptanceService.GetAcceptanceByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user := middleware.CurrentUser(ctx)
	if user.Role != models.RoleAdmin && form.UserID != user.ID {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAcceptanceResponse("", form))
}
