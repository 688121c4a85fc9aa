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

// ReimbursementController handles payment request operations
type ReimbursementController struct {
	reimbursementService services.ReimbursementService
}

// NewReimbursementController creates a new ReimbursementController
func NewReimbursementController(reimbursementService services.ReimbursementService) *ReimbursementController {
	return &ReimbursementController{reimbursementService: reimbursementService}
}

// Create godoc
// @Summary Submit a reimbursement request
// @Tags reimbursements
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.CreateReimbursementRequest true "Request payload"
// @Success 201 {object} dto.ReimbursementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/reimbursements [post]
func (c *ReimbursementController) Create(ctx *gin.Context) {
	var req dto.CreateReimbursementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "missing required reimbursement fields").WithDetails(err.Error())))
		return
	}

	reimbursement, err := c.reimbursementService.CreateReimbursement(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewReimbursementResponse("Reimbursement request submitted", reimbursement))
}

// GetAll godoc
// @Summary List reimbursement requests
// @Tags reimbursements
// @Produce json
// @Security CookieAuth
// @Param userId query int false "Filter by owner"
// @Param applicationId query int false "Filter by application"
// @Param status query string false "Filter by status"
// @Param requestType query string false "Filter by request type"
// @Param limit query int false "Page size (default 50)"
// @Param skip query int false "Offset"
// @Success 200 {object} dto.ReimbursementListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/reimbursements [get]
func (c *ReimbursementController) GetAll(ctx *gin.Context) {
	limit, skip := helpers.ParseLimitSkip(ctx)
	params := repositories.ReimbursementListParams{
		UserID:        parseInt64Query(ctx, "userId"),
		ApplicationID: parseInt64Query(ctx, "applicationId"),
		Limit:         limit,
		Skip:          skip,
	}
	if raw := ctx.Query("status"); raw != "" {
		status := models.ReimbursementStatus(raw)
		params.Status = &status
	}
	if raw := ctx.Query("requestType"); raw != "" {
		requestType := models.RequestType(raw)
		params.RequestType = &requestType
	}

	reqs, total, err := c.reimbursementService.GetAllReimbursements(ctx, params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &dto.ReimbursementListResponse{
		Success:        true,
		Reimbursements: reqs,
		Total:          total,
		Limit:          limit,
		Skip:           skip,
	})
}

// GetByID godoc
// @Summary Get a reimbursement request by ID
// @Description Students can only read their own requests
// @Tags reimbursements
// @Produce json
// @Security CookieAuth
// @Param id path int true "Reimbursement ID"
// @Success 200 {object} dto.ReimbursementResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/reimbursements/{id} [get]
func (c *ReimbursementController) GetByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid reimbursement id"))
		return
	}

	reimbursement, err := c.reimbursementService.GetReimbursementByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user := middleware.CurrentUser(ctx)
	if user.Role != models.RoleAdmin && reimbursement.UserID != user.ID {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewReimbursementResponse("", reimbursement))
}

// UpdateStatus godoc
// @Summary Update the review status of a reimbursement request
// @Tags reimbursements
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "Reimbursement ID"
// @Param request body dto.UpdateReimbursementStatusRequest true "Status payload"
// @Success 200 {object} dto.ReimbursementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/reimbursements/{id}/status [patch]
func (c *ReimbursementController) UpdateStatus(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid reimbursement id"))
		return
	}

	var req dto.UpdateReimbursementStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "status and reviewedBy are required")))
		return
	}

	reimbursement, err := c.reimbursementService.UpdateStatus(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewReimbursementResponse("Status updated", reimbursement))
}

// Delete godoc
// @Summary Delete a reimbursement request
// @Tags reimbursements
// @Produce json
// @Security CookieAuth
// @Param id path int true "Reimbursement ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/reimbursements/{id} [delete]
func (c *ReimbursementController) Delete(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid reimbursement id"))
		return
	}

	if err := c.reimbursementService.DeleteReimbursement(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Reimbursement request deleted"))
}
