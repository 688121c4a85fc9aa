package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cfascholars/backend/internal/app/models"
	"github.com/cfascholars/backend/internal/app/models/dto"
	"github.com/cfascholars/backend/internal/app/services"
	"github.com/cfascholars/backend/internal/middleware"
	"github.com/cfascholars/backend/internal/pkg/apperrors"
	"github.com/cfascholars/backend/internal/pkg/helpers"
)

// AdminUserController handles admin-side user management
type AdminUserController struct {
	userService services.UserService
}

// NewAdminUserController creates a new AdminUserController
func NewAdminUserController(userService services.UserService) *AdminUserController {
	return &AdminUserController{userService: userService}
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security CookieAuth
// @Param role query string false "Filter by role"
// @Param limit query int false "Page size (default 50)"
// @Param skip query int false "Offset"
// @Success 200 {object} dto.UserListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/admin/users [get]
func (c *AdminUserController) ListUsers(ctx *gin.Context) {
	var role *models.Role
	if raw := ctx.Query("role"); raw != "" {
		value := models.Role(raw)
		if !value.IsValid() {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "role must be student or admin")))
			return
		}
		role = &value
	}

	limit, skip := helpers.ParseLimitSkip(ctx)
	users, total, err := c.userService.AdminListUsers(ctx, role, limit, skip)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &dto.UserListResponse{
		Success: true,
		Users:   users,
		Total:   total,
		Limit:   limit,
		Skip:    skip,
	})
}

// GetUser godoc
// @Summary Get a user by ID
// @Tags admin
// @Produce json
// @Security CookieAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/users/{id} [get]
func (c *AdminUserController) GetUser(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid user id"))
		return
	}

	user, err := c.userService.GetUserByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewUserResponse("", user))
}

// CreateUser godoc
// @Summary Create a user with an explicit role
// @Tags admin
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.AdminCreateUserRequest true "User payload"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/admin/users [post]
func (c *AdminUserController) CreateUser(ctx *gin.Context) {
	var req dto.AdminCreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "email, password, and role are required")))
		return
	}

	user, err := c.userService.AdminCreateUser(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewUserResponse("User created", user))
}

// UpdateUser godoc
// @Summary Update a user's email, role, or profile
// @Tags admin
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "User ID"
// @Param request body dto.AdminUpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/users/{id} [put]
func (c *AdminUserController) UpdateUser(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid user id"))
		return
	}

	var req dto.AdminUpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "invalid update payload")))
		return
	}

	user, err := c.userService.AdminUpdateUser(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewUserResponse("User updated", user))
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Security CookieAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/users/{id} [delete]
func (c *AdminUserController) DeleteUser(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid user id"))
		return
	}

	if err := c.userService.AdminDeleteUser(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("User deleted"))
}
