package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cfascholars/backend/internal/app/models/dto"
	"github.com/cfascholars/backend/internal/app/services"
	"github.com/cfascholars/backend/internal/middleware"
)

// SessionCookie describes how the session cookie is issued.
type SessionCookie struct {
	Name   string
	MaxAge int
	Secure bool
}

// UserController handles registration, login, and account self-service
type UserController struct {
	userService services.UserService
	cookie      SessionCookie
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, cookie SessionCookie) *UserController {
	return &UserController{
		userService: userService,
		cookie:      cookie,
	}
}

func (c *UserController) setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	// Cross-site frontends need SameSite=None, which browsers only accept
	// together with Secure.
	if c.cookie.Secure {
		ctx.SetSameSite(http.SameSiteNoneMode)
	} else {
		ctx.SetSameSite(http.SameSiteLaxMode)
	}
	ctx.SetCookie(c.cookie.Name, token, maxAge, "/", "", c.cookie.Secure, true)
}

// Register godoc
// @Summary Register a new student account
// @Description Creates a student account; the role cannot be chosen by the client
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration payload"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /users/register [post]
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "email and password are required")))
		return
	}

	user, err := c.userService.Register(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewUserResponse("Registration successful", user))
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and sets the session cookie
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/login [post]
func (c *UserController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "email and password are required")))
		return
	}

	user, token, err := c.userService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, token, c.cookie.MaxAge)
	ctx.JSON(http.StatusOK, dto.NewUserResponse("Login successful", user))
}

// Logout godoc
// @Summary Log out
// @Description Destroys the session and clears the cookie
// @Tags users
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /users/logout [post]
func (c *UserController) Logout(ctx *gin.Context) {
	token, _ := ctx.Cookie(c.cookie.Name)
	if err := c.userService.Logout(ctx, token); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Logged out"))
}

// Status godoc
// @Summary Authentication status
// @Description Reports whether the caller holds a valid session
// @Tags users
// @Produce json
// @Success 200 {object} dto.AuthStatusResponse
// @Router /users/status [get]
func (c *UserController) Status(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	ctx.JSON(http.StatusOK, &dto.AuthStatusResponse{
		Success:       true,
		Authenticated: user != nil,
		User:          user,
	})
}

// ChangeEmail godoc
// @Summary Change account email
// @Tags users
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.ChangeEmailRequest true "New email and current password"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/change-email [put]
func (c *UserController) ChangeEmail(ctx *gin.Context) {
	var req dto.ChangeEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "newEmail and password are required")))
		return
	}

	user, err := c.userService.ChangeEmail(ctx, middleware.CurrentUser(ctx).ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewUserResponse("Email updated", user))
}

// ChangePassword godoc
// @Summary Change account password
// @Tags users
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/change-password [put]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "currentPassword and newPassword are required")))
		return
	}

	if err := c.userService.ChangePassword(ctx, middleware.CurrentUser(ctx).ID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Password updated"))
}

// UpdateProfile godoc
// @Summary Update profile fields
// @Tags users
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "invalid profile payload")))
		return
	}

	user, err := c.userService.UpdateProfile(ctx, middleware.CurrentUser(ctx).ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewUserResponse("Profile updated", user))
}

// DeleteAccount godoc
// @Summary Delete own account
// @Description Removes the account and destroys the current session
// @Tags users
// @Produce json
// @Security CookieAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/delete-user [delete]
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if err := c.userService.DeleteAccount(ctx, user.ID, middleware.SessionToken(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Account deleted"))
}
