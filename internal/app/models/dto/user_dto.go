package dto

import (
	"github.com/cfascholars/backend/internal/app/models"
)

// RegisterRequest represents the payload for user registration. Any role
// supplied by the client is ignored; registration always creates a student.
// Profile details may arrive nested or as top-level fields.
type RegisterRequest struct {
	Email       string          `json:"email" binding:"required,email" example:"student@example.com"`
	Password    string          `json:"password" binding:"required" example:"Password1!"`
	Profile     *models.Profile `json:"profile"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	Phone       string          `json:"phone"`
	DateOfBirth *string         `json:"dateOfBirth" example:"2004-05-17"`
}

// LoginRequest represents the payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student@example.com"`
	Password string `json:"password" binding:"required" example:"Password1!"`
}

// ChangeEmailRequest represents the payload for changing the account email
type ChangeEmailRequest struct {
	NewEmail string `json:"newEmail" binding:"required,email" example:"new@example.com"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest represents the payload for changing the account password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// UpdateProfileRequest represents the payload for profile updates.
// Only the supplied fields are changed.
type UpdateProfileRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Phone       *string `json:"phone"`
	DateOfBirth *string `json:"dateOfBirth" example:"2004-05-17"`
}

// AdminCreateUserRequest represents the payload for admin-side user creation
type AdminCreateUserRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required"`
	Role     models.Role     `json:"role" binding:"required"`
	Profile  *models.Profile `json:"profile"`
}

// AdminUpdateUserRequest represents the payload for admin-side user updates
type AdminUpdateUserRequest struct {
	Email   *string         `json:"email"`
	Role    *models.Role    `json:"role"`
	Profile *models.Profile `json:"profile"`
}

// UserResponse is the envelope carrying a single user
type UserResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"user"`
}

// NewUserResponse wraps a user in the standard success envelope
func NewUserResponse(message string, user *models.User) *UserResponse {
	return &UserResponse{Success: true, Message: message, User: user}
}

// UserListResponse is the envelope carrying a page of users
type UserListResponse struct {
	Success bool           `json:"success"`
	Users   []*models.User `json:"users"`
	Total   int64          `json:"total"`
	Limit   int            `json:"limit"`
	Skip    int            `json:"skip"`
}

// AuthStatusResponse reports whether the caller holds a valid session
type AuthStatusResponse struct {
	Success       bool         `json:"success"`
	Authenticated bool         `json:"authenticated"`
	User          *models.User `json:"user,omitempty"`
}
