package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cfascholars/backend/internal/app/models/dto"
	"github.com/cfascholars/backend/internal/pkg/apperrors"
	"github.com/cfascholars/backend/internal/pkg/logger"
)

// HandleAPIError maps service errors onto the HTTP error envelope. Messages
// attached via apperrors.CustomError take precedence over the defaults.
func HandleAPIError(c *gin.Context, err error) {
	message := ""
	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		message = custom.Message
	}

	respond := func(status int, code dto.ErrorCode, fallback string) {
		if message == "" {
			message = fallback
		}
		c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
	}

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed) || errors.Is(err, apperrors.ErrBadRequest):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		// Duplicate registrations surface as a generic bad request so the
		// endpoint does not become an account oracle.
		respond(http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, "Email is already registered")
	case errors.Is(err, apperrors.ErrConflict):
		respond(http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, "Resource already exists")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrAuthenticationRequired) || errors.Is(err, apperrors.ErrSessionNotFound):
		respond(http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrApplicationNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Application not found")
	case errors.Is(err, apperrors.ErrChecklistNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Renewal checklist not found")
	case errors.Is(err, apperrors.ErrReimbursementNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Reimbursement request not found")
	case errors.Is(err, apperrors.ErrAcceptanceNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Acceptance form not found")
	case errors.Is(err, apperrors.ErrFileNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "File not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrFileTooLarge):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "File size exceeds the 10MB limit")
	case errors.Is(err, apperrors.ErrFileTypeNotAllowed):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "File type is not allowed")
	case errors.Is(err, apperrors.ErrFileMissing):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "No file was uploaded")
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respond(http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}
