package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfascholars/backend/internal/app/models/dto"
	"github.com/cfascholars/backend/internal/pkg/apperrors"
)

func callHandleAPIError(t *testing.T, err error) (int, *dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, &body
}

func TestHandleAPIErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		code     dto.ErrorCode
	}{
		{"validation", apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"bad request", apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists},
		{"conflict", apperrors.ErrConflict, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"auth required", apperrors.ErrAuthenticationRequired, http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"session not found", apperrors.ErrSessionNotFound, http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"user not found", apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"application not found", apperrors.ErrApplicationNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"checklist not found", apperrors.ErrChecklistNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"reimbursement not found", apperrors.ErrReimbursementNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"acceptance not found", apperrors.ErrAcceptanceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"file not found", apperrors.ErrFileNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"file too large", apperrors.ErrFileTooLarge, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"file type", apperrors.ErrFileTypeNotAllowed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"file missing", apperrors.ErrFileMissing, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"unknown", errors.New("database on fire"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := callHandleAPIError(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleAPIErrorUsesCustomMessage(t *testing.T) {
	status, body := callHandleAPIError(t, apperrors.NewValidationError("amount must be greater than zero"))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "amount must be greater than zero", body.Error.Message)
}

func TestHandleAPIErrorHidesInternalDetails(t *testing.T) {
	_, body := callHandleAPIError(t, errors.New("pq: connection refused"))

	assert.NotContains(t, body.Error.Message, "connection refused")
	assert.Equal(t, "Internal server error", body.Error.Message)
}
