package dto

import (
	"github.com/cfascholars/backend/internal/app/models"
)

// CreateAcceptanceRequest represents the payload for recording an award
// acceptance. The signing IP address is captured from the connection,
// not from the payload.
type CreateAcceptanceRequest struct {
	UserID        int64 `json:"userId" binding:"required"`
	ApplicationID int64 `json:"applicationId" binding:"required"`
	AcceptedTerms *bool `json:"acceptedTerms" binding:"required"`
}

// ToAcceptanceForm builds a domain acceptance form from the request.
func (r *CreateAcceptanceRequest) ToAcceptanceForm(ipAddress string) *models.AcceptanceForm {
	return &models.AcceptanceForm{
		UserID:        r.UserID,
		ApplicationID: r.ApplicationID,
		AcceptedTerms: *r.AcceptedTerms,
		IPAddress:     ipAddress,
	}
}

// AcceptanceResponse is the envelope carrying a single acceptance form
type AcceptanceResponse struct {
	Success    bool                   `json:"success"`
	Message    string                 `json:"message,omitempty"`
	Acceptance *models.AcceptanceForm `json:"acceptance"`
}

// NewAcceptanceResponse wraps an acceptance form in the standard success envelope
func NewAcceptanceResponse(message string, form *models.AcceptanceForm) *AcceptanceResponse {
	return &AcceptanceResponse{Success: true, Message: message, Acceptance: form}
}

// AcceptanceListResponse is the envelope carrying a page of acceptance forms
type AcceptanceListResponse struct {
	Success     bool                     `json:"success"`
	Acceptances []*models.AcceptanceForm `json:"acceptances"`
	Total       int64                    `json:"total"`
	Limit       int                      `json:"limit"`
	Skip        int                      `json:"skip"`
}
