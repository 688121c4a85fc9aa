package dto

import (
	"time"

	"github.com/cfascholars/backend/internal/app/models"
)

// CreateReimbursementRequest represents the payload for submitting a
// reimbursement request. Status and submission time are assigned server-side.
type CreateReimbursementRequest struct {
	UserID        int64              `json:"userId" binding:"required"`
	ApplicationID int64              `json:"applicationId" binding:"required"`
	RequestType   models.RequestType `json:"requestType" binding:"required" example:"tuition_payment"`
	Amount        float64            `json:"amount" binding:"required,gt=0" example:"450.00"`
	Description   string             `json:"description" binding:"required"`
	PaymentInfo   models.PaymentInfo `json:"paymentInfo" binding:"required"`
	Receipts      []models.Receipt   `json:"receipts"`
}

// ToReimbursement builds a domain reimbursement request from the payload.
func (r *CreateReimbursementRequest) ToReimbursement() *models.ReimbursementRequest {
	return &models.ReimbursementRequest{
		UserID:        r.UserID,
		ApplicationID: r.ApplicationID,
		RequestType:   r.RequestType,
		Amount:        r.Amount,
		Description:   r.Description,
		PaymentInfo:   r.PaymentInfo,
		Receipts:      r.Receipts,
	}
}

// UpdateReimbursementStatusRequest represents the payload for admin status
// changes. PaidAt is honored only when the new status is paid; when omitted
// on a transition to paid the server stamps the current time.
type UpdateReimbursementStatusRequest struct {
	Status     models.ReimbursementStatus `json:"status" binding:"required" example:"paid"`
	ReviewedBy int64                      `json:"reviewedBy" binding:"required"`
	AdminNotes *string                    `json:"adminNotes"`
	PaidAt     *time.Time                 `json:"paidAt"`
}

// ReimbursementResponse is the envelope carrying a single reimbursement request
type ReimbursementResponse struct {
	Success       bool                         `json:"success"`
	Message       string                       `json:"message,omitempty"`
	Reimbursement *models.ReimbursementRequest `json:"reimbursement"`
}

// NewReimbursementResponse wraps a reimbursement in the standard success envelope
func NewReimbursementResponse(message string, req *models.ReimbursementRequest) *ReimbursementResponse {
	return &ReimbursementResponse{Success: true, Message: message, Reimbursement: req}
}

// ReimbursementListResponse is the envelope carrying a page of reimbursement requests
type ReimbursementListResponse struct {
	Success        bool                           `json:"success"`
	Reimbursements []*models.ReimbursementRequest `json:"reimbursements"`
	Total          int64                          `json:"total"`
	Limit          int                            `json:"limit"`
	Skip           int                            `json:"skip"`
}
