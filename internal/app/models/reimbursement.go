package models

import "time"

// RequestType distinguishes direct tuition payments from reimbursements.
type RequestType string

const (
	RequestTypeTuitionPayment RequestType = "tuition_payment"
	RequestTypeReimbursement  RequestType = "reimbursement"
)

// IsValid reports whether the request type is one of the known values.
func (t RequestType) IsValid() bool {
	return t == RequestTypeTuitionPayment || t == RequestTypeReimbursement
}

// ReimbursementStatus is the review state of a reimbursement request.
type ReimbursementStatus string

const (
	ReimbursementStatusPending  ReimbursementStatus = "pending"
	ReimbursementStatusApproved ReimbursementStatus = "approved"
	ReimbursementStatusDenied   ReimbursementStatus = "denied"
	ReimbursementStatusPaid     ReimbursementStatus = "paid"
)

// IsValid reports whether the status is one of the known values.
func (s ReimbursementStatus) IsValid() bool {
	switch s {
	case ReimbursementStatusPending, ReimbursementStatusApproved,
		ReimbursementStatusDenied, ReimbursementStatusPaid:
		return true
	}
	return false
}

// PaymentInfo describes who gets paid and how.
type PaymentInfo struct {
	PayableTo        string `json:"payableTo" binding:"required"`
	PaymentMethod    string `json:"paymentMethod" binding:"required"`
	AccountOrAddress string `json:"accountOrAddress" binding:"required"`
}

// Receipt is one itemized expense attached to a reimbursement request.
type Receipt struct {
	Description string    `json:"description" binding:"required"`
	Amount      float64   `json:"amount" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	FileID      int64     `json:"fileId" binding:"required"`
	Category    string    `json:"category" binding:"required"`
}

// ReimbursementRequest defines the payment request model based on the
// 'reimbursement_requests' table.
type ReimbursementRequest struct {
	ID            int64       `json:"id" db:"id"`
	UserID        int64       `json:"userId" db:"user_id"`
	ApplicationID int64       `json:"applicationId" db:"application_id"`
	RequestType   RequestType `json:"requestType" db:"request_type"`
	Amount        float64     `json:"amount" db:"amount"`
	Description   string      `json:"description" db:"description"`

	PaymentInfo PaymentInfo `json:"paymentInfo" db:"payment_info"`
	Receipts    []Receipt   `json:"receipts" db:"receipts"`

	Status      ReimbursementStatus `json:"status" db:"status"`
	SubmittedAt *time.Time          `json:"submittedAt,omitempty" db:"submitted_at"`
	ReviewedBy  *int64              `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewedAt  *time.Time          `json:"reviewedAt,omitempty" db:"reviewed_at"`
	PaidAt      *time.Time          `json:"paidAt,omitempty" db:"paid_at"`
	AdminNotes  string              `json:"adminNotes,omitempty" db:"admin_notes"`

	Owner    *OwnerRef `json:"owner,omitempty"`
	Reviewer *OwnerRef `json:"reviewer,omitempty"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
