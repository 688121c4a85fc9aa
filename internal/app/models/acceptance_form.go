package models

import "time"

// AcceptanceForm records a scholar's acceptance of the award terms.
// Immutable after creation; there is no update endpoint.
type AcceptanceForm struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"userId" db:"user_id"`
	ApplicationID int64     `json:"applicationId" db:"application_id"`
	AcceptedTerms bool      `json:"acceptedTerms" db:"accepted_terms"`
	AcceptedAt    time.Time `json:"acceptedAt" db:"accepted_at"`
	IPAddress     string    `json:"ipAddress" db:"ip_address"`

	Owner *OwnerRef `json:"owner,omitempty"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
