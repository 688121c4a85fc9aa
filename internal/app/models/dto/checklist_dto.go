package dto

import (
	"github.com/cfascholars/backend/internal/app/models"
)

// CreateChecklistRequest represents the payload for submitting a renewal
// checklist. Status and submission time are assigned server-side.
type CreateChecklistRequest struct {
	UserID              int64                      `json:"userId" binding:"required"`
	ApplicationID       int64                      `json:"applicationId" binding:"required"`
	AcademicYear        string                     `json:"academicYear" binding:"required" example:"2026-2027"`
	ReportingPeriod     string                     `json:"reportingPeriod" binding:"required" example:"mid-year"`
	AcademicUpdate      models.AcademicUpdate      `json:"academicUpdate" binding:"required"`
	EmploymentUpdate    models.EmploymentUpdate    `json:"employmentUpdate" binding:"required"`
	ComplianceChecklist models.ComplianceChecklist `json:"complianceChecklist" binding:"required"`
}

// ToChecklist builds a domain renewal checklist from the request.
func (r *CreateChecklistRequest) ToChecklist() *models.RenewalChecklist {
	return &models.RenewalChecklist{
		UserID:              r.UserID,
		ApplicationID:       r.ApplicationID,
		AcademicYear:        r.AcademicYear,
		ReportingPeriod:     r.ReportingPeriod,
		AcademicUpdate:      r.AcademicUpdate,
		EmploymentUpdate:    r.EmploymentUpdate,
		ComplianceChecklist: r.ComplianceChecklist,
	}
}

// ReviewChecklistRequest represents the payload for the admin review action.
// AdminNotes replaces any previous notes; an omitted status defaults to reviewed.
type ReviewChecklistRequest struct {
	Status     models.ChecklistStatus `json:"status" example:"reviewed"`
	ReviewedBy int64                  `json:"reviewedBy" binding:"required"`
	AdminNotes *string                `json:"adminNotes"`
}

// ChecklistResponse is the envelope carrying a single renewal checklist
type ChecklistResponse struct {
	Success   bool                     `json:"success"`
	Message   string                   `json:"message,omitempty"`
	Checklist *models.RenewalChecklist `json:"checklist"`
}

// NewChecklistResponse wraps a checklist in the standard success envelope
func NewChecklistResponse(message string, checklist *models.RenewalChecklist) *ChecklistResponse {
	return &ChecklistResponse{Success: true, Message: message, Checklist: checklist}
}

// ChecklistListResponse is the envelope carrying a page of renewal checklists
type ChecklistListResponse struct {
	Success    bool                       `json:"success"`
	Checklists []*models.RenewalChecklist `json:"checklists"`
	Total      int64                      `json:"total"`
	Limit      int                        `json:"limit"`
	Skip       int                        `json:"skip"`
}
