package dto

import (
	"github.com/cfascholars/backend/internal/app/models"
)

// CreateApplicationRequest represents the payload for submitting a new or
// renewal scholarship application. Status and submission time are assigned
// server-side regardless of what the client sends.
type CreateApplicationRequest struct {
	UserID          int64                     `json:"userId" binding:"required"`
	AcademicYear    string                    `json:"academicYear" binding:"required" example:"2026-2027"`
	PersonalInfo    models.PersonalInfo       `json:"personalInfo" binding:"required"`
	EducationInfo   models.EducationInfo      `json:"educationInfo" binding:"required"`
	FosterCareInfo  *models.FosterCareInfo    `json:"fosterCareInfo"`
	LivingSituation models.LivingSituation    `json:"livingSituation" binding:"required"`
	EmploymentInfo  models.EmploymentInfo     `json:"employmentInfo" binding:"required"`
	Essays          models.Essays             `json:"essays" binding:"required"`
	RequiredDocs    *models.RequiredDocuments `json:"requiredDocuments"`
}

// ToApplication builds a domain application of the given type from the request.
func (r *CreateApplicationRequest) ToApplication(appType models.ApplicationType) *models.Application {
	app := &models.Application{
		UserID:          r.UserID,
		ApplicationType: appType,
		AcademicYear:    r.AcademicYear,
		PersonalInfo:    r.PersonalInfo,
		EducationInfo:   r.EducationInfo,
		FosterCareInfo:  r.FosterCareInfo,
		LivingSituation: r.LivingSituation,
		EmploymentInfo:  r.EmploymentInfo,
		Essays:          r.Essays,
	}
	if r.RequiredDocs != nil {
		app.RequiredDocs = *r.RequiredDocs
	}
	return app
}

// UpdateApplicationStatusRequest represents the payload for admin status changes
type UpdateApplicationStatusRequest struct {
	Status     models.ApplicationStatus `json:"status" binding:"required" example:"approved"`
	ReviewedBy int64                    `json:"reviewedBy" binding:"required"`
}

// AddApplicationNoteRequest represents the payload for appending an admin note
type AddApplicationNoteRequest struct {
	Note      string `json:"note" binding:"required"`
	CreatedBy int64  `json:"createdBy" binding:"required"`
}

// ApplicationResponse is the envelope carrying a single application
type ApplicationResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message,omitempty"`
	Application *models.Application `json:"application"`
}

// NewApplicationResponse wraps an application in the standard success envelope
func NewApplicationResponse(message string, app *models.Application) *ApplicationResponse {
	return &ApplicationResponse{Success: true, Message: message, Application: app}
}

// ApplicationListResponse is the envelope carrying a page of applications
type ApplicationListResponse struct {
	Success      bool                  `json:"success"`
	Applications []*models.Application `json:"applications"`
	Total        int64                 `json:"total"`
	Limit        int                   `json:"limit"`
	Skip         int                   `json:"skip"`
}
