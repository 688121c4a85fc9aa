package models

import "time"

// ChecklistStatus is the review state of a renewal checklist.
type ChecklistStatus string

const (
	ChecklistStatusPending   ChecklistStatus = "pending"
	ChecklistStatusSubmitted ChecklistStatus = "submitted"
	ChecklistStatusReviewed  ChecklistStatus = "reviewed"
)

// IsValid reports whether the status is one of the known values.
func (s ChecklistStatus) IsValid() bool {
	switch s {
	case ChecklistStatusPending, ChecklistStatusSubmitted, ChecklistStatusReviewed:
		return true
	}
	return false
}

// AcademicUpdate is the mid-year academic standing section.
type AcademicUpdate struct {
	CurrentGPA       float64 `json:"currentGPA" binding:"required"`
	UnitsEnrolled    float64 `json:"unitsEnrolled" binding:"required"`
	AttendanceType   string  `json:"attendanceType" binding:"required"`
	TranscriptFileID *int64  `json:"transcriptFileId,omitempty"`
}

// EmploymentUpdate is the mid-year employment section.
type EmploymentUpdate struct {
	IsEmployed         *bool  `json:"isEmployed" binding:"required"`
	Employer           string `json:"employer,omitempty"`
	HoursPerWeek       float64 `json:"hoursPerWeek,omitempty"`
	VerificationFileID *int64 `json:"verificationFileId,omitempty"`
}

// ComplianceChecklist holds the five attestations a renewing scholar signs.
type ComplianceChecklist struct {
	MaintainedGPAOver2                 bool `json:"maintainedGPAOver2"`
	AttendingFullTimeOrWorkingPartTime bool `json:"attendingFullTimeOrWorkingPartTime"`
	CleanArrestRecord                  bool `json:"cleanArrestRecord"`
	NoIllegalSubstances                bool `json:"noIllegalSubstances"`
	CompliedWithPolicies               bool `json:"compliedWithPolicies"`
}

// RenewalChecklist defines the mid-year report model based on the
// 'renewal_checklists' table. Unlike Application, adminNotes is a single
// overwritable field.
type RenewalChecklist struct {
	ID              int64           `json:"id" db:"id"`
	UserID          int64           `json:"userId" db:"user_id"`
	ApplicationID   int64           `json:"applicationId" db:"application_id"`
	AcademicYear    string          `json:"academicYear" db:"academic_year"`
	ReportingPeriod string          `json:"reportingPeriod" db:"reporting_period"`
	Status          ChecklistStatus `json:"status" db:"status"`
	SubmittedAt     *time.Time      `json:"submittedAt,omitempty" db:"submitted_at"`

	AcademicUpdate      AcademicUpdate      `json:"academicUpdate" db:"academic_update"`
	EmploymentUpdate    EmploymentUpdate    `json:"employmentUpdate" db:"employment_update"`
	ComplianceChecklist ComplianceChecklist `json:"complianceChecklist" db:"compliance_checklist"`

	ReviewedBy *int64     `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty" db:"reviewed_at"`
	AdminNotes string     `json:"adminNotes,omitempty" db:"admin_notes"`

	Owner    *OwnerRef `json:"owner,omitempty"`
	Reviewer *OwnerRef `json:"reviewer,omitempty"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
