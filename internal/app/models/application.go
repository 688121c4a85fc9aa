package models

import "time"

// ApplicationType distinguishes first-time and renewal applications.
type ApplicationType string

const (
	ApplicationTypeNew     ApplicationType = "new"
	ApplicationTypeRenewal ApplicationType = "renewal"
)

// ApplicationStatus is the review state of an application. Any enum value
// may be set from any prior state; there is no enforced transition table.
type ApplicationStatus string

const (
	ApplicationStatusDraft       ApplicationStatus = "draft"
	ApplicationStatusSubmitted   ApplicationStatus = "submitted"
	ApplicationStatusUnderReview ApplicationStatus = "under_review"
	ApplicationStatusApproved    ApplicationStatus = "approved"
	ApplicationStatusDenied      ApplicationStatus = "denied"
)

// IsValid reports whether the status is one of the known values.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusDraft, ApplicationStatusSubmitted, ApplicationStatusUnderReview,
		ApplicationStatusApproved, ApplicationStatusDenied:
		return true
	}
	return false
}

// MailingAddress is the applicant's postal address.
type MailingAddress struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	ZipCode string `json:"zipCode" binding:"required"`
}

// PersonalInfo is the identity section of an application.
type PersonalInfo struct {
	FullName       string         `json:"fullName" binding:"required"`
	Email          string         `json:"email" binding:"required"`
	Phone          string         `json:"phone" binding:"required"`
	MailingAddress MailingAddress `json:"mailingAddress" binding:"required"`
	DateOfBirth    time.Time      `json:"dateOfBirth" binding:"required"`
	CurrentAge     int            `json:"currentAge,omitempty"`
}

// EducationInfo is the schooling section of an application.
type EducationInfo struct {
	HasHighSchoolDiploma    *bool      `json:"hasHighSchoolDiploma" binding:"required"`
	DiplomaSource           string     `json:"diplomaSource,omitempty"`
	EstimatedGraduationDate *time.Time `json:"estimatedGraduationDate,omitempty"`
	CollegeName             string     `json:"collegeName" binding:"required"`
	IsAccepted              *bool      `json:"isAccepted" binding:"required"`
	YearInSchool            string     `json:"yearInSchool" binding:"required"`
	AttendanceType          string     `json:"attendanceType" binding:"required"`
	UnitsEnrolled           float64    `json:"unitsEnrolled" binding:"required"`
	CurrentGPA              float64    `json:"currentGPA" binding:"required"`
	MajorOrCourseOfStudy    string     `json:"majorOrCourseOfStudy,omitempty"`
}

// ContactRef is a named contact with a relationship to the applicant.
type ContactRef struct {
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address,omitempty"`
	PhoneOrEmail string `json:"phoneOrEmail,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// FosterCareInfo describes the applicant's foster care placement.
type FosterCareInfo struct {
	AgencyName        string     `json:"agencyName"`
	SocialWorker      ContactRef `json:"socialWorker"`
	ResourceParent    ContactRef `json:"resourceParent"`
	LengthInPlacement string     `json:"lengthInPlacement"`
}

// LivingSituation describes where the applicant lives now and will live.
type LivingSituation struct {
	CurrentDescription string `json:"currentDescription" binding:"required"`
	WillContinue       *bool  `json:"willContinue" binding:"required"`
	FuturePlans        string `json:"futurePlans,omitempty"`
}

// EmploymentInfo is the work section of an application.
type EmploymentInfo struct {
	IsEmployed                   *bool       `json:"isEmployed" binding:"required"`
	Employer                     string      `json:"employer,omitempty"`
	Position                     string      `json:"position,omitempty"`
	Responsibilities             string      `json:"responsibilities,omitempty"`
	HourlyRate                   float64     `json:"hourlyRate,omitempty"`
	HoursPerWeek                 float64     `json:"hoursPerWeek,omitempty"`
	EmploymentDuration           string      `json:"employmentDuration,omitempty"`
	EmployerContact              *ContactRef `json:"employerContact,omitempty"`
	PlansToContinueWhileInSchool *bool       `json:"plansToContinueWhileInSchool,omitempty"`
	IsSeekingEmployment          *bool       `json:"isSeekingEmployment,omitempty"`
}

// Essays holds the applicant's written responses.
type Essays struct {
	ReasonForRequest        string `json:"reasonForRequest" binding:"required"`
	EducationAndCareerGoals string `json:"educationAndCareerGoals" binding:"required"`
	PlansAfterFosterCare    string `json:"plansAfterFosterCare,omitempty"`
	OtherResources          string `json:"otherResources,omitempty"`
	NextStepIfDenied        string `json:"nextStepIfDenied,omitempty"`
	WhyGoodCandidate        string `json:"whyGoodCandidate" binding:"required"`
	HowScholarshipHelped    string `json:"howScholarshipHelped,omitempty"`
}

// DocumentStatus tracks one required supporting document.
type DocumentStatus struct {
	Required   bool       `json:"required"`
	Uploaded   bool       `json:"uploaded"`
	FileID     *int64     `json:"fileId,omitempty"`
	UploadedAt *time.Time `json:"uploadedAt,omitempty"`
	VerifiedBy *int64     `json:"verifiedBy,omitempty"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
}

// RecommendationStatus tracks the recommendation letter, which is submitted
// out of band rather than uploaded.
type RecommendationStatus struct {
	Submitted bool `json:"submitted"`
}

// RequiredDocuments is the per-document checklist of an application.
type RequiredDocuments struct {
	HighSchoolDiplomaOrGED DocumentStatus       `json:"highSchoolDiplomaOrGED"`
	Transcripts            DocumentStatus       `json:"transcripts"`
	EnrollmentVerification DocumentStatus       `json:"enrollmentVerification"`
	EmploymentVerification DocumentStatus       `json:"employmentVerification"`
	RecommendationLetter   RecommendationStatus `json:"recommendationLetter"`
}

// AdminNote is one entry of the append-only admin note log.
type AdminNote struct {
	Note      string    `json:"note"`
	CreatedBy int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// Application defines the scholarship application model based on the
// 'applications' table. The nested form sections are stored as JSONB.
type Application struct {
	ID              int64             `json:"id" db:"id"`
	UserID          int64             `json:"userId" db:"user_id"`
	ApplicationType ApplicationType   `json:"applicationType" db:"application_type"`
	AcademicYear    string            `json:"academicYear" db:"academic_year"`
	Status          ApplicationStatus `json:"status" db:"status"`
	SubmittedAt     *time.Time        `json:"submittedAt,omitempty" db:"submitted_at"`
	ReviewedAt      *time.Time        `json:"reviewedAt,omitempty" db:"reviewed_at"`
	ReviewedBy      *int64            `json:"reviewedBy,omitempty" db:"reviewed_by"`

	PersonalInfo    PersonalInfo      `json:"personalInfo" db:"personal_info"`
	EducationInfo   EducationInfo     `json:"educationInfo" db:"education_info"`
	FosterCareInfo  *FosterCareInfo   `json:"fosterCareInfo,omitempty" db:"foster_care_info"`
	LivingSituation LivingSituation   `json:"livingSituation" db:"living_situation"`
	EmploymentInfo  EmploymentInfo    `json:"employmentInfo" db:"employment_info"`
	Essays          Essays            `json:"essays" db:"essays"`
	RequiredDocs    RequiredDocuments `json:"requiredDocuments" db:"required_documents"`
	AdminNotes      []AdminNote       `json:"adminNotes" db:"admin_notes"`

	Owner    *OwnerRef `json:"owner,omitempty"`
	Reviewer *OwnerRef `json:"reviewer,omitempty"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
