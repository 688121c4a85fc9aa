package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfascholars/backend/internal/app/models"
	"github.com/cfascholars/backend/internal/app/models/dto"
	"github.com/cfascholars/backend/internal/app/repositories"
	"github.com/cfascholars/backend/internal/pkg/apperrors"
)

type fakeChecklistStore struct {
	checklists map[int64]*models.RenewalChecklist
	nextID     int64
}

func newFakeChecklistStore() *fakeChecklistStore {
	return &fakeChecklistStore{checklists: make(map[int64]*models.RenewalChecklist)}
}

func (s *fakeChecklistStore) CreateChecklist(ctx context.Context, checklist *models.RenewalChecklist) (int64, error) {
	s.nextID++
	checklist.ID = s.nextID
	stored := *checklist
	s.checklists[checklist.ID] = &stored
	return checklist.ID, nil
}

func (s *fakeChecklistStore) GetChecklistByID(ctx context.Context, id int64) (*models.RenewalChecklist, error) {
	checklist, ok := s.checklists[id]
	if !ok {
		return nil, apperrors.ErrChecklistNotFound
	}
	copied := *checklist
	return &copied, nil
}

func (s *fakeChecklistStore) GetAllChecklists(ctx context.Context, params repositories.ChecklistListParams) ([]*models.RenewalChecklist, error) {
	var out []*models.RenewalChecklist
	for _, checklist := range s.checklists {
		copied := *checklist
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeChecklistStore) CountChecklists(ctx context.Context, params repositories.ChecklistListParams) (int64, error) {
	return int64(len(s.checklists)), nil
}

func (s *fakeChecklistStore) ReviewChecklist(ctx context.Context, id int64, update repositories.ChecklistReviewUpdate) error {
	checklist, ok := s.checklists[id]
	if !ok {
		return apperrors.ErrChecklistNotFound
	}
	if update.Status != nil {
		checklist.Status = *update.Status
	}
	checklist.ReviewedBy = &update.ReviewedBy
	reviewedAt := update.ReviewedAt
	checklist.ReviewedAt = &reviewedAt
	if update.AdminNotes != nil {
		checklist.AdminNotes = *update.AdminNotes
	}
	return nil
}

func (s *fakeChecklistStore) DeleteChecklist(ctx context.Context, id int64) error {
	if _, ok := s.checklists[id]; !ok {
		return apperrors.ErrChecklistNotFound
	}
	delete(s.checklists, id)
	return nil
}

func validCreateChecklistRequest(userID int64) *dto.CreateChecklistRequest {
	employed := true
	return &dto.CreateChecklistRequest{
		UserID:          userID,
		ApplicationID:   3,
		AcademicYear:    "2026-2027",
		ReportingPeriod: "mid-year",
		AcademicUpdate: models.AcademicUpdate{
			CurrentGPA:     3.2,
			UnitsEnrolled:  12,
			AttendanceType: "full-time",
		},
		EmploymentUpdate: models.EmploymentUpdate{
			IsEmployed: &employed,
			Employer:   "Campus Bookstore",
		},
		ComplianceChecklist: models.ComplianceChecklist{
			MaintainedGPAOver2:   true,
			CleanArrestRecord:    true,
			NoIllegalSubstances:  true,
			CompliedWithPolicies: true,
		},
	}
}

func TestCreateChecklistForcesSubmittedStatus(t *testing.T) {
	store := newFakeChecklistStore()
	now := time.Date(2026, 12, 15, 10, 0, 0, 0, time.UTC)
	svc := NewChecklistService(store).(*checklistServiceImpl)
	svc.now = fixedClock(now)

	checklist, err := svc.CreateChecklist(context.Background(), validCreateChecklistRequest(5))
	require.NoError(t, err)

	assert.Equal(t, models.ChecklistStatusSubmitted, checklist.Status)
	require.NotNil(t, checklist.SubmittedAt)
	assert.Equal(t, now, *checklist.SubmittedAt)
	assert.Equal(t, int64(3), checklist.ApplicationID)
}

func TestReviewChecklistDefaultsToReviewed(t *testing.T) {
	store := newFakeChecklistStore()
	svc := NewChecklistService(store).(*checklistServiceImpl)
	now := time.Date(2027, 1, 10, 14, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	created, err := svc.CreateChecklist(context.Background(), validCreateChecklistRequest(5))
	require.NoError(t, err)

	reviewed, err := svc.ReviewChecklist(context.Background(), created.ID, &dto.ReviewChecklistRequest{ReviewedBy: 1})
	require.NoError(t, err)

	assert.Equal(t, models.ChecklistStatusReviewed, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, int64(1), *reviewed.ReviewedBy)
	require.NotNil(t, reviewed.ReviewedAt)
	assert.Equal(t, now, *reviewed.ReviewedAt)
}

func TestReviewChecklistOverwritesAdminNotes(t *testing.T) {
	store := newFakeChecklistStore()
	svc := NewChecklistService(store)

	created, err := svc.CreateChecklist(context.Background(), validCreateChecklistRequest(5))
	require.NoError(t, err)

	first := "GPA verification pending"
	reviewed, err := svc.ReviewChecklist(context.Background(), created.ID, &dto.ReviewChecklistRequest{ReviewedBy: 1, AdminNotes: &first})
	require.NoError(t, err)
	assert.Equal(t, first, reviewed.AdminNotes)

	second := "GPA verified"
	reviewed, err = svc.ReviewChecklist(context.Background(), created.ID, &dto.ReviewChecklistRequest{ReviewedBy: 1, AdminNotes: &second})
	require.NoError(t, err)
	assert.Equal(t, second, reviewed.AdminNotes)

	// Omitting adminNotes leaves the previous value alone.
	reviewed, err = svc.ReviewChecklist(context.Background(), created.ID, &dto.ReviewChecklistRequest{ReviewedBy: 1})
	require.NoError(t, err)
	assert.Equal(t, second, reviewed.AdminNotes)
}

func TestReviewChecklistRejectsUnknownStatus(t *testing.T) {
	svc := NewChecklistService(newFakeChecklistStore())

	_, err := svc.ReviewChecklist(context.Background(), 1, &dto.ReviewChecklistRequest{Status: "escalated", ReviewedBy: 1})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestReviewChecklistUnknownID(t *testing.T) {
	svc := NewChecklistService(newFakeChecklistStore())

	_, err := svc.ReviewChecklist(context.Background(), 404, &dto.ReviewChecklistRequest{ReviewedBy: 1})
	assert.ErrorIs(t, err, apperrors.ErrChecklistNotFound)
}
