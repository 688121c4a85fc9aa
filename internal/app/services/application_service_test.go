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

type fakeApplicationStore struct {
	apps   map[int64]*models.Application
	nextID int64
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{apps: make(map[int64]*models.Application)}
}

func (s *fakeApplicationStore) CreateApplication(ctx context.Context, app *models.Application) (int64, error) {
	s.nextID++
	app.ID = s.nextID
	stored := *app
	s.apps[app.ID] = &stored
	return app.ID, nil
}

func (s *fakeApplicationStore) GetApplicationByID(ctx context.Context, id int64) (*models.Application, error) {
	app, ok := s.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	copied := *app
	return &copied, nil
}

func (s *fakeApplicationStore) GetAllApplications(ctx context.Context, params repositories.ApplicationListParams) ([]*models.Application, error) {
	var out []*models.Application
	for _, app := range s.apps {
		copied := *app
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeApplicationStore) CountApplications(ctx context.Context, params repositories.ApplicationListParams) (int64, error) {
	return int64(len(s.apps)), nil
}

func (s *fakeApplicationStore) UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus, reviewedBy int64, reviewedAt time.Time) error {
	app, ok := s.apps[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	app.Status = status
	app.ReviewedBy = &reviewedBy
	app.ReviewedAt = &reviewedAt
	return nil
}

func (s *fakeApplicationStore) AppendAdminNote(ctx context.Context, id int64, note models.AdminNote) error {
	app, ok := s.apps[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	app.AdminNotes = append(app.AdminNotes, note)
	return nil
}

func (s *fakeApplicationStore) DeleteApplication(ctx context.Context, id int64) error {
	if _, ok := s.apps[id]; !ok {
		return apperrors.ErrApplicationNotFound
	}
	delete(s.apps, id)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func validCreateApplicationRequest(userID int64) *dto.CreateApplicationRequest {
	return &dto.CreateApplicationRequest{
		UserID:       userID,
		AcademicYear: "2026-2027",
		PersonalInfo: models.PersonalInfo{
			FullName: "Jordan Rivera",
			Email:    "jordan@example.com",
		},
		EducationInfo: models.EducationInfo{
			CollegeName: "City College",
		},
		Essays: models.Essays{
			ReasonForRequest: "Tuition assistance",
		},
	}
}

func TestCreateApplicationForcesSubmittedStatus(t *testing.T) {
	store := newFakeApplicationStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewApplicationService(store).(*applicationServiceImpl)
	svc.now = fixedClock(now)

	app, err := svc.CreateApplication(context.Background(), models.ApplicationTypeNew, validCreateApplicationRequest(5))
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusSubmitted, app.Status)
	require.NotNil(t, app.SubmittedAt)
	assert.Equal(t, now, *app.SubmittedAt)
	assert.Equal(t, models.ApplicationTypeNew, app.ApplicationType)
	assert.Equal(t, int64(5), app.UserID)
}

func TestCreateRenewalApplicationSetsType(t *testing.T) {
	store := newFakeApplicationStore()
	svc := NewApplicationService(store)

	app, err := svc.CreateApplication(context.Background(), models.ApplicationTypeRenewal, validCreateApplicationRequest(9))
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationTypeRenewal, app.ApplicationType)
}

func TestUpdateApplicationStatus(t *testing.T) {
	store := newFakeApplicationStore()
	now := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
	svc := NewApplicationService(store).(*applicationServiceImpl)
	svc.now = fixedClock(now)

	created, err := svc.CreateApplication(context.Background(), models.ApplicationTypeNew, validCreateApplicationRequest(5))
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), created.ID, &dto.UpdateApplicationStatusRequest{
		Status:     models.ApplicationStatusApproved,
		ReviewedBy: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusApproved, updated.Status)
	require.NotNil(t, updated.ReviewedBy)
	assert.Equal(t, int64(1), *updated.ReviewedBy)
	require.NotNil(t, updated.ReviewedAt)
	assert.Equal(t, now, *updated.ReviewedAt)
}

func TestUpdateApplicationStatusRejectsUnknownStatus(t *testing.T) {
	svc := NewApplicationService(newFakeApplicationStore())

	_, err := svc.UpdateStatus(context.Background(), 1, &dto.UpdateApplicationStatusRequest{
		Status:     "archived",
		ReviewedBy: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateApplicationStatusUnknownID(t *testing.T) {
	svc := NewApplicationService(newFakeApplicationStore())

	_, err := svc.UpdateStatus(context.Background(), 999, &dto.UpdateApplicationStatusRequest{
		Status:     models.ApplicationStatusDenied,
		ReviewedBy: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestAddAdminNoteAppends(t *testing.T) {
	store := newFakeApplicationStore()
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	svc := NewApplicationService(store).(*applicationServiceImpl)
	svc.now = fixedClock(now)

	created, err := svc.CreateApplication(context.Background(), models.ApplicationTypeNew, validCreateApplicationRequest(5))
	require.NoError(t, err)

	first, err := svc.AddAdminNote(context.Background(), created.ID, &dto.AddApplicationNoteRequest{Note: "missing transcript", CreatedBy: 1})
	require.NoError(t, err)
	require.Len(t, first.AdminNotes, 1)

	second, err := svc.AddAdminNote(context.Background(), created.ID, &dto.AddApplicationNoteRequest{Note: "transcript received", CreatedBy: 1})
	require.NoError(t, err)
	require.Len(t, second.AdminNotes, 2)

	assert.Equal(t, "missing transcript", second.AdminNotes[0].Note)
	assert.Equal(t, "transcript received", second.AdminNotes[1].Note)
	assert.Equal(t, now, second.AdminNotes[1].CreatedAt)
}

func TestGetAllApplicationsReturnsTotal(t *testing.T) {
	store := newFakeApplicationStore()
	svc := NewApplicationService(store)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateApplication(context.Background(), models.ApplicationTypeNew, validCreateApplicationRequest(int64(i+1)))
		require.NoError(t, err)
	}

	apps, total, err := svc.GetAllApplications(context.Background(), repositories.ApplicationListParams{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, apps, 3)
	assert.Equal(t, int64(3), total)
}
