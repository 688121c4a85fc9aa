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

type fakeAcceptanceStore struct {
	forms  map[int64]*models.AcceptanceForm
	nextID int64
}

func newFakeAcceptanceStore() *fakeAcceptanceStore {
	return &fakeAcceptanceStore{forms: make(map[int64]*models.AcceptanceForm)}
}

func (s *fakeAcceptanceStore) CreateAcceptance(ctx context.Context, form *models.AcceptanceForm) (int64, error) {
	s.nextID++
	form.ID = s.nextID
	stored := *form
	s.forms[form.ID] = &stored
	return form.ID, nil
}

func (s *fakeAcceptanceStore) GetAcceptanceByID(ctx context.Context, id int64) (*models.AcceptanceForm, error) {
	form, ok := s.forms[id]
	if !ok {
		return nil, apperrors.ErrAcceptanceNotFound
	}
	copied := *form
	return &copied, nil
}

func (s *fakeAcceptanceStore) GetAllAcceptances(ctx context.Context, params repositories.AcceptanceListParams) ([]*models.AcceptanceForm, error) {
	var out []*models.AcceptanceForm
	for _, form := range s.forms {
		copied := *form
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeAcceptanceStore) CountAcceptances(ctx context.Context, params repositories.AcceptanceListParams) (int64, error) {
	return int64(len(s.forms)), nil
}

func TestCreateAcceptanceRecordsSignature(t *testing.T) {
	store := newFakeAcceptanceStore()
	now := time.Date(2026, 6, 1, 11, 0, 0, 0, time.UTC)
	svc := NewAcceptanceService(store).(*acceptanceServiceImpl)
	svc.now = fixedClock(now)

	accepted := true
	form, err := svc.CreateAcceptance(context.Background(), &dto.CreateAcceptanceRequest{
		UserID:        5,
		ApplicationID: 3,
		AcceptedTerms: &accepted,
	}, "203.0.113.7")
	require.NoError(t, err)

	assert.True(t, form.AcceptedTerms)
	assert.Equal(t, "203.0.113.7", form.IPAddress)
	assert.Equal(t, now, form.AcceptedAt)
	assert.Equal(t, int64(3), form.ApplicationID)
}

func TestCreateAcceptanceRejectsDeclinedTerms(t *testing.T) {
	svc := NewAcceptanceService(newFakeAcceptanceStore())

	declined := false
	_, err := svc.CreateAcceptance(context.Background(), &dto.CreateAcceptanceRequest{
		UserID:        5,
		ApplicationID: 3,
		AcceptedTerms: &declined,
	}, "203.0.113.7")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateAcceptance(context.Background(), &dto.CreateAcceptanceRequest{
		UserID:        5,
		ApplicationID: 3,
	}, "203.0.113.7")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestGetAllAcceptancesReturnsTotal(t *testing.T) {
	store := newFakeAcceptanceStore()
	svc := NewAcceptanceService(store)

	accepted := true
	for i := 0; i < 2; i++ {
		_, err := svc.CreateAcceptance(context.Background(), &dto.CreateAcceptanceRequest{
			UserID:        int64(i + 1),
			ApplicationID: int64(i + 1),
			AcceptedTerms: &accepted,
		}, "198.51.100.2")
		require.NoError(t, err)
	}

	forms, total, err := svc.GetAllAcceptances(context.Background(), repositories.AcceptanceListParams{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, forms, 2)
	assert.Equal(t, int64(2), total)
}
