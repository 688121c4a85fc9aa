package services

import (
	"context"
	"time"

	"github.com/cfascholars/backend/internal/app/models"
	"github.com/cfascholars/backend/internal/app/models/dto"
	"github.com/cfascholars/backend/internal/app/repositories"
	"github.com/cfascholars/backend/internal/pkg/apperrors"
	"github.com/cfascholars/backend/internal/pkg/logger"
)

// AcceptanceStore is the subset of the acceptance repository the service
// needs.
type AcceptanceStore interface {
	CreateAcceptance(ctx context.Context, form *models.AcceptanceForm) (int64, error)
	GetAcceptanceByID(ctx context.Context, id int64) (*models.AcceptanceForm, error)
	GetAllAcceptances(ctx context.Context, params repositories.AcceptanceListParams) ([]*models.AcceptanceForm, error)
	CountAcceptances(ctx context.Context, params repositories.AcceptanceListParams) (int64, error)
}

// AcceptanceService defines the interface for award acceptance operations
type AcceptanceService interface {
	CreateAcceptance(ctx context.Context, req *dto.CreateAcceptanceRequest, ipAddress string) (*models.AcceptanceForm, error)
	GetAcceptanceByID(ctx context.Context, id int64) (*models.AcceptanceForm, error)
	GetAllAcceptances(ctx context.Context, params repositories.AcceptanceListParams) ([]*models.AcceptanceForm, int64, error)
}

// acceptanceServiceImpl implements AcceptanceService
type acceptanceServiceImpl struct {
	acceptanceStore AcceptanceStore
	now             func() time.Time
}

// NewAcceptanceService creates a new AcceptanceService
func NewAcceptanceService(acceptanceStore AcceptanceStore) AcceptanceService {
	return &acceptanceServiceImpl{
		acceptanceStore: acceptanceStore,
		now:             time.Now,
	}
}

// CreateAcceptance records a signed acceptance. Declined terms are rejected;
// the form exists only to witness agreement. The record is immutable once
// written.
func (s *acceptanceServiceImpl) CreateAcceptance(ctx context.Context, req *dto.CreateAcceptanceRequest, ipAddress string) (*models.AcceptanceForm, error) {
	if req.AcceptedTerms == nil || !*req.AcceptedTerms {
		return nil, apperrors.NewValidationError("acceptedTerms must be true")
	}

	form := req.ToAcceptanceForm(ipAddress)
	form.AcceptedAt = s.now()

	id, err := s.acceptanceStore.CreateAcceptance(ctx, form)
	if err != nil {
		return nil, err
	}
	logger.Info().Int64("acceptanceId", id).Int64("applicationId", form.ApplicationID).Msg("Acceptance form recorded")
	return s.acceptanceStore.GetAcceptanceByID(ctx, id)
}

// GetAcceptanceByID retrieves a single acceptance form.
func (s *acceptanceServiceImpl) GetAcceptanceByID(ctx context.Context, id int64) (*models.AcceptanceForm, error) {
	return s.acceptanceStore.GetAcceptanceByID(ctx, id)
}

// GetAllAcceptances retrieves a page of acceptance forms and the total count.
func (s *acceptanceServiceImpl) GetAllAcceptances(ctx context.Context, params repositories.AcceptanceListParams) ([]*models.AcceptanceForm, int64, error) {
	forms, err := s.acceptanceStore.GetAllAcceptances(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.acceptanceStore.CountAcceptances(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return forms, total, nil
}
