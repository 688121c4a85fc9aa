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

// ReimbursementStore is the subset of the reimbursement repository the
// service needs.
type ReimbursementStore interface {
	CreateReimbursement(ctx context.Context, req *models.ReimbursementRequest) (int64, error)
	GetReimbursementByID(ctx context.Context, id int64) (*models.ReimbursementRequest, error)
	GetAllReimbursements(ctx context.Context, params repositories.ReimbursementListParams) ([]*models.ReimbursementRequest, error)
	CountReimbursements(ctx context.Context, params repositories.ReimbursementListParams) (int64, error)
	UpdateReimbursementStatus(ctx context.Context, id int64, update repositories.ReimbursementStatusUpdate) error
	DeleteReimbursement(ctx context.Context, id int64) error
}

// ReimbursementService defines the interface for payment request operations
type ReimbursementService interface {
	CreateReimbursement(ctx context.Context, req *dto.CreateReimbursementRequest) (*models.ReimbursementRequest, error)
	GetReimbursementByID(ctx context.Context, id int64) (*models.ReimbursementRequest, error)
	GetAllReimbursements(ctx context.Context, params repositories.ReimbursementListParams) ([]*models.ReimbursementRequest, int64, error)
	UpdateStatus(ctx context.Context, id int64, req *dto.UpdateReimbursementStatusRequest) (*models.ReimbursementRequest, error)
	DeleteReimbursement(ctx context.Context, id int64) error
}

// reimbursementServiceImpl implements ReimbursementService
type reimbursementServiceImpl struct {
	reimbursementStore ReimbursementStore
	now                func() time.Time
}

// NewReimbursementService creates a new ReimbursementService
func NewReimbursementService(reimbursementStore ReimbursementStore) ReimbursementService {
	return &reimbursementServiceImpl{
		reimbursementStore: reimbursementStore,
		now:                time.Now,
	}
}

// CreateReimbursement persists a new payment request. Every request starts
// as pending with the submission time stamped server-side.
func (s *reimbursementServiceImpl) CreateReimbursement(ctx context.Context, req *dto.CreateReimbursementRequest) (*models.ReimbursementRequest, error) {
	if !req.RequestType.IsValid() {
		return nil, apperrors.NewValidationError("requestType must be tuition_payment or reimbursement")
	}

	reimbursement := req.ToReimbursement()
	now := s.now()
	reimbursement.Status = models.ReimbursementStatusPending
	reimbursement.SubmittedAt = &now

	id, err := s.reimbursementStore.CreateReimbursement(ctx, reimbursement)
	if err != nil {
		return nil, err
	}
	logger.Info().Int64("reimbursementId", id).Msg("Reimbursement request submitted")
	return s.reimbursementStore.GetReimbursementByID(ctx, id)
}

// GetReimbursementByID retrieves a single request.
func (s *reimbursementServiceImpl) GetReimbursementByID(ctx context.Context, id int64) (*models.ReimbursementRequest, error) {
	return s.reimbursementStore.GetReimbursementByID(ctx, id)
}

// GetAllReimbursements retrieves a page of requests and the total count.
func (s *reimbursementServiceImpl) GetAllReimbursements(ctx context.Context, params repositories.ReimbursementListParams) ([]*models.ReimbursementRequest, int64, error) {
	reqs, err := s.reimbursementStore.GetAllReimbursements(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.reimbursementStore.CountReimbursements(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

// UpdateStatus applies an admin review outcome. On a transition to paid the
// payment time defaults to now when the admin did not supply one; on any
// other status a supplied paidAt is ignored.
func (s *reimbursementServiceImpl) UpdateStatus(ctx context.Context, id int64, req *dto.UpdateReimbursementStatusRequest) (*models.ReimbursementRequest, error) {
	if !req.Status.IsValid() {
		return nil, apperrors.NewValidationError("unknown reimbursement status")
	}

	update := repositories.ReimbursementStatusUpdate{
		Status:     req.Status,
		ReviewedBy: req.ReviewedBy,
		ReviewedAt: s.now(),
		AdminNotes: req.AdminNotes,
	}
	if req.Status == models.ReimbursementStatusPaid {
		if req.PaidAt != nil {
			update.PaidAt = req.PaidAt
		} else {
			now := s.now()
			update.PaidAt = &now
		}
	}

	if err := s.reimbursementStore.UpdateReimbursementStatus(ctx, id, update); err != nil {
		return nil, err
	}
	logger.Info().Int64("reimbursementId", id).Str("status", string(req.Status)).Msg("Reimbursement status updated")
	return s.reimbursementStore.GetReimbursementByID(ctx, id)
}

// DeleteReimbursement removes a payment request.
func (s *reimbursementServiceImpl) DeleteReimbursement(ctx context.Context, id int64) error {
	return s.reimbursementStore.DeleteReimbursement(ctx, id)
}
