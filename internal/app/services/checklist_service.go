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

// ChecklistStore is the subset of the checklist repository the service needs.
type ChecklistStore interface {
	CreateChecklist(ctx context.Context, checklist *models.RenewalChecklist) (int64, error)
	GetChecklistByID(ctx context.Context, id int64) (*models.RenewalChecklist, error)
	GetAllChecklists(ctx context.Context, params repositories.ChecklistListParams) ([]*models.RenewalChecklist, error)
	CountChecklists(ctx context.Context, params repositories.ChecklistListParams) (int64, error)
	ReviewChecklist(ctx context.Context, id int64, update repositories.ChecklistReviewUpdate) error
	DeleteChecklist(ctx context.Context, id int64) error
}

// ChecklistService defines the interface for renewal checklist operations
type ChecklistService interface {
	CreateChecklist(ctx context.Context, req *dto.CreateChecklistRequest) (*models.RenewalChecklist, error)
	GetChecklistByID(ctx context.Context, id int64) (*models.RenewalChecklist, error)
	GetAllChecklists(ctx context.Context, params repositories.ChecklistListParams) ([]*models.RenewalChecklist, int64, error)
	ReviewChecklist(ctx context.Context, id int64, req *dto.ReviewChecklistRequest) (*models.RenewalChecklist, error)
	DeleteChecklist(ctx context.Context, id int64) error
}

// checklistServiceImpl implements ChecklistService
type checklistServiceImpl struct {
	checklistStore ChecklistStore
	now            func() time.Time
}

// NewChecklistService creates a new ChecklistService
func NewChecklistService(checklistStore ChecklistStore) ChecklistService {
	return &checklistServiceImpl{
		checklistStore: checklistStore,
		now:            time.Now,
	}
}

// CreateChecklist persists a new mid-year report. Status and submission
// time are forced server-side; clients cannot pre-review their own report.
func (s *checklistServiceImpl) CreateChecklist(ctx context.Context, req *dto.CreateChecklistRequest) (*models.RenewalChecklist, error) {
	checklist := req.ToChecklist()
	now := s.now()
	checklist.Status = models.ChecklistStatusSubmitted
	checklist.SubmittedAt = &now

	id, err := s.checklistStore.CreateChecklist(ctx, checklist)
	if err != nil {
		return nil, err
	}
	logger.Info().Int64("checklistId", id).Msg("Renewal checklist submitted")
	return s.checklistStore.GetChecklistByID(ctx, id)
}

// GetChecklistByID retrieves a single checklist.
func (s *checklistServiceImpl) GetChecklistByID(ctx context.Context, id int64) (*models.RenewalChecklist, error) {
	return s.checklistStore.GetChecklistByID(ctx, id)
}

// GetAllChecklists retrieves a page of checklists and the total count.
func (s *checklistServiceImpl) GetAllChecklists(ctx context.Context, params repositories.ChecklistListParams) ([]*models.RenewalChecklist, int64, error) {
	checklists, err := s.checklistStore.GetAllChecklists(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.checklistStore.CountChecklists(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return checklists, total, nil
}

// ReviewChecklist applies the admin review. An omitted status defaults to
// reviewed; AdminNotes, when supplied, replaces the previous notes entirely.
func (s *checklistServiceImpl) ReviewChecklist(ctx context.Context, id int64, req *dto.ReviewChecklistRequest) (*models.RenewalChecklist, error) {
	status := req.Status
	if status == "" {
		status = models.ChecklistStatusReviewed
	}
	if !status.IsValid() {
		return nil, apperrors.NewValidationError("unknown checklist status")
	}

	update := repositories.ChecklistReviewUpdate{
		Status:     &status,
		ReviewedBy: req.ReviewedBy,
		ReviewedAt: s.now(),
		AdminNotes: req.AdminNotes,
	}

	if err := s.checklistStore.ReviewChecklist(ctx, id, update); err != nil {
		return nil, err
	}
	logger.Info().Int64("checklistId", id).Msg("Renewal checklist reviewed")
	return s.checklistStore.GetChecklistByID(ctx, id)
}

// DeleteChecklist removes a checklist.
func (s *checklistServiceImpl) DeleteChecklist(ctx context.Context, id int64) error {
	return s.checklistStore.DeleteChecklist(ctx, id)
}
