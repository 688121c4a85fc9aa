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

// ApplicationStore is the subset of the application repository the service
// needs.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, app *models.Application) (int64, error)
	GetApplicationByID(ctx context.Context, id int64) (*models.Application, error)
	GetAllApplications(ctx context.Context, params repositories.ApplicationListParams) ([]*models.Application, error)
	CountApplications(ctx context.Context, params repositories.ApplicationListParams) (int64, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus, reviewedBy int64, reviewedAt time.Time) error
	AppendAdminNote(ctx context.Context, id int64, note models.AdminNote) error
	DeleteApplication(ctx context.Context, id int64) error
}

// ApplicationService defines the interface for scholarship application
// operations
type ApplicationService interface {
	CreateApplication(ctx context.Context, appType models.ApplicationType, req *dto.CreateApplicationRequest) (*models.Application, error)
	GetApplicationByID(ctx context.Context, id int64) (*models.Application, error)
	GetAllApplications(ctx context.Context, params repositories.ApplicationListParams) ([]*models.Application, int64, error)
	UpdateStatus(ctx context.Context, id int64, req *dto.UpdateApplicationStatusRequest) (*models.Application, error)
	AddAdminNote(ctx context.Context, id int64, req *dto.AddApplicationNoteRequest) (*models.Application, error)
	DeleteApplication(ctx context.Context, id int64) error
}

// applicationServiceImpl implements ApplicationService
type applicationServiceImpl struct {
	appStore ApplicationStore
	now      func() time.Time
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(appStore ApplicationStore) ApplicationService {
	return &applicationServiceImpl{
		appStore: appStore,
		now:      time.Now,
	}
}

// CreateApplication persists a new submission. Whatever status or timestamps
// the client supplied are discarded: every new application starts as
// submitted with the submission time stamped server-side.
func (s *applicationServiceImpl) CreateApplication(ctx context.Context, appType models.ApplicationType, req *dto.CreateApplicationRequest) (*models.Application, error) {
	app := req.ToApplication(appType)
	now := s.now()
	app.Status = models.ApplicationStatusSubmitted
	app.SubmittedAt = &now

	id, err := s.appStore.CreateApplication(ctx, app)
	if err != nil {
		return nil, err
	}
	logger.Info().Int64("applicationId", id).Str("type", string(appType)).Msg("Application submitted")
	return s.appStore.GetApplicationByID(ctx, id)
}

// GetApplicationByID retrieves a single application.
func (s *applicationServiceImpl) GetApplicationByID(ctx context.Context, id int64) (*models.Application, error) {
	return s.appStore.GetApplicationByID(ctx, id)
}

// GetAllApplications retrieves a page of applications and the total count.
func (s *applicationServiceImpl) GetAllApplications(ctx context.Context, params repositories.ApplicationListParams) ([]*models.Application, int64, error) {
	apps, err := s.appStore.GetAllApplications(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.appStore.CountApplications(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// UpdateStatus applies an admin review outcome. Any known status may be set
// from any prior one.
func (s *applicationServiceImpl) UpdateStatus(ctx context.Context, id int64, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	if !req.Status.IsValid() {
		return nil, apperrors.NewValidationError("unknown application status")
	}

	if err := s.appStore.UpdateApplicationStatus(ctx, id, req.Status, req.ReviewedBy, s.now()); err != nil {
		return nil, err
	}
	logger.Info().Int64("applicationId", id).Str("status", string(req.Status)).Msg("Application status updated")
	return s.appStore.GetApplicationByID(ctx, id)
}

// AddAdminNote appends a note to the application's note log.
func (s *applicationServiceImpl) AddAdminNote(ctx context.Context, id int64, req *dto.AddApplicationNoteRequest) (*models.Application, error) {
	note := models.AdminNote{
		Note:      req.Note,
		CreatedBy: req.CreatedBy,
		CreatedAt: s.now(),
	}
	if err := s.appStore.AppendAdminNote(ctx, id, note); err != nil {
		return nil, err
	}
	return s.appStore.GetApplicationByID(ctx, id)
}

// DeleteApplication removes an application.
func (s *applicationServiceImpl) DeleteApplication(ctx context.Context, id int64) error {
	return s.appStore.DeleteApplication(ctx, id)
}
