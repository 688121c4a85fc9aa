package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cfascholars/backend/internal/app/models"
	"github.com/cfascholars/backend/internal/pkg/apperrors"
	"github.com/cfascholars/backend/internal/pkg/logger"
)

// ApplicationListParams holds parameters for filtering and pagination.
type ApplicationListParams struct {
	UserID       *int64
	Status       *models.ApplicationStatus
	Type         *models.ApplicationType
	AcademicYear *string
	Limit        int
	Skip         int
}

// ApplicationRepository handles database operations for Application.
type ApplicationRepository struct {
	DB *pgxpool.Pool
}

// NewApplicationRepository creates a new instance of ApplicationRepository.
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

// Common select query builder joining the owner and the reviewing admin.
func (r *ApplicationRepository) selectApplicationQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"a.id", "a.user_id", "a.application_type", "a.academic_year", "a.status",
		"a.submitted_at", "a.reviewed_at", "a.reviewed_by",
		"a.personal_info", "a.education_info", "a.foster_care_info", "a.living_situation",
		"a.employment_info", "a.essays", "a.required_documents", "a.admin_notes",
		"a.created_at", "a.updated_at",
		"u.id", "u.email", "u.profile",
		"rv.id", "rv.email", "rv.profile",
	).From("applications a").
		Join("users u ON a.user_id = u.id").
		LeftJoin("users rv ON a.reviewed_by = rv.id").
		PlaceholderFormat(squirrel.Dollar)
}

// ScanApplication scans a joined row into an Application.
func ScanApplication(row pgx.Row) (*models.Application, error) {
	var app models.Application
	var personalInfo, educationInfo, fosterCareInfo, livingSituation []byte
	var employmentInfo, essays, requiredDocs, adminNotes []byte
	var ownerID, reviewerID *int64
	var ownerEmail, reviewerEmail *string
	var ownerProfile, reviewerProfile []byte

	err := row.Scan(
		&app.ID, &app.UserID, &app.ApplicationType, &app.AcademicYear, &app.Status,
		&app.SubmittedAt, &app.ReviewedAt, &app.ReviewedBy,
		&personalInfo, &educationInfo, &fosterCareInfo, &livingSituation,
		&employmentInfo, &essays, &requiredDocs, &adminNotes,
		&app.CreatedAt, &app.UpdatedAt,
		&ownerID, &ownerEmail, &ownerProfile,
		&reviewerID, &reviewerEmail, &reviewerProfile,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Msg("Error scanning application row")
		return nil, err
	}

	sections := []struct {
		data []byte
		dst  interface{}
	}{
		{personalInfo, &app.PersonalInfo},
		{educationInfo, &app.EducationInfo},
		{livingSituation, &app.LivingSituation},
		{employmentInfo, &app.EmploymentInfo},
		{essays, &app.Essays},
		{requiredDocs, &app.RequiredDocs},
		{adminNotes, &app.AdminNotes},
	}
	for _, s := range sections {
		if len(s.data) == 0 {
			continue
		}
		if err := json.Unmarshal(s.data, s.dst); err != nil {
			return nil, err
		}
	}
	if len(fosterCareInfo) > 0 {
		app.FosterCareInfo = &models.FosterCareInfo{}
		if err := json.Unmarshal(fosterCareInfo, app.FosterCareInfo); err != nil {
			return nil, err
		}
	}
	if app.AdminNotes == nil {
		app.AdminNotes = []models.AdminNote{}
	}

	if app.Owner, err = buildOwnerRef(ownerID, ownerEmail, ownerProfile); err != nil {
		return nil, err
	}
	if app.Reviewer, err = buildOwnerRef(reviewerID, reviewerEmail, reviewerProfile); err != nil {
		return nil, err
	}
	return &app, nil
}

// CreateApplication inserts a new application and returns its id. Status and
// submitted_at are persisted exactly as set by the service layer.
func (r *ApplicationRepository) CreateApplication(ctx context.Context, app *models.Application) (int64, error) {
	personalInfo, err := json.Marshal(app.PersonalInfo)
	if err != nil {
		return 0, err
	}
	educationInfo, err := json.Marshal(app.EducationInfo)
	if err != nil {
		return 0, err
	}
	var fosterCareInfo []byte
	if app.FosterCareInfo != nil {
		if fosterCareInfo, err = json.Marshal(app.FosterCareInfo); err != nil {
			return 0, err
		}
	}
	livingSituation, err := json.Marshal(app.LivingSituation)
	if err != nil {
		return 0, err
	}
	employmentInfo, err := json.Marshal(app.EmploymentInfo)
	if err != nil {
		return 0, err
	}
	essays, err := json.Marshal(app.Essays)
	if err != nil {
		return 0, err
	}
	requiredDocs, err := json.Marshal(app.RequiredDocs)
	if err != nil {
		return 0, err
	}

	sql, args, err := squirrel.Insert("applications").
		Columns("user_id", "application_type", "academic_year", "status", "submitted_at",
			"personal_info", "education_info", "foster_care_info", "living_situation",
			"employment_info", "essays", "required_documents").
		Values(app.UserID, app.ApplicationType, app.AcademicYear, app.Status, app.SubmittedAt,
			personalInfo, educationInfo, fosterCareInfo, livingSituation,
			employmentInfo, essays, requiredDocs).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create application SQL")
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create application query")
		return 0, err
	}
	return id, nil
}

// GetApplicationByID retrieves a single application with owner and reviewer.
func (r *ApplicationRepository) GetApplicationByID(ctx context.Context, id int64) (*models.Application, error) {
	sql, args, err := r.selectApplicationQuery().Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return ScanApplication(r.DB.QueryRow(ctx, sql, args...))
}

func (r *ApplicationRepository) applyFilters(query squirrel.SelectBuilder, params ApplicationListParams) squirrel.SelectBuilder {
	if params.UserID != nil {
		query = query.Where(squirrel.Eq{"a.user_id": *params.UserID})
	}
	if params.Status != nil {
		query = query.Where(squirrel.Eq{"a.status": *params.Status})
	}
	if params.Type != nil {
		query = query.Where(squirrel.Eq{"a.application_type": *params.Type})
	}
	if params.AcademicYear != nil {
		query = query.Where(squirrel.Eq{"a.academic_year": *params.AcademicYear})
	}
	return query
}

// GetAllApplications retrieves applications newest first.
func (r *ApplicationRepository) GetAllApplications(ctx context.Context, params ApplicationListParams) ([]*models.Application, error) {
	query := r.applyFilters(r.selectApplicationQuery(), params).OrderBy("a.created_at DESC")
	if params.Limit > 0 {
		query = query.Limit(uint64(params.Limit))
	}
	if params.Skip > 0 {
		query = query.Offset(uint64(params.Skip))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list applications SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list applications query")
		return nil, err
	}
	defer rows.Close()

	apps := []*models.Application{}
	for rows.Next() {
		app, err := ScanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// CountApplications returns the total matching the filter.
func (r *ApplicationRepository) CountApplications(ctx context.Context, params ApplicationListParams) (int64, error) {
	query := r.applyFilters(
		squirrel.Select("COUNT(*)").From("applications a").PlaceholderFormat(squirrel.Dollar),
		params,
	)
	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}
	var count int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateApplicationStatus sets the review outcome and stamps the reviewer.
func (r *ApplicationRepository) UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus, reviewedBy int64, reviewedAt time.Time) error {
	sql, args, err := squirrel.Update("applications").
		Set("status", status).
		Set("reviewed_by", reviewedBy).
		Set("reviewed_at", reviewedAt).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationId", id).Msg("Error updating application status")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// AppendAdminNote appends one entry to the admin note log. Existing notes
// are never rewritten.
func (r *ApplicationRepository) AppendAdminNote(ctx context.Context, id int64, note models.AdminNote) error {
	noteJSON, err := json.Marshal(note)
	if err != nil {
		return err
	}

	sql, args, err := squirrel.Update("applications").
		Set("admin_notes", squirrel.Expr("admin_notes || ?::jsonb", noteJSON)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationId", id).Msg("Error appending admin note")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// DeleteApplication removes the application row.
func (r *ApplicationRepository) DeleteApplication(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("applications").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationId", id).Msg("Error deleting application")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}
