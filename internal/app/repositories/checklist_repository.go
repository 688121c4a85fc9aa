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

// ChecklistListParams holds parameters for filtering and pagination.
type ChecklistListParams struct {
	UserID        *int64
	ApplicationID *int64
	Status        *models.ChecklistStatus
	AcademicYear  *string
	Limit         int
	Skip          int
}

// ChecklistReviewUpdate carries the admin review mutation. A nil Status
// leaves the current status untouched; a nil AdminNotes leaves the notes
// untouched, while an empty string clears them.
type ChecklistReviewUpdate struct {
	Status     *models.ChecklistStatus
	ReviewedBy int64
	ReviewedAt time.Time
	AdminNotes *string
}

// ChecklistRepository handles database operations for RenewalChecklist.
type ChecklistRepository struct {
	DB *pgxpool.Pool
}

// NewChecklistRepository creates a new instance of ChecklistRepository.
func NewChecklistRepository(db *pgxpool.Pool) *ChecklistRepository {
	return &ChecklistRepository{DB: db}
}

func (r *ChecklistRepository) selectChecklistQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"c.id", "c.user_id", "c.application_id", "c.academic_year", "c.reporting_period",
		"c.status", "c.submitted_at",
		"c.academic_update", "c.employment_update", "c.compliance_checklist",
		"c.reviewed_by", "c.reviewed_at", "c.admin_notes",
		"c.created_at", "c.updated_at",
		"u.id", "u.email", "u.profile",
		"rv.id", "rv.email", "rv.profile",
	).From("renewal_checklists c").
		Join("users u ON c.user_id = u.id").
		LeftJoin("users rv ON c.reviewed_by = rv.id").
		PlaceholderFormat(squirrel.Dollar)
}

// ScanChecklist scans a joined row into a RenewalChecklist.
func ScanChecklist(row pgx.Row) (*models.RenewalChecklist, error) {
	var checklist models.RenewalChecklist
	var academicUpdate, employmentUpdate, compliance []byte
	var adminNotes *string
	var ownerID, reviewerID *int64
	var ownerEmail, reviewerEmail *string
	var ownerProfile, reviewerProfile []byte

	err := row.Scan(
		&checklist.ID, &checklist.UserID, &checklist.ApplicationID, &checklist.AcademicYear,
		&checklist.ReportingPeriod, &checklist.Status, &checklist.SubmittedAt,
		&academicUpdate, &employmentUpdate, &compliance,
		&checklist.ReviewedBy, &checklist.ReviewedAt, &adminNotes,
		&checklist.CreatedAt, &checklist.UpdatedAt,
		&ownerID, &ownerEmail, &ownerProfile,
		&reviewerID, &reviewerEmail, &reviewerProfile,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrChecklistNotFound
		}
		logger.Error().Err(err).Msg("Error scanning renewal checklist row")
		return nil, err
	}

	if len(academicUpdate) > 0 {
		if err := json.Unmarshal(academicUpdate, &checklist.AcademicUpdate); err != nil {
			return nil, err
		}
	}
	if len(employmentUpdate) > 0 {
		if err := json.Unmarshal(employmentUpdate, &checklist.EmploymentUpdate); err != nil {
			return nil, err
		}
	}
	if len(compliance) > 0 {
		if err := json.Unmarshal(compliance, &checklist.ComplianceChecklist); err != nil {
			return nil, err
		}
	}
	if adminNotes != nil {
		checklist.AdminNotes = *adminNotes
	}

	if checklist.Owner, err = buildOwnerRef(ownerID, ownerEmail, ownerProfile); err != nil {
		return nil, err
	}
	if checklist.Reviewer, err = buildOwnerRef(reviewerID, reviewerEmail, reviewerProfile); err != nil {
		return nil, err
	}
	return &checklist, nil
}

// CreateChecklist inserts a new renewal checklist and returns its id.
func (r *ChecklistRepository) CreateChecklist(ctx context.Context, checklist *models.RenewalChecklist) (int64, error) {
	academicUpdate, err := json.Marshal(checklist.AcademicUpdate)
	if err != nil {
		return 0, err
	}
	employmentUpdate, err := json.Marshal(checklist.EmploymentUpdate)
	if err != nil {
		return 0, err
	}
	compliance, err := json.Marshal(checklist.ComplianceChecklist)
	if err != nil {
		return 0, err
	}

	sql, args, err := squirrel.Insert("renewal_checklists").
		Columns("user_id", "application_id", "academic_year", "reporting_period",
			"status", "submitted_at", "academic_update", "employment_update", "compliance_checklist").
		Values(checklist.UserID, checklist.ApplicationID, checklist.AcademicYear, checklist.ReportingPeriod,
			checklist.Status, checklist.SubmittedAt, academicUpdate, employmentUpdate, compliance).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create checklist SQL")
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create checklist query")
		return 0, err
	}
	return id, nil
}

// GetChecklistByID retrieves a single checklist with owner and reviewer.
func (r *ChecklistRepository) GetChecklistByID(ctx context.Context, id int64) (*models.RenewalChecklist, error) {
	sql, args, err := r.selectChecklistQuery().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return ScanChecklist(r.DB.QueryRow(ctx, sql, args...))
}

func (r *ChecklistRepository) applyFilters(query squirrel.SelectBuilder, params ChecklistListParams) squirrel.SelectBuilder {
	if params.UserID != nil {
		query = query.Where(squirrel.Eq{"c.user_id": *params.UserID})
	}
	if params.ApplicationID != nil {
		query = query.Where(squirrel.Eq{"c.application_id": *params.ApplicationID})
	}
	if params.Status != nil {
		query = query.Where(squirrel.Eq{"c.status": *params.Status})
	}
	if params.AcademicYear != nil {
		query = query.Where(squirrel.Eq{"c.academic_year": *params.AcademicYear})
	}
	return query
}

// GetAllChecklists retrieves renewal checklists newest first.
func (r *ChecklistRepository) GetAllChecklists(ctx context.Context, params ChecklistListParams) ([]*models.RenewalChecklist, error) {
	query := r.applyFilters(r.selectChecklistQuery(), params).OrderBy("c.created_at DESC")
	if params.Limit > 0 {
		query = query.Limit(uint64(params.Limit))
	}
	if params.Skip > 0 {
		query = query.Offset(uint64(params.Skip))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list checklists SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list checklists query")
		return nil, err
	}
	defer rows.Close()

	checklists := []*models.RenewalChecklist{}
	for rows.Next() {
		checklist, err := ScanChecklist(rows)
		if err != nil {
			return nil, err
		}
		checklists = append(checklists, checklist)
	}
	return checklists, rows.Err()
}

// CountChecklists returns the total matching the filter.
func (r *ChecklistRepository) CountChecklists(ctx context.Context, params ChecklistListParams) (int64, error) {
	query := r.applyFilters(
		squirrel.Select("COUNT(*)").From("renewal_checklists c").PlaceholderFormat(squirrel.Dollar),
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

// ReviewChecklist applies the admin review. Notes are overwritten, not
// appended.
func (r *ChecklistRepository) ReviewChecklist(ctx context.Context, id int64, update ChecklistReviewUpdate) error {
	builder := squirrel.Update("renewal_checklists").
		Set("reviewed_by", update.ReviewedBy).
		Set("reviewed_at", update.ReviewedAt).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
	if update.Status != nil {
		builder = builder.Set("status", *update.Status)
	}
	if update.AdminNotes != nil {
		builder = builder.Set("admin_notes", *update.AdminNotes)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("checklistId", id).Msg("Error reviewing checklist")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrChecklistNotFound
	}
	return nil
}

// DeleteChecklist removes the checklist row.
func (r *ChecklistRepository) DeleteChecklist(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("renewal_checklists").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("checklistId", id).Msg("Error deleting checklist")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrChecklistNotFound
	}
	return nil
}
