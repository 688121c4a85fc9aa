package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cfascholars/backend/internal/app/models"
	"github.com/cfascholars/backend/internal/pkg/apperrors"
	"github.com/cfascholars/backend/internal/pkg/logger"
)

// AcceptanceListParams holds parameters for filtering and pagination.
type AcceptanceListParams struct {
	UserID        *int64
	ApplicationID *int64
	Limit         int
	Skip          int
}

// AcceptanceRepository handles database operations for AcceptanceForm.
// Forms are insert-only; there is no update path.
type AcceptanceRepository struct {
	DB *pgxpool.Pool
}

// NewAcceptanceRepository creates a new instance of AcceptanceRepository.
func NewAcceptanceRepository(db *pgxpool.Pool) *AcceptanceRepository {
	return &AcceptanceRepository{DB: db}
}

func (r *AcceptanceRepository) selectAcceptanceQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"af.id", "af.user_id", "af.application_id", "af.accepted_terms",
		"af.accepted_at", "af.ip_address", "af.created_at",
		"u.id", "u.email", "u.profile",
	).From("acceptance_forms af").
		Join("users u ON af.user_id = u.id").
		PlaceholderFormat(squirrel.Dollar)
}

// ScanAcceptance scans a joined row into an AcceptanceForm.
func ScanAcceptance(row pgx.Row) (*models.AcceptanceForm, error) {
	var form models.AcceptanceForm
	var ownerID *int64
	var ownerEmail *string
	var ownerProfile []byte

	err := row.Scan(
		&form.ID, &form.UserID, &form.ApplicationID, &form.AcceptedTerms,
		&form.AcceptedAt, &form.IPAddress, &form.CreatedAt,
		&ownerID, &ownerEmail, &ownerProfile,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrAcceptanceNotFound
		}
		logger.Error().Err(err).Msg("Error scanning acceptance form row")
		return nil, err
	}

	if form.Owner, err = buildOwnerRef(ownerID, ownerEmail, ownerProfile); err != nil {
		return nil, err
	}
	return &form, nil
}

// CreateAcceptance inserts a new acceptance form and returns its id.
func (r *AcceptanceRepository) CreateAcceptance(ctx context.Context, form *models.AcceptanceForm) (int64, error) {
	sql, args, err := squirrel.Insert("acceptance_forms").
		Columns("user_id", "application_id", "accepted_terms", "accepted_at", "ip_address").
		Values(form.UserID, form.ApplicationID, form.AcceptedTerms, form.AcceptedAt, form.IPAddress).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create acceptance SQL")
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create acceptance query")
		return 0, err
	}
	return id, nil
}

// GetAcceptanceByID retrieves a single acceptance form with its owner.
func (r *AcceptanceRepository) GetAcceptanceByID(ctx context.Context, id int64) (*models.AcceptanceForm, error) {
	sql, args, err := r.selectAcceptanceQuery().Where(squirrel.Eq{"af.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return ScanAcceptance(r.DB.QueryRow(ctx, sql, args...))
}

func (r *AcceptanceRepository) applyFilters(query squirrel.SelectBuilder, params AcceptanceListParams) squirrel.SelectBuilder {
	if params.UserID != nil {
		query = query.Where(squirrel.Eq{"af.user_id": *params.UserID})
	}
	if params.ApplicationID != nil {
		query = query.Where(squirrel.Eq{"af.application_id": *params.ApplicationID})
	}
	return query
}

// GetAllAcceptances retrieves acceptance forms newest first.
func (r *AcceptanceRepository) GetAllAcceptances(ctx context.Context, params AcceptanceListParams) ([]*models.AcceptanceForm, error) {
	query := r.applyFilters(r.selectAcceptanceQuery(), params).OrderBy("af.created_at DESC")
	if params.Limit > 0 {
		query = query.Limit(uint64(params.Limit))
	}
	if params.Skip > 0 {
		query = query.Offset(uint64(params.Skip))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list acceptances SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list acceptances query")
		return nil, err
	}
	defer rows.Close()

	forms := []*models.AcceptanceForm{}
	for rows.Next() {
		form, err := ScanAcceptance(rows)
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, rows.Err()
}

// CountAcceptances returns the total matching the filter.
func (r *AcceptanceRepository) CountAcceptances(ctx context.Context, params AcceptanceListParams) (int64, error) {
	query := r.applyFilters(
		squirrel.Select("COUNT(*)").From("acceptance_forms af").PlaceholderFormat(squirrel.Dollar),
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
