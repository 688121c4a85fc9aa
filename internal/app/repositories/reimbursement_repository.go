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

// ReimbursementListParams holds parameters for filtering and pagination.
type ReimbursementListParams struct {
	UserID        *int64
	ApplicationID *int64
	Status        *models.ReimbursementStatus
	RequestType   *models.RequestType
	Limit         int
	Skip          int
}

// ReimbursementStatusUpdate carries the admin status mutation. PaidAt is
// set only on transitions to paid; a nil AdminNotes leaves the notes
// untouched.
type ReimbursementStatusUpdate struct {
	Status     models.ReimbursementStatus
	ReviewedBy int64
	ReviewedAt time.Time
	PaidAt     *time.Time
	AdminNotes *string
}

// ReimbursementRepository handles database operations for ReimbursementRequest.
type ReimbursementRepository struct {
	DB *pgxpool.Pool
}

// NewReimbursementRepository creates a new instance of ReimbursementRepository.
func NewReimbursementRepository(db *pgxpool.Pool) *ReimbursementRepository {
	return &ReimbursementRepository{DB: db}
}

func (r *ReimbursementRepository) selectReimbursementQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"rr.id", "rr.user_id", "rr.application_id", "rr.request_type", "rr.amount",
		"rr.description", "rr.payment_info", "rr.receipts",
		"rr.status", "rr.submitted_at", "rr.reviewed_by", "rr.reviewed_at",
		"rr.paid_at", "rr.admin_notes",
		"rr.created_at", "rr.updated_at",
		"u.id", "u.email", "u.profile",
		"rv.id", "rv.email", "rv.profile",
	).From("reimbursement_requests rr").
		Join("users u ON rr.user_id = u.id").
		LeftJoin("users rv ON rr.reviewed_by = rv.id").
		PlaceholderFormat(squirrel.Dollar)
}

// ScanReimbursement scans a joined row into a ReimbursementRequest.
func ScanReimbursement(row pgx.Row) (*models.ReimbursementRequest, error) {
	var req models.ReimbursementRequest
	var paymentInfo, receipts []byte
	var adminNotes *string
	var ownerID, reviewerID *int64
	var ownerEmail, reviewerEmail *string
	var ownerProfile, reviewerProfile []byte

	err := row.Scan(
		&req.ID, &req.UserID, &req.ApplicationID, &req.RequestType, &req.Amount,
		&req.Description, &paymentInfo, &receipts,
		&req.Status, &req.SubmittedAt, &req.ReviewedBy, &req.ReviewedAt,
		&req.PaidAt, &adminNotes,
		&req.CreatedAt, &req.UpdatedAt,
		&ownerID, &ownerEmail, &ownerProfile,
		&reviewerID, &reviewerEmail, &reviewerProfile,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrReimbursementNotFound
		}
		logger.Error().Err(err).Msg("Error scanning reimbursement row")
		return nil, err
	}

	if len(paymentInfo) > 0 {
		if err := json.Unmarshal(paymentInfo, &req.PaymentInfo); err != nil {
			return nil, err
		}
	}
	if len(receipts) > 0 {
		if err := json.Unmarshal(receipts, &req.Receipts); err != nil {
			return nil, err
		}
	}
	if req.Receipts == nil {
		req.Receipts = []models.Receipt{}
	}
	if adminNotes != nil {
		req.AdminNotes = *adminNotes
	}

	if req.Owner, err = buildOwnerRef(ownerID, ownerEmail, ownerProfile); err != nil {
		return nil, err
	}
	if req.Reviewer, err = buildOwnerRef(reviewerID, reviewerEmail, reviewerProfile); err != nil {
		return nil, err
	}
	return &req, nil
}

// CreateReimbursement inserts a new reimbursement request and returns its id.
func (r *ReimbursementRepository) CreateReimbursement(ctx context.Context, req *models.ReimbursementRequest) (int64, error) {
	paymentInfo, err := json.Marshal(req.PaymentInfo)
	if err != nil {
		return 0, err
	}
	receipts, err := json.Marshal(req.Receipts)
	if err != nil {
		return 0, err
	}

	sql, args, err := squirrel.Insert("reimbursement_requests").
		Columns("user_id", "application_id", "request_type", "amount", "description",
			"payment_info", "receipts", "status", "submitted_at").
		Values(req.UserID, req.ApplicationID, req.RequestType, req.Amount, req.Description,
			paymentInfo, receipts, req.Status, req.SubmittedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create reimbursement SQL")
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create reimbursement query")
		return 0, err
	}
	return id, nil
}

// GetReimbursementByID retrieves a single request with owner and reviewer.
func (r *ReimbursementRepository) GetReimbursementByID(ctx context.Context, id int64) (*models.ReimbursementRequest, error) {
	sql, args, err := r.selectReimbursementQuery().Where(squirrel.Eq{"rr.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return ScanReimbursement(r.DB.QueryRow(ctx, sql, args...))
}

func (r *ReimbursementRepository) applyFilters(query squirrel.SelectBuilder, params ReimbursementListParams) squirrel.SelectBuilder {
	if params.UserID != nil {
		query = query.Where(squirrel.Eq{"rr.user_id": *params.UserID})
	}
	if params.ApplicationID != nil {
		query = query.Where(squirrel.Eq{"rr.application_id": *params.ApplicationID})
	}
	if params.Status != nil {
		query = query.Where(squirrel.Eq{"rr.status": *params.Status})
	}
	if params.RequestType != nil {
		query = query.Where(squirrel.Eq{"rr.request_type": *params.RequestType})
	}
	return query
}

// GetAllReimbursements retrieves reimbursement requests newest first.
func (r *ReimbursementRepository) GetAllReimbursements(ctx context.Context, params ReimbursementListParams) ([]*models.ReimbursementRequest, error) {
	query := r.applyFilters(r.selectReimbursementQuery(), params).OrderBy("rr.created_at DESC")
	if params.Limit > 0 {
		query = query.Limit(uint64(params.Limit))
	}
	if params.Skip > 0 {
		query = query.Offset(uint64(params.Skip))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list reimbursements SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list reimbursements query")
		return nil, err
	}
	defer rows.Close()

	reqs := []*models.ReimbursementRequest{}
	for rows.Next() {
		req, err := ScanReimbursement(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// CountReimbursements returns the total matching the filter.
func (r *ReimbursementRepository) CountReimbursements(ctx context.Context, params ReimbursementListParams) (int64, error) {
	query := r.applyFilters(
		squirrel.Select("COUNT(*)").From("reimbursement_requests rr").PlaceholderFormat(squirrel.Dollar),
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

// UpdateReimbursementStatus applies the admin review outcome.
func (r *ReimbursementRepository) UpdateReimbursementStatus(ctx context.Context, id int64, update ReimbursementStatusUpdate) error {
	builder := squirrel.Update("reimbursement_requests").
		Set("status", update.Status).
		Set("reviewed_by", update.ReviewedBy).
		Set("reviewed_at", update.ReviewedAt).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
	if update.PaidAt != nil {
		builder = builder.Set("paid_at", *update.PaidAt)
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
		logger.Error().Err(err).Int64("reimbursementId", id).Msg("Error updating reimbursement status")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrReimbursementNotFound
	}
	return nil
}

// DeleteReimbursement removes the reimbursement row.
func (r *ReimbursementRepository) DeleteReimbursement(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("reimbursement_requests").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("reimbursementId", id).Msg("Error deleting reimbursement")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrReimbursementNotFound
	}
	return nil
}
