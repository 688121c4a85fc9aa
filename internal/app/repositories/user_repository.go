package repositories

import (
	"context"
	"encoding/json"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cfascholars/backend/internal/app/models"
	"github.com/cfascholars/backend/internal/pkg/apperrors"
	"github.com/cfascholars/backend/internal/pkg/dberrors"
	"github.com/cfascholars/backend/internal/pkg/logger"
)

// UserListParams holds parameters for filtering and paginating users.
type UserListParams struct {
	Role  *models.Role
	Limit int
	Skip  int
}

// UserRepository handles database operations for User.
type UserRepository struct {
	DB *pgxpool.Pool
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) selectUserQuery() squirrel.SelectBuilder {
	return squirrel.Select("id", "email", "password", "role", "profile", "created_at").
		From("users").
		PlaceholderFormat(squirrel.Dollar)
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	var profileJSON []byte
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Role, &profileJSON, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	if len(profileJSON) > 0 {
		if err := json.Unmarshal(profileJSON, &user.Profile); err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// CreateUser inserts a new user and returns its id. A duplicate email maps
// to apperrors.ErrEmailAlreadyExists.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	profileJSON, err := json.Marshal(user.Profile)
	if err != nil {
		return 0, err
	}

	sql, args, err := squirrel.Insert("users").
		Columns("email", "password", "role", "profile").
		Values(user.Email, user.Password, user.Role, profileJSON).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return 0, err
	}

	err = r.DB.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return 0, err
	}
	return user.ID, nil
}

// GetUserByID retrieves a user by id.
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.selectUserQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.DB.QueryRow(ctx, sql, args...))
}

// GetUserByEmail retrieves a user by email. Lookup is case-insensitive.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.selectUserQuery().
		Where(squirrel.Expr("lower(email) = lower(?)", email)).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.DB.QueryRow(ctx, sql, args...))
}

// GetAllUsers retrieves users newest first with optional role filtering.
func (r *UserRepository) GetAllUsers(ctx context.Context, params UserListParams) ([]*models.User, error) {
	query := r.selectUserQuery().OrderBy("created_at DESC")
	if params.Role != nil {
		query = query.Where(squirrel.Eq{"role": *params.Role})
	}
	if params.Limit > 0 {
		query = query.Limit(uint64(params.Limit))
	}
	if params.Skip > 0 {
		query = query.Offset(uint64(params.Skip))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list users SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list users query")
		return nil, err
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// CountUsers returns the total number of users matching the filter.
func (r *UserRepository) CountUsers(ctx context.Context, params UserListParams) (int64, error) {
	query := squirrel.Select("COUNT(*)").From("users").PlaceholderFormat(squirrel.Dollar)
	if params.Role != nil {
		query = query.Where(squirrel.Eq{"role": *params.Role})
	}
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

// UpdateEmail changes the account email. A duplicate maps to
// apperrors.ErrEmailAlreadyExists.
func (r *UserRepository) UpdateEmail(ctx context.Context, id int64, email string) error {
	sql, args, err := squirrel.Update("users").
		Set("email", email).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Int64("userId", id).Msg("Error updating user email")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePassword stores a new password hash for the user.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	sql, args, err := squirrel.Update("users").
		Set("password", passwordHash).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userId", id).Msg("Error updating user password")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateProfile replaces the user's profile document.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, profile models.Profile) error {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	sql, args, err := squirrel.Update("users").
		Set("profile", profileJSON).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userId", id).Msg("Error updating user profile")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateUser applies an admin-side update of email, role, and profile.
func (r *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	profileJSON, err := json.Marshal(user.Profile)
	if err != nil {
		return err
	}

	sql, args, err := squirrel.Update("users").
		Set("email", user.Email).
		Set("role", user.Role).
		Set("profile", profileJSON).
		Where(squirrel.Eq{"id": user.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Int64("userId", user.ID).Msg("Error updating user")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// DeleteUser removes the user row. Sessions for the user are removed by
// the caller.
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("users").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userId", id).Msg("Error deleting user")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
