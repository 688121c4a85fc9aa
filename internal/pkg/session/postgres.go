package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cfascholars/backend/internal/pkg/apperrors"
	"github.com/cfascholars/backend/internal/pkg/auth"
)

// PostgresStore persists sessions in the sessions table so they survive
// restarts and are shared between instances.
type PostgresStore struct {
	db  *pgxpool.Pool
	ttl time.Duration
}

// NewPostgresStore creates a PostgresStore with the given session TTL.
func NewPostgresStore(db *pgxpool.Pool, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: db, ttl: ttl}
}

func (s *PostgresStore) Create(ctx context.Context, userID int64) (string, error) {
	token, err := auth.NewSessionToken()
	if err != nil {
		return "", err
	}

	query := `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, $3)
	`
	if _, err := s.db.Exec(ctx, query, token, userID, time.Now().Add(s.ttl)); err != nil {
		return "", fmt.Errorf("error creating session: %w", err)
	}
	return token, nil
}

func (s *PostgresStore) Get(ctx context.Context, token string) (int64, error) {
	query := `
		SELECT user_id FROM sessions
		WHERE token = $1 AND expires_at > now()
	`

	var userID int64
	err := s.db.QueryRow(ctx, query, token).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrSessionNotFound
		}
		return 0, fmt.Errorf("error reading session: %w", err)
	}
	return userID, nil
}

func (s *PostgresStore) Destroy(ctx context.Context, token string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("error destroying session: %w", err)
	}
	return nil
}

// PurgeExpired removes expired rows. Called opportunistically from the
// bootstrap; the Get query already ignores expired sessions.
func (s *PostgresStore) PurgeExpired(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	return err
}
