package session

import (
	"context"
	"sync"
	"time"

	"github.com/cfascholars/backend/internal/pkg/apperrors"
	"github.com/cfascholars/backend/internal/pkg/auth"
)

// Store persists server-side sessions keyed by an opaque token. Only the
// user id is stored; the full user record is rehydrated from the user
// repository on each request.
type Store interface {
	// Create establishes a new session for userID and returns its token.
	Create(ctx context.Context, userID int64) (string, error)
	// Get resolves a token to the owning user id. Expired or unknown
	// tokens return apperrors.ErrSessionNotFound.
	Get(ctx context.Context, token string) (int64, error)
	// Destroy removes the session. Destroying an unknown token is a no-op.
	Destroy(ctx context.Context, token string) error
}

// MemoryStore is a mutex-guarded in-process Store used in tests and
// single-node development setups.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	userID    int64
	expiresAt time.Time
}

// NewMemoryStore creates a MemoryStore with the given session TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Create(ctx context.Context, userID int64) (string, error) {
	token, err := auth.NewSessionToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{
		userID:    userID,
		expiresAt: time.Now().Add(s.ttl),
	}
	return token, nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[token]
	if !ok {
		return 0, apperrors.ErrSessionNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, token)
		return 0, apperrors.ErrSessionNotFound
	}
	return entry.userID, nil
}

func (s *MemoryStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}
