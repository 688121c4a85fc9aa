package repositories

import (
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cfascholars/backend/internal/app/models"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository          *UserRepository
	ApplicationRepository   *ApplicationRepository
	ChecklistRepository     *ChecklistRepository
	ReimbursementRepository *ReimbursementRepository
	AcceptanceRepository    *AcceptanceRepository
	FileRepository          *FileRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(db),
		ApplicationRepository:   NewApplicationRepository(db),
		ChecklistRepository:     NewChecklistRepository(db),
		ReimbursementRepository: NewReimbursementRepository(db),
		AcceptanceRepository:    NewAcceptanceRepository(db),
		FileRepository:          NewFileRepository(db),
	}
}

// buildOwnerRef assembles an embedded user reference from joined columns.
// The id is nil for left joins that matched nothing.
func buildOwnerRef(id *int64, email *string, profileJSON []byte) (*models.OwnerRef, error) {
	if id == nil {
		return nil, nil
	}
	ref := &models.OwnerRef{ID: *id}
	if email != nil {
		ref.Email = *email
	}
	if len(profileJSON) > 0 {
		if err := json.Unmarshal(profileJSON, &ref.Profile); err != nil {
			return nil, err
		}
	}
	return ref, nil
}
