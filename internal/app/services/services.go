package services

import (
	"github.com/cfascholars/backend/internal/app/repositories"
	"github.com/cfascholars/backend/internal/pkg/session"
	"github.com/cfascholars/backend/internal/pkg/storage"
)

// Services holds all the service instances
type Services struct {
	UserService          UserService
	ApplicationService   ApplicationService
	ChecklistService     ChecklistService
	ReimbursementService ReimbursementService
	AcceptanceService    AcceptanceService
	FileService          FileService
}

// NewServices initializes all services on top of the repositories, the
// session store, and the blob store.
func NewServices(repos *repositories.Repositories, sessions session.Store, blobs storage.BlobStore) *Services {
	return &Services{
		UserService:          NewUserService(repos.UserRepository, sessions),
		ApplicationService:   NewApplicationService(repos.ApplicationRepository),
		ChecklistService:     NewChecklistService(repos.ChecklistRepository),
		ReimbursementService: NewReimbursementService(repos.ReimbursementRepository),
		AcceptanceService:    NewAcceptanceService(repos.AcceptanceRepository),
		FileService:          NewFileService(repos.FileRepository, blobs),
	}
}
