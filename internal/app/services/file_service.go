package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cfascholars/backend/internal/app/models"
	"github.com/cfascholars/backend/internal/app/models/dto"
	"github.com/cfascholars/backend/internal/pkg/apperrors"
	"github.com/cfascholars/backend/internal/pkg/logger"
	"github.com/cfascholars/backend/internal/pkg/storage"
)

// MaxFileSize is the upload size ceiling in bytes.
const MaxFileSize = 10 << 20

// allowedMimeTypes is the upload content-type allow-list.
var allowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"image/jpeg":         true,
	"image/png":          true,
	"image/jpg":          true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// entityFolders maps the related entity type to its storage key namespace.
var entityFolders = map[models.FileEntityType]string{
	models.FileEntityApplication:    "applications",
	models.FileEntityMidYearReport:  "mid-year-reports",
	models.FileEntityPaymentRequest: "payment-requests",
}

// FileStore is the subset of the file repository the service needs.
type FileStore interface {
	CreateFile(ctx context.Context, file *models.File) (int64, error)
	GetFileByID(ctx context.Context, id int64) (*models.File, error)
	GetFilesByEntity(ctx context.Context, entityType models.FileEntityType, entityID int64) ([]*models.File, error)
	SoftDeleteFile(ctx context.Context, id int64) error
	HardDeleteFile(ctx context.Context, id int64) error
}

// FileService defines the interface for document upload operations
type FileService interface {
	UploadFile(ctx context.Context, form *dto.UploadFileForm, header *multipart.FileHeader) (*models.File, error)
	GetFileByID(ctx context.Context, id int64) (*models.File, error)
	LookupFile(ctx context.Context, id int64) (*models.File, error)
	GetFilesByEntity(ctx context.Context, entityType models.FileEntityType, entityID int64) ([]*models.File, error)
	DeleteFile(ctx context.Context, id int64, permanent bool) error
}

// fileServiceImpl implements FileService
type fileServiceImpl struct {
	fileStore FileStore
	blobs     storage.BlobStore
}

// NewFileService creates a new FileService
func NewFileService(fileStore FileStore, blobs storage.BlobStore) FileService {
	return &fileServiceImpl{
		fileStore: fileStore,
		blobs:     blobs,
	}
}

// ValidateUpload checks the size ceiling and content-type allow-list.
func ValidateUpload(header *multipart.FileHeader) error {
	if header == nil {
		return apperrors.ErrFileMissing
	}
	if header.Size > MaxFileSize {
		return apperrors.ErrFileTooLarge
	}
	contentType := header.Header.Get("Content-Type")
	if !allowedMimeTypes[contentType] {
		return apperrors.ErrFileTypeNotAllowed
	}
	return nil
}

// UploadFile validates the payload, writes the blob, and only then inserts
// the record. A failed blob write leaves no database row behind.
func (s *fileServiceImpl) UploadFile(ctx context.Context, form *dto.UploadFileForm, header *multipart.FileHeader) (*models.File, error) {
	if !form.EntityType.IsValid() {
		return nil, apperrors.NewValidationError("unknown entity type")
	}
	if err := ValidateUpload(header); err != nil {
		return nil, err
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening uploaded file: %w", err)
	}
	defer src.Close()

	contentType := header.Header.Get("Content-Type")
	key := storage.BuildObjectKey(entityFolders[form.EntityType], header.Filename)
	url, err := s.blobs.Upload(ctx, key, contentType, src, header.Size)
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Blob upload failed")
		return nil, apperrors.ErrDependencyFailed
	}

	file := &models.File{
		UserID:            form.UserID,
		RelatedEntityType: form.EntityType,
		RelatedEntityID:   form.EntityID,
		Metadata: models.FileMetadata{
			OriginalName: header.Filename,
			MimeType:     contentType,
			Size:         header.Size,
			StorageURL:   url,
			DocumentType: form.DocumentType,
		},
	}
	if _, err := s.fileStore.CreateFile(ctx, file); err != nil {
		// The blob is orphaned here; try to reclaim it.
		if delErr := s.blobs.Delete(ctx, url); delErr != nil {
			logger.Warn().Err(delErr).Str("url", url).Msg("Failed to reclaim blob after insert failure")
		}
		return nil, err
	}

	logger.Info().Int64("fileId", file.ID).Str("entityType", string(form.EntityType)).Msg("File uploaded")
	return file, nil
}

// GetFileByID retrieves a file record. Soft-deleted files resolve as not
// found.
func (s *fileServiceImpl) GetFileByID(ctx context.Context, id int64) (*models.File, error) {
	file, err := s.fileStore.GetFileByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if file.IsDeleted {
		return nil, apperrors.ErrFileNotFound
	}
	return file, nil
}

// LookupFile retrieves a file record regardless of its soft-delete state.
// Delete authorization goes through here so an already soft-deleted file
// can still be purged permanently.
func (s *fileServiceImpl) LookupFile(ctx context.Context, id int64) (*models.File, error) {
	return s.fileStore.GetFileByID(ctx, id)
}

// GetFilesByEntity retrieves the live files attached to one entity.
func (s *fileServiceImpl) GetFilesByEntity(ctx context.Context, entityType models.FileEntityType, entityID int64) ([]*models.File, error) {
	if !entityType.IsValid() {
		return nil, apperrors.NewValidationError("unknown entity type")
	}
	return s.fileStore.GetFilesByEntity(ctx, entityType, entityID)
}

// DeleteFile soft-deletes by default. A permanent delete removes the blob
// first and keeps the record when that removal fails, so the record never
// points at its own absence.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, id int64, permanent bool) error {
	file, err := s.fileStore.GetFileByID(ctx, id)
	if err != nil {
		return err
	}

	if !permanent {
		if file.IsDeleted {
			return apperrors.ErrFileNotFound
		}
		return s.fileStore.SoftDeleteFile(ctx, id)
	}

	if err := s.blobs.Delete(ctx, file.Metadata.StorageURL); err != nil {
		logger.Error().Err(err).Int64("fileId", id).Msg("Blob delete failed, keeping record")
		return apperrors.ErrDependencyFailed
	}
	return s.fileStore.HardDeleteFile(ctx, id)
}
