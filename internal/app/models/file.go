package models

import "time"

// FileEntityType names the resource kind a file belongs to.
type FileEntityType string

const (
	FileEntityApplication    FileEntityType = "application"
	FileEntityMidYearReport  FileEntityType = "midYearReport"
	FileEntityPaymentRequest FileEntityType = "paymentRequest"
)

// IsValid reports whether the entity type is one of the known values.
func (t FileEntityType) IsValid() bool {
	switch t {
	case FileEntityApplication, FileEntityMidYearReport, FileEntityPaymentRequest:
		return true
	}
	return false
}

// FileMetadata describes the stored payload.
type FileMetadata struct {
	OriginalName string `json:"originalName" db:"original_name"`
	MimeType     string `json:"mimeType" db:"mime_type"`
	Size         int64  `json:"size" db:"size"`
	StorageURL   string `json:"storageUrl" db:"storage_url"`
	DocumentType string `json:"documentType" db:"document_type"`
}

// File defines the uploaded-document model based on the 'files' table.
// Deletion is soft by default; the blob is retained until a permanent
// delete.
type File struct {
	ID                int64          `json:"id" db:"id"`
	UserID            int64          `json:"userId" db:"user_id"`
	RelatedEntityType FileEntityType `json:"relatedEntityType" db:"related_entity_type"`
	RelatedEntityID   int64          `json:"relatedEntityId" db:"related_entity_id"`
	Metadata          FileMetadata   `json:"fileMetadata"`
	UploadedAt        time.Time      `json:"uploadedAt" db:"uploaded_at"`
	IsDeleted         bool           `json:"isDeleted" db:"is_deleted"`
	DeletedAt         *time.Time     `json:"deletedAt,omitempty" db:"deleted_at"`
}
