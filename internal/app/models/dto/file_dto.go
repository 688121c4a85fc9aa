package dto

import (
	"github.com/cfascholars/backend/internal/app/models"
)

// UploadFileForm represents the multipart form fields accompanying an upload.
// The file itself arrives in the "file" part.
type UploadFileForm struct {
	UserID       int64                 `form:"userId" binding:"required"`
	EntityType   models.FileEntityType `form:"relatedEntityType" binding:"required" example:"application"`
	EntityID     int64                 `form:"relatedEntityId" binding:"required"`
	DocumentType string                `form:"documentType" binding:"required" example:"transcript"`
}

// FileResponse is the envelope carrying a single file record
type FileResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	File    *models.File `json:"file"`
}

// NewFileResponse wraps a file record in the standard success envelope
func NewFileResponse(message string, file *models.File) *FileResponse {
	return &FileResponse{Success: true, Message: message, File: file}
}

// FileListResponse is the envelope carrying the files attached to an entity
type FileListResponse struct {
	Success bool           `json:"success"`
	Files   []*models.File `json:"files"`
	Total   int64          `json:"total"`
}
