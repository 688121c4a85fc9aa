package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cfascholars/backend/internal/app/models"
	"github.com/cfascholars/backend/internal/app/models/dto"
	"github.com/cfascholars/backend/internal/app/services"
	"github.com/cfascholars/backend/internal/middleware"
	"github.com/cfascholars/backend/internal/pkg/apperrors"
)

// FileController handles document upload operations
type FileController struct {
	fileService services.FileService
}

// NewFileController creates a new FileController
func NewFileController(fileService services.FileService) *FileController {
	return &FileController{fileService: fileService}
}

// Upload godoc
// @Summary Upload a supporting document
// @Description Accepts PDF, JPEG, PNG, and Word documents up to 10MB
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security CookieAuth
// @Param file formData file true "Document"
// @Param userId formData int true "Owner user ID"
// @Param relatedEntityType formData string true "application | midYearReport | paymentRequest"
// @Param relatedEntityId formData int true "Related entity ID"
// @Param documentType formData string true "Document type label"
// @Success 201 {object} dto.FileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/files/upload [post]
func (c *FileController) Upload(ctx *gin.Context) {
	var form dto.UploadFileForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "userId, relatedEntityType, relatedEntityId, and documentType are required")))
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrFileMissing)
		return
	}

	file, err := c.fileService.UploadFile(ctx, &form, header)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewFileResponse("File uploaded", file))
}

// GetByID godoc
// @Summary Get a file record by ID
// @Description Students can only read their own files
// @Tags files
// @Produce json
// @Security CookieAuth
// @Param fileId path int true "File ID"
// @Success 200 {object} dto.FileResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/files/{fileId} [get]
func (c *FileController) GetByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "fileId")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid file id"))
		return
	}

	file, err := c.fileService.GetFileByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user := middleware.CurrentUser(ctx)
	if user.Role != models.RoleAdmin && file.UserID != user.ID {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewFileResponse("", file))
}

// GetByEntity godoc
// @Summary List the files attached to an entity
// @Description Non-admins see only their own uploads
// @Tags files
// @Produce json
// @Security CookieAuth
// @Param entityType path string true "application | midYearReport | paymentRequest"
// @Param entityId path int true "Related entity ID"
// @Success 200 {object} dto.FileListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/files/entity/{entityType}/{entityId} [get]
func (c *FileController) GetByEntity(ctx *gin.Context) {
	entityType := models.FileEntityType(ctx.Param("entityType"))
	entityID, err := parseIDParam(ctx, "entityId")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid entity id"))
		return
	}

	files, err := c.fileService.GetFilesByEntity(ctx, entityType, entityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user := middleware.CurrentUser(ctx)
	if user.Role != models.RoleAdmin {
		own := files[:0]
		for _, file := range files {
			if file.UserID == user.ID {
				own = append(own, file)
			}
		}
		files = own
	}

	ctx.JSON(http.StatusOK, &dto.FileListResponse{
		Success: true,
		Files:   files,
		Total:   int64(len(files)),
	})
}

// Delete godoc
// @Summary Delete a file
// @Description Soft delete by default; permanent=true removes the blob and the record
// @Tags files
// @Produce json
// @Security CookieAuth
// @Param fileId path int true "File ID"
// @Param permanent query bool false "Permanently delete the blob and record"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/files/{fileId} [delete]
func (c *FileController) Delete(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "fileId")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid file id"))
		return
	}

	file, err := c.fileService.LookupFile(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	user := middleware.CurrentUser(ctx)
	if user.Role != models.RoleAdmin && file.UserID != user.ID {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	permanent := ctx.Query("permanent") == "true"
	if err := c.fileService.DeleteFile(ctx, id, permanent); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if permanent {
		ctx.JSON(http.StatusOK, dto.NewMessageResponse("File permanently deleted"))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("File deleted"))
}
