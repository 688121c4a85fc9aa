package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cfascholars/backend/internal/app/models"
	"github.com/cfascholars/backend/internal/pkg/apperrors"
	"github.com/cfascholars/backend/internal/pkg/logger"
)

// FileRepository handles database operations for File.
type FileRepository struct {
	DB *pgxpool.Pool
}

// NewFileRepository creates a new instance of FileRepository.
func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{DB: db}
}

func (r *FileRepository) selectFileQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "user_id", "related_entity_type", "related_entity_id",
		"original_name", "mime_type", "size", "storage_url", "document_type",
		"uploaded_at", "is_deleted", "deleted_at",
	).From("files").
		PlaceholderFormat(squirrel.Dollar)
}

func scanFile(row pgx.Row) (*models.File, error) {
	var file models.File
	err := row.Scan(
		&file.ID, &file.UserID, &file.RelatedEntityType, &file.RelatedEntityID,
		&file.Metadata.OriginalName, &file.Metadata.MimeType, &file.Metadata.Size,
		&file.Metadata.StorageURL, &file.Metadata.DocumentType,
		&file.UploadedAt, &file.IsDeleted, &file.DeletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrFileNotFound
		}
		logger.Error().Err(err).Msg("Error scanning file row")
		return nil, err
	}
	return &file, nil
}

// CreateFile inserts a file record after the blob upload has succeeded.
func (r *FileRepository) CreateFile(ctx context.Context, file *models.File) (int64, error) {
	sql, args, err := squirrel.Insert("files").
		Columns("user_id", "related_entity_type", "related_entity_id",
			"original_name", "mime_type", "size", "storage_url", "document_type").
		Values(file.UserID, file.RelatedEntityType, file.RelatedEntityID,
			file.Metadata.OriginalName, file.Metadata.MimeType, file.Metadata.Size,
			file.Metadata.StorageURL, file.Metadata.DocumentType).
		Suffix("RETURNING id, uploaded_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create file SQL")
		return 0, err
	}

	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&file.ID, &file.UploadedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create file query")
		return 0, err
	}
	return file.ID, nil
}

// GetFileByID retrieves a file record including soft-deleted ones. Callers
// decide whether a deleted record is visible.
func (r *FileRepository) GetFileByID(ctx context.Context, id int64) (*models.File, error) {
	sql, args, err := r.selectFileQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanFile(r.DB.QueryRow(ctx, sql, args...))
}

// GetFilesByEntity retrieves all live files attached to one entity,
// newest first.
func (r *FileRepository) GetFilesByEntity(ctx context.Context, entityType models.FileEntityType, entityID int64) ([]*models.File, error) {
	sql, args, err := r.selectFileQuery().
		Where(squirrel.Eq{"related_entity_type": entityType, "related_entity_id": entityID, "is_deleted": false}).
		OrderBy("uploaded_at DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list files SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list files query")
		return nil, err
	}
	defer rows.Close()

	files := []*models.File{}
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, rows.Err()
}

// SoftDeleteFile marks the record deleted without touching the blob.
func (r *FileRepository) SoftDeleteFile(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Update("files").
		Set("is_deleted", true).
		Set("deleted_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "is_deleted": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("fileId", id).Msg("Error soft deleting file")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFileNotFound
	}
	return nil
}

// HardDeleteFile removes the record. The blob must already be gone.
func (r *FileRepository) HardDeleteFile(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("files").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("fileId", id).Msg("Error deleting file record")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFileNotFound
	}
	return nil
}
