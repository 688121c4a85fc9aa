package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfascholars/backend/internal/app/models"
	"github.com/cfascholars/backend/internal/app/models/dto"
	"github.com/cfascholars/backend/internal/pkg/apperrors"
)

type fakeFileStore struct {
	files     map[int64]*models.File
	nextID    int64
	createErr error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: make(map[int64]*models.File)}
}

func (s *fakeFileStore) CreateFile(ctx context.Context, file *models.File) (int64, error) {
	if s.createErr != nil {
		return 0, s.createErr
	}
	s.nextID++
	file.ID = s.nextID
	stored := *file
	s.files[file.ID] = &stored
	return file.ID, nil
}

func (s *fakeFileStore) GetFileByID(ctx context.Context, id int64) (*models.File, error) {
	file, ok := s.files[id]
	if !ok {
		return nil, apperrors.ErrFileNotFound
	}
	copied := *file
	return &copied, nil
}

func (s *fakeFileStore) GetFilesByEntity(ctx context.Context, entityType models.FileEntityType, entityID int64) ([]*models.File, error) {
	var out []*models.File
	for _, file := range s.files {
		if file.IsDeleted || file.RelatedEntityType != entityType || file.RelatedEntityID != entityID {
			continue
		}
		copied := *file
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeFileStore) SoftDeleteFile(ctx context.Context, id int64) error {
	file, ok := s.files[id]
	if !ok || file.IsDeleted {
		return apperrors.ErrFileNotFound
	}
	file.IsDeleted = true
	return nil
}

func (s *fakeFileStore) HardDeleteFile(ctx context.Context, id int64) error {
	if _, ok := s.files[id]; !ok {
		return apperrors.ErrFileNotFound
	}
	delete(s.files, id)
	return nil
}

type fakeBlobStore struct {
	blobs      map[string][]byte
	failUpload bool
	failDelete bool
	deleted    []string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (b *fakeBlobStore) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if b.failUpload {
		return "", errors.New("blob backend unavailable")
	}
	payload, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	url := "https://blobs.test/" + key
	b.blobs[url] = payload
	return url, nil
}

func (b *fakeBlobStore) Delete(ctx context.Context, url string) error {
	if b.failDelete {
		return errors.New("blob backend unavailable")
	}
	b.deleted = append(b.deleted, url)
	delete(b.blobs, url)
	return nil
}

// makeFileHeader builds a real multipart.FileHeader whose Open works.
func makeFileHeader(t *testing.T, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	partHeader.Set("Content-Type", contentType)
	part, err := writer.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32 << 20))
	return req.MultipartForm.File["file"][0]
}

func validUploadForm() *dto.UploadFileForm {
	return &dto.UploadFileForm{
		UserID:       5,
		EntityType:   models.FileEntityApplication,
		EntityID:     3,
		DocumentType: "transcript",
	}
}

func TestValidateUpload(t *testing.T) {
	assert.ErrorIs(t, ValidateUpload(nil), apperrors.ErrFileMissing)

	tooLarge := &multipart.FileHeader{
		Filename: "big.pdf",
		Size:     MaxFileSize + 1,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"application/pdf"}},
	}
	assert.ErrorIs(t, ValidateUpload(tooLarge), apperrors.ErrFileTooLarge)

	badType := &multipart.FileHeader{
		Filename: "malware.exe",
		Size:     128,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"application/x-msdownload"}},
	}
	assert.ErrorIs(t, ValidateUpload(badType), apperrors.ErrFileTypeNotAllowed)

	ok := &multipart.FileHeader{
		Filename: "transcript.pdf",
		Size:     128,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"application/pdf"}},
	}
	assert.NoError(t, ValidateUpload(ok))
}

func TestUploadFileWritesBlobThenRecord(t *testing.T) {
	files := newFakeFileStore()
	blobs := newFakeBlobStore()
	svc := NewFileService(files, blobs)

	header := makeFileHeader(t, "transcript.pdf", "application/pdf", []byte("%PDF-1.4"))
	file, err := svc.UploadFile(context.Background(), validUploadForm(), header)
	require.NoError(t, err)

	assert.Equal(t, "transcript.pdf", file.Metadata.OriginalName)
	assert.Equal(t, "application/pdf", file.Metadata.MimeType)
	assert.Equal(t, "transcript", file.Metadata.DocumentType)
	assert.Contains(t, blobs.blobs, file.Metadata.StorageURL)
	assert.Equal(t, []byte("%PDF-1.4"), blobs.blobs[file.Metadata.StorageURL])
}

func TestUploadFileRejectsUnknownEntityType(t *testing.T) {
	svc := NewFileService(newFakeFileStore(), newFakeBlobStore())

	form := validUploadForm()
	form.EntityType = "invoice"
	header := makeFileHeader(t, "transcript.pdf", "application/pdf", []byte("%PDF-1.4"))

	_, err := svc.UploadFile(context.Background(), form, header)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUploadFileBlobFailureLeavesNoRecord(t *testing.T) {
	files := newFakeFileStore()
	blobs := newFakeBlobStore()
	blobs.failUpload = true
	svc := NewFileService(files, blobs)

	header := makeFileHeader(t, "transcript.pdf", "application/pdf", []byte("%PDF-1.4"))
	_, err := svc.UploadFile(context.Background(), validUploadForm(), header)

	assert.ErrorIs(t, err, apperrors.ErrDependencyFailed)
	assert.Empty(t, files.files)
}

func TestUploadFileInsertFailureReclaimsBlob(t *testing.T) {
	files := newFakeFileStore()
	files.createErr = errors.New("insert failed")
	blobs := newFakeBlobStore()
	svc := NewFileService(files, blobs)

	header := makeFileHeader(t, "transcript.pdf", "application/pdf", []byte("%PDF-1.4"))
	_, err := svc.UploadFile(context.Background(), validUploadForm(), header)

	require.Error(t, err)
	assert.Empty(t, blobs.blobs)
	assert.Len(t, blobs.deleted, 1)
}

func TestGetFileByIDHidesSoftDeleted(t *testing.T) {
	files := newFakeFileStore()
	blobs := newFakeBlobStore()
	svc := NewFileService(files, blobs)

	header := makeFileHeader(t, "transcript.pdf", "application/pdf", []byte("%PDF-1.4"))
	file, err := svc.UploadFile(context.Background(), validUploadForm(), header)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFile(context.Background(), file.ID, false))

	_, err = svc.GetFileByID(context.Background(), file.ID)
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)

	// The blob survives a soft delete.
	assert.Contains(t, blobs.blobs, file.Metadata.StorageURL)
}

func TestLookupFileReturnsSoftDeleted(t *testing.T) {
	files := newFakeFileStore()
	blobs := newFakeBlobStore()
	svc := NewFileService(files, blobs)

	header := makeFileHeader(t, "transcript.pdf", "application/pdf", []byte("%PDF-1.4"))
	file, err := svc.UploadFile(context.Background(), validUploadForm(), header)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFile(context.Background(), file.ID, false))

	found, err := svc.LookupFile(context.Background(), file.ID)
	require.NoError(t, err)
	assert.Equal(t, file.ID, found.ID)
	assert.Equal(t, file.UserID, found.UserID)
	assert.True(t, found.IsDeleted)
}

func TestPermanentDeleteAfterSoftDeletePurgesBlob(t *testing.T) {
	files := newFakeFileStore()
	blobs := newFakeBlobStore()
	svc := NewFileService(files, blobs)

	header := makeFileHeader(t, "transcript.pdf", "application/pdf", []byte("%PDF-1.4"))
	file, err := svc.UploadFile(context.Background(), validUploadForm(), header)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFile(context.Background(), file.ID, false))
	require.NoError(t, svc.DeleteFile(context.Background(), file.ID, true))

	assert.NotContains(t, blobs.blobs, file.Metadata.StorageURL)
	assert.Empty(t, files.files)
}

func TestPermanentDeleteRemovesBlobFirst(t *testing.T) {
	files := newFakeFileStore()
	blobs := newFakeBlobStore()
	svc := NewFileService(files, blobs)

	header := makeFileHeader(t, "transcript.pdf", "application/pdf", []byte("%PDF-1.4"))
	file, err := svc.UploadFile(context.Background(), validUploadForm(), header)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFile(context.Background(), file.ID, true))

	assert.NotContains(t, blobs.blobs, file.Metadata.StorageURL)
	assert.Empty(t, files.files)
}

func TestPermanentDeleteKeepsRecordWhenBlobDeleteFails(t *testing.T) {
	files := newFakeFileStore()
	blobs := newFakeBlobStore()
	svc := NewFileService(files, blobs)

	header := makeFileHeader(t, "transcript.pdf", "application/pdf", []byte("%PDF-1.4"))
	file, err := svc.UploadFile(context.Background(), validUploadForm(), header)
	require.NoError(t, err)

	blobs.failDelete = true
	err = svc.DeleteFile(context.Background(), file.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrDependencyFailed)

	// The record stays so it never points at a missing blob silently.
	_, err = svc.GetFileByID(context.Background(), file.ID)
	assert.NoError(t, err)
}

func TestGetFilesByEntityExcludesDeleted(t *testing.T) {
	files := newFakeFileStore()
	blobs := newFakeBlobStore()
	svc := NewFileService(files, blobs)

	first, err := svc.UploadFile(context.Background(), validUploadForm(), makeFileHeader(t, "a.pdf", "application/pdf", []byte("a")))
	require.NoError(t, err)
	_, err = svc.UploadFile(context.Background(), validUploadForm(), makeFileHeader(t, "b.pdf", "application/pdf", []byte("b")))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFile(context.Background(), first.ID, false))

	remaining, err := svc.GetFilesByEntity(context.Background(), models.FileEntityApplication, 3)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "b.pdf", remaining[0].Metadata.OriginalName)
}
