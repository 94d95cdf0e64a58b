package file

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

const defaultURLExpiry = 15 * time.Minute

var photoContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type FileService interface {
	// UploadEmployeePhoto stores an image under a generated key and returns the key.
	UploadEmployeePhoto(ctx context.Context, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadEmployeePhoto implements FileService.
func (s *fileServiceImpl) UploadEmployeePhoto(ctx context.Context, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	contentType, ok := photoContentTypes[ext]
	if !ok {
		return "", fmt.Errorf("invalid file type %q: only jpg, jpeg, png allowed", ext)
	}

	key := path.Join("employees", uuid.New().String()+ext)

	uploadedPath, err := s.storage.Upload(ctx, file, key, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload employee photo: %w", err)
	}

	return uploadedPath, nil
}

// DeleteFile implements FileService.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL implements FileService.
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string) (string, error) {
	return s.storage.GetURL(ctx, path, defaultURLExpiry)
}
