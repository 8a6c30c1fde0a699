package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/citycare/citycare/internal/pkg/logger"
)

// LocalStorage implements FileStorage using the local filesystem
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a new local file storage
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// SaveFile saves an uploaded file under the given directory and returns its URL
func (s *LocalStorage) SaveFile(file *multipart.FileHeader, directory string) (string, error) {
	dirPath := filepath.Join(s.basePath, directory)
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	ext := filepath.Ext(file.Filename)
	fileName := uuid.New().String() + ext
	filePath := filepath.Join(dirPath, fileName)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	fileURL := fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, directory, fileName)
	logger.Debug().Str("path", filePath).Str("url", fileURL).Msg("File saved")

	return fileURL, nil
}

// DeleteFile deletes a file by its URL
func (s *LocalStorage) DeleteFile(fileURL string) error {
	filePath := s.GetFullPath(fileURL)
	if filePath == "" {
		return fmt.Errorf("invalid file URL: %s", fileURL)
	}

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GetFullPath converts a file URL to its path on disk
func (s *LocalStorage) GetFullPath(fileURL string) string {
	idx := strings.Index(fileURL, "/uploads/")
	if idx < 0 {
		return ""
	}
	relative := strings.TrimPrefix(fileURL[idx:], "/uploads/")
	return filepath.Join(s.basePath, filepath.FromSlash(relative))
}
