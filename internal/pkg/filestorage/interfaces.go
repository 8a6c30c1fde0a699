package filestorage

import (
	"mime/multipart"
)

// FileStorage defines operations for storing and managing files
type FileStorage interface {
	// SaveFile saves a file and returns its URL
	SaveFile(file *multipart.FileHeader, directory string) (string, error)

	// DeleteFile deletes a file by URL
	DeleteFile(fileURL string) error

	// GetFullPath converts a relative URL to a full filesystem path
	GetFullPath(fileURL string) string
}
