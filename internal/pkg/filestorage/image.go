package filestorage

import (
	"mime/multipart"

	"github.com/citycare/citycare/internal/pkg/apperrors"
)

// MaxImageSize is the maximum accepted size for a complaint image upload.
const MaxImageSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// CheckImage validates an uploaded image against the accepted content types
// and the size limit. The declared Content-Type header is checked; files
// without one are rejected.
func CheckImage(file *multipart.FileHeader) error {
	if file == nil {
		return apperrors.ErrInvalidImageUpload
	}

	if file.Size <= 0 || file.Size > MaxImageSize {
		return apperrors.ErrInvalidImageUpload
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return apperrors.ErrInvalidImageUpload
	}

	return nil
}
