package filestorage

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/citycare/citycare/internal/pkg/apperrors"
)

func header(contentType string, size int64) *multipart.FileHeader {
	h := &multipart.FileHeader{
		Filename: "photo.jpg",
		Size:     size,
		Header:   textproto.MIMEHeader{},
	}
	if contentType != "" {
		h.Header.Set("Content-Type", contentType)
	}
	return h
}

func TestCheckImage(t *testing.T) {
	cases := []struct {
		name    string
		file    *multipart.FileHeader
		wantErr bool
	}{
		{"jpeg ok", header("image/jpeg", 1024), false},
		{"png ok", header("image/png", 1024), false},
		{"webp ok", header("image/webp", 1024), false},
		{"at size limit", header("image/jpeg", MaxImageSize), false},
		{"over size limit", header("image/jpeg", MaxImageSize + 1), true},
		{"empty file", header("image/jpeg", 0), true},
		{"gif rejected", header("image/gif", 1024), true},
		{"pdf rejected", header("application/pdf", 1024), true},
		{"missing content type", header("", 1024), true},
		{"nil header", nil, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckImage(tc.file)
			if tc.wantErr && err != apperrors.ErrInvalidImageUpload {
				t.Fatalf("expected ErrInvalidImageUpload, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}
