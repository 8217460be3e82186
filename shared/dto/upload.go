package dto

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"staybook/shared/constant"
)

// Upload is a file received in a multipart form. Content type and size are
// plain fields so the usual validate tags apply to them.
type Upload struct {
	File        multipart.File `json:"-"`
	Filename    string         `json:"filename"`
	ContentType string         `json:"content_type" validate:"oneof=image/png image/jpg image/jpeg image/webp"`
	Size        int64          `json:"size"         validate:"gt=0,lte=2097152"`
}

// NewUpload opens the file behind header. The caller closes Upload.File.
func NewUpload(header *multipart.FileHeader) (*Upload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}

	return &Upload{
		File:        file,
		Filename:    header.Filename,
		ContentType: header.Header.Get(constant.RequestHeaderContentType),
		Size:        header.Size,
	}, nil
}

// Extension returns the lower-cased extension of the original file name,
// including the dot, or an empty string.
func (u *Upload) Extension() string {
	return strings.ToLower(filepath.Ext(u.Filename))
}

func (u *Upload) Close() {
	if u != nil && u.File != nil {
		_ = u.File.Close()
	}
}
