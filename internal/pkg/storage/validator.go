package storage

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
	ErrInvalidMimeType = errors.New("file type not allowed")
	ErrEmptyFile       = errors.New("file is empty")
)

// MaxImageSize bounds gallery uploads (10 MB).
const MaxImageSize int64 = 10 * 1024 * 1024

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// ReadImage reads at most maxSize bytes and checks the content is an allowed image type.
// The MIME type is sniffed from the content, not taken from the file name.
func ReadImage(reader io.Reader, maxSize int64) ([]byte, string, error) {
	data, err := io.ReadAll(io.LimitReader(reader, maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, "", ErrEmptyFile
	}
	if int64(len(data)) > maxSize {
		return nil, "", ErrFileTooLarge
	}

	mimeType := http.DetectContentType(data)
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	if _, ok := allowedImageTypes[mimeType]; !ok {
		return nil, "", ErrInvalidMimeType
	}
	return data, mimeType, nil
}

// ExtensionForMime returns the file extension for an allowed image MIME type
func ExtensionForMime(mimeType string) string {
	return allowedImageTypes[mimeType]
}
