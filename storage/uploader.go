package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var ErrObjectNotFound = errors.New("stored object not found")

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores uploaded media (sponsor logos, gallery files) and
// returns the URL they are served from.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// ObjectKey builds a unique key under prefix that keeps the file extension,
// e.g. "sponsors/3f2c...e1.png".
func ObjectKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(prefix, uuid.NewString()+ext)
}
