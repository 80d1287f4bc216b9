package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pskpp/festival/storage"
)

// maxParallelUploads limits concurrent uploads to the object store.
const maxParallelUploads = 4

// UploadFile is one file of a multipart upload.
type UploadFile struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// Разрешённые типы файлов для галереи.
var galleryContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"video/mp4":  true,
	"video/webm": true,
}

func baseContentType(ct string) string {
	ct, _, _ = strings.Cut(ct, ";")
	return strings.ToLower(strings.TrimSpace(ct))
}

// displayName is the file name without directory and extension.
func displayName(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// uploadAll stores files concurrently. If any upload fails the ones that
// succeeded are deleted again.
func uploadAll(ctx context.Context, uploader storage.FileUploader, logger *slog.Logger, prefix string, files []UploadFile) ([]*storage.UploadResult, error) {
	if uploader == nil {
		return nil, ErrUploaderUnavailable
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrNoFiles)
	}

	results := make([]*storage.UploadResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelUploads)
	for i, f := range files {
		g.Go(func() error {
			res, err := uploader.Upload(gctx, storage.ObjectKey(prefix, f.Filename), f.ContentType, f.Reader)
			if err != nil {
				return fmt.Errorf("failed to upload %q: %w", f.Filename, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, res := range results {
			if res == nil {
				continue
			}
			if delErr := uploader.Delete(context.WithoutCancel(ctx), res.Key); delErr != nil {
				logger.Warn("failed to clean up uploaded object", slog.String("key", res.Key), slog.Any("error", delErr))
			}
		}
		return nil, err
	}
	return results, nil
}

func deleteStoredObject(ctx context.Context, uploader storage.FileUploader, logger *slog.Logger, key string) {
	if key == "" || uploader == nil {
		return
	}
	if err := uploader.Delete(ctx, key); err != nil {
		logger.Warn("failed to delete stored object", slog.String("key", key), slog.Any("error", err))
	}
}
