package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pskpp/festival/models"
	"github.com/pskpp/festival/repositories"
	"github.com/pskpp/festival/storage"
)

var ErrGalleryItemNotFound = errors.New("gallery item not found")

type GalleryService interface {
	List(ctx context.Context) ([]models.GalleryItem, error)
	Upload(ctx context.Context, files []UploadFile) ([]models.GalleryItem, error)
	AddURL(ctx context.Context, mediaType models.MediaType, src string) (*models.GalleryItem, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) ([]models.GalleryItem, error)
}

type galleryService struct {
	gallery  *repositories.GalleryRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewGalleryService(gallery *repositories.GalleryRepository, uploader storage.FileUploader, logger *slog.Logger) GalleryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &galleryService{gallery: gallery, uploader: uploader, logger: logger}
}

func (s *galleryService) List(ctx context.Context) ([]models.GalleryItem, error) {
	return s.gallery.List(ctx)
}

func mediaTypeOf(contentType string) (models.MediaType, bool) {
	ct := baseContentType(contentType)
	if !galleryContentTypes[ct] {
		return "", false
	}
	if strings.HasPrefix(ct, "video/") {
		return models.MediaVideo, true
	}
	return models.MediaImage, true
}

func (s *galleryService) Upload(ctx context.Context, files []UploadFile) ([]models.GalleryItem, error) {
	types := make([]models.MediaType, len(files))
	for i, f := range files {
		mt, ok := mediaTypeOf(f.ContentType)
		if !ok {
			return nil, fmt.Errorf("%w: %w: %s (%s)", ErrValidationFailed, ErrUnsupportedMediaType, f.Filename, f.ContentType)
		}
		types[i] = mt
	}

	results, err := uploadAll(ctx, s.uploader, s.logger, "gallery", files)
	if err != nil {
		return nil, err
	}

	created := make([]models.GalleryItem, 0, len(files))
	for i := range files {
		created = append(created, models.GalleryItem{
			ID:         uuid.NewString(),
			Type:       types[i],
			Src:        results[i].Location,
			StorageKey: results[i].Key,
		})
	}
	if err := s.gallery.CreateMany(ctx, created); err != nil {
		for _, item := range created {
			deleteStoredObject(ctx, s.uploader, s.logger, item.StorageKey)
		}
		return nil, handleRepositoryError(err, ErrGalleryItemNotFound)
	}
	return created, nil
}

// AddURL adds an externally hosted image or video.
func (s *galleryService) AddURL(ctx context.Context, mediaType models.MediaType, src string) (*models.GalleryItem, error) {
	item := models.GalleryItem{ID: uuid.NewString(), Type: mediaType, Src: strings.TrimSpace(src)}
	if err := item.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := s.gallery.Create(ctx, item, false); err != nil {
		return nil, handleRepositoryError(err, ErrGalleryItemNotFound)
	}
	return &item, nil
}

func (s *galleryService) Delete(ctx context.Context, id string) error {
	removed, err := s.gallery.Delete(ctx, id)
	if err != nil {
		return handleRepositoryError(err, ErrGalleryItemNotFound)
	}
	deleteStoredObject(ctx, s.uploader, s.logger, removed.StorageKey)
	return nil
}

func (s *galleryService) Reorder(ctx context.Context, ids []string) ([]models.GalleryItem, error) {
	if err := s.gallery.Reorder(ctx, ids); err != nil {
		return nil, handleRepositoryError(err, ErrGalleryItemNotFound)
	}
	return s.gallery.List(ctx)
}
