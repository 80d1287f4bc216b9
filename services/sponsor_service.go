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

var ErrSponsorNotFound = errors.New("sponsor not found")

type SponsorService interface {
	List(ctx context.Context) ([]models.Sponsor, error)
	Upload(ctx context.Context, files []UploadFile) ([]models.Sponsor, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) ([]models.Sponsor, error)
}

type sponsorService struct {
	sponsors *repositories.SponsorRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewSponsorService(sponsors *repositories.SponsorRepository, uploader storage.FileUploader, logger *slog.Logger) SponsorService {
	if logger == nil {
		logger = slog.Default()
	}
	return &sponsorService{sponsors: sponsors, uploader: uploader, logger: logger}
}

func (s *sponsorService) List(ctx context.Context) ([]models.Sponsor, error) {
	return s.sponsors.List(ctx)
}

// Upload stores every logo and appends one sponsor per file, named after the
// file.
func (s *sponsorService) Upload(ctx context.Context, files []UploadFile) ([]models.Sponsor, error) {
	for _, f := range files {
		if !strings.HasPrefix(baseContentType(f.ContentType), "image/") {
			return nil, fmt.Errorf("%w: %w: %s (%s)", ErrValidationFailed, ErrUnsupportedMediaType, f.Filename, f.ContentType)
		}
	}

	results, err := uploadAll(ctx, s.uploader, s.logger, "sponsors", files)
	if err != nil {
		return nil, err
	}

	created := make([]models.Sponsor, 0, len(files))
	for i, f := range files {
		created = append(created, models.Sponsor{
			ID:         uuid.NewString(),
			Name:       displayName(f.Filename),
			LogoURL:    results[i].Location,
			StorageKey: results[i].Key,
		})
	}
	if err := s.sponsors.CreateMany(ctx, created); err != nil {
		for _, sp := range created {
			deleteStoredObject(ctx, s.uploader, s.logger, sp.StorageKey)
		}
		return nil, handleRepositoryError(err, ErrSponsorNotFound)
	}
	return created, nil
}

func (s *sponsorService) Delete(ctx context.Context, id string) error {
	removed, err := s.sponsors.Delete(ctx, id)
	if err != nil {
		return handleRepositoryError(err, ErrSponsorNotFound)
	}
	deleteStoredObject(ctx, s.uploader, s.logger, removed.StorageKey)
	return nil
}

func (s *sponsorService) Reorder(ctx context.Context, ids []string) ([]models.Sponsor, error) {
	if err := s.sponsors.Reorder(ctx, ids); err != nil {
		return nil, handleRepositoryError(err, ErrSponsorNotFound)
	}
	return s.sponsors.List(ctx)
}
