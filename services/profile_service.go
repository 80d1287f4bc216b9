package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pskpp/festival/models"
	"github.com/pskpp/festival/repositories"
	"github.com/pskpp/festival/storage"
)

// ProfileService manages the administrator's avatar.
type ProfileService interface {
	Get(ctx context.Context) (models.AdminProfile, error)
	UploadImage(ctx context.Context, file UploadFile) (models.AdminProfile, error)
	Reset(ctx context.Context) (models.AdminProfile, error)
}

type profileService struct {
	profile  *repositories.Singleton[models.AdminProfile]
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewProfileService(store repositories.DocumentStore, uploader storage.FileUploader, logger *slog.Logger) ProfileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &profileService{
		profile:  repositories.NewSingleton(store, repositories.KeyProfile, func() models.AdminProfile { return models.AdminProfile{} }),
		uploader: uploader,
		logger:   logger,
	}
}

func (s *profileService) Get(ctx context.Context) (models.AdminProfile, error) {
	return s.profile.Get(ctx)
}

// UploadImage stores a new avatar and removes the previous one if we stored it.
func (s *profileService) UploadImage(ctx context.Context, file UploadFile) (models.AdminProfile, error) {
	if !strings.HasPrefix(baseContentType(file.ContentType), "image/") {
		return models.AdminProfile{}, fmt.Errorf("%w: %w: %s (%s)", ErrValidationFailed, ErrUnsupportedMediaType, file.Filename, file.ContentType)
	}
	previous, err := s.profile.Get(ctx)
	if err != nil {
		return models.AdminProfile{}, err
	}

	results, err := uploadAll(ctx, s.uploader, s.logger, "profile", []UploadFile{file})
	if err != nil {
		return models.AdminProfile{}, err
	}
	profile := models.AdminProfile{ImageURL: results[0].Location, StorageKey: results[0].Key}
	if err := s.profile.Save(ctx, profile); err != nil {
		deleteStoredObject(ctx, s.uploader, s.logger, profile.StorageKey)
		return models.AdminProfile{}, fmt.Errorf("failed to save profile: %w", err)
	}
	deleteStoredObject(ctx, s.uploader, s.logger, previous.StorageKey)
	return profile, nil
}

func (s *profileService) Reset(ctx context.Context) (models.AdminProfile, error) {
	previous, err := s.profile.Get(ctx)
	if err != nil {
		return models.AdminProfile{}, err
	}
	profile, err := resetAndGet(ctx, s.profile)
	if err != nil {
		return profile, err
	}
	deleteStoredObject(ctx, s.uploader, s.logger, previous.StorageKey)
	return profile, nil
}
