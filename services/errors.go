package services

import (
	"errors"
	"fmt"

	"github.com/pskpp/festival/models"
	"github.com/pskpp/festival/repositories"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource already exists")
	ErrInvalidOrder     = errors.New("order must list every item exactly once")

	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidCredentials   = errors.New("invalid password")

	ErrEventNotFound   = errors.New("event not found")
	ErrEventTitleEmpty = models.ErrEventTitleEmpty
	ErrInvalidDate     = models.ErrInvalidDate
	ErrInvalidIcon     = models.ErrInvalidIcon

	ErrBracketIndexOutOfRange = errors.New("bracket position out of range")
	ErrBracketEmpty           = errors.New("event has no bracket")

	ErrInvalidTheme         = models.ErrInvalidTheme
	ErrInvalidHero          = models.ErrInvalidHero
	ErrUnsupportedMediaType = models.ErrUnsupportedMediaType
	ErrInvalidURL           = models.ErrInvalidURL
	ErrNoFiles              = errors.New("no files uploaded")
	ErrUploaderUnavailable  = errors.New("file uploads are not configured")
)

// invalid marks a document validation error as a failed validation.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrValidationFailed, err)
}

// handleRepositoryError translates repository errors into service errors.
// notFound is returned for missing items.
func handleRepositoryError(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrItemNotFound):
		return notFound
	case errors.Is(err, repositories.ErrItemConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, repositories.ErrInvalidOrder):
		return fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	case errors.Is(err, models.ErrRoundOutOfRange),
		errors.Is(err, models.ErrMatchOutOfRange),
		errors.Is(err, models.ErrParticipantOutOfRange):
		return fmt.Errorf("%w: %w", ErrBracketIndexOutOfRange, err)
	default:
		return err
	}
}
