package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/pskpp/festival/models"
	"github.com/pskpp/festival/repositories"
)

var ErrLinkNotFound = errors.New("link not found")

type LinkService interface {
	List(ctx context.Context) ([]models.ManagedLink, error)
	Create(ctx context.Context, input LinkInput) (*models.ManagedLink, error)
	Update(ctx context.Context, id string, input LinkInput) (*models.ManagedLink, error)
	Delete(ctx context.Context, id string) error
}

type LinkInput struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

func (in *LinkInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)
	in.Description = strings.TrimSpace(in.Description)
	return invalid(models.ManagedLink{Title: in.Title, URL: in.URL}.Validate())
}

type linkService struct {
	links *repositories.LinkRepository
}

func NewLinkService(links *repositories.LinkRepository) LinkService {
	return &linkService{links: links}
}

func (s *linkService) List(ctx context.Context) ([]models.ManagedLink, error) {
	return s.links.List(ctx)
}

func (s *linkService) Create(ctx context.Context, input LinkInput) (*models.ManagedLink, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	link := models.ManagedLink{ID: uuid.NewString(), Title: input.Title, URL: input.URL, Description: input.Description}
	if err := s.links.Create(ctx, link, false); err != nil {
		return nil, handleRepositoryError(err, ErrLinkNotFound)
	}
	return &link, nil
}

func (s *linkService) Update(ctx context.Context, id string, input LinkInput) (*models.ManagedLink, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	link := models.ManagedLink{ID: id, Title: input.Title, URL: input.URL, Description: input.Description}
	if err := s.links.Update(ctx, link); err != nil {
		return nil, handleRepositoryError(err, ErrLinkNotFound)
	}
	return &link, nil
}

func (s *linkService) Delete(ctx context.Context, id string) error {
	if _, err := s.links.Delete(ctx, id); err != nil {
		return handleRepositoryError(err, ErrLinkNotFound)
	}
	return nil
}
