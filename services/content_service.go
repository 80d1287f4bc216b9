package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pskpp/festival/models"
	"github.com/pskpp/festival/repositories"
	"github.com/pskpp/festival/utils"
)

type ContentService interface {
	GetTheme(ctx context.Context) (models.Theme, error)
	SaveTheme(ctx context.Context, theme models.Theme) (models.Theme, error)
	ResetTheme(ctx context.Context) (models.Theme, error)
	ThemeCSS(ctx context.Context) (string, error)

	GetAbout(ctx context.Context) (models.AboutContent, error)
	SaveAbout(ctx context.Context, about models.AboutContent) (models.AboutContent, error)
	ResetAbout(ctx context.Context) (models.AboutContent, error)

	GetContact(ctx context.Context) (models.ContactContent, error)
	SaveContact(ctx context.Context, contact models.ContactContent) (models.ContactContent, error)
	ResetContact(ctx context.Context) (models.ContactContent, error)

	GetFooter(ctx context.Context) (models.FooterContent, error)
	SaveFooter(ctx context.Context, footer models.FooterContent) (models.FooterContent, error)
	ResetFooter(ctx context.Context) (models.FooterContent, error)

	GetHero(ctx context.Context) (models.HeroBackground, error)
	SaveHero(ctx context.Context, hero models.HeroBackground) (models.HeroBackground, error)
	ResetHero(ctx context.Context) (models.HeroBackground, error)

	GetSiteContent(ctx context.Context) (*models.SiteContent, error)
}

type contentService struct {
	theme   *repositories.Singleton[models.Theme]
	about   *repositories.Singleton[models.AboutContent]
	contact *repositories.Singleton[models.ContactContent]
	footer  *repositories.Singleton[models.FooterContent]
	hero    *repositories.Singleton[models.HeroBackground]
	links   *repositories.LinkRepository
}

func NewContentService(store repositories.DocumentStore, links *repositories.LinkRepository) ContentService {
	return &contentService{
		theme:   repositories.NewSingleton(store, repositories.KeyTheme, models.DefaultTheme),
		about:   repositories.NewSingleton(store, repositories.KeyAbout, models.DefaultAboutContent),
		contact: repositories.NewSingleton(store, repositories.KeyContact, models.DefaultContactContent),
		footer:  repositories.NewSingleton(store, repositories.KeyFooter, models.DefaultFooterContent),
		hero:    repositories.NewSingleton(store, repositories.KeyHero, models.DefaultHeroBackground),
		links:   links,
	}
}

func saveAndGet[T any](ctx context.Context, doc *repositories.Singleton[T], v T) (T, error) {
	if err := doc.Save(ctx, v); err != nil {
		return v, fmt.Errorf("failed to save content: %w", err)
	}
	return v, nil
}

func resetAndGet[T any](ctx context.Context, doc *repositories.Singleton[T]) (T, error) {
	if err := doc.Reset(ctx); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to reset content: %w", err)
	}
	return doc.Get(ctx)
}

func (s *contentService) GetTheme(ctx context.Context) (models.Theme, error) {
	return s.theme.Get(ctx)
}

func (s *contentService) SaveTheme(ctx context.Context, theme models.Theme) (models.Theme, error) {
	theme.HeadingFont = strings.TrimSpace(theme.HeadingFont)
	theme.BodyFont = strings.TrimSpace(theme.BodyFont)
	if err := theme.Validate(); err != nil {
		return theme, invalid(err)
	}
	return saveAndGet(ctx, s.theme, theme)
}

func (s *contentService) ResetTheme(ctx context.Context) (models.Theme, error) {
	return resetAndGet(ctx, s.theme)
}

// ThemeCSS renders the theme as CSS custom properties. Colors are written as
// bare HSL components so that stylesheets can add an alpha channel.
func (s *contentService) ThemeCSS(ctx context.Context) (string, error) {
	theme, err := s.theme.Get(ctx)
	if err != nil {
		return "", err
	}
	primary, err := utils.HexToHSL(theme.Primary)
	if err != nil {
		return "", err
	}
	secondary, err := utils.HexToHSL(theme.Secondary)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(":root {\n")
	fmt.Fprintf(&b, "  --color-primary: %s;\n", primary.CSSVar())
	fmt.Fprintf(&b, "  --color-secondary: %s;\n", secondary.CSSVar())
	fmt.Fprintf(&b, "  --font-family-heading: '%s', sans-serif;\n", theme.HeadingFont)
	fmt.Fprintf(&b, "  --font-family-body: '%s', sans-serif;\n", theme.BodyFont)
	b.WriteString("}\n")
	return b.String(), nil
}

func (s *contentService) GetAbout(ctx context.Context) (models.AboutContent, error) {
	return s.about.Get(ctx)
}

func (s *contentService) SaveAbout(ctx context.Context, about models.AboutContent) (models.AboutContent, error) {
	if err := about.Validate(); err != nil {
		return about, invalid(err)
	}
	if about.Features == nil {
		about.Features = []models.AboutFeature{}
	}
	return saveAndGet(ctx, s.about, about)
}

func (s *contentService) ResetAbout(ctx context.Context) (models.AboutContent, error) {
	return resetAndGet(ctx, s.about)
}

func (s *contentService) GetContact(ctx context.Context) (models.ContactContent, error) {
	return s.contact.Get(ctx)
}

func (s *contentService) SaveContact(ctx context.Context, contact models.ContactContent) (models.ContactContent, error) {
	if err := contact.Validate(); err != nil {
		return contact, invalid(err)
	}
	return saveAndGet(ctx, s.contact, contact)
}

func (s *contentService) ResetContact(ctx context.Context) (models.ContactContent, error) {
	return resetAndGet(ctx, s.contact)
}

func (s *contentService) GetFooter(ctx context.Context) (models.FooterContent, error) {
	return s.footer.Get(ctx)
}

func (s *contentService) SaveFooter(ctx context.Context, footer models.FooterContent) (models.FooterContent, error) {
	if footer.QuickLinks == nil {
		footer.QuickLinks = []models.NavLink{}
	}
	if err := footer.Validate(); err != nil {
		return footer, invalid(err)
	}
	return saveAndGet(ctx, s.footer, footer)
}

func (s *contentService) ResetFooter(ctx context.Context) (models.FooterContent, error) {
	return resetAndGet(ctx, s.footer)
}

func (s *contentService) GetHero(ctx context.Context) (models.HeroBackground, error) {
	return s.hero.Get(ctx)
}

func (s *contentService) SaveHero(ctx context.Context, hero models.HeroBackground) (models.HeroBackground, error) {
	if err := hero.Validate(); err != nil {
		return hero, invalid(err)
	}
	return saveAndGet(ctx, s.hero, hero)
}

func (s *contentService) ResetHero(ctx context.Context) (models.HeroBackground, error) {
	return resetAndGet(ctx, s.hero)
}

// GetSiteContent loads every section concurrently.
func (s *contentService) GetSiteContent(ctx context.Context) (*models.SiteContent, error) {
	var content models.SiteContent
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { content.Theme, err = s.theme.Get(ctx); return })
	g.Go(func() (err error) { content.About, err = s.about.Get(ctx); return })
	g.Go(func() (err error) { content.Contact, err = s.contact.Get(ctx); return })
	g.Go(func() (err error) { content.Footer, err = s.footer.Get(ctx); return })
	g.Go(func() (err error) { content.Hero, err = s.hero.Get(ctx); return })
	g.Go(func() (err error) { content.Links, err = s.links.List(ctx); return })

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load site content: %w", err)
	}
	return &content, nil
}
