package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pskpp/festival/utils"
)

// Ошибки проверки документов. Сервисы оборачивают их в ErrValidationFailed.
var (
	ErrEventTitleEmpty      = errors.New("event title is required")
	ErrInvalidDate          = errors.New("date must be YYYY-MM-DD")
	ErrInvalidIcon          = errors.New("unknown category icon")
	ErrInvalidTheme         = errors.New("invalid theme")
	ErrInvalidHero          = errors.New("invalid hero background")
	ErrInvalidURL           = errors.New("url must be absolute http or https")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingField         = errors.New("required field is empty")
)

// fontForbidden are characters that would let a font name escape its CSS string.
const fontForbidden = `'";{}<>\`

func (t Theme) Validate() error {
	switch {
	case !utils.IsValidHexColor(t.Primary):
		return fmt.Errorf("%w: primary %q", ErrInvalidTheme, t.Primary)
	case !utils.IsValidHexColor(t.Secondary):
		return fmt.Errorf("%w: secondary %q", ErrInvalidTheme, t.Secondary)
	case strings.TrimSpace(t.HeadingFont) == "" || strings.TrimSpace(t.BodyFont) == "":
		return fmt.Errorf("%w: fonts are required", ErrInvalidTheme)
	case strings.ContainsAny(t.HeadingFont+t.BodyFont, fontForbidden):
		return fmt.Errorf("%w: font names contain forbidden characters", ErrInvalidTheme)
	}
	return nil
}

func (h HeroBackground) Validate() error {
	switch h.Active {
	case MediaImage:
		if h.Image == "" {
			return fmt.Errorf("%w: active image is empty", ErrInvalidHero)
		}
	case MediaVideo:
		if h.Video == "" {
			return fmt.Errorf("%w: active video is empty", ErrInvalidHero)
		}
	default:
		return fmt.Errorf("%w: active must be image or video", ErrInvalidHero)
	}
	for _, src := range []string{h.Image, h.Video} {
		if src != "" && !utils.IsHTTPURL(src) {
			return fmt.Errorf("%w: %q", ErrInvalidURL, src)
		}
	}
	return nil
}

func (a AboutContent) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: about title", ErrMissingField)
	}
	return nil
}

func (c ContactContent) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("%w: contact title", ErrMissingField)
	}
	return nil
}

func (f FooterContent) Validate() error {
	for _, l := range f.QuickLinks {
		if strings.TrimSpace(l.Name) == "" || strings.TrimSpace(l.Href) == "" {
			return fmt.Errorf("%w: quick links need a name and href", ErrMissingField)
		}
	}
	return nil
}

// Validate checks the fields an admin edits. The id is checked by whoever
// assigns it.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEventTitleEmpty
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return fmt.Errorf("%w: date %q", ErrInvalidDate, e.Date)
	}
	if e.EndDate != "" {
		if _, err := time.Parse(DateLayout, e.EndDate); err != nil {
			return fmt.Errorf("%w: end_date %q", ErrInvalidDate, e.EndDate)
		}
	}
	if e.CategoryIcon != "" && !e.CategoryIcon.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidIcon, e.CategoryIcon)
	}
	if e.ImageURL != "" && !utils.IsHTTPURL(e.ImageURL) {
		return fmt.Errorf("%w: image_url %q", ErrInvalidURL, e.ImageURL)
	}
	return nil
}

func (s Sponsor) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: sponsor name", ErrMissingField)
	}
	if !utils.IsHTTPURL(s.LogoURL) {
		return fmt.Errorf("%w: logo_url %q", ErrInvalidURL, s.LogoURL)
	}
	return nil
}

func (g GalleryItem) Validate() error {
	if g.Type != MediaImage && g.Type != MediaVideo {
		return fmt.Errorf("%w: %q", ErrUnsupportedMediaType, g.Type)
	}
	if !utils.IsHTTPURL(g.Src) {
		return fmt.Errorf("%w: %q", ErrInvalidURL, g.Src)
	}
	return nil
}

func (l ManagedLink) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("%w: link title", ErrMissingField)
	}
	if !utils.IsHTTPURL(l.URL) {
		return fmt.Errorf("%w: %q", ErrInvalidURL, l.URL)
	}
	return nil
}

func (p AdminProfile) Validate() error {
	if p.ImageURL != "" && !utils.IsHTTPURL(p.ImageURL) {
		return fmt.Errorf("%w: %q", ErrInvalidURL, p.ImageURL)
	}
	return nil
}
