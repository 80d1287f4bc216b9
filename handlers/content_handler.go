package handlers

import (
	"context"
	"net/http"

	"github.com/pskpp/festival/services"
)

type ContentHandler struct {
	contentService services.ContentService
}

func NewContentHandler(cs services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: cs}
}

// Общие обработчики для разделов-синглтонов (тема, about, контакты, футер, hero).

func serveSection[T any](get func(context.Context) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := get(r.Context())
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, v, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
	}
}

func saveSection[T any](save func(context.Context, T) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input T
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
		v, err := save(r.Context(), input)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, v, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
	}
}

// GetSiteContent godoc
// @Summary Всё содержимое сайта одним запросом
// @Tags content
// @Produce json
// @Success 200 {object} models.SiteContent
// @Router /content [get]
func (h *ContentHandler) GetSiteContent(w http.ResponseWriter, r *http.Request) {
	serveSection(h.contentService.GetSiteContent)(w, r)
}

// GetThemeCSS godoc
// @Summary Theme as CSS custom properties
// @Tags content
// @Produce text/css
// @Success 200 {string} string
// @Router /theme.css [get]
func (h *ContentHandler) GetThemeCSS(w http.ResponseWriter, r *http.Request) {
	css, err := h.contentService.ThemeCSS(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(css))
}

// GetTheme godoc
// @Summary Текущая тема
// @Tags content
// @Produce json
// @Success 200 {object} models.Theme
// @Router /theme [get]
func (h *ContentHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	serveSection(h.contentService.GetTheme)(w, r)
}

// SaveTheme godoc
// @Summary Сохранить тему
// @Tags content
// @Accept json
// @Produce json
// @Param body body models.Theme true "Theme"
// @Success 200 {object} models.Theme
// @Failure 422 {object} map[string]string "Invalid color or font"
// @Security BearerAuth
// @Router /theme [put]
func (h *ContentHandler) SaveTheme(w http.ResponseWriter, r *http.Request) {
	saveSection(h.contentService.SaveTheme)(w, r)
}

// ResetTheme godoc
// @Summary Сбросить тему к значениям по умолчанию
// @Tags content
// @Produce json
// @Success 200 {object} models.Theme
// @Security BearerAuth
// @Router /theme [delete]
func (h *ContentHandler) ResetTheme(w http.ResponseWriter, r *http.Request) {
	serveSection(h.contentService.ResetTheme)(w, r)
}

// GetAbout godoc
// @Summary Раздел «О нас»
// @Tags content
// @Produce json
// @Success 200 {object} models.AboutContent
// @Router /about [get]
func (h *ContentHandler) GetAbout(w http.ResponseWriter, r *http.Request) {
	serveSection(h.contentService.GetAbout)(w, r)
}

// SaveAbout godoc
// @Summary Сохранить раздел «О нас»
// @Tags content
// @Accept json
// @Produce json
// @Param body body models.AboutContent true "Section"
// @Success 200 {object} models.AboutContent
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /about [put]
func (h *ContentHandler) SaveAbout(w http.ResponseWriter, r *http.Request) {
	saveSection(h.contentService.SaveAbout)(w, r)
}

// ResetAbout godoc
// @Summary Сбросить раздел «О нас»
// @Tags content
// @Produce json
// @Success 200 {object} models.AboutContent
// @Security BearerAuth
// @Router /about [delete]
func (h *ContentHandler) ResetAbout(w http.ResponseWriter, r *http.Request) {
	serveSection(h.contentService.ResetAbout)(w, r)
}

// GetContact godoc
// @Summary Контакты
// @Tags content
// @Produce json
// @Success 200 {object} models.ContactContent
// @Router /contact [get]
func (h *ContentHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	serveSection(h.contentService.GetContact)(w, r)
}

// SaveContact godoc
// @Summary Сохранить контакты
// @Tags content
// @Accept json
// @Produce json
// @Param body body models.ContactContent true "Section"
// @Success 200 {object} models.ContactContent
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /contact [put]
func (h *ContentHandler) SaveContact(w http.ResponseWriter, r *http.Request) {
	saveSection(h.contentService.SaveContact)(w, r)
}

// ResetContact godoc
// @Summary Сбросить контакты
// @Tags content
// @Produce json
// @Success 200 {object} models.ContactContent
// @Security BearerAuth
// @Router /contact [delete]
func (h *ContentHandler) ResetContact(w http.ResponseWriter, r *http.Request) {
	serveSection(h.contentService.ResetContact)(w, r)
}

// GetFooter godoc
// @Summary Футер
// @Tags content
// @Produce json
// @Success 200 {object} models.FooterContent
// @Router /footer [get]
func (h *ContentHandler) GetFooter(w http.ResponseWriter, r *http.Request) {
	serveSection(h.contentService.GetFooter)(w, r)
}

// SaveFooter godoc
// @Summary Сохранить футер
// @Tags content
// @Accept json
// @Produce json
// @Param body body models.FooterContent true "Section"
// @Success 200 {object} models.FooterContent
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /footer [put]
func (h *ContentHandler) SaveFooter(w http.ResponseWriter, r *http.Request) {
	saveSection(h.contentService.SaveFooter)(w, r)
}

// ResetFooter godoc
// @Summary Сбросить футер
// @Tags content
// @Produce json
// @Success 200 {object} models.FooterContent
// @Security BearerAuth
// @Router /footer [delete]
func (h *ContentHandler) ResetFooter(w http.ResponseWriter, r *http.Request) {
	serveSection(h.contentService.ResetFooter)(w, r)
}

// GetHero godoc
// @Summary Фон главного экрана
// @Tags content
// @Produce json
// @Success 200 {object} models.HeroBackground
// @Router /hero [get]
func (h *ContentHandler) GetHero(w http.ResponseWriter, r *http.Request) {
	serveSection(h.contentService.GetHero)(w, r)
}

// SaveHero godoc
// @Summary Сохранить фон главного экрана
// @Tags content
// @Accept json
// @Produce json
// @Param body body models.HeroBackground true "Section"
// @Success 200 {object} models.HeroBackground
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /hero [put]
func (h *ContentHandler) SaveHero(w http.ResponseWriter, r *http.Request) {
	saveSection(h.contentService.SaveHero)(w, r)
}

// ResetHero godoc
// @Summary Сбросить фон главного экрана
// @Tags content
// @Produce json
// @Success 200 {object} models.HeroBackground
// @Security BearerAuth
// @Router /hero [delete]
func (h *ContentHandler) ResetHero(w http.ResponseWriter, r *http.Request) {
	serveSection(h.contentService.ResetHero)(w, r)
}

