package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/pskpp/festival/models"
	"github.com/pskpp/festival/services"
)

const (
	maxUploadMemory = 32 << 20
	uploadField     = "files"

	// DefaultMaxUploadBytes caps the whole multipart request, files included.
	DefaultMaxUploadBytes = 64 << 20
)

type MediaHandler struct {
	sponsorService services.SponsorService
	galleryService services.GalleryService
	linkService    services.LinkService
	maxUploadBytes int64
}

func NewMediaHandler(ss services.SponsorService, gs services.GalleryService, ls services.LinkService) *MediaHandler {
	return &MediaHandler{sponsorService: ss, galleryService: gs, linkService: ls, maxUploadBytes: DefaultMaxUploadBytes}
}

// readUploads opens every file posted under the "files" field. Bodies over
// maxBytes are rejected while reading. The returned cleanup closes the files
// and removes the temporary copies the multipart reader wrote to disk.
func readUploads(w http.ResponseWriter, r *http.Request, maxBytes int64) ([]services.UploadFile, func(), error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(min(maxUploadMemory, maxBytes/4)); err != nil {
		return nil, func() {}, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	var opened []multipart.File
	cleanup := func() {
		for _, f := range opened {
			f.Close()
		}
		if err := r.MultipartForm.RemoveAll(); err != nil {
			slog.Default().Warn("failed to remove multipart temp files", slog.Any("error", err))
		}
	}

	headers := r.MultipartForm.File[uploadField]
	if len(headers) == 0 {
		return nil, cleanup, fmt.Errorf("no files in form field %q", uploadField)
	}

	files := make([]services.UploadFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to open %s: %w", header.Filename, err)
		}
		opened = append(opened, f)
		files = append(files, services.UploadFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Reader:      f,
		})
	}
	return files, cleanup, nil
}

// uploadErrorResponse answers 413 for an oversized body and 400 otherwise.
func uploadErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		errorResponse(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload must not be larger than %d bytes", tooLarge.Limit))
		return
	}
	badRequestResponse(w, r, err)
}

type reorderInput struct {
	IDs []string `json:"ids"`
}

func readOrder(w http.ResponseWriter, r *http.Request) ([]string, error) {
	var input reorderInput
	if err := readJSON(w, r, &input); err != nil {
		return nil, err
	}
	if input.IDs == nil {
		return nil, errors.New("ids is required")
	}
	return input.IDs, nil
}

// ListSponsors godoc
// @Summary Логотипы спонсоров в порядке показа
// @Tags sponsors
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /sponsors [get]
func (h *MediaHandler) ListSponsors(w http.ResponseWriter, r *http.Request) {
	sponsors, err := h.sponsorService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"sponsors": sponsors}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadSponsors godoc
// @Summary Загрузить логотипы спонсоров
// @Tags sponsors
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Logo images"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Failure 415 {object} map[string]string
// @Failure 503 {object} map[string]string "Storage not configured"
// @Security BearerAuth
// @Router /sponsors [post]
func (h *MediaHandler) UploadSponsors(w http.ResponseWriter, r *http.Request) {
	files, cleanup, err := readUploads(w, r, h.maxUploadBytes)
	defer cleanup()
	if err != nil {
		uploadErrorResponse(w, r, err)
		return
	}

	sponsors, err := h.sponsorService.Upload(r.Context(), files)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"sponsors": sponsors}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteSponsor godoc
// @Summary Удалить логотип спонсора
// @Tags sponsors
// @Param sponsorID path string true "Sponsor ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /sponsors/{sponsorID} [delete]
func (h *MediaHandler) DeleteSponsor(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "sponsorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.sponsorService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderSponsors godoc
// @Summary Изменить порядок спонсоров
// @Description ids must list every sponsor exactly once.
// @Tags sponsors
// @Accept json
// @Produce json
// @Param body body reorderInput true "New order"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /sponsors/order [put]
func (h *MediaHandler) ReorderSponsors(w http.ResponseWriter, r *http.Request) {
	ids, err := readOrder(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	sponsors, err := h.sponsorService.Reorder(r.Context(), ids)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"sponsors": sponsors}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListGallery godoc
// @Summary Галерея в порядке показа
// @Tags gallery
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /gallery [get]
func (h *MediaHandler) ListGallery(w http.ResponseWriter, r *http.Request) {
	items, err := h.galleryService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"gallery": items}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadGallery godoc
// @Summary Загрузить фото и видео в галерею
// @Tags gallery
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "JPEG, PNG, WebP, MP4 or WebM"
// @Success 201 {object} map[string]interface{}
// @Failure 413 {object} map[string]string
// @Failure 415 {object} map[string]string
// @Security BearerAuth
// @Router /gallery [post]
func (h *MediaHandler) UploadGallery(w http.ResponseWriter, r *http.Request) {
	files, cleanup, err := readUploads(w, r, h.maxUploadBytes)
	defer cleanup()
	if err != nil {
		uploadErrorResponse(w, r, err)
		return
	}

	items, err := h.galleryService.Upload(r.Context(), files)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"gallery": items}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddGalleryURL godoc
// @Summary Добавить в галерею внешнюю ссылку
// @Tags gallery
// @Accept json
// @Produce json
// @Param body body object true "{\"type\": \"image|video\", \"src\": \"https://...\"}"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /gallery/url [post]
func (h *MediaHandler) AddGalleryURL(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Type models.MediaType `json:"type"`
		Src  string           `json:"src"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	item, err := h.galleryService.AddURL(r.Context(), input.Type, input.Src)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"item": item}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteGalleryItem godoc
// @Summary Удалить элемент галереи
// @Tags gallery
// @Param itemID path string true "Item ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /gallery/{itemID} [delete]
func (h *MediaHandler) DeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "itemID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.galleryService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderGallery godoc
// @Summary Изменить порядок галереи
// @Tags gallery
// @Accept json
// @Produce json
// @Param body body reorderInput true "New order"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /gallery/order [put]
func (h *MediaHandler) ReorderGallery(w http.ResponseWriter, r *http.Request) {
	ids, err := readOrder(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	items, err := h.galleryService.Reorder(r.Context(), ids)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"gallery": items}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListLinks godoc
// @Summary Ссылки меню
// @Tags links
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /links [get]
func (h *MediaHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.linkService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"links": links}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateLink godoc
// @Summary Добавить ссылку в меню
// @Tags links
// @Accept json
// @Produce json
// @Param body body services.LinkInput true "Link"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /links [post]
func (h *MediaHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var input services.LinkInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	link, err := h.linkService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"link": link}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateLink godoc
// @Summary Изменить ссылку
// @Tags links
// @Accept json
// @Produce json
// @Param linkID path string true "Link ID"
// @Param body body services.LinkInput true "Link"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /links/{linkID} [put]
func (h *MediaHandler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "linkID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.LinkInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	link, err := h.linkService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"link": link}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteLink godoc
// @Summary Удалить ссылку
// @Tags links
// @Param linkID path string true "Link ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /links/{linkID} [delete]
func (h *MediaHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "linkID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.linkService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
