package handlers

import (
	"errors"
	"net/http"

	"github.com/pskpp/festival/services"
)

// maxProfileImageBytes caps an avatar upload.
const maxProfileImageBytes = 5 << 20

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(ps services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: ps}
}

// GetProfile godoc
// @Summary Профиль администратора
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.Get(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"profile": profile}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadProfileImage godoc
// @Summary Загрузить фото профиля
// @Description Replaces the avatar. Exactly one image under the "files" field.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Avatar image"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Failure 415 {object} map[string]string
// @Failure 503 {object} map[string]string "Storage not configured"
// @Security BearerAuth
// @Router /admin/profile/image [put]
func (h *ProfileHandler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	files, cleanup, err := readUploads(w, r, maxProfileImageBytes)
	defer cleanup()
	if err != nil {
		uploadErrorResponse(w, r, err)
		return
	}
	if len(files) != 1 {
		badRequestResponse(w, r, errors.New("exactly one image is expected"))
		return
	}

	profile, err := h.profileService.UploadImage(r.Context(), files[0])
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"profile": profile}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ResetProfileImage godoc
// @Summary Удалить фото профиля
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/profile/image [delete]
func (h *ProfileHandler) ResetProfileImage(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.Reset(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"profile": profile}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
