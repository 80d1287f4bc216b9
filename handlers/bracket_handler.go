package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/pskpp/festival/brackets"
	"github.com/pskpp/festival/services"
)

const (
	formatLayout = "layout"
	formatSVG    = "svg"
)

type BracketHandler struct {
	eventService   services.EventService
	contentService services.ContentService
	metrics        *BracketMetrics
}

func NewBracketHandler(es services.EventService, cs services.ContentService, metrics *BracketMetrics) *BracketHandler {
	return &BracketHandler{eventService: es, contentService: cs, metrics: metrics}
}

// GetBracket godoc
// @Summary Rounds of an event's bracket
// @Tags brackets
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /events/{eventID}/bracket [get]
func (h *BracketHandler) GetBracket(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	bracket, err := h.eventService.GetBracket(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rounds": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetLayout godoc
// @Summary Positioned bracket layout
// @Description Match positions, connector segments and winners. 204 when the event has no rounds.
// @Tags brackets
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} brackets.Layout
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /events/{eventID}/bracket/layout [get]
func (h *BracketHandler) GetLayout(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	layout, err := h.eventService.BracketLayout(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeLayout(w, r, http.StatusOK, layout)
}

// GetSVG godoc
// @Summary Bracket as SVG
// @Tags brackets
// @Produce image/svg+xml
// @Param eventID path string true "Event ID"
// @Success 200 {string} string
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /events/{eventID}/bracket.svg [get]
func (h *BracketHandler) GetSVG(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	layout, err := h.eventService.BracketLayout(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeSVG(w, r, layout)
}

// RenderLayout godoc
// @Summary Lay out a posted bracket without storing it
// @Tags brackets
// @Accept json
// @Produce json
// @Param body body []models.Round true "Rounds"
// @Success 200 {object} brackets.Layout
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /brackets/layout [post]
func (h *BracketHandler) RenderLayout(w http.ResponseWriter, r *http.Request) {
	bracket, err := readBracket(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.writeLayout(w, r, http.StatusOK, brackets.Compute(bracket))
}

// RenderSVG godoc
// @Summary Render a posted bracket as SVG
// @Tags brackets
// @Accept json
// @Produce image/svg+xml
// @Param body body []models.Round true "Rounds"
// @Success 200 {string} string
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /brackets/svg [post]
func (h *BracketHandler) RenderSVG(w http.ResponseWriter, r *http.Request) {
	bracket, err := readBracket(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.writeSVG(w, r, brackets.Compute(bracket))
}

func (h *BracketHandler) writeLayout(w http.ResponseWriter, r *http.Request, status int, layout *brackets.Layout) {
	if layout == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.metrics.observe(formatLayout, len(layout.Columns))
	if err := writeJSON(w, status, layout, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) writeSVG(w http.ResponseWriter, r *http.Request, layout *brackets.Layout) {
	if layout == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	style := brackets.SVGStyle{}
	if h.contentService != nil {
		theme, err := h.contentService.GetTheme(r.Context())
		if err != nil {
			serverErrorResponse(w, r, err)
			return
		}
		style = brackets.StyleFromTheme(theme)
	}

	var buf bytes.Buffer
	if err := brackets.RenderSVG(&buf, layout, style); err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	h.metrics.observe(formatSVG, len(layout.Columns))
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// editResponse writes the layout after a bracket edit. An emptied bracket
// yields {"layout": null}.
func (h *BracketHandler) editResponse(w http.ResponseWriter, r *http.Request, status int, layout *brackets.Layout, err error) {
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, status, jsonResponse{"layout": layout}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ReplaceBracket godoc
// @Summary Replace the whole bracket
// @Tags brackets
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body []models.Round true "Rounds"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /events/{eventID}/bracket [put]
func (h *BracketHandler) ReplaceBracket(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	bracket, err := readBracket(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	layout, err := h.eventService.ReplaceBracket(r.Context(), eventID, bracket)
	h.editResponse(w, r, http.StatusOK, layout, err)
}

// GenerateBracket godoc
// @Summary Generate a single elimination bracket from entrant names
// @Tags brackets
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body object true "{\"entrants\": [\"...\"]}"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /events/{eventID}/bracket/generate [post]
func (h *BracketHandler) GenerateBracket(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		Entrants []string `json:"entrants"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	layout, err := h.eventService.GenerateBracket(r.Context(), eventID, input.Entrants)
	h.editResponse(w, r, http.StatusCreated, layout, err)
}

// AddRound godoc
// @Summary Append a round
// @Tags brackets
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body object false "{\"title\": \"...\"}"
// @Success 201 {object} map[string]interface{}
// @Security BearerAuth
// @Router /events/{eventID}/bracket/rounds [post]
func (h *BracketHandler) AddRound(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input struct {
		Title string `json:"title"`
	}
	if r.ContentLength != 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}
	layout, err := h.eventService.AddRound(r.Context(), eventID, input.Title)
	h.editResponse(w, r, http.StatusCreated, layout, err)
}

// RemoveRound godoc
// @Summary Remove a round
// @Tags brackets
// @Produce json
// @Param eventID path string true "Event ID"
// @Param round path int true "Round index"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /events/{eventID}/bracket/rounds/{round} [delete]
func (h *BracketHandler) RemoveRound(w http.ResponseWriter, r *http.Request) {
	eventID, round, ok := h.roundParams(w, r)
	if !ok {
		return
	}
	layout, err := h.eventService.RemoveRound(r.Context(), eventID, round)
	h.editResponse(w, r, http.StatusOK, layout, err)
}

// RenameRound godoc
// @Summary Change a round title
// @Tags brackets
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param round path int true "Round index"
// @Param body body object true "{\"title\": \"...\"}"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /events/{eventID}/bracket/rounds/{round} [patch]
func (h *BracketHandler) RenameRound(w http.ResponseWriter, r *http.Request) {
	eventID, round, ok := h.roundParams(w, r)
	if !ok {
		return
	}
	var input struct {
		Title *string `json:"title"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Title == nil || strings.TrimSpace(*input.Title) == "" {
		badRequestResponse(w, r, errors.New("title is required"))
		return
	}
	layout, err := h.eventService.SetRoundTitle(r.Context(), eventID, round, strings.TrimSpace(*input.Title))
	h.editResponse(w, r, http.StatusOK, layout, err)
}

// AddMatch godoc
// @Summary Append a placeholder match to a round
// @Tags brackets
// @Produce json
// @Param eventID path string true "Event ID"
// @Param round path int true "Round index"
// @Success 201 {object} map[string]interface{}
// @Security BearerAuth
// @Router /events/{eventID}/bracket/rounds/{round}/matches [post]
func (h *BracketHandler) AddMatch(w http.ResponseWriter, r *http.Request) {
	eventID, round, ok := h.roundParams(w, r)
	if !ok {
		return
	}
	layout, err := h.eventService.AddMatch(r.Context(), eventID, round)
	h.editResponse(w, r, http.StatusCreated, layout, err)
}

// RemoveMatch godoc
// @Summary Remove a match
// @Tags brackets
// @Produce json
// @Param eventID path string true "Event ID"
// @Param round path int true "Round index"
// @Param match path int true "Match index"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /events/{eventID}/bracket/rounds/{round}/matches/{match} [delete]
func (h *BracketHandler) RemoveMatch(w http.ResponseWriter, r *http.Request) {
	eventID, round, ok := h.roundParams(w, r)
	if !ok {
		return
	}
	match, err := getIndexFromURL(r, "match")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	layout, err := h.eventService.RemoveMatch(r.Context(), eventID, round, match)
	h.editResponse(w, r, http.StatusOK, layout, err)
}

// UpdateParticipant godoc
// @Summary Edit a participant's name or score
// @Tags brackets
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param round path int true "Round index"
// @Param match path int true "Match index"
// @Param participant path int true "0 or 1"
// @Param body body services.ParticipantUpdate true "Changes"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /events/{eventID}/bracket/rounds/{round}/matches/{match}/participants/{participant} [patch]
func (h *BracketHandler) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	eventID, round, ok := h.roundParams(w, r)
	if !ok {
		return
	}
	match, err := getIndexFromURL(r, "match")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	participant, err := getIndexFromURL(r, "participant")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.ParticipantUpdate
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	layout, err := h.eventService.UpdateParticipant(r.Context(), eventID, round, match, participant, input)
	h.editResponse(w, r, http.StatusOK, layout, err)
}

func (h *BracketHandler) roundParams(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return "", 0, false
	}
	round, err := getIndexFromURL(r, "round")
	if err != nil {
		badRequestResponse(w, r, err)
		return "", 0, false
	}
	return eventID, round, true
}
