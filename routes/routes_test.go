package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pskpp/festival/brackets"
	"github.com/pskpp/festival/handlers"
	"github.com/pskpp/festival/middleware"
	"github.com/pskpp/festival/repositories"
	"github.com/pskpp/festival/services"
	"github.com/pskpp/festival/storage"
)

const (
	testSecret   = "test-secret"
	testPassword = "rahsia-pskpp"
)

type testServer struct {
	t      *testing.T
	router chi.Router
	hub    *brackets.Hub
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := repositories.NewMemoryDocumentStore()
	hub := brackets.NewHub(logger)
	go hub.Run()
	t.Cleanup(hub.Stop)

	uploader, err := storage.NewLocalUploader(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	adminService, err := services.NewAdminService(string(hash))
	require.NoError(t, err)

	eventRepo := repositories.NewEventRepository(store)
	sponsorRepo := repositories.NewSponsorRepository(store)
	galleryRepo := repositories.NewGalleryRepository(store)
	linkRepo := repositories.NewLinkRepository(store)
	eventService := services.NewEventService(eventRepo, hub, logger)
	contentService := services.NewContentService(store, linkRepo)
	sponsorService := services.NewSponsorService(sponsorRepo, uploader, logger)
	galleryService := services.NewGalleryService(galleryRepo, uploader, logger)

	registry := prometheus.NewRegistry()
	router := chi.NewRouter()
	SetupRoutes(router, Handlers{
		Auth:      handlers.NewAuthHandler(adminService, testSecret, 0),
		Event:     handlers.NewEventHandler(eventService),
		Bracket:   handlers.NewBracketHandler(eventService, contentService, handlers.NewBracketMetrics(registry)),
		Content:   handlers.NewContentHandler(contentService),
		Media:     handlers.NewMediaHandler(sponsorService, galleryService, services.NewLinkService(linkRepo)),
		WebSocket: handlers.NewWebSocketHandler(hub, eventService, nil, logger),
		Dashboard: handlers.NewDashboardHandler(services.NewDashboardService(eventRepo, sponsorRepo, galleryRepo, linkRepo)),
		Profile:   handlers.NewProfileHandler(services.NewProfileService(store, uploader, logger)),
	}, Options{
		JWTSecret: []byte(testSecret),
		Metrics:   middleware.NewHTTPMetrics(registry),
		Gatherer:  registry,
	})

	return &testServer{t: t, router: router, hub: hub}
}

func (s *testServer) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) json(method, path, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	return s.do(method, path, r, "application/json")
}

func (s *testServer) login() {
	s.t.Helper()
	rec := s.json(http.MethodPost, "/api/admin/login", `{"password":"`+testPassword+`"}`)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(s.t, resp.Token)
	s.token = resp.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *testServer) createEvent(title string) string {
	s.t.Helper()
	rec := s.json(http.MethodPost, "/api/events",
		`{"title":"`+title+`","category":"Sukan","date":"2025-05-10","location":"Putrajaya"}`)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[struct {
		Event struct {
			ID string `json:"id"`
		} `json:"event"`
	}](s.t, rec)
	return resp.Event.ID
}

type layoutResponse struct {
	Layout *brackets.Layout `json:"layout"`
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/events"},
		{http.MethodPut, "/api/events/x"},
		{http.MethodPost, "/api/events/x/bracket/rounds"},
		{http.MethodPut, "/api/theme"},
		{http.MethodPost, "/api/sponsors"},
		{http.MethodDelete, "/api/links/x"},
		{http.MethodGet, "/api/admin/stats"},
		{http.MethodGet, "/api/admin/profile"},
		{http.MethodPut, "/api/admin/profile/image"},
		{http.MethodDelete, "/api/admin/profile/image"},
	} {
		rec := s.json(tc.method, tc.path, "{}")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}

	rec := s.json(http.MethodPost, "/api/admin/login", `{"password":"salah"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.json(http.MethodPost, "/api/admin/login", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBracketEditingFlow(t *testing.T) {
	s := newTestServer(t)
	s.login()
	id := s.createEvent("Badminton Beregu")

	rec := s.json(http.MethodGet, "/api/events/"+id+"/bracket/layout", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.json(http.MethodPost, "/api/events/"+id+"/bracket/generate", `{"entrants":["A","B","C","D"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	generated := decode[layoutResponse](t, rec)
	require.NotNil(t, generated.Layout)
	require.Len(t, generated.Layout.Columns, 2)

	base := "/api/events/" + id + "/bracket/rounds/0/matches/0/participants/"
	rec = s.json(http.MethodPatch, base+"0", `{"score":3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.json(http.MethodPatch, base+"1", `{"score":1,"name":"Bravo"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.json(http.MethodGet, "/api/events/"+id+"/bracket/layout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	layout := decode[brackets.Layout](t, rec)
	m := layout.Columns[0].Matches[0]
	assert.Equal(t, 0, m.Winner)
	assert.Equal(t, "Bravo", m.Rows[1].Name)
	assert.Equal(t, "1", m.Rows[1].Score)

	rec = s.json(http.MethodPatch, "/api/events/"+id+"/bracket/rounds/1", `{"title":"Final"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Final", decode[layoutResponse](t, rec).Layout.Columns[1].Title)

	rec = s.json(http.MethodPost, "/api/events/"+id+"/bracket/rounds/1/matches", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, decode[layoutResponse](t, rec).Layout.Warnings, 1)

	rec = s.json(http.MethodDelete, "/api/events/"+id+"/bracket/rounds/1/matches/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[layoutResponse](t, rec).Layout.Warnings)

	rec = s.json(http.MethodDelete, "/api/events/"+id+"/bracket/rounds/7", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.json(http.MethodPatch, base+"2", `{"score":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.json(http.MethodPatch, base+"0", `{"score":1.5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.json(http.MethodPatch, base+"0", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.json(http.MethodGet, "/api/admin/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[map[string]int](t, rec)
	assert.Equal(t, 1, stats["events_with_bracket"])
	assert.Equal(t, 3, stats["matches_total"])
	assert.Equal(t, 1, stats["matches_decided"])

	rec = s.json(http.MethodGet, "/api/events/"+id+"/bracket.svg", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<svg "))

	rec = s.json(http.MethodGet, "/api/events/"+id+"/bracket", "")
	require.Equal(t, http.StatusOK, rec.Code)
	raw := decode[struct {
		Rounds []json.RawMessage `json:"rounds"`
	}](t, rec)
	assert.Len(t, raw.Rounds, 2)

	rec = s.json(http.MethodDelete, "/api/events/"+id+"/bracket/rounds/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.json(http.MethodDelete, "/api/events/"+id+"/bracket/rounds/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"layout":null}`, rec.Body.String())

	rec = s.json(http.MethodGet, "/api/events/"+id+"/bracket.svg", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestEventsListAndDelete(t *testing.T) {
	s := newTestServer(t)
	s.login()
	first := s.createEvent("Bola Tampar")
	second := s.createEvent("Larian Amal")

	rec := s.json(http.MethodGet, "/api/events?q=larian", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Events []struct {
			ID string `json:"id"`
		} `json:"events"`
	}](t, rec)
	require.Len(t, list.Events, 1)
	assert.Equal(t, second, list.Events[0].ID)

	rec = s.json(http.MethodGet, "/api/events?from=2025-13-01", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.json(http.MethodPost, "/api/events/"+first+"/featured", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.json(http.MethodGet, "/api/events", "")
	list = decode[struct {
		Events []struct {
			ID string `json:"id"`
		} `json:"events"`
	}](t, rec)
	require.Len(t, list.Events, 2)
	assert.Equal(t, first, list.Events[0].ID)

	rec = s.json(http.MethodGet, "/api/events/facets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"categories":["Sukan"],"game_statuses":[]}`, rec.Body.String())

	rec = s.json(http.MethodDelete, "/api/events/"+first, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.json(http.MethodGet, "/api/events/"+first, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.json(http.MethodPost, "/api/events", `{"title":"","date":"2025-01-01"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestStatelessRender(t *testing.T) {
	s := newTestServer(t)
	body := `{"rounds":[{"title":"Akhir","matches":[{"participants":[{"name":"Kedah","score":2},{"name":"Perlis","score":2}]}]}]}`

	rec := s.json(http.MethodPost, "/api/brackets/layout", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	layout := decode[brackets.Layout](t, rec)
	assert.Equal(t, brackets.NoWinner, layout.Columns[0].Matches[0].Winner)
	assert.Equal(t, 240.0, layout.Width)

	rec = s.json(http.MethodPost, "/api/brackets/svg", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Perlis")

	rec = s.json(http.MethodPost, "/api/brackets/layout", `[]`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.json(http.MethodPost, "/api/brackets/layout", `[{"title":"x","matches":[{"participants":[]}]}]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `festival_bracket_renders_total{format="layout"} 1`)
	assert.Contains(t, rec.Body.String(), `festival_bracket_renders_total{format="svg"} 1`)
}

func TestThemeEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/theme.css", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/css; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "--color-primary: 215 28% 17%;")

	s.login()
	rec = s.json(http.MethodPut, "/api/theme", `{"primary":"red","secondary":"#FBBF24","heading_font":"Teko","body_font":"Inter"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.json(http.MethodPut, "/api/theme", `{"primary":"#000000","secondary":"#FFFFFF","heading_font":"Oswald","body_font":"Roboto"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/theme.css", nil, "")
	assert.Contains(t, rec.Body.String(), "--color-primary: 0 0% 0%;")
	assert.Contains(t, rec.Body.String(), "--font-family-body: 'Roboto', sans-serif;")

	rec = s.json(http.MethodDelete, "/api/theme", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "#1F2937", decode[map[string]string](t, rec)["primary"])

	rec = s.do(http.MethodGet, "/api/content", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"links": []`)
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, contentType := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="files"; filename="`+name+`"`)
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("data of " + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestSponsorAndGalleryUploads(t *testing.T) {
	s := newTestServer(t)
	s.login()

	body, ct := multipartBody(t, map[string]string{"Petronas.png": "image/png"})
	rec := s.do(http.MethodPost, "/api/sponsors", body, ct)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/sponsors", nil, "")
	sponsors := decode[struct {
		Sponsors []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			LogoURL string `json:"logo_url"`
		} `json:"sponsors"`
	}](t, rec)
	require.Len(t, sponsors.Sponsors, 1)
	assert.Equal(t, "Petronas", sponsors.Sponsors[0].Name)
	assert.True(t, strings.HasPrefix(sponsors.Sponsors[0].LogoURL, "http://localhost:8080/uploads/sponsors/"))

	body, ct = multipartBody(t, map[string]string{"notes.txt": "text/plain"})
	rec = s.do(http.MethodPost, "/api/gallery", body, ct)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = s.json(http.MethodPost, "/api/gallery/url", `{"type":"video","src":"https://cdn.example.org/a.mp4"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.json(http.MethodPut, "/api/sponsors/order", `{"ids":["nope"]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.json(http.MethodDelete, "/api/sponsors/"+sponsors.Sponsors[0].ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.json(http.MethodDelete, "/api/sponsors/"+sponsors.Sponsors[0].ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminProfileImage(t *testing.T) {
	s := newTestServer(t)
	s.login()

	type profileResponse struct {
		Profile struct {
			ImageURL string `json:"image_url"`
		} `json:"profile"`
	}

	rec := s.do(http.MethodGet, "/api/admin/profile", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[profileResponse](t, rec).Profile.ImageURL)

	body, ct := multipartBody(t, map[string]string{"saya.png": "image/png"})
	rec = s.do(http.MethodPut, "/api/admin/profile/image", body, ct)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	uploaded := decode[profileResponse](t, rec).Profile.ImageURL
	assert.True(t, strings.HasPrefix(uploaded, "http://localhost:8080/uploads/profile/"), uploaded)

	rec = s.do(http.MethodGet, "/api/admin/profile", nil, "")
	assert.Equal(t, uploaded, decode[profileResponse](t, rec).Profile.ImageURL)

	body, ct = multipartBody(t, map[string]string{"a.png": "image/png", "b.png": "image/png"})
	rec = s.do(http.MethodPut, "/api/admin/profile/image", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, ct = multipartBody(t, map[string]string{"cv.pdf": "application/pdf"})
	rec = s.do(http.MethodPut, "/api/admin/profile/image", body, ct)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = s.do(http.MethodDelete, "/api/admin/profile/image", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[profileResponse](t, rec).Profile.ImageURL)
}

func TestUploadTooLarge(t *testing.T) {
	s := newTestServer(t)
	s.login()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("files", "besar.png")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0}, 6<<20))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rec := s.do(http.MethodPut, "/api/admin/profile/image", &buf, w.FormDataContentType())
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestLinks(t *testing.T) {
	s := newTestServer(t)
	s.login()

	rec := s.json(http.MethodPost, "/api/links", `{"title":"Portal","url":"ftp://x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.json(http.MethodPost, "/api/links", `{"title":"Portal","url":"https://pskpp.my"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	link := decode[struct {
		Link struct {
			ID string `json:"id"`
		} `json:"link"`
	}](t, rec)

	rec = s.json(http.MethodPut, "/api/links/"+link.Link.ID, `{"title":"Portal Rasmi","url":"https://pskpp.my"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/links", nil, "")
	assert.Contains(t, rec.Body.String(), "Portal Rasmi")
}
