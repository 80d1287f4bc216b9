package routes

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pskpp/festival/docs"
)

type swaggerDoc struct {
	BasePath    string                                `json:"basePath"`
	Paths       map[string]map[string]json.RawMessage `json:"paths"`
	Definitions map[string]json.RawMessage            `json:"definitions"`
}

func readSwagger(t *testing.T) (swaggerDoc, string) {
	t.Helper()
	raw := docs.SwaggerInfo.ReadDoc()
	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc, raw
}

func TestSwaggerDocumentsEveryAPIRoute(t *testing.T) {
	doc, _ := readSwagger(t)
	require.Equal(t, "/api", doc.BasePath)

	s := newTestServer(t)
	var routes int
	err := chi.Walk(s.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		path, ok := strings.CutPrefix(route, doc.BasePath)
		if !ok {
			return nil
		}
		routes++
		if len(path) > 1 {
			path = strings.TrimSuffix(path, "/")
		}
		ops, found := doc.Paths[path]
		if assert.True(t, found, "path %s is not documented", path) {
			assert.Contains(t, ops, strings.ToLower(method), "%s %s is not documented", method, path)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Greater(t, routes, 50)
}

func TestSwaggerReferencesResolve(t *testing.T) {
	doc, raw := readSwagger(t)
	refs := regexp.MustCompile(`"#/definitions/([^"]+)"`).FindAllStringSubmatch(raw, -1)
	require.NotEmpty(t, refs)
	for _, ref := range refs {
		assert.Contains(t, doc.Definitions, ref[1])
	}
	for _, name := range []string{"brackets.Layout", "models.Event", "models.AdminProfile", "services.LinkInput"} {
		assert.Contains(t, doc.Definitions, name)
	}
}
