package repositories

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pskpp/festival/models"
)

const testSeed = `
events:
  - id: bola-sepak-2025
    title: Bola Sepak
    category: Sukan
    category_icon: football
    date: "2025-03-01"
    location: Stadium Shah Alam
    is_featured: true
    bracket_data:
      - title: Akhir
        matches:
          - participants:
              - name: Selangor
                score: 2
              - name: Johor
theme:
  primary: "#0F172A"
  secondary: "#F59E0B"
  heading_font: Teko
  body_font: Inter
links:
  - id: portal
    title: Portal
    url: https://example.org
`

func TestParseSeed(t *testing.T) {
	seed, err := ParseSeed([]byte(testSeed))
	require.NoError(t, err)
	require.Len(t, seed.Events, 1)

	e := seed.Events[0]
	assert.Equal(t, models.IconFootball, e.CategoryIcon)
	require.Len(t, e.BracketData, 1)
	p := e.BracketData[0].Matches[0].Participants
	require.NotNil(t, p[0].Score)
	assert.Equal(t, 2, *p[0].Score)
	assert.Nil(t, p[1].Score)

	sum := seed.Summary()
	assert.Equal(t, 1, sum[KeyEvents])
	assert.Equal(t, 1, sum[KeyTheme])
	assert.Equal(t, 0, sum[KeyAbout])
	assert.Equal(t, 1, sum[KeyLinks])
}

func TestParseSeedRejectsBadInput(t *testing.T) {
	const event = "events:\n  - id: a\n    title: A\n    date: \"2025-03-01\"\n"
	const theme = "theme: {primary: \"#0F172A\", secondary: \"#F59E0B\", heading_font: Teko, body_font: Inter}\n"

	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{"unknown field", "eventz: []\n", nil},
		{"event without id", "events:\n  - title: X\n    date: \"2025-03-01\"\n", nil},
		{"duplicate id", event + "  - id: a\n    title: B\n    date: \"2025-03-02\"\n", nil},
		{"event date not ISO", "events:\n  - id: a\n    title: A\n    date: 25 September 2025\n", models.ErrInvalidDate},
		{"event without title", "events:\n  - id: a\n    date: \"2025-03-01\"\n", models.ErrEventTitleEmpty},
		{"unknown icon", "events:\n  - id: a\n    title: A\n    date: \"2025-03-01\"\n    category_icon: curling\n", models.ErrInvalidIcon},
		{"theme color not hex", strings.Replace(theme, `"#0F172A"`, "red", 1), models.ErrInvalidTheme},
		{"theme font escapes css", strings.Replace(theme, "body_font: Inter", `body_font: "Inter'; } body {"`, 1), models.ErrInvalidTheme},
		{"hero without active media", "hero: {image: \"https://x.test/a.jpg\", active: video}\n", models.ErrInvalidHero},
		{"hero with script url", "hero: {image: \"javascript:alert(1)\", active: image}\n", models.ErrInvalidURL},
		{"gallery audio", "gallery:\n  - {id: g1, type: audio, src: \"https://x.test/a.mp3\"}\n", models.ErrUnsupportedMediaType},
		{"link not absolute", "links:\n  - {id: l1, title: Portal, url: example.org}\n", models.ErrInvalidURL},
		{"sponsor without name", "sponsors:\n  - {id: s1, logo_url: \"https://x.test/s.png\"}\n", models.ErrMissingField},
		{"about without title", "about: {subtitle: x}\n", models.ErrMissingField},
		{"profile relative image", "admin_profile: {image_url: /me.png}\n", models.ErrInvalidURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeed([]byte(tt.yaml))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestParseSeedAcceptsValidDocuments(t *testing.T) {
	_, err := ParseSeed([]byte(`
theme: {primary: "#fff", secondary: "#F59E0B", heading_font: Teko, body_font: Open Sans}
hero: {image: "https://x.test/a.jpg", video: "https://x.test/a.mp4", active: video}
sponsors:
  - {id: s1, name: Petronas, logo_url: "https://x.test/s.png"}
gallery:
  - {id: g1, type: video, src: "https://x.test/a.mp4"}
admin_profile: {image_url: "https://x.test/me.png"}
`))
	assert.NoError(t, err)
}

func TestApplySeedKeepsExistingDocuments(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDocumentStore()
	seed, err := ParseSeed([]byte(testSeed))
	require.NoError(t, err)

	theme := NewSingleton(store, KeyTheme, models.DefaultTheme)
	require.NoError(t, theme.Save(ctx, models.DefaultTheme()))

	written, err := ApplySeed(ctx, store, seed, false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{KeyEvents, KeyLinks}, written)

	got, err := theme.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultTheme(), got)

	written, err = ApplySeed(ctx, store, seed, true)
	require.NoError(t, err)
	assert.Contains(t, written, KeyTheme)
	got, err = theme.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "#0F172A", got.Primary)

	events, err := NewEventRepository(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].IsFeatured)
}

func TestParseSeedEmpty(t *testing.T) {
	seed, err := ParseSeed(nil)
	require.NoError(t, err)
	assert.Empty(t, seed.Events)
}

func TestExampleSeedFileIsValid(t *testing.T) {
	seed, err := LoadSeed("../seed.example.yaml")
	require.NoError(t, err)
	assert.Len(t, seed.Events, 4)
	require.NotNil(t, seed.Theme)
	assert.Equal(t, models.DefaultTheme(), *seed.Theme)
	for _, e := range seed.Events {
		_, _, ok := e.Span()
		assert.True(t, ok, e.ID)
	}
}
