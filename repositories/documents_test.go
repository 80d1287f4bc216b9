package repositories

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pskpp/festival/models"
)

func TestMemoryDocumentStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryDocumentStore()

	_, err := s.Load(ctx, "theme")
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	require.NoError(t, s.Save(ctx, "theme", json.RawMessage(`{"primary":"#000"}`)))
	doc, err := s.Load(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, doc.Version)
	assert.JSONEq(t, `{"primary":"#000"}`, string(doc.Payload))

	assert.ErrorIs(t, s.Save(ctx, "theme", json.RawMessage(`{broken`)), ErrInvalidDocumentRaw)
	assert.ErrorIs(t, s.Save(ctx, "", json.RawMessage(`{}`)), ErrEmptyDocumentKey)

	require.NoError(t, s.Delete(ctx, "theme"))
	assert.ErrorIs(t, s.Delete(ctx, "theme"), ErrDocumentNotFound)
}

func TestSingletonDefaultAndReset(t *testing.T) {
	ctx := context.Background()
	theme := NewSingleton(NewMemoryDocumentStore(), KeyTheme, models.DefaultTheme)

	got, err := theme.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultTheme(), got)

	custom := models.Theme{Primary: "#123456", Secondary: "#abcdef", HeadingFont: "Oswald", BodyFont: "Roboto"}
	require.NoError(t, theme.Save(ctx, custom))
	got, err = theme.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, custom, got)

	require.NoError(t, theme.Reset(ctx))
	require.NoError(t, theme.Reset(ctx), "resetting twice is fine")
	got, err = theme.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultTheme(), got)
}

type versionedStore struct {
	*MemoryDocumentStore
	version int
}

func (s versionedStore) Load(ctx context.Context, key string) (*Document, error) {
	doc, err := s.MemoryDocumentStore.Load(ctx, key)
	if doc != nil {
		doc.Version = s.version
	}
	return doc, err
}

func TestSingletonRejectsOtherSchemaVersion(t *testing.T) {
	ctx := context.Background()
	store := versionedStore{MemoryDocumentStore: NewMemoryDocumentStore(), version: SchemaVersion + 1}
	require.NoError(t, store.Save(ctx, KeyHero, json.RawMessage(`{"image":"x","active":"image"}`)))

	_, err := NewSingleton(store, KeyHero, models.DefaultHeroBackground).Get(ctx)
	assert.ErrorIs(t, err, ErrSchemaVersion)
}
