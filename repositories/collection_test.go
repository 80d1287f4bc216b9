package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pskpp/festival/models"
)

func linkIDs(items []models.ManagedLink) []string {
	ids := make([]string, 0, len(items))
	for _, l := range items {
		ids = append(ids, l.ID)
	}
	return ids
}

func TestCollectionCRUD(t *testing.T) {
	ctx := context.Background()
	links := NewLinkRepository(NewMemoryDocumentStore())

	items, err := links.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	require.NoError(t, links.Create(ctx, models.ManagedLink{ID: "a", Title: "A"}, false))
	require.NoError(t, links.Create(ctx, models.ManagedLink{ID: "b", Title: "B"}, false))
	require.NoError(t, links.Create(ctx, models.ManagedLink{ID: "c", Title: "C"}, true))
	assert.ErrorIs(t, links.Create(ctx, models.ManagedLink{ID: "a"}, false), ErrItemConflict)

	items, err = links.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, linkIDs(items))

	require.NoError(t, links.Update(ctx, models.ManagedLink{ID: "a", Title: "A2"}))
	got, err := links.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Title)

	removed, err := links.Delete(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "C", removed.Title)

	_, err = links.Get(ctx, "c")
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = links.Delete(ctx, "c")
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.ErrorIs(t, links.Update(ctx, models.ManagedLink{ID: "zz"}), ErrItemNotFound)
}

func TestCollectionReorder(t *testing.T) {
	ctx := context.Background()
	links := NewLinkRepository(NewMemoryDocumentStore())
	require.NoError(t, links.CreateMany(ctx, []models.ManagedLink{{ID: "a"}, {ID: "b"}, {ID: "c"}}))

	require.NoError(t, links.Reorder(ctx, []string{"c", "a", "b"}))
	items, err := links.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, linkIDs(items))

	for _, ids := range [][]string{{"a", "b"}, {"a", "a", "b"}, {"a", "b", "x"}} {
		assert.ErrorIs(t, links.Reorder(ctx, ids), ErrInvalidOrder, "%v", ids)
	}
}

func TestCollectionMutateRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	events := NewEventRepository(NewMemoryDocumentStore())
	require.NoError(t, events.Create(ctx, models.Event{ID: "silat", Title: "Silat"}, false))

	boom := errors.New("boom")
	err := events.Mutate(ctx, "silat", func(e *models.Event) error {
		e.Title = "changed"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	e, err := events.Get(ctx, "silat")
	require.NoError(t, err)
	assert.Equal(t, "Silat", e.Title)

	err = events.Mutate(ctx, "silat", func(e *models.Event) error {
		e.ID = "other"
		return nil
	})
	assert.Error(t, err)
}

func TestCollectionStoresBracketWithEvent(t *testing.T) {
	ctx := context.Background()
	events := NewEventRepository(NewMemoryDocumentStore())

	var b models.Bracket
	b.AddRound("Akhir")
	_, err := b.AddMatch(0)
	require.NoError(t, err)
	require.NoError(t, events.Create(ctx, models.Event{ID: "e1", BracketData: b}, false))

	got, err := events.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, b, got.BracketData)

	_, err = events.Delete(ctx, "e1")
	require.NoError(t, err)
	items, err := events.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
