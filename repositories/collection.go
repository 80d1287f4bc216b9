package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/pskpp/festival/models"
)

type Keyed interface {
	Key() string
}

// Collection is an ordered list of items stored as one document. Each write
// loads the list, edits it and saves it back under the collection mutex.
type Collection[T Keyed] struct {
	mu    sync.Mutex
	store DocumentStore
	key   string
}

func NewCollection[T Keyed](store DocumentStore, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

type (
	EventRepository   = Collection[models.Event]
	SponsorRepository = Collection[models.Sponsor]
	GalleryRepository = Collection[models.GalleryItem]
	LinkRepository    = Collection[models.ManagedLink]
)

func NewEventRepository(store DocumentStore) *EventRepository {
	return NewCollection[models.Event](store, KeyEvents)
}

func NewSponsorRepository(store DocumentStore) *SponsorRepository {
	return NewCollection[models.Sponsor](store, KeySponsors)
}

func NewGalleryRepository(store DocumentStore) *GalleryRepository {
	return NewCollection[models.GalleryItem](store, KeyGallery)
}

func NewLinkRepository(store DocumentStore) *LinkRepository {
	return NewCollection[models.ManagedLink](store, KeyLinks)
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	items := []T{}
	if _, err := loadDocument(ctx, c.store, c.key, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s %q", ErrItemNotFound, c.key, id)
	}
	return &items[i], nil
}

// Create appends the item, or prepends it when prepend is set.
func (c *Collection[T]) Create(ctx context.Context, item T, prepend bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	if indexOf(items, item.Key()) >= 0 {
		return fmt.Errorf("%w: %s %q", ErrItemConflict, c.key, item.Key())
	}
	if prepend {
		items = append([]T{item}, items...)
	} else {
		items = append(items, item)
	}
	return saveDocument(ctx, c.store, c.key, items)
}

// CreateMany appends several items in one write.
func (c *Collection[T]) CreateMany(ctx context.Context, newItems []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	for _, item := range newItems {
		if indexOf(items, item.Key()) >= 0 {
			return fmt.Errorf("%w: %s %q", ErrItemConflict, c.key, item.Key())
		}
		items = append(items, item)
	}
	return saveDocument(ctx, c.store, c.key, items)
}

func (c *Collection[T]) Update(ctx context.Context, item T) error {
	return c.Mutate(ctx, item.Key(), func(existing *T) error {
		*existing = item
		return nil
	})
}

// Mutate applies fn to the stored item and saves the collection. Nothing is
// saved when fn returns an error.
func (c *Collection[T]) Mutate(ctx context.Context, id string, fn func(item *T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(items, id)
	if i < 0 {
		return fmt.Errorf("%w: %s %q", ErrItemNotFound, c.key, id)
	}
	if err := fn(&items[i]); err != nil {
		return err
	}
	if items[i].Key() != id {
		return fmt.Errorf("item id cannot change from %q to %q", id, items[i].Key())
	}
	return saveDocument(ctx, c.store, c.key, items)
}

// Delete removes the item and returns it.
func (c *Collection[T]) Delete(ctx context.Context, id string) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s %q", ErrItemNotFound, c.key, id)
	}
	removed := items[i]
	items = append(items[:i], items[i+1:]...)
	if err := saveDocument(ctx, c.store, c.key, items); err != nil {
		return nil, err
	}
	return &removed, nil
}

// Reorder puts the items in the order of ids, which must be a permutation of
// the stored ids.
func (c *Collection[T]) Reorder(ctx context.Context, ids []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	if len(ids) != len(items) {
		return fmt.Errorf("%w: got %d ids for %d items", ErrInvalidOrder, len(ids), len(items))
	}
	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[item.Key()] = item
	}
	reordered := make([]T, 0, len(items))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: unknown or repeated id %q", ErrInvalidOrder, id)
		}
		delete(byID, id)
		reordered = append(reordered, item)
	}
	return saveDocument(ctx, c.store, c.key, reordered)
}

// Replace overwrites the whole collection.
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if items == nil {
		items = []T{}
	}
	return saveDocument(ctx, c.store, c.key, items)
}

func indexOf[T Keyed](items []T, id string) int {
	for i, item := range items {
		if item.Key() == id {
			return i
		}
	}
	return -1
}
