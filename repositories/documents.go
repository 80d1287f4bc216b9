package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

func loadDocument[T any](ctx context.Context, store DocumentStore, key string, out *T) (bool, error) {
	doc, err := store.Load(ctx, key)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return false, nil
		}
		return false, err
	}
	if doc.Version != SchemaVersion {
		return false, fmt.Errorf("%w: %q has version %d", ErrSchemaVersion, key, doc.Version)
	}
	if err := json.Unmarshal(doc.Payload, out); err != nil {
		return false, fmt.Errorf("failed to decode document %q: %w", key, err)
	}
	return true, nil
}

func saveDocument[T any](ctx context.Context, store DocumentStore, key string, v T) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode document %q: %w", key, err)
	}
	return store.Save(ctx, key, payload)
}

// Singleton is a document holding a single value, e.g. the theme. A missing
// document reads as the default value.
type Singleton[T any] struct {
	store      DocumentStore
	key        string
	defaultVal func() T
}

func NewSingleton[T any](store DocumentStore, key string, defaultVal func() T) *Singleton[T] {
	return &Singleton[T]{store: store, key: key, defaultVal: defaultVal}
}

func (s *Singleton[T]) Get(ctx context.Context) (T, error) {
	var v T
	found, err := loadDocument(ctx, s.store, s.key, &v)
	if err != nil {
		return v, err
	}
	if !found {
		return s.defaultVal(), nil
	}
	return v, nil
}

func (s *Singleton[T]) Save(ctx context.Context, v T) error {
	return saveDocument(ctx, s.store, s.key, v)
}

// Reset removes the stored value so that Get returns the default again.
func (s *Singleton[T]) Reset(ctx context.Context) error {
	err := s.store.Delete(ctx, s.key)
	if errors.Is(err, ErrDocumentNotFound) {
		return nil
	}
	return err
}
