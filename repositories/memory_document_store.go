package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryDocumentStore keeps documents in process memory. It backs
// STORE_DRIVER=memory and the tests.
type MemoryDocumentStore struct {
	mu   sync.RWMutex
	docs map[string]Document
	now  func() time.Time
}

func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{docs: make(map[string]Document), now: time.Now}
}

func (s *MemoryDocumentStore) Load(ctx context.Context, key string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[key]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	doc.Payload = bytes.Clone(doc.Payload)
	return &doc, nil
}

func (s *MemoryDocumentStore) Save(ctx context.Context, key string, payload json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateDocument(key, payload); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[key] = Document{
		Key:       key,
		Version:   SchemaVersion,
		Payload:   bytes.Clone(payload),
		UpdatedAt: s.now().UTC(),
	}
	return nil
}

func (s *MemoryDocumentStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[key]; !ok {
		return ErrDocumentNotFound
	}
	delete(s.docs, key)
	return nil
}
