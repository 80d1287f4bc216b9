package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// SchemaVersion is written with every stored document. Documents with another
// version are rejected on read rather than decoded into the wrong shape.
const SchemaVersion = 1

// Ключи документов контента сайта.
const (
	KeyEvents   = "events"
	KeyTheme    = "theme"
	KeyAbout    = "about"
	KeyContact  = "contact"
	KeyFooter   = "footer"
	KeyHero     = "hero"
	KeySponsors = "sponsors"
	KeyGallery  = "gallery"
	KeyLinks    = "links"
	KeyProfile  = "admin_profile"
)

var (
	ErrDocumentNotFound   = errors.New("document not found")
	ErrSchemaVersion      = errors.New("unsupported document schema version")
	ErrItemNotFound       = errors.New("item not found")
	ErrItemConflict       = errors.New("item with this id already exists")
	ErrInvalidOrder       = errors.New("order must list every item exactly once")
	ErrEmptyDocumentKey   = errors.New("document key is empty")
	ErrInvalidDocumentRaw = errors.New("document payload is not valid JSON")
)

type Document struct {
	Key       string
	Version   int
	Payload   json.RawMessage
	UpdatedAt time.Time
}

// DocumentStore keeps whole JSON documents by key. Every write replaces the
// document atomically.
type DocumentStore interface {
	Load(ctx context.Context, key string) (*Document, error)
	Save(ctx context.Context, key string, payload json.RawMessage) error
	Delete(ctx context.Context, key string) error
}

func validateDocument(key string, payload json.RawMessage) error {
	if key == "" {
		return ErrEmptyDocumentKey
	}
	if !json.Valid(payload) {
		return ErrInvalidDocumentRaw
	}
	return nil
}
