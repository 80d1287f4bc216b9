package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type postgresDocumentStore struct {
	db *sql.DB
}

func NewPostgresDocumentStore(db *sql.DB) DocumentStore {
	return &postgresDocumentStore{db: db}
}

func (s *postgresDocumentStore) Load(ctx context.Context, key string) (*Document, error) {
	query := `SELECT key, version, payload, updated_at FROM site_documents WHERE key = $1`

	var doc Document
	var payload []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&doc.Key, &doc.Version, &payload, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to load document %q: %w", key, err)
	}
	doc.Payload = json.RawMessage(payload)
	return &doc, nil
}

func (s *postgresDocumentStore) Save(ctx context.Context, key string, payload json.RawMessage) error {
	if err := validateDocument(key, payload); err != nil {
		return err
	}
	query := `
		INSERT INTO site_documents (key, version, payload, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (key) DO UPDATE
		SET version = EXCLUDED.version, payload = EXCLUDED.payload, updated_at = NOW()`

	if _, err := s.db.ExecContext(ctx, query, key, SchemaVersion, []byte(payload)); err != nil {
		return fmt.Errorf("failed to save document %q: %w", key, err)
	}
	return nil
}

func (s *postgresDocumentStore) Delete(ctx context.Context, key string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM site_documents WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete document %q: %w", key, err)
	}
	return checkAffectedRows(result, ErrDocumentNotFound)
}
