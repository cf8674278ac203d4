package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"chronocorpus/internal/models"
	"chronocorpus/internal/vector"
)

// EventDoc is one indexed corpus document: the rendered sentence, its
// metadata, and its embedding.
type EventDoc struct {
	DocID     string
	Content   string
	Metadata  models.Metadata
	Embedding []float32
}

type EventRepo struct {
	db *DB
}

func NewEventRepo(db *DB) *EventRepo {
	return &EventRepo{db: db}
}

// EnsureSchema creates the events table and its vector index. The embedding
// column width is fixed per database; changing dimensions means a new table.
func (r *EventRepo) EnsureSchema(ctx context.Context, dim int) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS corpus_events (
  collection TEXT NOT NULL,
  doc_id     TEXT NOT NULL,
  content    TEXT NOT NULL,
  metadata   JSONB NOT NULL DEFAULT '{}'::jsonb,
  embedding  vector(%d),
  PRIMARY KEY (collection, doc_id)
)`, dim),
		`CREATE INDEX IF NOT EXISTS corpus_events_collection_idx ON corpus_events (collection)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Count reports how many documents a collection holds. The index build is
// guarded on this being zero; running two builders concurrently against the
// same store is not supported.
func (r *EventRepo) Count(ctx context.Context, collection string) (int64, error) {
	var n int64
	err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM corpus_events WHERE collection=$1`, collection).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count collection %s: %w", collection, err)
	}
	return n, nil
}

// BulkInsert writes a batch of documents in one transaction.
func (r *EventRepo) BulkInsert(ctx context.Context, collection string, docs []EventDoc) error {
	if len(docs) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx insert events: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, doc := range docs {
		meta, err := json.Marshal(doc.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata %s: %w", doc.DocID, err)
		}
		_, err = tx.Exec(ctx, `
INSERT INTO corpus_events (collection, doc_id, content, metadata, embedding)
VALUES ($1, $2, $3, $4::jsonb, $5::vector)
ON CONFLICT (collection, doc_id)
DO UPDATE SET
  content = EXCLUDED.content,
  metadata = EXCLUDED.metadata,
  embedding = EXCLUDED.embedding`,
			collection, doc.DocID, doc.Content, string(meta), vector.ToLiteral(doc.Embedding),
		)
		if err != nil {
			return fmt.Errorf("insert event doc %s: %w", doc.DocID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit events tx: %w", err)
	}
	return nil
}
