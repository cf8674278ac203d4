package vector

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"chronocorpus/internal/models"

	"github.com/jackc/pgx/v5"
)

// Hit is one retrieved document with its similarity score.
type Hit struct {
	DocID    string
	Content  string
	Metadata models.Metadata
	Score    float64
}

type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Searcher struct {
	q Queryer
}

func NewSearcher(q Queryer) *Searcher {
	return &Searcher{q: q}
}

// Search returns the topK nearest documents to the query vector, nearest
// first. The caller embeds the query with the same backend that built the
// collection.
func (s *Searcher) Search(ctx context.Context, collection string, queryVec []float32, topK int) ([]Hit, error) {
	if topK <= 0 {
		topK = 6
	}
	rows, err := s.q.Query(ctx, `
SELECT doc_id,
       content,
       metadata,
       1 - (embedding <=> $2::vector) AS score
FROM corpus_events
WHERE collection = $1
  AND embedding IS NOT NULL
ORDER BY embedding <=> $2::vector
LIMIT $3`, collection, ToLiteral(queryVec), topK)
	if err != nil {
		return nil, fmt.Errorf("query vector search: %w", err)
	}
	defer rows.Close()

	hits := make([]Hit, 0, topK)
	for rows.Next() {
		var h Hit
		var meta []byte
		if err := rows.Scan(&h.DocID, &h.Content, &meta, &h.Score); err != nil {
			return nil, fmt.Errorf("scan search hit: %w", err)
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &h.Metadata); err != nil {
				return nil, fmt.Errorf("decode hit metadata %s: %w", h.DocID, err)
			}
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search rows: %w", err)
	}
	return hits, nil
}

func ToLiteral(v []float32) string {
	parts := make([]string, 0, len(v))
	for _, x := range v {
		parts = append(parts, fmt.Sprintf("%f", x))
	}
	return "[" + strings.Join(parts, ",") + "]"
}
