// Package memory provides a brute-force in-memory faq.Index used for tests
// and as a fallback when no external store is configured.
package memory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/ahmadmousily/FAQ-Question/internal/domain/faq"
)

// Index keeps records in a map and searches by exhaustive cosine similarity.
type Index struct {
	mu      sync.RWMutex
	dim     int
	records map[int64]faq.Record
}

// New constructs an empty index.
func New() *Index {
	return &Index{}
}

// Ensure initializes the index on first use and is a no-op afterwards. A
// differing dimension on an already initialized index is a schema conflict.
func (i *Index) Ensure(_ context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.records == nil {
		i.dim = dimension
		i.records = make(map[int64]faq.Record)
		return nil
	}
	if i.dim != dimension {
		return fmt.Errorf("index has dimension %d, requested %d", i.dim, dimension)
	}
	return nil
}

// Recreate drops all records and reinitializes with the given dimension.
func (i *Index) Recreate(_ context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.dim = dimension
	i.records = make(map[int64]faq.Record)
	return nil
}

// Upsert replaces the record stored under record.ID.
func (i *Index) Upsert(_ context.Context, record faq.Record) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.records == nil {
		return errors.New("index not initialized")
	}
	if len(record.Vector) != i.dim {
		return fmt.Errorf("vector dimension %d does not match index dimension %d", len(record.Vector), i.dim)
	}
	stored := record
	stored.Vector = append([]float32(nil), record.Vector...)
	i.records[record.ID] = stored
	return nil
}

// Search scores every record, restricting to department before truncation.
func (i *Index) Search(_ context.Context, vector []float32, limit int, department string) ([]faq.Hit, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.records == nil {
		return nil, errors.New("index not initialized")
	}
	if limit <= 0 {
		limit = 1
	}

	hits := make([]faq.Hit, 0, len(i.records))
	for _, record := range i.records {
		if department != "" && record.Department != department {
			continue
		}
		hits = append(hits, faq.Hit{Record: record, Score: cosineSimilarity(vector, record.Vector)})
	}
	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score > hits[b].Score
		}
		return hits[a].ID < hits[b].ID
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// List returns stored entries ordered by id.
func (i *Index) List(_ context.Context, limit int) ([]faq.Entry, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.records == nil {
		return nil, errors.New("index not initialized")
	}

	entries := make([]faq.Entry, 0, len(i.records))
	for _, record := range i.records {
		entries = append(entries, faq.Entry{
			ID:         record.ID,
			Question:   record.Question,
			Answer:     record.Answer,
			Department: record.Department,
		})
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].ID < entries[b].ID })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func cosineSimilarity(a, b []float32) float64 {
	length := len(a)
	if len(b) < length {
		length = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < length; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

var _ faq.Index = (*Index)(nil)
