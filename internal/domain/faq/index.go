package faq

import "context"

// Record is what the index persists per entry: the derived vector plus the
// displayable payload.
type Record struct {
	ID         int64
	Vector     []float32
	Question   string
	Answer     string
	Department string
}

// Hit is a single nearest-neighbour match. Score follows the Result
// convention: cosine similarity, higher is closer.
type Hit struct {
	Record
	Score float64
}

// Index is the contract the core needs from a vector store backend.
//
// Ensure creates the collection when missing and is a no-op otherwise.
// Recreate drops any existing collection first; it is the only destructive
// operation and callers must opt into it explicitly. Upsert replaces by id.
// Search returns up to limit hits nearest to vector, restricted to department
// when it is non-empty; the filter is applied before truncation so it never
// starves the limit. List returns stored entries up to limit for browsing.
//
// A write immediately followed by a read may observe stale data depending on
// the backend's refresh window.
type Index interface {
	Ensure(ctx context.Context, dimension int) error
	Recreate(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, record Record) error
	Search(ctx context.Context, vector []float32, limit int, department string) ([]Hit, error)
	List(ctx context.Context, limit int) ([]Entry, error)
}
