package encoder

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/ahmadmousily/FAQ-Question/internal/domain/faq"
)

// Deterministic avoids network calls by hashing text into a vector. Identical
// input always yields an identical vector, so relative rankings are stable,
// which is what the tests and local development need. Vectors are
// L2-normalized so dot products behave as cosine similarity.
type Deterministic struct {
	dim int
}

// NewDeterministic constructs the encoder.
func NewDeterministic(dim int) *Deterministic {
	if dim <= 0 {
		dim = 384
	}
	return &Deterministic{dim: dim}
}

// Encode converts text into a pseudo-random unit vector seeded by its hash.
// The empty string maps to the zero vector.
func (e *Deterministic) Encode(_ context.Context, text string) ([]float32, error) {
	vector := make([]float32, e.dim)
	if text == "" {
		return vector, nil
	}
	hash := fnv.New64a()
	_, _ = hash.Write([]byte(text))
	seed := hash.Sum64()
	var norm float64
	for i := 0; i < e.dim; i++ {
		seed = seed*1099511628211 + 1469598103934665603
		component := float32(seed%997)/997.0 - 0.5
		vector[i] = component
		norm += float64(component) * float64(component)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vector {
			vector[i] *= scale
		}
	}
	return vector, nil
}

// Dimension reports the fixed vector length.
func (e *Deterministic) Dimension() int { return e.dim }

var _ faq.Encoder = (*Deterministic)(nil)
