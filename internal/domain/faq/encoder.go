package faq

import "context"

// Encoder converts text into a fixed-dimension vector. Implementations must be
// deterministic for a fixed model version and safe for concurrent use. An empty
// string encodes to a defined vector (the zero vector) rather than erroring.
type Encoder interface {
	Encode(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}
