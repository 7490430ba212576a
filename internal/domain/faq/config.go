package faq

import "time"

// Config holds runtime knobs for the resolver.
type Config struct {
	// ListLimit bounds the browse-all listing.
	ListLimit int
	// SearchTimeout bounds each store round-trip. Exceeding it surfaces as a
	// store_error, the retryable condition.
	SearchTimeout time.Duration
	// MinScore drops hits whose cosine similarity falls below it. Strict
	// deployments run around 0.6; -1 accepts every hit the store returns.
	MinScore float64
	// CacheTTL controls how long resolved results may be served from the
	// cache. Zero disables caching regardless of the configured backend.
	CacheTTL time.Duration
}
