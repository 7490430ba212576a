package faq

import (
	"context"
	"time"
)

// ResultCache stores resolved results keyed by canonical query. Cache failures
// must never fail a request; the resolver logs and falls through to the index.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]Result, bool, error)
	Set(ctx context.Context, key string, results []Result, ttl time.Duration) error
}
