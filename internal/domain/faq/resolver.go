package faq

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	apperrors "github.com/ahmadmousily/FAQ-Question/pkg/errors"
)

// Resolver answers free-text queries against the populated index.
type Resolver struct {
	cfg     Config
	encoder Encoder
	index   Index
	cache   ResultCache
	logger  *slog.Logger
}

// NewResolver wires up the query path. cache may be nil.
func NewResolver(cfg Config, encoder Encoder, index Index, cache ResultCache, logger *slog.Logger) *Resolver {
	return &Resolver{
		cfg:     cfg,
		encoder: encoder,
		index:   index,
		cache:   cache,
		logger:  logger.With("component", "faq.resolver"),
	}
}

// Resolve returns up to topK entries nearest to query, ordered by descending
// similarity with ties broken by ascending id. A blank query returns an empty
// slice without contacting the store. An empty result set means "no match"
// and is not an error; store and encoder failures propagate with their kind
// preserved so callers can tell the two apart.
func (r *Resolver) Resolve(ctx context.Context, query string, topK int, department string) ([]Result, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []Result{}, nil
	}
	if topK < 1 {
		return nil, apperrors.Wrap("invalid_input", fmt.Sprintf("top_k must be at least 1, got %d", topK), nil)
	}
	department = strings.TrimSpace(department)
	if department != "" {
		department = NormalizeDepartment(department)
	}

	cacheKey := r.cacheKey(trimmed, topK, department)
	if cached, ok := r.cacheGet(ctx, cacheKey); ok {
		return cached, nil
	}

	vector, err := r.encoder.Encode(ctx, trimmed)
	if err != nil {
		return nil, apperrors.Wrap("encoder_error", "query embedding failed", err)
	}
	if len(vector) != r.encoder.Dimension() {
		return nil, apperrors.Wrap("config_error",
			fmt.Sprintf("query embedding dimension %d does not match declared dimension %d", len(vector), r.encoder.Dimension()), nil)
	}

	searchCtx := ctx
	if r.cfg.SearchTimeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, r.cfg.SearchTimeout)
		defer cancel()
	}
	hits, err := r.index.Search(searchCtx, vector, topK, department)
	if err != nil {
		return nil, apperrors.Wrap("store_error", "similarity search failed", err)
	}

	results := r.rank(hits, topK)
	r.cacheSet(ctx, cacheKey, results)
	return results, nil
}

// Browse lists the stored corpus grouped by department.
func (r *Resolver) Browse(ctx context.Context) ([]Group, error) {
	listCtx := ctx
	if r.cfg.SearchTimeout > 0 {
		var cancel context.CancelFunc
		listCtx, cancel = context.WithTimeout(ctx, r.cfg.SearchTimeout)
		defer cancel()
	}
	entries, err := r.index.List(listCtx, r.cfg.ListLimit)
	if err != nil {
		return nil, apperrors.Wrap("store_error", "listing entries failed", err)
	}
	return GroupByDepartment(entries), nil
}

// rank orders hits by score descending, id ascending on ties, applies the
// minimum-score cutoff and truncates to topK. Backends already sort by score
// but their tie order differs, so ordering is re-established here for
// determinism across backends.
func (r *Resolver) rank(hits []Hit, topK int) []Result {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})

	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		if hit.Score < r.cfg.MinScore {
			continue
		}
		results = append(results, Result{
			ID:         hit.ID,
			Question:   hit.Question,
			Answer:     hit.Answer,
			Department: hit.Department,
			Score:      hit.Score,
		})
		if len(results) == topK {
			break
		}
	}
	return results
}

func (r *Resolver) cacheKey(query string, topK int, department string) string {
	return fmt.Sprintf("%s|%d|%s", canonicalQuery(query), topK, department)
}

func (r *Resolver) cacheGet(ctx context.Context, key string) ([]Result, bool) {
	if r.cache == nil || r.cfg.CacheTTL <= 0 {
		return nil, false
	}
	results, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("result cache read failed", "error", err)
		return nil, false
	}
	return results, ok
}

func (r *Resolver) cacheSet(ctx context.Context, key string, results []Result) {
	if r.cache == nil || r.cfg.CacheTTL <= 0 {
		return
	}
	if err := r.cache.Set(ctx, key, results, r.cfg.CacheTTL); err != nil {
		r.logger.Warn("result cache write failed", "error", err)
	}
}
