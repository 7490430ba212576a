package faq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/ahmadmousily/FAQ-Question/pkg/errors"
)

type stubCache struct {
	entries map[string][]Result
	getErr  error
	setErr  error
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string][]Result{}}
}

func (c *stubCache) Get(_ context.Context, key string) ([]Result, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	results, ok := c.entries[key]
	return results, ok, nil
}

func (c *stubCache) Set(_ context.Context, key string, results []Result, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = results
	return nil
}

func newTestResolver(cfg Config, idx *stubIndex, cache ResultCache) (*Resolver, *stubEncoder) {
	enc := &stubEncoder{dim: 4}
	return NewResolver(cfg, enc, idx, cache, newTestLogger()), enc
}

func TestResolver_BlankQuerySkipsStore(t *testing.T) {
	idx := newStubIndex()
	resolver, enc := newTestResolver(Config{}, idx, nil)

	for _, query := range []string{"", "   ", "\t\n"} {
		results, err := resolver.Resolve(context.Background(), query, 5, "")
		require.NoError(t, err)
		require.Empty(t, results)
	}
	require.Empty(t, enc.encoded)
	require.Zero(t, idx.searches)
}

func TestResolver_RejectsNonPositiveTopK(t *testing.T) {
	idx := newStubIndex()
	resolver, _ := newTestResolver(Config{}, idx, nil)

	_, err := resolver.Resolve(context.Background(), "how do I reset?", 0, "")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
	require.Zero(t, idx.searches)
}

func TestResolver_OrdersByScoreThenID(t *testing.T) {
	idx := newStubIndex()
	idx.searchFn = func([]float32, int, string) ([]Hit, error) {
		return []Hit{
			{Record: Record{ID: 9, Question: "q9", Answer: "a9"}, Score: 0.8},
			{Record: Record{ID: 3, Question: "q3", Answer: "a3"}, Score: 0.8},
			{Record: Record{ID: 1, Question: "q1", Answer: "a1"}, Score: 0.95},
		}, nil
	}
	resolver, _ := newTestResolver(Config{MinScore: -1}, idx, nil)

	results, err := resolver.Resolve(context.Background(), "anything", 3, "")
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, int64(1), results[0].ID)
	// tie on 0.8 breaks by ascending id
	require.Equal(t, int64(3), results[1].ID)
	require.Equal(t, int64(9), results[2].ID)

	// identical call yields the identical ordering
	again, err := resolver.Resolve(context.Background(), "anything", 3, "")
	require.NoError(t, err)
	require.Equal(t, results, again)
}

func TestResolver_TruncatesToTopK(t *testing.T) {
	idx := newStubIndex()
	idx.searchFn = func(_ []float32, limit int, _ string) ([]Hit, error) {
		hits := make([]Hit, 0, limit)
		for i := 1; i <= limit; i++ {
			hits = append(hits, Hit{Record: Record{ID: int64(i)}, Score: 1 - float64(i)*0.01})
		}
		return hits, nil
	}
	resolver, _ := newTestResolver(Config{MinScore: -1}, idx, nil)

	results, err := resolver.Resolve(context.Background(), "anything", 2, "")
	require.NoError(t, err)
	require.Len(t, results, 2)
	for i := 1; i < len(results); i++ {
		require.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestResolver_MinScoreDropsWeakHits(t *testing.T) {
	idx := newStubIndex()
	idx.searchFn = func([]float32, int, string) ([]Hit, error) {
		return []Hit{
			{Record: Record{ID: 1, Question: "q1", Answer: "a1"}, Score: 0.12},
			{Record: Record{ID: 2, Question: "q2", Answer: "a2"}, Score: 0.05},
		}, nil
	}
	resolver, _ := newTestResolver(Config{MinScore: 0.6}, idx, nil)

	results, err := resolver.Resolve(context.Background(), "asdkjqwe random gibberish", 1, "")
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestResolver_StoreFailureIsDistinctFromNoMatch(t *testing.T) {
	idx := newStubIndex()
	idx.searchFn = func([]float32, int, string) ([]Hit, error) {
		return nil, errors.New("dial tcp: connection refused")
	}
	resolver, _ := newTestResolver(Config{MinScore: -1}, idx, nil)

	_, err := resolver.Resolve(context.Background(), "anything", 1, "")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "store_error"))
	require.False(t, apperrors.IsCode(err, "invalid_input"))
}

func TestResolver_EncoderFailurePropagates(t *testing.T) {
	idx := newStubIndex()
	resolver, enc := newTestResolver(Config{MinScore: -1}, idx, nil)
	enc.override = func(string) ([]float32, error) {
		return nil, errors.New("model unavailable")
	}

	_, err := resolver.Resolve(context.Background(), "anything", 1, "")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "encoder_error"))
	require.Zero(t, idx.searches)
}

func TestResolver_DimensionMismatchIsConfigError(t *testing.T) {
	idx := newStubIndex()
	resolver, enc := newTestResolver(Config{MinScore: -1}, idx, nil)
	enc.override = func(string) ([]float32, error) {
		return make([]float32, 7), nil
	}

	_, err := resolver.Resolve(context.Background(), "anything", 1, "")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "config_error"))
}

func TestResolver_CacheServesRepeatQueries(t *testing.T) {
	idx := newStubIndex()
	idx.searchFn = func([]float32, int, string) ([]Hit, error) {
		return []Hit{{Record: Record{ID: 1, Question: "q1", Answer: "a1"}, Score: 0.9}}, nil
	}
	cache := newStubCache()
	resolver, _ := newTestResolver(Config{MinScore: -1, CacheTTL: time.Minute}, idx, cache)

	first, err := resolver.Resolve(context.Background(), "How do I reset my password?", 1, "")
	require.NoError(t, err)
	require.Equal(t, 1, idx.searches)

	// same question with different punctuation shares the canonical key
	second, err := resolver.Resolve(context.Background(), "how do i reset my password", 1, "")
	require.NoError(t, err)
	require.Equal(t, 1, idx.searches)
	require.Equal(t, first, second)
}

func TestResolver_CacheFailureFallsThroughToStore(t *testing.T) {
	idx := newStubIndex()
	idx.searchFn = func([]float32, int, string) ([]Hit, error) {
		return []Hit{{Record: Record{ID: 1, Question: "q1", Answer: "a1"}, Score: 0.9}}, nil
	}
	cache := newStubCache()
	cache.getErr = errors.New("cache offline")
	cache.setErr = errors.New("cache offline")
	resolver, _ := newTestResolver(Config{MinScore: -1, CacheTTL: time.Minute}, idx, cache)

	results, err := resolver.Resolve(context.Background(), "anything", 1, "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 1, idx.searches)
}

func TestResolver_FilterIsPassedToStore(t *testing.T) {
	idx := newStubIndex()
	var gotDepartment string
	idx.searchFn = func(_ []float32, _ int, department string) ([]Hit, error) {
		gotDepartment = department
		return nil, nil
	}
	resolver, _ := newTestResolver(Config{MinScore: -1}, idx, nil)

	_, err := resolver.Resolve(context.Background(), "anything", 1, " genreal ")
	require.NoError(t, err)
	require.Equal(t, "General", gotDepartment)
}
