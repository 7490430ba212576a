// Package elastic implements faq.Index against the Elasticsearch REST API.
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/ahmadmousily/FAQ-Question/internal/domain/faq"
)

// Index is a minimal REST client to Elasticsearch. Vector queries use a
// script_score of cosineSimilarity + 1.0 (the engine rejects negative
// scores); the offset is subtracted before hits are returned so scores line
// up with the cosine-similarity convention used by the other backends.
type Index struct {
	url    string
	name   string
	client *http.Client
}

// Config configures the Elasticsearch client.
type Config struct {
	URL     string
	Name    string
	Timeout time.Duration
}

// New constructs the client.
func New(cfg Config) *Index {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	name := cfg.Name
	if name == "" {
		name = "faq_collection"
	}
	return &Index{
		url:    cfg.URL,
		name:   name,
		client: &http.Client{Timeout: timeout},
	}
}

// Ensure creates the index with its mapping when absent.
func (i *Index) Ensure(ctx context.Context, dimension int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, i.indexURL(), nil)
	if err != nil {
		return err
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return i.create(ctx, dimension)
	case resp.StatusCode >= 300:
		return fmt.Errorf("elasticsearch index lookup failed: %s", resp.Status)
	default:
		return nil
	}
}

// Recreate drops the index and builds it again.
func (i *Index) Recreate(ctx context.Context, dimension int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, i.indexURL(), nil)
	if err != nil {
		return err
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("elasticsearch delete index failed: %s", resp.Status)
	}
	return i.create(ctx, dimension)
}

type document struct {
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Department string    `json:"department"`
	Embedding  []float32 `json:"embedding"`
}

// Upsert indexes a document under record.ID, replacing any previous version.
// refresh=true keeps the startup build immediately searchable; steady-state
// traffic is read-only so the refresh cost does not matter here.
func (i *Index) Upsert(ctx context.Context, record faq.Record) error {
	doc := document{
		Question:   record.Question,
		Answer:     record.Answer,
		Department: record.Department,
		Embedding:  record.Vector,
	}
	url := fmt.Sprintf("%s/_doc/%d?refresh=true", i.indexURL(), record.ID)
	return i.send(ctx, http.MethodPut, url, doc, nil)
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string   `json:"_id"`
			Score  float64  `json:"_score"`
			Source document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search ranks documents by cosine similarity, filtered on department when
// one is given.
func (i *Index) Search(ctx context.Context, vector []float32, limit int, department string) ([]faq.Hit, error) {
	if limit <= 0 {
		limit = 1
	}
	inner := map[string]any{"match_all": map[string]any{}}
	if department != "" {
		inner = map[string]any{
			"bool": map[string]any{
				"filter": []map[string]any{
					{"term": map[string]any{"department": department}},
				},
			},
		}
	}
	body := map[string]any{
		"size": limit,
		"query": map[string]any{
			"script_score": map[string]any{
				"query": inner,
				"script": map[string]any{
					"source": "cosineSimilarity(params.query_vector, 'embedding') + 1.0",
					"params": map[string]any{"query_vector": vector},
				},
			},
		},
	}
	var out searchResponse
	if err := i.send(ctx, http.MethodPost, i.indexURL()+"/_search", body, &out); err != nil {
		return nil, err
	}
	hits := make([]faq.Hit, 0, len(out.Hits.Hits))
	for _, hit := range out.Hits.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unexpected document id %q: %w", hit.ID, err)
		}
		hits = append(hits, faq.Hit{
			Record: faq.Record{
				ID:         id,
				Question:   hit.Source.Question,
				Answer:     hit.Source.Answer,
				Department: hit.Source.Department,
			},
			Score: hit.Score - 1.0,
		})
	}
	return hits, nil
}

// List fetches up to limit documents and orders them by id.
func (i *Index) List(ctx context.Context, limit int) ([]faq.Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	body := map[string]any{
		"size":  limit,
		"query": map[string]any{"match_all": map[string]any{}},
	}
	var out searchResponse
	if err := i.send(ctx, http.MethodPost, i.indexURL()+"/_search", body, &out); err != nil {
		return nil, err
	}
	entries := make([]faq.Entry, 0, len(out.Hits.Hits))
	for _, hit := range out.Hits.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unexpected document id %q: %w", hit.ID, err)
		}
		entries = append(entries, faq.Entry{
			ID:         id,
			Question:   hit.Source.Question,
			Answer:     hit.Source.Answer,
			Department: hit.Source.Department,
		})
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].ID < entries[b].ID })
	return entries, nil
}

func (i *Index) create(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid dimension %d", dimension)
	}
	body := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"question":   map[string]any{"type": "text"},
				"answer":     map[string]any{"type": "text", "index": false},
				"department": map[string]any{"type": "keyword"},
				"embedding":  map[string]any{"type": "dense_vector", "dims": dimension},
			},
		},
	}
	return i.send(ctx, http.MethodPut, i.indexURL(), body, nil)
}

func (i *Index) indexURL() string {
	return fmt.Sprintf("%s/%s", i.url, i.name)
}

func (i *Index) send(ctx context.Context, method, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := i.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("elasticsearch %s %s failed: %s", method, url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

var _ faq.Index = (*Index)(nil)
