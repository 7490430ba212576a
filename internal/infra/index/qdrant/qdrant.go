// Package qdrant implements faq.Index against the Qdrant REST API.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/ahmadmousily/FAQ-Question/internal/domain/faq"
)

// Index is a minimal REST client to Qdrant. Collections are created with
// cosine distance, so search scores are cosine similarity and pass through
// unchanged.
type Index struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

// Config configures the Qdrant client.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// New constructs the client.
func New(cfg Config) *Index {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	collection := cfg.Collection
	if collection == "" {
		collection = "faq_collection"
	}
	return &Index{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// Ensure creates the collection when absent.
func (i *Index) Ensure(ctx context.Context, dimension int) error {
	exists, err := i.exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return i.create(ctx, dimension)
}

// Recreate drops the collection and builds it again.
func (i *Index) Recreate(ctx context.Context, dimension int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, i.collectionURL(), nil)
	if err != nil {
		return err
	}
	resp, err := i.do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("qdrant delete collection failed: %s", resp.Status)
	}
	return i.create(ctx, dimension)
}

// Upsert writes one point keyed by record.ID, replacing any existing point.
func (i *Index) Upsert(ctx context.Context, record faq.Record) error {
	body := map[string]any{
		"points": []map[string]any{
			{
				"id":     record.ID,
				"vector": record.Vector,
				"payload": map[string]any{
					"question":   record.Question,
					"answer":     record.Answer,
					"department": record.Department,
				},
			},
		},
	}
	return i.putJSON(ctx, i.collectionURL()+"/points?wait=true", body)
}

type pointPayload struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Department string `json:"department"`
}

// Search runs a nearest-neighbour query, filtered server-side on department
// when one is given.
func (i *Index) Search(ctx context.Context, vector []float32, limit int, department string) ([]faq.Hit, error) {
	if limit <= 0 {
		limit = 1
	}
	body := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}
	if department != "" {
		body["filter"] = map[string]any{
			"must": []map[string]any{
				{"key": "department", "match": map[string]any{"value": department}},
			},
		}
	}
	var out struct {
		Result []struct {
			ID      int64        `json:"id"`
			Score   float64      `json:"score"`
			Payload pointPayload `json:"payload"`
		} `json:"result"`
	}
	if err := i.postJSON(ctx, i.collectionURL()+"/points/search", body, &out); err != nil {
		return nil, err
	}
	hits := make([]faq.Hit, 0, len(out.Result))
	for _, item := range out.Result {
		hits = append(hits, faq.Hit{
			Record: faq.Record{
				ID:         item.ID,
				Question:   item.Payload.Question,
				Answer:     item.Payload.Answer,
				Department: item.Payload.Department,
			},
			Score: item.Score,
		})
	}
	return hits, nil
}

// List scrolls stored points up to limit and orders them by id.
func (i *Index) List(ctx context.Context, limit int) ([]faq.Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	body := map[string]any{
		"limit":        limit,
		"with_payload": true,
	}
	var out struct {
		Result struct {
			Points []struct {
				ID      int64        `json:"id"`
				Payload pointPayload `json:"payload"`
			} `json:"points"`
		} `json:"result"`
	}
	if err := i.postJSON(ctx, i.collectionURL()+"/points/scroll", body, &out); err != nil {
		return nil, err
	}
	entries := make([]faq.Entry, 0, len(out.Result.Points))
	for _, point := range out.Result.Points {
		entries = append(entries, faq.Entry{
			ID:         point.ID,
			Question:   point.Payload.Question,
			Answer:     point.Payload.Answer,
			Department: point.Payload.Department,
		})
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].ID < entries[b].ID })
	return entries, nil
}

func (i *Index) exists(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.collectionURL(), nil)
	if err != nil {
		return false, err
	}
	resp, err := i.do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= 300:
		return false, fmt.Errorf("qdrant collection lookup failed: %s", resp.Status)
	default:
		return true, nil
	}
}

func (i *Index) create(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid dimension %d", dimension)
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return i.putJSON(ctx, i.collectionURL(), body)
}

func (i *Index) collectionURL() string {
	return fmt.Sprintf("%s/collections/%s", i.url, i.collection)
}

func (i *Index) putJSON(ctx context.Context, url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := i.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (i *Index) postJSON(ctx context.Context, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := i.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (i *Index) do(req *http.Request) (*http.Response, error) {
	if i.apiKey != "" {
		req.Header.Set("api-key", i.apiKey)
	}
	return i.client.Do(req)
}

var _ faq.Index = (*Index)(nil)
