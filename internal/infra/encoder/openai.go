package encoder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkoukk/tiktoken-go"

	"github.com/ahmadmousily/FAQ-Question/internal/domain/faq"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	// maxInputTokens caps a single embeddings request; the provider rejects
	// inputs beyond its own ~8k window, so fail locally with a clearer error.
	maxInputTokens = 8000
)

// OpenAI calls an OpenAI-compatible embeddings endpoint. The model and
// dimension are fixed at construction, so the instance is safe for concurrent
// use and deterministic for a given model version.
type OpenAI struct {
	apiKey     string
	baseURL    string
	model      string
	dim        int
	httpClient *http.Client
	tokenizer  *tiktoken.Tiktoken
}

// OpenAIConfig configures the embeddings client.
type OpenAIConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	Dimension int
	Timeout   time.Duration
}

// NewOpenAI constructs the encoder.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("embeddings api key cannot be empty")
	}
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", cfg.Dimension)
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "text-embedding-3-small"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	tokenizer, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}
	return &OpenAI{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		dim:        cfg.Dimension,
		httpClient: &http.Client{Timeout: timeout},
		tokenizer:  tokenizer,
	}, nil
}

type embeddingRequest struct {
	Model      string `json:"model"`
	Input      string `json:"input"`
	Dimensions int    `json:"dimensions,omitempty"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Encode requests an embedding for text. The empty string returns the zero
// vector without a network call.
func (e *OpenAI) Encode(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return make([]float32, e.dim), nil
	}
	if tokens := len(e.tokenizer.Encode(text, nil, nil)); tokens > maxInputTokens {
		return nil, fmt.Errorf("input too large for embedding request: %d tokens", tokens)
	}

	payload, err := json.Marshal(embeddingRequest{
		Model:      e.model,
		Input:      text,
		Dimensions: e.dim,
	})
	if err != nil {
		return nil, fmt.Errorf("encode embedding request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embeddings", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build embedding request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+e.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request embedding: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("embeddings request failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode embedding response: %w", err)
	}
	if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
		return nil, errors.New("embedding response empty")
	}
	vector := make([]float32, len(out.Data[0].Embedding))
	copy(vector, out.Data[0].Embedding)
	return vector, nil
}

// Dimension reports the configured vector length.
func (e *OpenAI) Dimension() int { return e.dim }

var _ faq.Encoder = (*OpenAI)(nil)
