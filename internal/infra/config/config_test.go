package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, BackendMemory, cfg.Index.Backend)
	require.Equal(t, EncoderDeterministic, cfg.Encoder.Provider)
	require.Equal(t, 1, cfg.Search.DefaultTopK)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
http:
  address: ":9090"
encoder:
  provider: deterministic
  dimension: 128
index:
  backend: memory
  bootstrap: rebuild
  searchTimeout: 2s
search:
  defaultTopK: 3
  maxTopK: 10
  minScore: 0.25
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, 128, cfg.Encoder.Dimension)
	require.Equal(t, BootstrapRebuild, cfg.Index.Bootstrap)
	require.Equal(t, 2*time.Second, cfg.Index.SearchTimeout.Std())
	require.Equal(t, 3, cfg.Search.DefaultTopK)
	require.InDelta(t, 0.25, cfg.Search.MinScore, 1e-9)
	require.Equal(t, 100, cfg.Index.ListLimit, "unset fields keep defaults")
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("index:\n  backend: memory\n"), 0o644))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("INDEX_BACKEND", "qdrant")
	t.Setenv("QDRANT_URL", "http://qdrant:6333")
	t.Setenv("SEARCH_MAX_TOP_K", "50")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, BackendQdrant, cfg.Index.Backend)
	require.Equal(t, "http://qdrant:6333", cfg.Index.Qdrant.URL)
	require.Equal(t, 50, cfg.Search.MaxTopK)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty address", func(c *Config) { c.HTTP.Address = "" }},
		{"unknown encoder", func(c *Config) { c.Encoder.Provider = "huggingface" }},
		{"non-positive dimension", func(c *Config) { c.Encoder.Dimension = 0 }},
		{"openai without key", func(c *Config) { c.Encoder.Provider = EncoderOpenAI; c.Encoder.APIKey = "" }},
		{"unknown backend", func(c *Config) { c.Index.Backend = "weaviate" }},
		{"unknown bootstrap", func(c *Config) { c.Index.Bootstrap = "always" }},
		{"qdrant without url", func(c *Config) { c.Index.Backend = BackendQdrant; c.Index.Qdrant.URL = "" }},
		{"elastic without url", func(c *Config) { c.Index.Backend = BackendElastic; c.Index.Elastic.URL = "" }},
		{"pgvector without dsn", func(c *Config) { c.Index.Backend = BackendPgvector; c.Index.Postgres.DSN = "" }},
		{"non-positive list limit", func(c *Config) { c.Index.ListLimit = 0 }},
		{"zero default topK", func(c *Config) { c.Search.DefaultTopK = 0 }},
		{"max below default", func(c *Config) { c.Search.DefaultTopK = 5; c.Search.MaxTopK = 3 }},
		{"cache without addr", func(c *Config) { c.Cache.Enabled = true; c.Cache.Addr = "" }},
		{"rate limit without rpm", func(c *Config) { c.HTTP.RateLimit.RequestsPerMinute = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
