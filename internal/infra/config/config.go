package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Encoder providers.
const (
	EncoderOpenAI        = "openai"
	EncoderDeterministic = "deterministic"
)

// Index backends.
const (
	BackendMemory   = "memory"
	BackendQdrant   = "qdrant"
	BackendElastic  = "elastic"
	BackendPgvector = "pgvector"
)

// Bootstrap modes for the index at startup.
const (
	BootstrapOff     = "off"
	BootstrapEnsure  = "ensure"
	BootstrapRebuild = "rebuild"
)

// Duration parses YAML values like "5s" or "10m", which yaml.v3 will not
// decode into a plain time.Duration.
type Duration time.Duration

// Std converts back to the standard library type.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		var nanos int64
		if err := value.Decode(&nanos); err != nil {
			return fmt.Errorf("invalid duration value %q", value.Value)
		}
		*d = Duration(nanos)
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Encoder EncoderConfig `yaml:"encoder"`
	Index   IndexConfig   `yaml:"index"`
	Search  SearchConfig  `yaml:"search"`
	Cache   CacheConfig   `yaml:"cache"`
	Source  SourceConfig  `yaml:"source"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    Duration        `yaml:"readTimeout"`
	WriteTimeout   Duration        `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// EncoderConfig selects and configures the embedding backend.
type EncoderConfig struct {
	Provider  string        `yaml:"provider"`
	Model     string        `yaml:"model"`
	Dimension int           `yaml:"dimension"`
	APIKey    string        `yaml:"apiKey"`
	BaseURL   string        `yaml:"baseUrl"`
	Timeout   Duration `yaml:"timeout"`
}

// IndexConfig selects and configures the vector store backend.
type IndexConfig struct {
	Backend       string         `yaml:"backend"`
	Collection    string         `yaml:"collection"`
	Bootstrap     string         `yaml:"bootstrap"`
	SearchTimeout Duration       `yaml:"searchTimeout"`
	ListLimit     int            `yaml:"listLimit"`
	Qdrant        QdrantConfig   `yaml:"qdrant"`
	Elastic       ElasticConfig  `yaml:"elastic"`
	Postgres      PostgresConfig `yaml:"postgres"`
}

// QdrantConfig contains Qdrant connection settings.
type QdrantConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"apiKey"`
}

// ElasticConfig contains Elasticsearch connection settings.
type ElasticConfig struct {
	URL string `yaml:"url"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// SearchConfig controls query resolution defaults.
type SearchConfig struct {
	DefaultTopK int     `yaml:"defaultTopK"`
	MaxTopK     int     `yaml:"maxTopK"`
	MinScore    float64 `yaml:"minScore"`
}

// CacheConfig controls the optional result cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Addr    string        `yaml:"addr"`
	TTL     Duration `yaml:"ttl"`
}

// SourceConfig selects the corpus source. An empty CSVPath means the built-in
// seed entries.
type SourceConfig struct {
	CSVPath string `yaml:"csvPath"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("ENCODER_PROVIDER"); v != "" {
		cfg.Encoder.Provider = v
	}
	if v := os.Getenv("ENCODER_MODEL"); v != "" {
		cfg.Encoder.Model = v
	}
	if v := os.Getenv("ENCODER_DIMENSION"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Encoder.Dimension = parsed
		}
	}
	if v := os.Getenv("ENCODER_API_KEY"); v != "" {
		cfg.Encoder.APIKey = v
	}
	if v := os.Getenv("ENCODER_BASE_URL"); v != "" {
		cfg.Encoder.BaseURL = v
	}
	if v := os.Getenv("INDEX_BACKEND"); v != "" {
		cfg.Index.Backend = v
	}
	if v := os.Getenv("INDEX_COLLECTION"); v != "" {
		cfg.Index.Collection = v
	}
	if v := os.Getenv("INDEX_BOOTSTRAP"); v != "" {
		cfg.Index.Bootstrap = v
	}
	if v := os.Getenv("INDEX_SEARCH_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Index.SearchTimeout = Duration(parsed)
		}
	}
	if v := os.Getenv("INDEX_LIST_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Index.ListLimit = parsed
		}
	}
	if v := os.Getenv("QDRANT_URL"); v != "" {
		cfg.Index.Qdrant.URL = v
	}
	if v := os.Getenv("QDRANT_API_KEY"); v != "" {
		cfg.Index.Qdrant.APIKey = v
	}
	if v := os.Getenv("ELASTIC_URL"); v != "" {
		cfg.Index.Elastic.URL = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Index.Postgres.DSN = v
	}
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Index.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Index.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("SEARCH_DEFAULT_TOP_K"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Search.DefaultTopK = parsed
		}
	}
	if v := os.Getenv("SEARCH_MAX_TOP_K"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Search.MaxTopK = parsed
		}
	}
	if v := os.Getenv("SEARCH_MIN_SCORE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Search.MinScore = parsed
		}
	}
	if v := os.Getenv("CACHE_ENABLED"); v != "" {
		cfg.Cache.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("CACHE_ADDR"); v != "" {
		cfg.Cache.Addr = v
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = Duration(parsed)
		}
	}
	if v := os.Getenv("SOURCE_CSV_PATH"); v != "" {
		cfg.Source.CSVPath = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  Duration(5 * time.Second),
			WriteTimeout: Duration(10 * time.Second),
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Encoder: EncoderConfig{
			Provider:  EncoderDeterministic,
			Model:     "text-embedding-3-small",
			Dimension: 384,
			Timeout:   Duration(30 * time.Second),
		},
		Index: IndexConfig{
			Backend:       BackendMemory,
			Collection:    "faq_collection",
			Bootstrap:     BootstrapEnsure,
			SearchTimeout: Duration(5 * time.Second),
			ListLimit:     100,
			Qdrant: QdrantConfig{
				URL: "http://localhost:6333",
			},
			Elastic: ElasticConfig{
				URL: "http://localhost:9200",
			},
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
		Search: SearchConfig{
			DefaultTopK: 1,
			MaxTopK:     20,
			MinScore:    -1,
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     Duration(10 * time.Minute),
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	switch c.Encoder.Provider {
	case EncoderOpenAI, EncoderDeterministic:
	default:
		return fmt.Errorf("encoder.provider must be %q or %q, got %q", EncoderOpenAI, EncoderDeterministic, c.Encoder.Provider)
	}
	if c.Encoder.Dimension <= 0 {
		return errors.New("encoder.dimension must be positive")
	}
	if c.Encoder.Provider == EncoderOpenAI && strings.TrimSpace(c.Encoder.APIKey) == "" {
		return errors.New("encoder.apiKey cannot be empty when the openai provider is selected")
	}
	switch c.Index.Backend {
	case BackendMemory, BackendQdrant, BackendElastic, BackendPgvector:
	default:
		return fmt.Errorf("index.backend must be one of memory, qdrant, elastic, pgvector, got %q", c.Index.Backend)
	}
	switch c.Index.Bootstrap {
	case BootstrapOff, BootstrapEnsure, BootstrapRebuild:
	default:
		return fmt.Errorf("index.bootstrap must be one of off, ensure, rebuild, got %q", c.Index.Bootstrap)
	}
	if c.Index.Backend == BackendQdrant && strings.TrimSpace(c.Index.Qdrant.URL) == "" {
		return errors.New("index.qdrant.url cannot be empty when the qdrant backend is selected")
	}
	if c.Index.Backend == BackendElastic && strings.TrimSpace(c.Index.Elastic.URL) == "" {
		return errors.New("index.elastic.url cannot be empty when the elastic backend is selected")
	}
	if c.Index.Backend == BackendPgvector && strings.TrimSpace(c.Index.Postgres.DSN) == "" {
		return errors.New("index.postgres.dsn cannot be empty when the pgvector backend is selected")
	}
	if c.Index.ListLimit <= 0 {
		return errors.New("index.listLimit must be positive")
	}
	if c.Search.DefaultTopK < 1 {
		return errors.New("search.defaultTopK must be at least 1")
	}
	if c.Search.MaxTopK < c.Search.DefaultTopK {
		return errors.New("search.maxTopK cannot be below search.defaultTopK")
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Addr) == "" {
		return errors.New("cache.addr cannot be empty when the cache is enabled")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
