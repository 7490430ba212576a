package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/ahmadmousily/FAQ-Question/internal/domain/faq"
	"github.com/ahmadmousily/FAQ-Question/internal/infra/cache"
	"github.com/ahmadmousily/FAQ-Question/internal/infra/config"
	"github.com/ahmadmousily/FAQ-Question/internal/infra/encoder"
	"github.com/ahmadmousily/FAQ-Question/internal/infra/index/elastic"
	"github.com/ahmadmousily/FAQ-Question/internal/infra/index/memory"
	"github.com/ahmadmousily/FAQ-Question/internal/infra/index/pgvector"
	"github.com/ahmadmousily/FAQ-Question/internal/infra/index/qdrant"
	"github.com/ahmadmousily/FAQ-Question/internal/infra/source"
)

func provideFAQConfig(cfg *config.Config) faq.Config {
	ttl := cfg.Cache.TTL.Std()
	if !cfg.Cache.Enabled {
		ttl = 0
	}
	return faq.Config{
		ListLimit:     cfg.Index.ListLimit,
		SearchTimeout: cfg.Index.SearchTimeout.Std(),
		MinScore:      cfg.Search.MinScore,
		CacheTTL:      ttl,
	}
}

func provideSearchConfig(cfg *config.Config) config.SearchConfig {
	return cfg.Search
}

func provideEncoder(cfg *config.Config, logger *slog.Logger) (faq.Encoder, error) {
	switch cfg.Encoder.Provider {
	case config.EncoderOpenAI:
		enc, err := encoder.NewOpenAI(encoder.OpenAIConfig{
			APIKey:    cfg.Encoder.APIKey,
			BaseURL:   cfg.Encoder.BaseURL,
			Model:     cfg.Encoder.Model,
			Dimension: cfg.Encoder.Dimension,
			Timeout:   cfg.Encoder.Timeout.Std(),
		})
		if err != nil {
			return nil, fmt.Errorf("configure openai encoder: %w", err)
		}
		logger.Info("openai encoder enabled", "model", cfg.Encoder.Model, "dimension", cfg.Encoder.Dimension)
		return enc, nil
	default:
		logger.Info("deterministic encoder enabled", "dimension", cfg.Encoder.Dimension)
		return encoder.NewDeterministic(cfg.Encoder.Dimension), nil
	}
}

func provideIndex(cfg *config.Config, logger *slog.Logger) (faq.Index, error) {
	switch cfg.Index.Backend {
	case config.BackendQdrant:
		logger.Info("qdrant index enabled", "url", cfg.Index.Qdrant.URL, "collection", cfg.Index.Collection)
		return qdrant.New(qdrant.Config{
			URL:        cfg.Index.Qdrant.URL,
			APIKey:     cfg.Index.Qdrant.APIKey,
			Collection: cfg.Index.Collection,
			Timeout:    cfg.Index.SearchTimeout.Std(),
		}), nil
	case config.BackendElastic:
		logger.Info("elasticsearch index enabled", "url", cfg.Index.Elastic.URL, "index", cfg.Index.Collection)
		return elastic.New(elastic.Config{
			URL:     cfg.Index.Elastic.URL,
			Name:    cfg.Index.Collection,
			Timeout: cfg.Index.SearchTimeout.Std(),
		}), nil
	case config.BackendPgvector:
		pool, err := newPostgresPool(cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("pgvector index enabled")
		return pgvector.New(pool), nil
	default:
		logger.Info("memory index enabled")
		return memory.New(), nil
	}
}

func newPostgresPool(cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Index.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	if cfg.Index.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Index.Postgres.MaxConns
	}
	if cfg.Index.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Index.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("initialize postgres pool: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres unreachable: %w", err)
	}
	return pool, nil
}

func provideResultCache(cfg *config.Config, logger *slog.Logger) faq.ResultCache {
	if !cfg.Cache.Enabled {
		return cache.NewMemory()
	}
	opt, err := buildValkeyOptions(cfg.Cache.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return cache.NewMemory()
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return cache.NewMemory()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		return cache.NewMemory()
	}
	logger.Info("valkey result cache enabled", "addr", cfg.Cache.Addr)
	return cache.NewValkey(client, "faq")
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideEntries(cfg *config.Config, logger *slog.Logger) ([]faq.Entry, error) {
	path := strings.TrimSpace(cfg.Source.CSVPath)
	if path == "" {
		return faq.SeedEntries(), nil
	}
	entries, err := source.LoadCSV(path, logger)
	if err != nil {
		return nil, fmt.Errorf("load faq source: %w", err)
	}
	logger.Info("faq entries loaded from csv", "path", path, "count", len(entries))
	return entries, nil
}
