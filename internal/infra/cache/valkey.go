// Package cache provides optional result caching for the resolver.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/ahmadmousily/FAQ-Question/internal/domain/faq"
)

// Valkey stores resolved results in a Valkey-compatible database with a TTL.
type Valkey struct {
	client valkey.Client
	prefix string
}

// NewValkey constructs the cache.
func NewValkey(client valkey.Client, prefix string) *Valkey {
	if prefix == "" {
		prefix = "faq"
	}
	return &Valkey{client: client, prefix: prefix}
}

// Get fetches cached results for key.
func (c *Valkey) Get(ctx context.Context, key string) ([]faq.Result, bool, error) {
	cmd := c.client.B().Get().Key(c.resultKey(key)).Build()
	payload, err := c.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var results []faq.Result
	if err := json.Unmarshal([]byte(payload), &results); err != nil {
		return nil, false, err
	}
	return results, true, nil
}

// Set stores results under key for ttl.
func (c *Valkey) Set(ctx context.Context, key string, results []faq.Result, ttl time.Duration) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return err
	}
	builder := c.client.B().Set().Key(c.resultKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return c.client.Do(ctx, cmd).Error()
}

func (c *Valkey) resultKey(key string) string {
	return c.prefix + ":results:" + key
}

var _ faq.ResultCache = (*Valkey)(nil)
