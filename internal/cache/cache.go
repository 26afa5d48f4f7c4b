package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"envlogs/internal/config"
	"envlogs/internal/model"
)

const keyPrefix = "envlogs:search:"

// SearchCache caches aggregated environment search results per lookup term,
// so repeated slash commands within the TTL skip the regional API fan-out.
// A nil *SearchCache is valid and behaves as a cache that never hits.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a SearchCache from the provided configuration.
// Returns nil if the URL is empty (Redis not configured).
func New(cfg config.RedisConfig) (*SearchCache, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.DialTimeout = cfg.DialTimeout

	client := redis.NewClient(opts)

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &SearchCache{client: client, ttl: cfg.SearchTTL}, nil
}

// Get returns the cached environments for a term, if present.
func (c *SearchCache) Get(ctx context.Context, term string) ([]model.Environment, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, keyPrefix+term).Bytes()
	if err != nil {
		// redis.Nil is an ordinary miss; anything else degrades to a miss too.
		return nil, false
	}

	var envs []model.Environment
	if err := json.Unmarshal(raw, &envs); err != nil {
		return nil, false
	}
	return envs, true
}

// Set stores the environments for a term with the configured TTL.
// Failures are swallowed; the cache is best effort.
func (c *SearchCache) Set(ctx context.Context, term string, envs []model.Environment) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(envs)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, keyPrefix+term, raw, c.ttl).Err()
}

// Health checks if the Redis connection is healthy.
func (c *SearchCache) Health(ctx context.Context) error {
	if c == nil {
		return errors.New("cache not configured")
	}
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *SearchCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
