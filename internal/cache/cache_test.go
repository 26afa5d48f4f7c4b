package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"envlogs/internal/config"
	"envlogs/internal/model"
)

func TestNew_NotConfigured(t *testing.T) {
	c, err := New(config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New(config.RedisConfig{URL: "://not-a-url"})
	require.Error(t, err)
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *SearchCache
	ctx := context.Background()

	envs, ok := c.Get(ctx, "prod")
	assert.False(t, ok)
	assert.Nil(t, envs)

	// Set and Close must not panic on the nil receiver.
	c.Set(ctx, "prod", []model.Environment{{ID: "env-1"}})
	assert.NoError(t, c.Close())
	assert.Error(t, c.Health(ctx))
}

// TestSearchCache_Integration exercises a real Redis. It is skipped unless
// TEST_REDIS_URL points at a running instance.
func TestSearchCache_Integration(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set, skipping Redis integration test")
	}

	c, err := New(config.RedisConfig{
		URL:         url,
		SearchTTL:   time.Minute,
		DialTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	require.NotNil(t, c)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Health(ctx))

	_, ok := c.Get(ctx, "integration-miss")
	assert.False(t, ok)

	want := []model.Environment{
		{ID: "env-1", Name: "prod-a", Region: "us-east1"},
		{ID: "env-2", Name: "prod-b", Region: "eu-west12"},
	}
	c.Set(ctx, "integration-hit", want)

	got, ok := c.Get(ctx, "integration-hit")
	require.True(t, ok)
	assert.Equal(t, want, got)
}
