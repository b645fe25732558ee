package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmcneil/catalog-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	srv := miniredis.RunT(t)
	client, err := New(context.Background(), config.RedisConfig{Address: srv.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestIncrWithTTL(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	key := client.RateLimitKey("login:ip:1.2.3.4")
	count, err := client.IncrWithTTL(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = client.IncrWithTTL(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRateLimitKeyNamespacing(t *testing.T) {
	client := newTestClient(t)
	assert.Equal(t, "catalog:rate_limit:login", client.RateLimitKey("login"))
}

func TestNewRequiresAddress(t *testing.T) {
	_, err := New(context.Background(), config.RedisConfig{})
	require.Error(t, err)
}
