//go:build e2e

package ratelimit_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"slot-booker/internal/infra/ratelimit"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRedisLimiter_FixedWindow(t *testing.T) {
	rdb := startRedis(t)
	ctx := context.Background()
	l := ratelimit.NewRedisLimiter(rdb, 2, 500*time.Millisecond, "test")

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "hold:s1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := l.Allow(ctx, "hold:s1")
	require.NoError(t, err)
	assert.False(t, ok, "third request in the window is rejected")

	ok, err = l.Allow(ctx, "hold:s2")
	require.NoError(t, err)
	assert.True(t, ok)

	ttl, err := rdb.PTTL(ctx, "test:hold:s1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	assert.Eventually(t, func() bool {
		ok, err := l.Allow(ctx, "hold:s1")
		return err == nil && ok
	}, 3*time.Second, 100*time.Millisecond, "window resets after expiry")
}

func TestRedisLimiter_Unreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	defer rdb.Close()

	_, err := ratelimit.NewRedisLimiter(rdb, 1, time.Minute, "").Allow(context.Background(), "k")
	assert.Error(t, err)
}
