package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-ai-api/internal/config"
	apperrors "resume-ai-api/pkg/errors"
)

func TestBuildRateLimitKey(t *testing.T) {
	assert.Equal(t, "ratelimit:10.0.0.1:/api/generate-resume", BuildRateLimitKey("10.0.0.1", "/api/generate-resume"))
}

func TestOptionsFromConfig(t *testing.T) {
	opts := options(&config.RedisConfig{Host: "cache", Port: 6380, DB: 2, PoolSize: 7})

	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 7, opts.PoolSize)
}

// unreachable 指向没有监听的端口，所有命令立即失败
func unreachable() *Client {
	return NewClientFromRedis(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	}))
}

func TestAllowWrapsRedisFailureAsCacheError(t *testing.T) {
	c := unreachable()
	defer c.Close()

	allowed, err := NewRateLimiter(c).Allow(context.Background(), "ratelimit:test", 5, time.Minute)

	require.Error(t, err)
	assert.False(t, allowed)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeCacheError))
}

func TestHealthCheckWrapsRedisFailureAsCacheError(t *testing.T) {
	c := unreachable()
	defer c.Close()

	err := c.HealthCheck(context.Background())
	assert.True(t, apperrors.HasCode(err, apperrors.CodeCacheError))
}

func TestNewClientFailsWithCacheError(t *testing.T) {
	_, err := NewClient(&config.RedisConfig{Host: "127.0.0.1", Port: 1, DialTimeout: 200 * time.Millisecond})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeCacheError))
}
