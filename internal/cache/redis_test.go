package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/cardoctor/config"
	"github.com/Domenick1991/cardoctor/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCache_MissThenHit(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	got, err := c.GetServices(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	services := []domain.Service{
		{ID: "6f1c", ServiceID: "01", Title: "Full car repair", Price: 200, Facility: []domain.Facility{{Name: "Instant", Details: "same day"}}},
		{ID: "7a2d", ServiceID: "02", Title: "Engine repair", Price: 150},
	}
	require.NoError(t, c.SetServices(ctx, services))

	got, err = c.GetServices(ctx)
	require.NoError(t, err)
	assert.Equal(t, services, got)
}

func TestRedisCache_TTL(t *testing.T) {
	c, mr := newTestCache(t, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, c.SetServices(ctx, []domain.Service{{ID: "1"}}))
	assert.Equal(t, 30*time.Second, mr.TTL(servicesKey()))

	mr.FastForward(31 * time.Second)
	got, err := c.GetServices(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache_Invalidate(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.SetServices(ctx, []domain.Service{{ID: "1"}}))
	require.NoError(t, c.InvalidateServices(ctx))
	assert.False(t, mr.Exists(servicesKey()))
	require.NoError(t, c.InvalidateServices(ctx))
}

func TestRedisCache_CorruptPayload(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)

	require.NoError(t, mr.Set(servicesKey(), "{not json"))
	_, err := c.GetServices(context.Background())
	assert.Error(t, err)
}

func TestRedisCache_Ping(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	assert.NoError(t, c.Ping(context.Background()))
}

func TestNewRedisCache(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "localhost:6379"}, time.Minute)
	assert.NotNil(t, c)
	_ = c.Close()
}
