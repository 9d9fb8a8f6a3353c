package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/cardoctor/config"
	"github.com/Domenick1991/cardoctor/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client      *redis.Client
	servicesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, servicesTTL time.Duration) *RedisCache {
	return NewRedisCacheFromClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		servicesTTL,
	)
}

func NewRedisCacheFromClient(client *redis.Client, servicesTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, servicesTTL: servicesTTL}
}

// GetServices returns nil, nil on a cache miss.
func (c *RedisCache) GetServices(ctx context.Context) ([]domain.Service, error) {
	data, err := c.client.Get(ctx, servicesKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var services []domain.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *RedisCache) SetServices(ctx context.Context, services []domain.Service) error {
	payload, err := json.Marshal(services)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, servicesKey(), payload, c.servicesTTL).Err()
}

func (c *RedisCache) InvalidateServices(ctx context.Context) error {
	return c.client.Del(ctx, servicesKey()).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func servicesKey() string {
	return "cache:services"
}
