package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

// Cache stores encoded weather payloads for a limited time
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// MemoryCache is an in-process LRU whose entries expire after a TTL
type MemoryCache struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemoryCache holds up to size entries for ttl each
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.lru.Get(key)
	return v, ok, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte) error {
	m.lru.Add(key, value)
	return nil
}

// RedisCache shares cached weather between instances
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisCache uses client with keys under prefix
func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, prefix: prefix}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.prefix+key, value, r.ttl).Err()
}

// Cached memoizes another provider per rounded location. Cache failures
// are logged and bypassed.
type Cached struct {
	next   Provider
	cache  Cache
	logger *slog.Logger
}

// NewCached wraps next with cache
func NewCached(next Provider, cache Cache, logger *slog.Logger) *Cached {
	return &Cached{next: next, cache: cache, logger: logger}
}

func (c *Cached) FetchCurrentWeather(ctx context.Context, at Coordinates) (Snapshot, error) {
	return cachedFetch(ctx, c, cacheKey("current", at), func() (Snapshot, error) {
		return c.next.FetchCurrentWeather(ctx, at)
	})
}

func (c *Cached) FetchForecast(ctx context.Context, at Coordinates) ([]DayForecast, error) {
	return cachedFetch(ctx, c, cacheKey("forecast", at), func() ([]DayForecast, error) {
		return c.next.FetchForecast(ctx, at)
	})
}

func cachedFetch[T any](ctx context.Context, c *Cached, key string, fetch func() (T, error)) (T, error) {
	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("weather cache read failed", "key", key, "error", err.Error())
	}
	if ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}
	if raw, err := json.Marshal(v); err == nil {
		if err := c.cache.Set(ctx, key, raw); err != nil {
			c.logger.Warn("weather cache write failed", "key", key, "error", err.Error())
		}
	}
	return v, nil
}

// cacheKey buckets coordinates to about a kilometre
func cacheKey(kind string, c Coordinates) string {
	return fmt.Sprintf("weather:%s:%.2f,%.2f", kind, c.Lat, c.Lon)
}
