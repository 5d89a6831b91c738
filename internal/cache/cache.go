// Package cache provides TTL byte caches for upstream responses.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMiss is returned by GetBytes when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// TTLs for each kind of cached upstream response.
const (
	StockDataTTL = 900 * time.Second
	NewsTTL      = 1800 * time.Second
	CatalogTTL   = 86400 * time.Second
)

// BytesCache stores opaque values with a per-entry TTL.
type BytesCache interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

type Config struct {
	Backend       string `yaml:"backend" default:"memory" validate:"oneof=memory file redis none"`
	Dir           string `yaml:"dir" default:".cache/stock-predictor"`
	RedisAddr     string `yaml:"redis_addr" default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db" validate:"gte=0"`
	Prefix        string `yaml:"prefix" default:"predictor:"`
}

// New builds the backend named by cfg.Backend. "none" returns a nil cache,
// which every decorator in this module treats as pass-through.
func New(ctx context.Context, cfg Config) (BytesCache, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "memory":
		return NewMemory(10 * time.Minute), nil
	case "file":
		f, err := NewFile(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return f, nil
	case "redis":
		r, err := NewRedis(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return r, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// GetJSON decodes a cached JSON value into T.
func GetJSON[T any](ctx context.Context, c BytesCache, key string) (T, error) {
	var out T
	if c == nil {
		return out, ErrMiss
	}
	b, err := c.GetBytes(ctx, key)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return out, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c BytesCache, key string, v any, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.SetBytes(ctx, key, b, ttl)
}

// GetOrFetch returns the cached value for key or calls fetch and caches its
// result. Cache write failures are ignored.
func GetOrFetch[T any](ctx context.Context, c BytesCache, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	if v, err := GetJSON[T](ctx, c, key); err == nil {
		return v, nil
	}
	v, err := fetch(ctx)
	if err != nil {
		return v, err
	}
	_ = SetJSON(ctx, c, key, v, ttl)
	return v, nil
}

// Key joins parts into a namespaced cache key.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
