// Package cache provides the advisory read cache in front of the
// configuration store. Two backends exist: Redis for multi-instance
// deployments and an in-process map for a single binary.
//
// The cache is never the source of truth. Callers treat every error as a
// miss and fall back to the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-site-keeper/internal/config"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "site_keeper",
	Subsystem: "cache",
	Name:      "lookups_total",
	Help:      "Cache lookups partitioned by backend and result.",
}, []string{"backend", "result"})

// Cache is a byte-oriented key/value cache with per-entry TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error
	Close() error
}

// New picks the backend from cfg: Redis when an address is configured,
// the in-process cache otherwise.
func New(ctx context.Context, cfg config.Cache, log *logger.Logger) (Cache, error) {
	if cfg.RedisAddress == "" {
		log.Info().Str("func", "cache.New").Msg("redis address is empty, using in-memory cache")
		return NewMemory(), nil
	}

	return NewRedis(ctx, cfg, log)
}

// GetJSON reads key and decodes it into a T.
func GetJSON[T any](ctx context.Context, c Cache, key string) (T, error) {
	var out T

	raw, err := c.Get(ctx, key)
	if err != nil {
		return out, err
	}

	if err = json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decoding cached %q: %w", key, err)
	}

	return out, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %q for cache: %w", key, err)
	}

	return c.Set(ctx, key, raw, ttl)
}

// GetOrSet returns the cached T under key. On a miss load is called and its
// result cached for ttl. Cache failures are logged and fall through to load;
// a load error is returned as is and nothing is cached.
func GetOrSet[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	log := logger.FromContext(ctx)

	cached, err := GetJSON[T](ctx, c, key)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, ErrMiss) {
		log.Warn().Err(err).Str("key", key).Str("func", "cache.GetOrSet").Msg("cache read failed")
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err = SetJSON(ctx, c, key, value, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Str("func", "cache.GetOrSet").Msg("cache write failed")
	}
	return value, nil
}

func observeLookup(backend string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(backend, result).Inc()
}
