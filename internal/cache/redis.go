// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-site-keeper/internal/config"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix namespaces every key this service writes, so Clear never
	// touches foreign data in a shared Redis.
	keyPrefix = "site-keeper:"

	scanBatchSize  = 200
	pingAttempts   = 5
	pingRetryDelay = time.Second
	pingTimeout    = 3 * time.Second
)

// Redis is a [Cache] backed by a Redis server.
type Redis struct {
	client *redis.Client
	logger *logger.Logger
}

// NewRedis connects to cfg.RedisAddress and pings it, retrying a few times
// while the server starts up.
func NewRedis(ctx context.Context, cfg config.Cache, log *logger.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	var lastErr error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = client.Ping(pingCtx).Err()
		cancel()

		if lastErr == nil {
			log.Info().Str("func", "cache.NewRedis").Str("address", cfg.RedisAddress).Msg("connected to redis")
			return NewRedisFromClient(client, log), nil
		}

		log.Warn().Err(lastErr).
			Str("func", "cache.NewRedis").
			Int("attempt", attempt).
			Msg("redis ping failed")

		select {
		case <-ctx.Done():
			client.Close()
			return nil, errors.Join(lastErr, ctx.Err())
		case <-time.After(pingRetryDelay):
		}
	}

	client.Close()
	return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", pingAttempts, lastErr)
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *redis.Client, log *logger.Logger) *Redis {
	return &Redis{client: client, logger: log}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		observeLookup("redis", false)
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}

	observeLookup("redis", true)
	return raw, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}

	if err := r.client.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = keyPrefix + k
	}

	if err := r.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// DeletePrefix walks the keyspace with SCAN and deletes matches in batches.
// Keys written concurrently with the walk may survive.
func (r *Redis) DeletePrefix(ctx context.Context, prefix string) error {
	iter := r.client.Scan(ctx, 0, keyPrefix+prefix+"*", scanBatchSize).Iterator()

	batch := make([]string, 0, scanBatchSize)
	deleted := 0
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatchSize {
			if err := r.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
			deleted += len(batch)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}

	if len(batch) > 0 {
		if err := r.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
		deleted += len(batch)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "*Redis.DeletePrefix").
		Str("prefix", prefix).
		Int("deleted", deleted).
		Msg("cache entries removed")

	return nil
}

func (r *Redis) Clear(ctx context.Context) error {
	return r.DeletePrefix(ctx, "")
}

func (r *Redis) Close() error {
	return r.client.Close()
}
