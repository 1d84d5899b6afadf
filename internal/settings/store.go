// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-site-keeper/internal/cache"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/internal/store"
	"github.com/MKhiriev/go-site-keeper/models"
)

// cachedValue is the cache representation of a single key. Absent keys are
// cached too, so repeated misses do not hit the database.
type cachedValue struct {
	Value json.RawMessage `json:"value,omitempty"`
	Found bool            `json:"found"`
}

// Store is the configuration store of one namespace. It is safe for
// concurrent use.
type Store struct {
	namespace models.Namespace
	repo      store.ConfigRepository
	cache     cache.Cache
	ttl       time.Duration
	logger    *logger.Logger

	// mu guards pending and serializes writers of this namespace.
	mu      sync.Mutex
	pending map[string]string

	// generation is bumped after every committed write. A reader only keeps
	// what it cached when no write committed while it was reading.
	generation atomic.Uint64
}

// NewStore constructs the store of namespace ns.
func NewStore(ns models.Namespace, repo store.ConfigRepository, c cache.Cache, ttl time.Duration, log *logger.Logger) *Store {
	return &Store{
		namespace: ns,
		repo:      repo,
		cache:     c,
		ttl:       ttl,
		logger:    log,
		pending:   make(map[string]string),
	}
}

// Namespace returns the namespace this store serves.
func (s *Store) Namespace() models.Namespace {
	return s.namespace
}

// Get returns the saved value of key. found is false when the key was never
// saved.
func (s *Store) Get(ctx context.Context, key string) (value any, found bool, err error) {
	cacheKey := s.keyCacheKey(key)

	cached, err := cache.GetJSON[cachedValue](ctx, s.cache, cacheKey)
	if err == nil {
		if !cached.Found {
			return nil, false, nil
		}
		if value, err = decodeValue(cached.Value); err == nil {
			return value, true, nil
		}
	}
	s.logCacheError(ctx, "*Store.Get", err)

	gen := s.generation.Load()
	raw, err := s.repo.Get(ctx, s.namespace, key)
	if errors.Is(err, store.ErrConfigNotFound) {
		s.remember(ctx, gen, cacheKey, cachedValue{Found: false})
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	if value, err = decodeValue(json.RawMessage(raw)); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	s.remember(ctx, gen, cacheKey, cachedValue{Value: json.RawMessage(raw), Found: true})

	return value, true, nil
}

// GetOrDefault returns the saved value of key, or def when it is unset.
func (s *Store) GetOrDefault(ctx context.Context, key string, def any) (any, error) {
	value, found, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return def, nil
	}
	return value, nil
}

// All returns every saved entry of the namespace.
func (s *Store) All(ctx context.Context) (models.ConfigMap, error) {
	cacheKey := s.allCacheKey()

	snapshot, err := cache.GetJSON[map[string]json.RawMessage](ctx, s.cache, cacheKey)
	if err == nil {
		if out, err := decodeEntries(snapshot); err == nil {
			return out, nil
		}
	}
	s.logCacheError(ctx, "*Store.All", err)

	gen := s.generation.Load()
	rows, err := s.repo.All(ctx, s.namespace)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	snapshot = make(map[string]json.RawMessage, len(rows))
	for k, v := range rows {
		snapshot[k] = json.RawMessage(v)
	}

	out, err := decodeEntries(snapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	s.remember(ctx, gen, cacheKey, snapshot)

	return out, nil
}

// Set stages value under key. With autoSave it also saves every staged entry.
func (s *Store) Set(ctx context.Context, key string, value any, autoSave bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.setLocked(key, value); err != nil {
		return err
	}

	if autoSave {
		return s.saveLocked(ctx)
	}
	return nil
}

// Save persists every staged entry in one transaction and drops the cached
// reads they affect. The staged buffer is emptied whether or not the write
// succeeds.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveLocked(ctx)
}

// Update stages all entries and saves them as one unit. If any value cannot
// be encoded nothing is saved.
func (s *Store) Update(ctx context.Context, entries models.ConfigMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range slices.Sorted(maps.Keys(entries)) {
		if err := s.setLocked(key, entries[key]); err != nil {
			clear(s.pending)
			return err
		}
	}

	return s.saveLocked(ctx)
}

// pendingCount reports the number of staged entries.
func (s *Store) pendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Store) setLocked(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: key %q: %w", ErrInvalidValue, key, err)
	}

	s.pending[key] = string(raw)
	return nil
}

func (s *Store) saveLocked(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}

	batch := s.pending
	s.pending = make(map[string]string)

	if err := s.repo.Upsert(ctx, s.namespace, batch); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*Store.Save").
			Str("namespace", s.namespace.String()).
			Strs("keys", slices.Sorted(maps.Keys(batch))).
			Msg("failed to save config entries")
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	s.generation.Add(1)
	s.invalidate(ctx, batch)
	return nil
}

func (s *Store) invalidate(ctx context.Context, batch map[string]string) {
	keys := make([]string, 0, len(batch)+1)
	for k := range batch {
		keys = append(keys, s.keyCacheKey(k))
	}
	keys = append(keys, s.allCacheKey())

	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "*Store.invalidate").
			Str("namespace", s.namespace.String()).
			Msg("failed to invalidate cached config")
	}
}

// remember caches value read at generation gen. If a write committed in the
// meantime the value may predate it, so the entry is dropped again. The write
// bumps the generation before it invalidates, so either this check sees the
// new generation or the write's invalidation runs after the Set below.
func (s *Store) remember(ctx context.Context, gen uint64, key string, value any) {
	if s.generation.Load() != gen {
		return
	}
	if err := cache.SetJSON(ctx, s.cache, key, value, s.ttl); err != nil {
		s.logCacheError(ctx, "*Store.remember", err)
		return
	}
	if s.generation.Load() != gen {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logCacheError(ctx, "*Store.remember", err)
		}
	}
}

func (s *Store) logCacheError(ctx context.Context, funcName string, err error) {
	if err == nil || errors.Is(err, cache.ErrMiss) {
		return
	}
	logger.FromContext(ctx).Warn().Err(err).
		Str("func", funcName).
		Str("namespace", s.namespace.String()).
		Msg("config cache unavailable, reading from database")
}

func (s *Store) keyCacheKey(key string) string {
	return "config:" + s.namespace.String() + ":key:" + key
}

func (s *Store) allCacheKey() string {
	return "config:" + s.namespace.String() + ":all"
}

func decodeValue(raw json.RawMessage) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decoding config value: %w", err)
	}
	return v, nil
}

func decodeEntries(entries map[string]json.RawMessage) (models.ConfigMap, error) {
	out := make(models.ConfigMap, len(entries))
	for k, raw := range entries {
		v, err := decodeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}
