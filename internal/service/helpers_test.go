package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-site-keeper/internal/cache"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/internal/settings"
	"github.com/MKhiriev/go-site-keeper/internal/store"
	"github.com/MKhiriev/go-site-keeper/models"
)

var (
	admin = &models.Identity{UserID: 1, IsAdmin: true}
	user2 = &models.Identity{UserID: 2}
	user3 = &models.Identity{UserID: 3}
)

// fakeConfigRepo is an in-memory ConfigRepository counting batch writes.
type fakeConfigRepo struct {
	mu      sync.Mutex
	rows    map[models.Namespace]map[string]string
	upserts int
	err     error
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{rows: make(map[models.Namespace]map[string]string)}
}

func (f *fakeConfigRepo) All(_ context.Context, ns models.Namespace) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]string, len(f.rows[ns]))
	for k, v := range f.rows[ns] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeConfigRepo) Get(_ context.Context, ns models.Namespace, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return "", f.err
	}
	v, ok := f.rows[ns][key]
	if !ok {
		return "", store.ErrConfigNotFound
	}
	return v, nil
}

func (f *fakeConfigRepo) Upsert(_ context.Context, ns models.Namespace, entries map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.upserts++
	if f.rows[ns] == nil {
		f.rows[ns] = make(map[string]string)
	}
	for k, v := range entries {
		f.rows[ns][k] = v
	}
	return nil
}

func (f *fakeConfigRepo) put(ns models.Namespace, key, rawJSON string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.rows[ns] == nil {
		f.rows[ns] = make(map[string]string)
	}
	f.rows[ns][key] = rawJSON
}

func (f *fakeConfigRepo) writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upserts
}

func newTestStores(t *testing.T) (*settings.Stores, *fakeConfigRepo, *cache.Memory) {
	t.Helper()

	repo := newFakeConfigRepo()
	mem := cache.NewMemory()
	return settings.NewStores(repo, mem, time.Minute, logger.Nop()), repo, mem
}

func ptr[T any](v T) *T {
	return &v
}
