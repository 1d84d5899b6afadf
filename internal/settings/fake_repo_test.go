package settings

import (
	"context"
	"maps"
	"sync"

	"github.com/MKhiriev/go-site-keeper/internal/store"
	"github.com/MKhiriev/go-site-keeper/models"
)

// fakeRepo is an in-memory ConfigRepository.
type fakeRepo struct {
	mu   sync.Mutex
	rows map[models.Namespace]map[string]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[models.Namespace]map[string]string)}
}

func (f *fakeRepo) All(_ context.Context, ns models.Namespace) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]string, len(f.rows[ns]))
	for k, v := range f.rows[ns] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, ns models.Namespace, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.rows[ns][key]
	if !ok {
		return "", store.ErrConfigNotFound
	}
	return v, nil
}

func (f *fakeRepo) Upsert(_ context.Context, ns models.Namespace, entries map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.rows[ns] == nil {
		f.rows[ns] = make(map[string]string)
	}
	for k, v := range entries {
		f.rows[ns][k] = v
	}
	return nil
}

// pausingRepo holds a read after it has taken its snapshot until release is
// closed, leaving room for a write to commit in between.
type pausingRepo struct {
	*fakeRepo
	taken   chan struct{}
	release chan struct{}
	once    sync.Once
}

func newPausingRepo(inner *fakeRepo) *pausingRepo {
	return &pausingRepo{
		fakeRepo: inner,
		taken:    make(chan struct{}),
		release:  make(chan struct{}),
	}
}

func (p *pausingRepo) pause() {
	paused := false
	p.once.Do(func() { paused = true })
	if paused {
		close(p.taken)
		<-p.release
	}
}

func (p *pausingRepo) All(ctx context.Context, ns models.Namespace) (map[string]string, error) {
	rows, err := p.fakeRepo.All(ctx, ns)
	p.pause()
	return rows, err
}

func (p *pausingRepo) Get(ctx context.Context, ns models.Namespace, key string) (string, error) {
	v, err := p.fakeRepo.Get(ctx, ns, key)
	p.pause()
	return v, err
}

// recordingRepo keeps every batch handed to Upsert.
type recordingRepo struct {
	*fakeRepo
	batchMu sync.Mutex
	batches []map[string]string
}

func (r *recordingRepo) Upsert(ctx context.Context, ns models.Namespace, entries map[string]string) error {
	r.batchMu.Lock()
	r.batches = append(r.batches, maps.Clone(entries))
	r.batchMu.Unlock()
	return r.fakeRepo.Upsert(ctx, ns, entries)
}
