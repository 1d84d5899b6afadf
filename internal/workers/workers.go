package workers

import (
	"context"

	"github.com/MKhiriev/go-site-keeper/internal/config"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/internal/service"
	"golang.org/x/sync/errgroup"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the workers enabled in cfg.
func NewWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}

	if cfg.FriendHealthInterval > 0 {
		w.workers = append(w.workers, NewFriendHealthWorker(services.FriendService, cfg.FriendHealthInterval, logger))
	} else {
		logger.Info().Msg("friend health worker is disabled")
	}

	return w
}

// Run starts every worker and waits for all of them. The first failure
// cancels the others.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(ctx)
		})
	}
	return g.Wait()
}

// Len reports how many workers are enabled.
func (w *Workers) Len() int {
	return len(w.workers)
}
