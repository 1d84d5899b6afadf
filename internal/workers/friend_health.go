// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/internal/service"
	"github.com/rs/zerolog"
)

// FriendHealthWorker periodically probes the links of accepted friends.
// A failed round is logged and retried on the next tick.
type FriendHealthWorker struct {
	friends  service.FriendService
	interval time.Duration

	logger *logger.Logger
}

func NewFriendHealthWorker(friends service.FriendService, interval time.Duration, logger *logger.Logger) *FriendHealthWorker {
	return &FriendHealthWorker{
		friends:  friends,
		interval: interval,
		logger:   logger,
	}
}

func (w *FriendHealthWorker) Run(ctx context.Context) error {
	l := w.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("worker", "friend_health")
	})
	ctx = l.WithContext(ctx)

	l.Info().Dur("interval", w.interval).Msg("friend health worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.round(ctx)
	for {
		select {
		case <-ctx.Done():
			l.Info().Msg("friend health worker stopped")
			return nil
		case <-ticker.C:
			w.round(ctx)
		}
	}
}

func (w *FriendHealthWorker) round(ctx context.Context) {
	start := time.Now()
	if err := w.friends.CheckHealth(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.FromContext(ctx).Err(err).Str("func", "*FriendHealthWorker.round").Msg("friend health check failed")
		return
	}
	logger.FromContext(ctx).Debug().Dur("duration", time.Since(start)).Msg("friend health check finished")
}
