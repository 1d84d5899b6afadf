// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound capabilities the services consume:
// object storage, the AI provider, remote HTTP fetches and webhook delivery.
//
// Each capability is an interface so services stay independent of the
// concrete SDK. Implementations map transport failures to the sentinel
// values in errors.go so callers can use [errors.Is] (e.g.
// [ErrObjectNotFound] for a missing S3 key).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-site-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ObjectStore keeps binary objects under string keys.
type ObjectStore interface {
	// Put writes data under key, replacing any previous object.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get reads the object under key. Returns [ErrObjectNotFound] when the
	// key does not exist.
	Get(ctx context.Context, key string) (models.ObjectContent, error)

	// Delete removes the object under key. Deleting a missing key succeeds.
	Delete(ctx context.Context, key string) error
}

// AIProvider runs a single chat completion against an OpenAI-compatible API.
type AIProvider interface {
	Complete(ctx context.Context, req models.AITestRequest) (models.AITestResult, error)
}

// RemoteFetcher reads resources from arbitrary http(s) URLs.
type RemoteFetcher interface {
	// Fetch downloads url. Bodies larger than maxBytes fail with
	// [ErrResponseTooLarge]; non-2xx answers fail with a *StatusError.
	Fetch(ctx context.Context, url string, maxBytes int64) (models.ObjectContent, error)

	// Probe checks that url answers and returns the final status code.
	Probe(ctx context.Context, url string) (int, error)
}

// Notifier delivers events to a webhook.
type Notifier interface {
	Notify(ctx context.Context, target models.WebhookTarget, event models.WebhookEvent) error
}
