package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-site-keeper/internal/config"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/internal/workers"
	"github.com/stretchr/testify/assert"
)

func TestNewServer_NoHandlers(t *testing.T) {
	s, err := NewServer(nil, nil, config.Server{HTTPAddress: ":0"}, logger.Nop())

	assert.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestHTTPServer_ServesUntilCancelled(t *testing.T) {
	hs := newHTTPServer(http.NotFoundHandler(), config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop())

	s := &server{httpServer: hs, workers: &workers.Workers{}, logger: logger.Nop()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.RunServer(ctx) }()

	// shutting down before Serve starts is also a clean stop
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestHTTPServer_ListenFailure(t *testing.T) {
	hs := newHTTPServer(http.NotFoundHandler(), config.Server{HTTPAddress: "256.0.0.1:99999"}, logger.Nop())
	s := &server{httpServer: hs, workers: &workers.Workers{}, logger: logger.Nop()}

	err := s.RunServer(context.Background())

	assert.Error(t, err)
}
