package settings

import (
	"time"

	"github.com/MKhiriev/go-site-keeper/internal/cache"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/internal/store"
	"github.com/MKhiriev/go-site-keeper/models"
)

// Stores holds the store of each namespace.
type Stores struct {
	Server *Store
	Client *Store
}

// NewStores builds both namespace stores over the same repository and cache.
func NewStores(repo store.ConfigRepository, c cache.Cache, ttl time.Duration, log *logger.Logger) *Stores {
	return &Stores{
		Server: NewStore(models.NamespaceServer, repo, c, ttl, log),
		Client: NewStore(models.NamespaceClient, repo, c, ttl, log),
	}
}

// For returns the store of ns, or nil for an unknown namespace.
func (s *Stores) For(ns models.Namespace) *Store {
	switch ns {
	case models.NamespaceServer:
		return s.Server
	case models.NamespaceClient:
		return s.Client
	}
	return nil
}
