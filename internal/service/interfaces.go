package service

import (
	"context"

	"github.com/MKhiriev/go-site-keeper/models"
)

// AuthService resolves bearer tokens into caller identities.
type AuthService interface {
	// Identify validates token and loads the user it was issued for.
	Identify(ctx context.Context, token string) (*models.Identity, error)
	Profile(ctx context.Context, id *models.Identity) (models.User, error)
	CreateToken(ctx context.Context, userID int64) (models.Token, error)
}

// ConfigService reads and writes the server and client configuration.
type ConfigService interface {
	GetConfig(ctx context.Context, ns models.Namespace, id *models.Identity) (models.ConfigMap, error)
	UpdateConfig(ctx context.Context, ns models.Namespace, id *models.Identity, entries models.ConfigMap) error
	ClearCache(ctx context.Context, id *models.Identity) error
	TestAI(ctx context.Context, id *models.Identity, req models.AITestRequest) (models.AITestResult, error)
}

// FriendService manages the link directory.
type FriendService interface {
	List(ctx context.Context, id *models.Identity) ([]models.Friend, error)
	Create(ctx context.Context, id *models.Identity, req models.FriendRequest) (models.Friend, error)
	Update(ctx context.Context, id *models.Identity, friendID int64, req models.FriendRequest) (models.Friend, error)
	Delete(ctx context.Context, id *models.Identity, friendID int64) error

	// CheckHealth probes every accepted friend and records the outcome.
	CheckHealth(ctx context.Context) error
}

// FaviconService keeps the site icon.
type FaviconService interface {
	Get(ctx context.Context) (models.ObjectContent, error)
	Upload(ctx context.Context, id *models.Identity, data []byte, contentType string) error
	FetchFromURL(ctx context.Context, id *models.Identity, url string) error
}

// StorageService keeps user uploads.
type StorageService interface {
	Upload(ctx context.Context, id *models.Identity, filename string, data []byte, contentType string) (models.StoredObject, error)
	Get(ctx context.Context, key string) (models.ObjectContent, error)
	List(ctx context.Context, id *models.Identity) ([]models.StoredObject, error)
	Delete(ctx context.Context, id *models.Identity, key string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
