package service

import (
	"github.com/MKhiriev/go-site-keeper/internal/adapter"
	"github.com/MKhiriev/go-site-keeper/internal/cache"
	"github.com/MKhiriev/go-site-keeper/internal/config"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/internal/settings"
	"github.com/MKhiriev/go-site-keeper/internal/store"
	"github.com/MKhiriev/go-site-keeper/internal/validators"
	"github.com/MKhiriev/go-site-keeper/models"
)

// Dependencies are the collaborators the services are built on. All of them
// are constructed in main and shared.
type Dependencies struct {
	Storages    *store.Storages
	Settings    *settings.Stores
	Cache       cache.Cache
	ObjectStore adapter.ObjectStore
	AI          adapter.AIProvider
	Fetcher     adapter.RemoteFetcher
	Notifier    adapter.Notifier
	BuildInfo   models.AppBuildInfo
}

type Services struct {
	AuthService    AuthService
	ConfigService  ConfigService
	FriendService  FriendService
	FaviconService FaviconService
	StorageService StorageService
	AppInfoService AppInfoService
}

func NewServices(deps Dependencies, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, deps.BuildInfo, logger)
	if err != nil {
		return nil, err
	}

	requests := validators.NewRequestValidator()

	return &Services{
		AuthService:    NewAuthService(deps.Storages.UserRepository, cfg.App, logger),
		ConfigService:  NewConfigService(deps.Settings, deps.Cache, deps.AI, validators.NewConfigValidator(), logger),
		FriendService:  NewFriendService(deps.Storages.FriendRepository, deps.Settings, deps.Fetcher, deps.Notifier, requests, logger),
		FaviconService: NewFaviconService(deps.ObjectStore, deps.Cache, deps.Fetcher, requests, logger),
		StorageService: NewStorageService(deps.ObjectStore, deps.Storages.ObjectRepository, cfg.Storage.S3, logger),
		AppInfoService: appInfo,
	}, nil
}
