package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-site-keeper/internal/adapter"
	"github.com/MKhiriev/go-site-keeper/internal/cache"
	"github.com/MKhiriev/go-site-keeper/internal/config"
	"github.com/MKhiriev/go-site-keeper/internal/handler"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/internal/server"
	"github.com/MKhiriev/go-site-keeper/internal/service"
	"github.com/MKhiriev/go-site-keeper/internal/settings"
	"github.com/MKhiriev/go-site-keeper/internal/store"
	"github.com/MKhiriev/go-site-keeper/internal/workers"
	"github.com/MKhiriev/go-site-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// outboundTimeout bounds favicon downloads, health probes and webhook calls.
const outboundTimeout = 10 * time.Second

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	log := logger.NewLogger("site-keeper-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	ctx := log.WithContext(context.Background())

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	c, err := cache.New(ctx, cfg.Storage.Cache, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating cache")
	}
	defer c.Close()

	objects, err := adapter.NewObjectStore(ctx, cfg.Storage.S3, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating object store")
	}

	services, err := service.NewServices(service.Dependencies{
		Storages:    storages,
		Settings:    settings.NewStores(storages.ConfigRepository, c, cfg.Storage.Cache.TTL, log),
		Cache:       c,
		ObjectStore: objects,
		AI:          adapter.NewOpenAIProvider(cfg.AI, log),
		Fetcher:     adapter.NewRemoteFetcher(outboundTimeout, log),
		Notifier:    adapter.NewWebhookNotifier(outboundTimeout, log),
		BuildInfo:   buildInfo,
	}, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if cfg.IssueTokenFor != 0 {
		token, err := services.AuthService.CreateToken(ctx, cfg.IssueTokenFor)
		if err != nil {
			log.Fatal().Err(err).Int64("user_id", cfg.IssueTokenFor).Msg("error issuing token")
		}
		fmt.Println(token.SignedString)
		return
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(services, cfg.Workers, log), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
