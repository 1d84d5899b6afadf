package http

import (
	"time"

	"github.com/MKhiriev/go-site-keeper/internal/config"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/internal/service"
)

// multipartOverhead is added to the upload limit to leave room for the
// multipart envelope around the file.
const multipartOverhead = 64 << 10

type Handler struct {
	services *service.Services

	requestTimeout time.Duration
	maxBodyBytes   int64
	maxUploadBytes int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		requestTimeout: cfg.Server.RequestTimeout,
		maxBodyBytes:   cfg.Server.MaxBodyBytes,
		maxUploadBytes: cfg.Storage.S3.MaxUploadBytes,
		logger:         logger,
	}
}
