package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-site-keeper/internal/adapter"
	"github.com/MKhiriev/go-site-keeper/internal/cache"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/internal/policy"
	"github.com/MKhiriev/go-site-keeper/internal/validators"
	"github.com/MKhiriev/go-site-keeper/models"
)

const (
	FaviconObjectKey = "site/favicon"
	faviconCacheKey  = "favicon"
	faviconCacheTTL  = time.Hour

	// MaxFaviconBytes caps uploaded and fetched icons.
	MaxFaviconBytes = 1 << 20
)

var faviconContentTypes = map[string]struct{}{
	"image/png":                {},
	"image/x-icon":             {},
	"image/vnd.microsoft.icon": {},
	"image/svg+xml":            {},
	"image/webp":               {},
	"image/jpeg":               {},
}

type faviconService struct {
	objects   adapter.ObjectStore
	cache     cache.Cache
	fetcher   adapter.RemoteFetcher
	validator validators.Validator

	logger *logger.Logger
}

func NewFaviconService(objects adapter.ObjectStore, c cache.Cache, fetcher adapter.RemoteFetcher, validator validators.Validator, logger *logger.Logger) FaviconService {
	return &faviconService{
		objects:   objects,
		cache:     c,
		fetcher:   fetcher,
		validator: validator,
		logger:    logger,
	}
}

// Get returns the current icon, served from the cache when possible.
func (s *faviconService) Get(ctx context.Context) (models.ObjectContent, error) {
	icon, err := cache.GetOrSet(ctx, s.cache, faviconCacheKey, faviconCacheTTL, func(ctx context.Context) (models.ObjectContent, error) {
		return s.objects.Get(ctx, FaviconObjectKey)
	})
	if err != nil {
		if !errors.Is(err, adapter.ErrObjectNotFound) {
			logger.FromContext(ctx).Err(err).Str("func", "*faviconService.Get").Msg("error reading favicon")
		}
		return models.ObjectContent{}, classify(err)
	}

	return icon, nil
}

// Upload replaces the icon with data.
func (s *faviconService) Upload(ctx context.Context, id *models.Identity, data []byte, contentType string) error {
	if err := policy.RequireAdmin(id); err != nil {
		return err
	}

	return s.store(ctx, models.ObjectContent{Data: data, ContentType: contentType})
}

// FetchFromURL downloads the icon at url and stores it as if uploaded.
func (s *faviconService) FetchFromURL(ctx context.Context, id *models.Identity, url string) error {
	log := logger.FromContext(ctx)

	if err := policy.RequireAdmin(id); err != nil {
		return err
	}
	if err := s.validator.Validate(ctx, models.FetchRequest{URL: url}); err != nil {
		return classify(err)
	}

	icon, err := s.fetcher.Fetch(ctx, url, MaxFaviconBytes)
	if err != nil {
		log.Err(err).Str("url", url).Str("func", "*faviconService.FetchFromURL").Msg("error fetching favicon")
		return classify(err)
	}

	return s.store(ctx, icon)
}

func (s *faviconService) store(ctx context.Context, icon models.ObjectContent) error {
	log := logger.FromContext(ctx)

	if len(icon.Data) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, ErrEmptyFile)
	}
	if len(icon.Data) > MaxFaviconBytes {
		return fmt.Errorf("%w: %w: %d bytes, max %d", ErrInvalidArgument, ErrFileTooLarge, len(icon.Data), MaxFaviconBytes)
	}

	icon.ContentType = imageContentType(icon.ContentType, icon.Data)
	if _, ok := faviconContentTypes[icon.ContentType]; !ok {
		return fmt.Errorf("%w: %w: %q", ErrInvalidArgument, ErrUnsupportedMediaType, icon.ContentType)
	}

	if err := s.objects.Put(ctx, FaviconObjectKey, icon.Data, icon.ContentType); err != nil {
		log.Err(err).Str("func", "*faviconService.store").Msg("error writing favicon")
		return classify(err)
	}

	if err := s.cache.Delete(ctx, faviconCacheKey); err != nil {
		log.Warn().Err(err).Str("func", "*faviconService.store").Msg("favicon cache invalidation failed")
	}

	log.Info().Str("content_type", icon.ContentType).Int("size", len(icon.Data)).Msg("favicon replaced")
	return nil
}

// imageContentType drops media type parameters and recognizes SVG documents
// that were sniffed or served as generic XML or text.
func imageContentType(contentType string, data []byte) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))

	switch mediaType {
	case "text/xml", "application/xml", "text/plain", "", "application/octet-stream":
		if bytes.Contains(bytes.ToLower(data[:min(len(data), 1024)]), []byte("<svg")) {
			return "image/svg+xml"
		}
	}

	return mediaType
}
