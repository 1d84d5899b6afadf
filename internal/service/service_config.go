// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/MKhiriev/go-site-keeper/internal/adapter"
	"github.com/MKhiriev/go-site-keeper/internal/cache"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/internal/policy"
	"github.com/MKhiriev/go-site-keeper/internal/settings"
	"github.com/MKhiriev/go-site-keeper/internal/validators"
	"github.com/MKhiriev/go-site-keeper/models"
)

// Server configuration keys read by the AI test call.
const (
	keyAIProvider = "ai_summary.provider"
	keyAIModel    = "ai_summary.model"
	keyAIAPIURL   = "ai_summary.api_url"
	keyAIAPIKey   = "ai_summary.api_key"
	keyAIPrompt   = "ai_summary.prompt"
)

type configService struct {
	stores    *settings.Stores
	cache     cache.Cache
	ai        adapter.AIProvider
	validator validators.Validator

	logger *logger.Logger
}

func NewConfigService(stores *settings.Stores, c cache.Cache, ai adapter.AIProvider, validator validators.Validator, logger *logger.Logger) ConfigService {
	return &configService{
		stores:    stores,
		cache:     c,
		ai:        ai,
		validator: validator,
		logger:    logger,
	}
}

// GetConfig returns every entry of ns. Sensitive server values are masked.
func (s *configService) GetConfig(ctx context.Context, ns models.Namespace, id *models.Identity) (models.ConfigMap, error) {
	if !ns.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, validators.ErrInvalidNamespace)
	}
	if err := policy.RequireConfigRead(ns, id); err != nil {
		return nil, err
	}

	entries, err := s.stores.For(ns).All(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("namespace", ns.String()).Str("func", "*configService.GetConfig").Msg("error reading config")
		return nil, classify(err)
	}

	return policy.MaskConfig(ns, entries), nil
}

// UpdateConfig writes entries to ns as one batch. Authorization and
// validation happen before anything is buffered, so a rejected call leaves
// the store untouched.
func (s *configService) UpdateConfig(ctx context.Context, ns models.Namespace, id *models.Identity, entries models.ConfigMap) error {
	log := logger.FromContext(ctx)

	if !ns.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, validators.ErrInvalidNamespace)
	}
	if err := policy.RequireConfigWrite(ns, id); err != nil {
		return err
	}

	if err := s.validator.Validate(ctx, models.ConfigUpdate{Namespace: ns, Entries: entries}); err != nil {
		log.Debug().Err(err).Str("namespace", ns.String()).Str("func", "*configService.UpdateConfig").Msg("config update rejected")
		return classify(err)
	}

	entries = withoutEchoedSecrets(ns, entries)
	if len(entries) == 0 {
		return nil
	}

	if err := s.stores.For(ns).Update(ctx, entries); err != nil {
		log.Err(err).Str("namespace", ns.String()).Int("keys", len(entries)).Str("func", "*configService.UpdateConfig").Msg("error saving config")
		return classify(err)
	}

	log.Info().Str("namespace", ns.String()).Strs("keys", slices.Sorted(maps.Keys(entries))).Int64("user_id", id.UserID).Msg("config updated")
	return nil
}

// ClearCache drops every cached entry. Stored configuration is not touched.
func (s *configService) ClearCache(ctx context.Context, id *models.Identity) error {
	if err := policy.RequireAdmin(id); err != nil {
		return err
	}

	if err := s.cache.Clear(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*configService.ClearCache").Msg("error clearing cache")
		return fmt.Errorf("%w: %w", ErrDependencyFailure, err)
	}

	return nil
}

// TestAI runs one completion with req, filling missing fields from the
// stored ai_summary settings. Nothing is persisted.
func (s *configService) TestAI(ctx context.Context, id *models.Identity, req models.AITestRequest) (models.AITestResult, error) {
	log := logger.FromContext(ctx)

	if err := policy.RequireAdmin(id); err != nil {
		return models.AITestResult{}, err
	}

	stored, err := s.stores.Server.All(ctx)
	if err != nil {
		log.Err(err).Str("func", "*configService.TestAI").Msg("error reading stored AI settings")
		return models.AITestResult{}, classify(err)
	}

	req = fillAIRequest(req, stored)

	result, err := s.ai.Complete(ctx, req)
	if err != nil {
		log.Err(err).Str("provider", req.Provider).Str("model", req.Model).Str("func", "*configService.TestAI").Msg("AI test call failed")
		return models.AITestResult{}, classify(err)
	}

	return result, nil
}

// fillAIRequest completes req from the stored settings. Credentials follow
// the provider: the stored key and URL are only used when the request
// targets the stored provider.
func fillAIRequest(req models.AITestRequest, stored models.ConfigMap) models.AITestRequest {
	storedProvider := stringSetting(stored, keyAIProvider)
	if req.Provider == "" {
		req.Provider = storedProvider
	}
	if req.Model == "" {
		req.Model = stringSetting(stored, keyAIModel)
	}
	if req.Prompt == "" {
		req.Prompt = stringSetting(stored, keyAIPrompt)
	}

	if req.Provider != storedProvider {
		if policy.IsMasked(req.APIKey) {
			req.APIKey = ""
		}
		return req
	}

	if req.APIKey == "" || policy.IsMasked(req.APIKey) {
		req.APIKey = stringSetting(stored, keyAIAPIKey)
	}
	if req.APIURL == "" {
		req.APIURL = stringSetting(stored, keyAIAPIURL)
	}

	return req
}

// withoutEchoedSecrets drops sensitive server entries whose value is the
// mask token: the client sent back what GetConfig showed it.
func withoutEchoedSecrets(ns models.Namespace, entries models.ConfigMap) models.ConfigMap {
	out := make(models.ConfigMap, len(entries))
	for key, value := range entries {
		if policy.ShouldMask(ns, key) && policy.IsMasked(value) {
			continue
		}
		out[key] = value
	}
	return out
}

func stringSetting(m models.ConfigMap, key string) string {
	s, _ := m[key].(string)
	return s
}
