package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-site-keeper/internal/config"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	openai "github.com/sashabaranov/go-openai"
)

const (
	ProviderOpenAI     = "openai"
	ProviderDeepSeek   = "deepseek"
	ProviderOpenRouter = "openrouter"
	ProviderCustom     = "custom"

	defaultModel   = "gpt-4o-mini"
	defaultPrompt  = "Summarize the following text in two sentences."
	defaultContent = "Hello! This is a connectivity test."
)

var providerBaseURLs = map[string]string{
	ProviderOpenAI:     "https://api.openai.com/v1",
	ProviderDeepSeek:   "https://api.deepseek.com/v1",
	ProviderOpenRouter: "https://openrouter.ai/api/v1",
}

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "site_keeper",
			Name:      "ai_requests_total",
			Help:      "Total number of requests to AI providers.",
		},
		[]string{"provider", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "site_keeper",
			Name:      "ai_request_duration_seconds",
			Help:      "Histogram of AI provider request durations.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
)

// OpenAIProvider talks to any OpenAI-compatible chat completion API.
type OpenAIProvider struct {
	timeout time.Duration
	logger  *logger.Logger
}

// NewOpenAIProvider constructs an [OpenAIProvider]. Every call is bounded by
// cfg.RequestTimeout on top of the caller's context.
func NewOpenAIProvider(cfg config.AI, log *logger.Logger) *OpenAIProvider {
	return &OpenAIProvider{timeout: cfg.RequestTimeout, logger: log}
}

// ResolveBaseURL returns the API base URL for provider. An explicit apiURL
// always wins.
func ResolveBaseURL(provider, apiURL string) (string, error) {
	if apiURL != "" {
		return strings.TrimRight(apiURL, "/"), nil
	}
	if provider == ProviderCustom {
		return "", ErrMissingAPIURL
	}

	base, ok := providerBaseURLs[provider]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}
	return base, nil
}

func (p *OpenAIProvider) Complete(ctx context.Context, req models.AITestRequest) (models.AITestResult, error) {
	log := logger.FromContext(ctx)

	req = withDefaults(req)
	if req.APIKey == "" {
		return models.AITestResult{}, ErrMissingAPIKey
	}

	baseURL, err := ResolveBaseURL(req.Provider, req.APIURL)
	if err != nil {
		return models.AITestResult{}, err
	}

	clientCfg := openai.DefaultConfig(req.APIKey)
	clientCfg.BaseURL = baseURL
	client := openai.NewClientWithConfig(clientCfg)

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.Prompt},
			{Role: openai.ChatMessageRoleUser, Content: req.Content},
		},
	})
	elapsed := time.Since(start)
	aiRequestDuration.WithLabelValues(req.Provider).Observe(elapsed.Seconds())

	if err != nil {
		aiRequestsTotal.WithLabelValues(req.Provider, "error").Inc()
		log.Err(err).
			Str("func", "*OpenAIProvider.Complete").
			Str("provider", req.Provider).
			Str("model", req.Model).
			Dur("elapsed", elapsed).
			Msg("AI provider request failed")
		return models.AITestResult{}, describeAIError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		aiRequestsTotal.WithLabelValues(req.Provider, "empty").Inc()
		return models.AITestResult{}, ErrEmptyCompletion
	}

	aiRequestsTotal.WithLabelValues(req.Provider, "success").Inc()

	return models.AITestResult{
		Provider:         req.Provider,
		Model:            req.Model,
		Response:         resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		DurationMS:       elapsed.Milliseconds(),
	}, nil
}

func withDefaults(req models.AITestRequest) models.AITestRequest {
	if req.Provider == "" {
		req.Provider = ProviderOpenAI
	}
	if req.Model == "" {
		req.Model = defaultModel
	}
	if req.Prompt == "" {
		req.Prompt = defaultPrompt
	}
	if req.Content == "" {
		req.Content = defaultContent
	}
	return req
}

// describeAIError keeps the provider's message and status but never the
// request, which carries the API key.
func describeAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: status %d: %s", ErrAIProvider, apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%w: status %d", ErrAIProvider, reqErr.HTTPStatusCode)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: timed out", ErrAIProvider)
	}
	return fmt.Errorf("%w: %w", ErrAIProvider, err)
}
