package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "site-keeper/1.0"

// HTTPClient is a wrapper around the resty.Client HTTP client used for every
// outbound request the backend makes (favicon fetches, health probes,
// webhooks).
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient with the given per-request timeout.
// A zero timeout leaves resty's default (no timeout) in place.
//
// Example usage:
//
//	client := utils.NewHTTPClient(10 * time.Second)
//	resp, err := client.R().SetContext(ctx).Get("https://example.com")
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetHeader("User-Agent", userAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
