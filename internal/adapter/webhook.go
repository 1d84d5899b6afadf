package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/internal/utils"
	"github.com/MKhiriev/go-site-keeper/models"
)

const (
	// SignatureHeader carries "sha256=<hex HMAC of the body>" when the
	// target has a secret.
	SignatureHeader = "X-Signature-256"
	EventHeader     = "X-Event-Type"
)

// WebhookNotifier posts JSON events to webhook URLs.
type WebhookNotifier struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewWebhookNotifier constructs a [WebhookNotifier].
func NewWebhookNotifier(timeout time.Duration, log *logger.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		client: utils.NewHTTPClient(timeout),
		logger: log,
	}
}

func (n *WebhookNotifier) Notify(ctx context.Context, target models.WebhookTarget, event models.WebhookEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding webhook event: %w", err)
	}

	req := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(EventHeader, event.Type).
		SetBody(body)
	if target.Secret != "" {
		req.SetHeader(SignatureHeader, "sha256="+utils.HashString(string(body), target.Secret))
	}

	resp, err := req.Post(target.URL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	logger.FromContext(ctx).Debug().
		Str("func", "*WebhookNotifier.Notify").
		Str("event", event.Type).
		Int("status", resp.StatusCode()).
		Msg("webhook delivered")

	return nil
}
