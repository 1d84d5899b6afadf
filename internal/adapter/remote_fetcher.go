package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/internal/utils"
	"github.com/MKhiriev/go-site-keeper/models"
)

// HTTPRemoteFetcher implements [RemoteFetcher] over resty.
type HTTPRemoteFetcher struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewRemoteFetcher constructs an [HTTPRemoteFetcher] with a per-request
// timeout.
func NewRemoteFetcher(timeout time.Duration, log *logger.Logger) *HTTPRemoteFetcher {
	return &HTTPRemoteFetcher{
		client: utils.NewHTTPClient(timeout),
		logger: log,
	}
}

func (f *HTTPRemoteFetcher) Fetch(ctx context.Context, url string, maxBytes int64) (models.ObjectContent, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return models.ObjectContent{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return models.ObjectContent{}, &StatusError{StatusCode: resp.StatusCode()}
	}

	data, err := io.ReadAll(io.LimitReader(body, maxBytes+1))
	if err != nil {
		return models.ObjectContent{}, fmt.Errorf("%w: reading body: %w", ErrFetch, err)
	}
	if int64(len(data)) > maxBytes {
		return models.ObjectContent{}, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, maxBytes)
	}

	contentType, _, _ := strings.Cut(resp.Header().Get("Content-Type"), ";")
	contentType = strings.TrimSpace(contentType)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType, _, _ = strings.Cut(http.DetectContentType(data), ";")
	}

	return models.ObjectContent{Data: data, ContentType: contentType}, nil
}

// Probe issues a HEAD request, retrying as GET for servers that refuse HEAD.
func (f *HTTPRemoteFetcher) Probe(ctx context.Context, url string) (int, error) {
	resp, err := f.client.R().SetContext(ctx).Head(url)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if resp.StatusCode() != http.StatusMethodNotAllowed && resp.StatusCode() != http.StatusNotImplemented {
		return resp.StatusCode(), nil
	}

	resp, err = f.client.R().SetContext(ctx).SetDoNotParseResponse(true).Get(url)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	resp.RawBody().Close()

	return resp.StatusCode(), nil
}
