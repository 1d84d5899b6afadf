package adapter

import (
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// maxErrorBodyLength caps how much of a remote error body ends up in an
// error message.
const maxErrorBodyLength = 256

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if len(body) > maxErrorBodyLength {
		body = body[:maxErrorBodyLength]
	}

	return &StatusError{StatusCode: resp.StatusCode(), Body: body}
}
