package adapter

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrObjectNotFound      = errors.New("object not found")
	ErrObjectStoreDisabled = errors.New("object storage is not configured")
	ErrObjectStore         = errors.New("object storage failure")

	ErrUnsupportedProvider = errors.New("unsupported AI provider")
	ErrMissingAPIKey       = errors.New("AI provider API key is not configured")
	ErrMissingAPIURL       = errors.New("custom AI provider needs an API URL")
	ErrAIProvider          = errors.New("AI provider request failed")
	ErrEmptyCompletion     = errors.New("AI provider returned no answer")

	ErrFetch            = errors.New("remote request failed")
	ErrResponseTooLarge = errors.New("remote response is too large")
	ErrUpstreamStatus   = errors.New("remote answered with an error status")
)

// StatusError is returned when a remote server answers with a non-2xx code.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// Is lets errors.Is(err, ErrUpstreamStatus) match any StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrUpstreamStatus
}
