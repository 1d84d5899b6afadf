package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-site-keeper/internal/adapter"
	"github.com/MKhiriev/go-site-keeper/internal/policy"
	"github.com/MKhiriev/go-site-keeper/internal/settings"
	"github.com/MKhiriev/go-site-keeper/internal/store"
	"github.com/MKhiriev/go-site-keeper/internal/validators"
)

// Error kinds returned by every service. The HTTP layer maps each of them to
// a status code; lower-level causes stay wrapped behind them.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrUnauthenticated   = policy.ErrUnauthenticated
	ErrForbidden         = policy.ErrForbidden
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrDependencyFailure = errors.New("dependency failure")
)

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrFriendApplyDisabled   = errors.New("friend applications are closed")
	ErrFriendAlreadyApplied  = errors.New("user already has a friend application")
	ErrAcceptanceIsAdminOnly = errors.New("only an admin may change acceptance or sort order")

	ErrEmptyFile            = errors.New("file is empty")
	ErrFileTooLarge         = errors.New("file is too large")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

// classify wraps err with the service error kind matching its cause. Errors
// already carrying a kind are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	for _, kind := range []error{
		ErrInvalidArgument, ErrUnauthenticated, ErrForbidden,
		ErrNotFound, ErrConflict, ErrDependencyFailure,
	} {
		if errors.Is(err, kind) {
			return err
		}
	}

	switch {
	case errors.Is(err, store.ErrFriendNotFound),
		errors.Is(err, store.ErrObjectNotFound),
		errors.Is(err, store.ErrNoUserWasFound),
		errors.Is(err, adapter.ErrObjectNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)

	case errors.Is(err, store.ErrObjectAlreadyExists):
		return fmt.Errorf("%w: %w", ErrConflict, err)

	case errors.Is(err, validators.ErrInvalidNamespace),
		errors.Is(err, validators.ErrTooManyKeys),
		errors.Is(err, validators.ErrInvalidKey),
		errors.Is(err, validators.ErrInvalidValue),
		errors.Is(err, validators.ErrInvalidRequest),
		errors.Is(err, settings.ErrInvalidValue),
		errors.Is(err, adapter.ErrUnsupportedProvider),
		errors.Is(err, adapter.ErrMissingAPIKey),
		errors.Is(err, adapter.ErrMissingAPIURL),
		errors.Is(err, adapter.ErrResponseTooLarge):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return fmt.Errorf("%w: %w", ErrDependencyFailure, err)
}
