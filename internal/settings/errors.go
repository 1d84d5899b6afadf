package settings

import "errors"

var (
	// ErrStorage wraps every failure of the backing repository.
	ErrStorage = errors.New("config storage failure")

	// ErrInvalidValue is returned when a value cannot be encoded as JSON.
	ErrInvalidValue = errors.New("config value is not JSON-encodable")
)
