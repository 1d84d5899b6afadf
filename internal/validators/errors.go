package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidNamespace = errors.New("invalid config type")
	ErrTooManyKeys      = errors.New("too many config keys in one update")
	ErrInvalidKey       = errors.New("invalid config key")
	ErrInvalidValue     = errors.New("invalid config value")
	ErrInvalidRequest   = errors.New("invalid request")
)
