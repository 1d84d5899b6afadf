package validators

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"slices"

	"github.com/MKhiriev/go-site-keeper/models"
	"github.com/go-playground/validator/v10"
)

const (
	FieldNamespace = "namespace"
	FieldEntries   = "entries"

	// MaxConfigKeys bounds the number of entries of one update.
	MaxConfigKeys = 100
	// MaxConfigKeyLength bounds the length of a single key.
	MaxConfigKeyLength = 128
)

var configKeyPattern = regexp.MustCompile(`^[a-z0-9_]+(\.[a-z0-9_]+)*$`)

type valueKind int

const (
	kindString valueKind = iota
	kindBool
	kindURL
	kindPositiveInt
	kindEnum
)

type keySchema struct {
	kind   valueKind
	values []string
}

// wellKnownKeys lists the keys whose values are type-checked. Every other
// key passes through as an opaque JSON value.
var wellKnownKeys = map[models.Namespace]map[string]keySchema{
	models.NamespaceServer: {
		"ai_summary.enabled":  {kind: kindBool},
		"ai_summary.provider": {kind: kindEnum, values: []string{"openai", "deepseek", "openrouter", "custom"}},
		"ai_summary.model":    {kind: kindString},
		"ai_summary.api_key":  {kind: kindString},
		"ai_summary.api_url":  {kind: kindURL},
		"ai_summary.prompt":   {kind: kindString},
		"webhook.url":         {kind: kindURL},
		"webhook.secret":      {kind: kindString},
	},
	models.NamespaceClient: {
		"site.name":           {kind: kindString},
		"site.description":    {kind: kindString},
		"site.avatar":         {kind: kindString},
		"site.page_size":      {kind: kindPositiveInt},
		"friend_apply_enable": {kind: kindBool},
		"favicon.url":         {kind: kindURL},
	},
}

// ConfigValidator validates models.ConfigUpdate values.
type ConfigValidator struct {
	validate *validator.Validate
}

// NewConfigValidator constructs a ConfigValidator.
func NewConfigValidator() Validator {
	return &ConfigValidator{validate: validator.New()}
}

func (v *ConfigValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ConfigUpdate:
		return v.validateUpdate(ctx, value, fields...)
	case *models.ConfigUpdate:
		return v.validateUpdate(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *ConfigValidator) validateUpdate(_ context.Context, update models.ConfigUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldNamespace, FieldEntries}
	}

	for _, f := range fields {
		switch f {
		case FieldNamespace:
			if !update.Namespace.Valid() {
				return ErrInvalidNamespace
			}
		case FieldEntries:
			if len(update.Entries) > MaxConfigKeys {
				return fmt.Errorf("%w: %d > %d", ErrTooManyKeys, len(update.Entries), MaxConfigKeys)
			}
			for key, value := range update.Entries {
				if err := v.validateEntry(update.Namespace, key, value); err != nil {
					return err
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ConfigValidator) validateEntry(ns models.Namespace, key string, value any) error {
	if len(key) > MaxConfigKeyLength || !configKeyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	schema, ok := wellKnownKeys[ns][key]
	if !ok || value == nil {
		return nil
	}

	if !schema.accepts(v.validate, value) {
		return fmt.Errorf("%w: %q has the wrong type", ErrInvalidValue, key)
	}
	return nil
}

func (s keySchema) accepts(validate *validator.Validate, value any) bool {
	switch s.kind {
	case kindString:
		_, ok := value.(string)
		return ok
	case kindBool:
		_, ok := value.(bool)
		return ok
	case kindURL:
		str, ok := value.(string)
		return ok && validate.Var(str, "omitempty,http_url") == nil
	case kindPositiveInt:
		n, ok := value.(float64)
		return ok && n > 0 && n == math.Trunc(n)
	case kindEnum:
		str, ok := value.(string)
		return ok && slices.Contains(s.values, str)
	}
	return false
}
