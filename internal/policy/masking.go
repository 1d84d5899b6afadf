// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package policy

import (
	"strings"

	"github.com/MKhiriev/go-site-keeper/models"
)

// MaskToken replaces secret values in read responses.
const MaskToken = "••••••••"

// sensitiveSuffixes are matched against the last dot-separated segment of a
// key.
var sensitiveSuffixes = []string{
	"api_key",
	"secret",
	"secret_key",
	"access_key",
	"password",
	"token",
}

// IsSensitiveKey reports whether key names a secret-bearing setting.
func IsSensitiveKey(key string) bool {
	last := key
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		last = key[i+1:]
	}

	for _, suffix := range sensitiveSuffixes {
		if last == suffix {
			return true
		}
	}
	return false
}

// ShouldMask reports whether the value of key must be redacted when the
// namespace is read. Only the server namespace holds secrets.
func ShouldMask(ns models.Namespace, key string) bool {
	return ns == models.NamespaceServer && IsSensitiveKey(key)
}

// MaskConfig returns a copy of entries with every non-empty sensitive value
// replaced by [MaskToken]. Empty strings and nulls are kept so callers can
// tell an unset secret from a configured one.
func MaskConfig(ns models.Namespace, entries models.ConfigMap) models.ConfigMap {
	out := entries.Clone()
	for key, value := range out {
		if ShouldMask(ns, key) && !isEmptyValue(value) {
			out[key] = MaskToken
		}
	}
	return out
}

// IsMasked reports whether value is the mask token, i.e. a client echoed a
// redacted value back.
func IsMasked(value any) bool {
	s, ok := value.(string)
	return ok && s == MaskToken
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	}
	return false
}
