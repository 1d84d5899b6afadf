// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced while decoding requests. Callers can match
// against them with [errors.Is].
var (
	// ErrInvalidJSON is returned when a request body is not valid JSON for
	// the expected shape.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidFriendID is returned when the {id} path segment is not a
	// positive integer.
	ErrInvalidFriendID = errors.New("invalid friend id")

	// ErrMissingFile is returned when a multipart upload has no "file" part.
	ErrMissingFile = errors.New("multipart field `file` is required")

	// ErrBodyTooLarge is returned when a request body exceeds its limit.
	ErrBodyTooLarge = errors.New("request body is too large")
)
