package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-site-keeper/internal/service"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidArgument:   http.StatusBadRequest,
	service.ErrUnauthenticated:   http.StatusUnauthorized,
	service.ErrForbidden:         http.StatusForbidden,
	service.ErrNotFound:          http.StatusNotFound,
	service.ErrConflict:          http.StatusConflict,
	service.ErrDependencyFailure: http.StatusInternalServerError,

	ErrInvalidJSON:     http.StatusBadRequest,
	ErrInvalidFriendID: http.StatusBadRequest,
	ErrMissingFile:     http.StatusBadRequest,
	ErrBodyTooLarge:    http.StatusBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
