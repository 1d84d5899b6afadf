package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-site-keeper/internal/service"
	"github.com/MKhiriev/go-site-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// /version
// ─────────────────────────────────────────────

func TestGetServerVersion(t *testing.T) {
	h := newTestHandler(t, &service.Services{AppInfoService: &fakeAppInfoService{version: "v1.4.0"}})

	rec := serve(h, http.MethodGet, "/version", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "v1.4.0", rec.Body.String())
}

func TestGetBuildInfo(t *testing.T) {
	h := newTestHandler(t, &service.Services{AppInfoService: &fakeAppInfoService{version: "v1.4.0"}})

	rec := serve(h, http.MethodGet, "/version/build", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.AppBuildInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.AppBuildInfo{Version: "v1.4.0", Date: "N/A", Commit: "N/A"}, got)
}

// ─────────────────────────────────────────────
// /user/profile
// ─────────────────────────────────────────────

func TestGetProfile(t *testing.T) {
	auth := tokenAuth()
	auth.profileFn = func(_ context.Context, id *models.Identity) (models.User, error) {
		return models.User{UserID: id.UserID, Username: "alice", Permission: id.IsAdmin}, nil
	}
	h := newTestHandler(t, &service.Services{AuthService: auth})

	rec := serve(h, http.MethodGet, "/user/profile", "admin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
	assert.Contains(t, rec.Body.String(), `"permission":true`)

	rec = serve(h, http.MethodGet, "/user/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// Routing
// ─────────────────────────────────────────────

func TestMetricsEndpoint(t *testing.T) {
	h := newTestHandler(t, &service.Services{})

	// one request so the route counters have a sample
	serve(h, http.MethodGet, "/version", "", "")
	rec := serve(h, http.MethodGet, "/metrics", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "site_keeper_http_requests_total")
	assert.Contains(t, rec.Body.String(), `route="/version"`)
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, &service.Services{})

	rec := serve(h, http.MethodPatch, "/friend/5", "", "")

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "PUT, DELETE", rec.Header().Get("Allow"))

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusMethodNotAllowed, body.Status)
}

func TestUnknownRoute(t *testing.T) {
	h := newTestHandler(t, &service.Services{})

	rec := serve(h, http.MethodGet, "/nope", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// Error mapping
// ─────────────────────────────────────────────

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: service.ErrInvalidArgument, want: http.StatusBadRequest},
		{err: service.ErrUnauthenticated, want: http.StatusUnauthorized},
		{err: service.ErrForbidden, want: http.StatusForbidden},
		{err: service.ErrNotFound, want: http.StatusNotFound},
		{err: service.ErrConflict, want: http.StatusConflict},
		{err: service.ErrDependencyFailure, want: http.StatusInternalServerError},
		{err: ErrInvalidJSON, want: http.StatusBadRequest},
		{err: ErrInvalidFriendID, want: http.StatusBadRequest},
		{err: ErrMissingFile, want: http.StatusBadRequest},
		{err: ErrBodyTooLarge, want: http.StatusBadRequest},
		{err: errors.New("something else"), want: http.StatusInternalServerError},
		{err: errors.Join(service.ErrForbidden, service.ErrAcceptanceIsAdminOnly), want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	h := newTestHandler(t, &service.Services{FriendService: &fakeFriendService{
		listFn: func(context.Context, *models.Identity) ([]models.Friend, error) {
			return nil, errors.Join(service.ErrDependencyFailure, errors.New("dial tcp 10.0.0.5:5432: refused"))
		},
	}})

	rec := serve(h, http.MethodGet, "/friend/", "", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}
