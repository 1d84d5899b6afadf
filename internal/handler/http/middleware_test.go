package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/internal/service"
	"github.com/MKhiriev/go-site-keeper/internal/utils"
	"github.com/MKhiriev/go-site-keeper/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// identify / requireAuth
// ─────────────────────────────────────────────

func TestIdentify(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		identifyFn func(ctx context.Context, token string) (*models.Identity, error)
		wantStatus int
		wantID     *models.Identity
	}{
		{
			name:       "no header is anonymous",
			wantStatus: http.StatusOK,
		},
		{
			name:       "malformed header is anonymous",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusOK,
		},
		{
			name:   "rejected token is anonymous",
			header: "Bearer expired",
			identifyFn: func(context.Context, string) (*models.Identity, error) {
				return nil, service.ErrUnauthenticated
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "lookup failure ends the request",
			header: "Bearer token",
			identifyFn: func(context.Context, string) (*models.Identity, error) {
				return nil, errors.Join(service.ErrDependencyFailure, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "valid token",
			header: "Bearer token",
			identifyFn: func(_ context.Context, token string) (*models.Identity, error) {
				assert.Equal(t, "token", token)
				return user2ID, nil
			},
			wantStatus: http.StatusOK,
			wantID:     user2ID,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &service.Services{AuthService: &fakeAuthService{identifyFn: tt.identifyFn}})

			var gotID *models.Identity
			reached := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				gotID = utils.GetIdentityFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.identify(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
			assert.Equal(t, tt.wantID, gotID)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	h := newTestHandler(t, &service.Services{})
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	h.requireAuth(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(utils.WithIdentity(req.Context(), user3ID))
	rec = httptest.NewRecorder()
	h.requireAuth(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

// ─────────────────────────────────────────────
// withTraceID / withLogging
// ─────────────────────────────────────────────

func TestWithTraceID(t *testing.T) {
	h := newTestHandler(t, &service.Services{})

	t.Run("caller id is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/version", nil)
		req.Header.Set(traceIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		h.Init().ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(traceIDHeader))
	})

	t.Run("invalid id is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/version", nil)
		req.Header.Set(traceIDHeader, "bad id\nwith newline")
		rec := httptest.NewRecorder()
		h.Init().ServeHTTP(rec, req)

		got := rec.Header().Get(traceIDHeader)
		assert.NotEqual(t, "bad id\nwith newline", got)
		assert.Len(t, got, 36)
	})
}

func TestValidTraceID(t *testing.T) {
	assert.True(t, validTraceID("a.b_c-D9"))
	assert.False(t, validTraceID(""))
	assert.False(t, validTraceID(strings.Repeat("a", maxTraceIDLength+1)))
	assert.False(t, validTraceID("has space"))
}

func TestWithLogging_WritesAccessEntry(t *testing.T) {
	var buf bytes.Buffer
	l := &logger.Logger{Logger: zerolog.New(&buf)}
	h := NewHandler(&service.Services{AuthService: tokenAuth(), AppInfoService: &fakeAppInfoService{version: "v"}}, testConfig, l)

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	req.Header.Set("Authorization", "Bearer u2")
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	out := buf.String()
	assert.Contains(t, out, `"uri":"/version"`)
	assert.Contains(t, out, `"status":200`)
	assert.Contains(t, out, `"trace_id"`)
	assert.Contains(t, out, `"user_id":2`)
}

// ─────────────────────────────────────────────
// withGZip
// ─────────────────────────────────────────────

func TestWithGZip(t *testing.T) {
	payload := strings.Repeat("site keeper ", 100)
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if len(body) > 0 {
			w.Write(body)
			return
		}
		w.Write([]byte(payload))
	}))

	t.Run("response is compressed when accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
		zr, err := gzip.NewReader(rec.Body)
		require.NoError(t, err)
		got, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, payload, string(got))
	})

	t.Run("plain when not accepted", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Empty(t, rec.Header().Get("Content-Encoding"))
		assert.Equal(t, payload, rec.Body.String())
	})

	t.Run("compressed request body is inflated", func(t *testing.T) {
		var compressed bytes.Buffer
		zw := gzip.NewWriter(&compressed)
		zw.Write([]byte("hello"))
		zw.Close()

		req := httptest.NewRequest(http.MethodPost, "/", &compressed)
		req.Header.Set("Content-Encoding", "gzip")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "hello", rec.Body.String())
	})

	t.Run("broken gzip body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip"))
		req.Header.Set("Content-Encoding", "gzip")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no body statuses are not encoded", func(t *testing.T) {
		noContent := withGZip(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()
		noContent.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Header().Get("Content-Encoding"))
		assert.Zero(t, rec.Body.Len())
	})
}
