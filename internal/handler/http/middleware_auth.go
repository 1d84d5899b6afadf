package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/internal/service"
	"github.com/MKhiriev/go-site-keeper/internal/utils"
	"github.com/rs/zerolog"
)

// identify resolves the caller of every request.
//
// A request without an "Authorization" header continues anonymously. A
// bearer token is passed to [service.AuthService.Identify]; on success the
// identity is stored in the request context (see [utils.WithIdentity]).
// A malformed, expired or otherwise rejected token also continues
// anonymously, so public routes keep working; protected routes then fail
// in [Handler.requireAuth] or in the service with 401.
//
// Only a failure to check the token at all (e.g. the user table is
// unreachable) ends the request, with 500.
func (h *Handler) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Str("func", "*Handler.identify").Msg("ignoring malformed Authorization header")
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		id, err := h.services.AuthService.Identify(ctx, tokenString)
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			log.Debug().Err(err).Str("func", "*Handler.identify").Msg("token rejected, continuing anonymously")
			next.ServeHTTP(w, r)
			return
		case err != nil:
			h.writeError(w, r, "*Handler.identify", err)
			return
		}

		zerolog.Ctx(ctx).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Int64("user_id", id.UserID)
		})

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(ctx, id)))
	})
}

// requireAuth rejects anonymous requests with 401. It must run after
// [Handler.identify].
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if utils.GetIdentityFromContext(r.Context()) == nil {
			h.writeError(w, r, "*Handler.requireAuth", service.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}
