package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withMetrics)

	// promhttp negotiates its own compression
	router.Handle("/metrics", promhttp.Handler())

	router.Group(func(r chi.Router) {
		r.Use(withGZip)
		if h.requestTimeout > 0 {
			r.Use(middleware.Timeout(h.requestTimeout))
		}
		r.Use(h.identify)

		r.Get("/version", h.getServerVersion)
		r.Get("/version/build", h.getBuildInfo)

		r.Route("/config", func(r chi.Router) {
			r.Delete("/cache", h.clearCache)
			r.Post("/test-ai", h.testAI)
			r.Get("/{type}", h.getConfig)
			r.Post("/{type}", h.updateConfig)
		})

		r.Route("/friend", func(r chi.Router) {
			r.Get("/", h.listFriends)
			r.With(h.requireAuth).Post("/", h.createFriend)
			r.With(h.requireAuth).Put("/{id}", h.updateFriend)
			r.With(h.requireAuth).Delete("/{id}", h.deleteFriend)
		})

		r.Get("/favicon", h.getFavicon)
		r.With(h.requireAuth).Post("/favicon", h.uploadFavicon)
		r.With(h.requireAuth).Post("/favicon/fetch", h.fetchFavicon)

		r.Route("/storage", func(r chi.Router) {
			r.With(h.requireAuth).Get("/", h.listObjects)
			r.With(h.requireAuth).Post("/", h.uploadObject)
			r.Get("/*", h.getObject)
			r.With(h.requireAuth).Delete("/*", h.deleteObject)
		})

		r.With(h.requireAuth).Get("/user/profile", h.getProfile)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
