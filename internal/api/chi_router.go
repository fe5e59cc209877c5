// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adidarmawan/resepku/internal/auth"
	"github.com/adidarmawan/resepku/internal/middleware"
)

// Router wires handlers and middleware into the Chi route tree.
type Router struct {
	handler       *Handler
	sessions      *auth.SessionMiddleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router.
func NewRouter(handler *Handler, sessions *auth.SessionMiddleware, cm *ChiMiddleware) *Router {
	if cm == nil {
		cm = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		sessions:      sessions,
		chiMiddleware: cm,
	}
}

// SetupChi configures all HTTP routes using the Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)         // X-Request-ID header and logging context
	r.Use(chimiddleware.RealIP)         // Real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)      // Recover from panics
	r.Use(router.chiMiddleware.CORS())  // Global so OPTIONS preflight works
	r.Use(middleware.PrometheusMetrics) // Request counters and latency
	r.Use(router.sessions.Authenticate) // Attach session to context when present

	// Public pages
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())

		r.Get("/", router.handler.Index)
		r.Post("/rekomendasi", router.handler.Rekomendasi)
		r.Post("/chat", router.handler.Chat)
	})

	// Authentication: strict limits against credential stuffing.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitAuth())

		r.Get("/login", router.handler.LoginPage)
		r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", router.handler.Login)
		r.Get("/register", router.handler.RegisterPage)
		r.Post("/register", router.handler.Register)
		r.Get("/logout", router.handler.Logout)
	})

	// Favorites require a session.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(router.sessions.RequireAuth)

		r.Post("/simpan", router.handler.Simpan)
		r.Get("/favorit", router.handler.Favorit)
		r.Post("/hapus", router.handler.Hapus)
	})

	// Admin dashboard. Non-admins are redirected home with a flash and
	// never see admin data.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(router.sessions.RequireAdmin)

		r.Get("/admin", router.handler.AdminPage)
		r.Post("/admin/user_action", router.handler.AdminUserAction)
	})

	// Static assets
	fs := http.FileServer(http.Dir("./web/static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fs))

	// Observability
	r.Get("/healthz", router.handler.HealthLive)
	r.Get("/health", router.handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
