// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

// Package api provides the HTTP surface: server-rendered pages, the JSON
// chat endpoint, and session-guarded favorite and admin routes.
package api

import (
	"html/template"
	"time"

	"github.com/adidarmawan/resepku/internal/auth"
	"github.com/adidarmawan/resepku/internal/config"
	"github.com/adidarmawan/resepku/internal/corpus"
	"github.com/adidarmawan/resepku/internal/matcher"
	"github.com/adidarmawan/resepku/internal/store"
)

// Handler contains dependencies for HTTP handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: shared JSON/template response helpers
//   - handlers_pages.go: landing page
//   - handlers_auth.go: login, register, logout
//   - handlers_recommend.go: recommendation form and chat JSON endpoint
//   - handlers_favorites.go: save, list, delete favorites
//   - handlers_admin.go: admin dashboard and user management
//   - handlers_health.go: liveness/readiness endpoints
type Handler struct {
	matcher   *matcher.Matcher
	index     *corpus.Index
	users     store.UserStore
	favorites store.FavoriteStore
	sessions  *auth.SessionMiddleware
	templates *template.Template
	config    *config.Config
	startTime time.Time
}

// NewHandler creates an HTTP handler with all required dependencies.
// templates must contain the page templates (index, login, register,
// hasil, favorit, admin).
func NewHandler(m *matcher.Matcher, idx *corpus.Index, users store.UserStore, favorites store.FavoriteStore, sessions *auth.SessionMiddleware, templates *template.Template, cfg *config.Config) *Handler {
	return &Handler{
		matcher:   m,
		index:     idx,
		users:     users,
		favorites: favorites,
		sessions:  sessions,
		templates: templates,
		config:    cfg,
		startTime: time.Now(),
	}
}
