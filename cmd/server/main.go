// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

// Package main is the entry point for the Resepku server.
//
// Resepku is a self-hosted web application that recommends Indonesian
// recipes from the ingredients a user has on hand. Matching is exact
// token overlap first, with a semantic fallback through a configurable
// sentence-embedding provider.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Koanf v2 layered load (defaults, YAML file, env vars)
//  2. Logging: zerolog, JSON or console format
//  3. Embedder: local trigram hashing, Ollama, or OpenAI (HTTP providers
//     behind a circuit breaker)
//  4. Corpus: recipe JSON loaded and embedded once at startup
//  5. Stores: JSON flat-file user and favorite stores
//  6. Sessions: in-memory or BadgerDB-backed session store
//  7. HTTP server: Chi router with graceful shutdown
//
// # Configuration
//
// Key environment variables (see internal/config for the full set):
//
//	HTTP_PORT           listen port (default 8080)
//	RECIPES_PATH        recipe corpus JSON (default data/resep.json)
//	EMBEDDING_PROVIDER  local | ollama | openai (default local)
//	EMBEDDING_THRESHOLD semantic confidence gate (default 0.30)
//	SESSION_BACKEND     memory | badger (default memory)
//	ADMIN_USERNAME      seed admin account name (default admin)
//	ADMIN_PASSWORD      seed admin password; account created on first run
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections and waits up to 10 seconds for in-flight
// requests before exiting.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/adidarmawan/resepku/internal/api"
	"github.com/adidarmawan/resepku/internal/auth"
	"github.com/adidarmawan/resepku/internal/config"
	"github.com/adidarmawan/resepku/internal/corpus"
	"github.com/adidarmawan/resepku/internal/embedding"
	"github.com/adidarmawan/resepku/internal/logging"
	"github.com/adidarmawan/resepku/internal/matcher"
	"github.com/adidarmawan/resepku/internal/metrics"
	"github.com/adidarmawan/resepku/internal/models"
	"github.com/adidarmawan/resepku/internal/store"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Str("embedding_provider", cfg.Embedding.Provider).
		Str("session_backend", cfg.Sessions.Backend).
		Msg("Starting Resepku")

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Embedding provider. HTTP providers go behind a circuit breaker so a
	// dead embedding service fails fast instead of stalling requests.
	embedder, err := embedding.NewEmbedder(cfg.Embedding.Provider, cfg.Embedding.BaseURL, cfg.Embedding.Model, cfg.Embedding.APIKey)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create embedder")
	}
	if cfg.Embedding.Provider == "ollama" || cfg.Embedding.Provider == "openai" {
		embedder = embedding.NewCachedEmbedder(embedding.NewBreakerEmbedder(embedder), 5*time.Minute)
	}

	// Recipe corpus: loaded and embedded once, immutable afterwards.
	recipes, err := corpus.Load(cfg.Data.RecipesPath)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Data.RecipesPath).Msg("Failed to load recipe corpus")
	}
	index, err := corpus.NewIndex(ctx, recipes, embedder)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build corpus index")
	}

	recommender := matcher.New(index, embedder, cfg.Embedding.Threshold)

	// Flat-file stores
	users, err := store.NewFileUserStore(cfg.Data.UsersPath)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Data.UsersPath).Msg("Failed to open user store")
	}
	favorites, err := store.NewFileFavoriteStore(cfg.Data.FavoritesPath)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Data.FavoritesPath).Msg("Failed to open favorite store")
	}

	seedAdminUser(users, cfg)

	// Session store: memory by default, BadgerDB when sessions must
	// survive restarts.
	sessionStore, cleanup, err := newSessionStore(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize session store")
	}
	defer cleanup()

	sessions := auth.NewSessionMiddleware(sessionStore, &auth.SessionMiddlewareConfig{
		CookieName:     "session",
		SessionTTL:     cfg.Sessions.TTL,
		SlidingSession: cfg.Sessions.Sliding,
		CookiePath:     "/",
		CookieSecure:   cfg.Sessions.CookieSecure,
		CookieSameSite: http.SameSiteLaxMode,
	})

	templates, err := api.LoadTemplates("web/templates")
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load page templates")
	}

	handler := api.NewHandler(recommender, index, users, favorites, sessions, templates, cfg)
	router := api.NewRouter(handler, sessions, api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins:   cfg.Security.CORSOrigins,
		CORSAllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders:   []string{"Content-Type"},
		CORSAllowCredentials: false,
		CORSMaxAge:           86400,
		RateLimitRequests:    cfg.Security.RateLimitReqs,
		RateLimitWindow:      cfg.Security.RateLimitWindow,
		RateLimitDisabled:    cfg.Security.RateLimitDisabled,
	}))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	// Track uptime for the /metrics endpoint
	go trackUptime(ctx)

	// Serve until a shutdown signal arrives
	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// seedAdminUser creates the configured admin account on first run.
// An existing account with the same username is left untouched.
func seedAdminUser(users store.UserStore, cfg *config.Config) {
	if cfg.Security.AdminPassword == "" {
		return
	}

	if _, err := users.Get(cfg.Security.AdminUsername); err == nil {
		return
	} else if !errors.Is(err, store.ErrUserNotFound) {
		logging.Fatal().Err(err).Msg("Failed to check for admin user")
	}

	hash, err := auth.HashPassword(cfg.Security.AdminPassword)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to hash admin password")
	}
	err = users.Create(models.User{
		Username:     cfg.Security.AdminUsername,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to seed admin user")
	}
	logging.Info().Str("username", cfg.Security.AdminUsername).Msg("Seeded admin user")
}

// newSessionStore builds the configured session store and starts its
// expired-session cleanup routine. The returned cleanup function stops
// the routine and closes the backing database.
func newSessionStore(ctx context.Context, cfg *config.Config) (auth.SessionStore, func(), error) {
	switch cfg.Sessions.Backend {
	case "badger":
		opts := badger.DefaultOptions(cfg.Sessions.BadgerPath).WithLogger(nil)
		db, err := badger.Open(opts)
		if err != nil {
			return nil, nil, err
		}
		s := auth.NewBadgerSessionStore(db)
		s.StartCleanupRoutine(ctx, cfg.Sessions.CleanupInterval)
		cleanup := func() {
			if err := db.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing session database")
			}
		}
		logging.Info().Str("path", cfg.Sessions.BadgerPath).Msg("BadgerDB session store initialized")
		return s, cleanup, nil

	default:
		s := auth.NewMemorySessionStore()
		stop := s.StartCleanupRoutine(cfg.Sessions.CleanupInterval)
		return s, func() { close(stop) }, nil
	}
}

// trackUptime updates the uptime gauge every 15 seconds.
func trackUptime(ctx context.Context) {
	start := time.Now()
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.AppUptime.Set(time.Since(start).Seconds())
		}
	}
}
