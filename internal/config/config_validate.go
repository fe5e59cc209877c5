// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.validateEmbedding(); err != nil {
		return err
	}

	if err := c.validateSessions(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be 'development' or 'production', got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateData() error {
	if c.Data.RecipesPath == "" {
		return fmt.Errorf("RECIPES_PATH must not be empty")
	}
	if c.Data.UsersPath == "" {
		return fmt.Errorf("USERS_PATH must not be empty")
	}
	if c.Data.FavoritesPath == "" {
		return fmt.Errorf("FAVORITES_PATH must not be empty")
	}
	return nil
}

func (c *Config) validateEmbedding() error {
	switch c.Embedding.Provider {
	case "local", "ollama", "openai", "":
	default:
		return fmt.Errorf("EMBEDDING_PROVIDER must be 'local', 'ollama', or 'openai', got %q", c.Embedding.Provider)
	}

	if c.Embedding.Provider == "openai" && c.Embedding.APIKey == "" {
		return fmt.Errorf("EMBEDDING_API_KEY is required when EMBEDDING_PROVIDER=openai")
	}

	if c.Embedding.BaseURL != "" {
		if err := validateHTTPURL(c.Embedding.BaseURL, "EMBEDDING_BASE_URL"); err != nil {
			return err
		}
	}

	if c.Embedding.Threshold < 0 || c.Embedding.Threshold > 1 {
		return fmt.Errorf("EMBEDDING_THRESHOLD must be between 0 and 1, got %.2f", c.Embedding.Threshold)
	}

	if c.Embedding.Timeout <= 0 {
		return fmt.Errorf("EMBEDDING_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSessions() error {
	switch c.Sessions.Backend {
	case "memory", "badger":
	default:
		return fmt.Errorf("SESSION_BACKEND must be 'memory' or 'badger', got %q", c.Sessions.Backend)
	}

	if c.Sessions.Backend == "badger" && c.Sessions.BadgerPath == "" {
		return fmt.Errorf("SESSION_BADGER_PATH is required when SESSION_BACKEND=badger")
	}

	if c.Sessions.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	if c.Sessions.CleanupInterval <= 0 {
		return fmt.Errorf("SESSION_CLEANUP_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	// In production an admin password must be set explicitly so the seed
	// account is never left with a guessable default.
	if c.Server.Environment == "production" && c.Security.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required when ENVIRONMENT=production")
	}

	if c.Security.AdminPassword != "" && len(c.Security.AdminPassword) < 8 {
		return fmt.Errorf("ADMIN_PASSWORD must be at least 8 characters")
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic; got %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be 'json' or 'console', got %q", c.Logging.Format)
	}
	return nil
}

// validateHTTPURL checks that a URL is well-formed with an http or https scheme.
func validateHTTPURL(raw, name string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is invalid: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https scheme, got %q", name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host", name)
	}
	return nil
}
