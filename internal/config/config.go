// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from environment variables
// and an optional YAML config file.
//
// Loading order (Koanf v2):
//  1. Defaults: built-in sensible defaults for all settings
//  2. Config file: optional YAML file (config.yaml) for persistent settings
//  3. Environment variables: override any setting
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	Embedding EmbeddingConfig `koanf:"embedding"`
	Sessions  SessionsConfig  `koanf:"sessions"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development" or "production"
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DataConfig holds paths to the JSON data files.
type DataConfig struct {
	RecipesPath   string `koanf:"recipes_path"`
	UsersPath     string `koanf:"users_path"`
	FavoritesPath string `koanf:"favorites_path"`
}

// EmbeddingConfig configures the embedding provider used for semantic
// recipe matching.
type EmbeddingConfig struct {
	Provider  string        `koanf:"provider"` // "local", "ollama", or "openai"
	BaseURL   string        `koanf:"base_url"`
	Model     string        `koanf:"model"`
	APIKey    string        `koanf:"api_key"`
	Threshold float64       `koanf:"threshold"` // minimum cosine similarity for a confident match
	Timeout   time.Duration `koanf:"timeout"`
}

// SessionsConfig configures session storage and cookie behavior.
type SessionsConfig struct {
	Backend         string        `koanf:"backend"` // "memory" or "badger"
	BadgerPath      string        `koanf:"badger_path"`
	TTL             time.Duration `koanf:"ttl"`
	Sliding         bool          `koanf:"sliding"`
	CookieSecure    bool          `koanf:"cookie_secure"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// SecurityConfig holds the admin seed account and rate limiting settings.
type SecurityConfig struct {
	AdminUsername     string        `koanf:"admin_username"`
	AdminPassword     string        `koanf:"admin_password"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // "json" or "console"
	Caller bool   `koanf:"caller"`
}
