// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

// Package store persists users and favorites as flat JSON documents.
//
// Every mutation is a whole-document read-modify-write: the collection lives
// in memory, mutations update it under a mutex and rewrite the entire file.
// A missing file on first run is treated as an empty collection and
// initialized on the first write.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"github.com/adidarmawan/resepku/internal/metrics"
)

// Typed store errors. Handlers map these to user-visible messages.
var (
	ErrUserExists       = errors.New("username already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrFavoriteExists   = errors.New("recipe already in favorites")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

// loadCollection reads a JSON array file into out.
// A missing file initializes an empty document on disk instead of failing.
func loadCollection(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return fmt.Errorf("create store directory: %w", mkErr)
		}
		if wrErr := os.WriteFile(path, []byte("[]"), 0o644); wrErr != nil {
			return fmt.Errorf("initialize store file: %w", wrErr)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read store file: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse store file %s: %w", path, err)
	}
	return nil
}

// writeCollection marshals v and atomically replaces the file at path.
// The temp-file rename keeps a crashed write from truncating the store.
func writeCollection(name, path string, v interface{}) error {
	start := time.Now()
	defer func() {
		metrics.StoreWriteDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s store: %w", name, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s store: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s store: %w", name, err)
	}
	return nil
}
