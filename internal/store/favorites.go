// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package store

import (
	"fmt"
	"strings"
	"sync"

	"github.com/adidarmawan/resepku/internal/metrics"
	"github.com/adidarmawan/resepku/internal/models"
)

// FavoriteStore is the persistence interface for saved recipes.
type FavoriteStore interface {
	// Add appends a favorite. ErrFavoriteExists if the same user already
	// saved the same recipe (name compared case-insensitively); the store
	// is never mutated in that case.
	Add(fav models.Favorite) error

	// ListByUser returns the favorites of one user in stored order.
	ListByUser(username string) ([]models.Favorite, error)

	// ListAll returns every favorite in stored order.
	ListAll() ([]models.Favorite, error)

	// Remove deletes one favorite by (username, recipe name).
	// ErrFavoriteNotFound if absent.
	Remove(username, recipeName string) error

	// RemoveByRecipe deletes every favorite of a recipe regardless of
	// owner. Used by admins. Returns the number removed.
	RemoveByRecipe(recipeName string) (int, error)

	// RemoveAllForUser deletes every favorite belonging to username.
	// Used when a user account is deleted. Returns the number removed.
	RemoveAllForUser(username string) (int, error)
}

// FileFavoriteStore persists favorites to a single JSON file.
type FileFavoriteStore struct {
	path string

	mu        sync.RWMutex
	favorites []models.Favorite
}

// NewFileFavoriteStore loads (or initializes) the favorites collection at path.
func NewFileFavoriteStore(path string) (*FileFavoriteStore, error) {
	s := &FileFavoriteStore{path: path}
	if err := loadCollection(path, &s.favorites); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileFavoriteStore) Add(fav models.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.favorites {
		if f.Username == fav.Username && strings.EqualFold(f.RecipeName, fav.RecipeName) {
			err := fmt.Errorf("%w: %s", ErrFavoriteExists, fav.RecipeName)
			metrics.RecordStoreOperation("favorites", "add", err)
			return err
		}
	}

	s.favorites = append(s.favorites, fav)
	err := writeCollection("favorites", s.path, s.favorites)
	if err != nil {
		s.favorites = s.favorites[:len(s.favorites)-1]
	}
	metrics.RecordStoreOperation("favorites", "add", err)
	return err
}

func (s *FileFavoriteStore) ListByUser(username string) ([]models.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Favorite
	for _, f := range s.favorites {
		if f.Username == username {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *FileFavoriteStore) ListAll() ([]models.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Favorite, len(s.favorites))
	copy(out, s.favorites)
	return out, nil
}

func (s *FileFavoriteStore) Remove(username, recipeName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.favorites {
		if f.Username == username && strings.EqualFold(f.RecipeName, recipeName) {
			prev := s.favorites
			s.favorites = append(append([]models.Favorite{}, s.favorites[:i]...), s.favorites[i+1:]...)
			err := writeCollection("favorites", s.path, s.favorites)
			if err != nil {
				s.favorites = prev
			}
			metrics.RecordStoreOperation("favorites", "remove", err)
			return err
		}
	}

	err := fmt.Errorf("%w: %s/%s", ErrFavoriteNotFound, username, recipeName)
	metrics.RecordStoreOperation("favorites", "remove", err)
	return err
}

func (s *FileFavoriteStore) RemoveByRecipe(recipeName string) (int, error) {
	return s.removeWhere("remove_by_recipe", func(f models.Favorite) bool {
		return strings.EqualFold(f.RecipeName, recipeName)
	})
}

func (s *FileFavoriteStore) RemoveAllForUser(username string) (int, error) {
	return s.removeWhere("remove_all_for_user", func(f models.Favorite) bool {
		return f.Username == username
	})
}

// removeWhere deletes every favorite matching the predicate.
// Removing nothing is not an error; cascade deletes are best effort.
func (s *FileFavoriteStore) removeWhere(op string, match func(models.Favorite) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.favorites[:0:0]
	for _, f := range s.favorites {
		if !match(f) {
			kept = append(kept, f)
		}
	}
	removed := len(s.favorites) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	prev := s.favorites
	s.favorites = kept
	err := writeCollection("favorites", s.path, s.favorites)
	if err != nil {
		s.favorites = prev
	}
	metrics.RecordStoreOperation("favorites", op, err)
	return removed, err
}
