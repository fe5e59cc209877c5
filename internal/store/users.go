// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package store

import (
	"fmt"
	"sync"

	"github.com/adidarmawan/resepku/internal/metrics"
	"github.com/adidarmawan/resepku/internal/models"
)

// UserStore is the persistence interface for user accounts.
type UserStore interface {
	// Get returns the user with the given username, or ErrUserNotFound.
	Get(username string) (models.User, error)

	// Create appends a new user. ErrUserExists if the username is taken.
	Create(user models.User) error

	// SetRole changes a user's role. ErrUserNotFound if absent.
	SetRole(username, role string) error

	// Delete removes a user. ErrUserNotFound if absent.
	Delete(username string) error

	// List returns all users in stored order.
	List() ([]models.User, error)
}

// FileUserStore persists users to a single JSON file.
type FileUserStore struct {
	path string

	mu    sync.RWMutex
	users []models.User
}

// NewFileUserStore loads (or initializes) the user collection at path.
func NewFileUserStore(path string) (*FileUserStore, error) {
	s := &FileUserStore{path: path}
	if err := loadCollection(path, &s.users); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileUserStore) Get(username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, username)
}

func (s *FileUserStore) Create(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			err := fmt.Errorf("%w: %s", ErrUserExists, user.Username)
			metrics.RecordStoreOperation("users", "create", err)
			return err
		}
	}

	s.users = append(s.users, user)
	err := writeCollection("users", s.path, s.users)
	if err != nil {
		// Roll back the in-memory append so memory matches disk.
		s.users = s.users[:len(s.users)-1]
	}
	metrics.RecordStoreOperation("users", "create", err)
	return err
}

func (s *FileUserStore) SetRole(username, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.Username == username {
			prev := s.users[i].Role
			s.users[i].Role = role
			err := writeCollection("users", s.path, s.users)
			if err != nil {
				s.users[i].Role = prev
			}
			metrics.RecordStoreOperation("users", "set_role", err)
			return err
		}
	}

	err := fmt.Errorf("%w: %s", ErrUserNotFound, username)
	metrics.RecordStoreOperation("users", "set_role", err)
	return err
}

func (s *FileUserStore) Delete(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.Username == username {
			prev := s.users
			s.users = append(append([]models.User{}, s.users[:i]...), s.users[i+1:]...)
			err := writeCollection("users", s.path, s.users)
			if err != nil {
				s.users = prev
			}
			metrics.RecordStoreOperation("users", "delete", err)
			return err
		}
	}

	err := fmt.Errorf("%w: %s", ErrUserNotFound, username)
	metrics.RecordStoreOperation("users", "delete", err)
	return err
}

func (s *FileUserStore) List() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}
