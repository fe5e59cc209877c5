// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/adidarmawan/resepku/internal/models"
)

func TestUserStoreFirstRunInitializes(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "users.json")
	s, err := NewFileUserStore(path)
	if err != nil {
		t.Fatalf("NewFileUserStore: %v", err)
	}

	users, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("fresh store should be empty, got %d users", len(users))
	}
}

func TestUserStoreCreateAndGet(t *testing.T) {
	t.Parallel()

	s, err := NewFileUserStore(filepath.Join(t.TempDir(), "users.json"))
	if err != nil {
		t.Fatalf("NewFileUserStore: %v", err)
	}

	u := models.User{Username: "budi", PasswordHash: "$2a$12$abc", Role: models.RoleUser}
	if err := s.Create(u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Get("budi")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != u {
		t.Errorf("Get = %+v, want %+v", got, u)
	}

	if _, err := s.Get("siti"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserStoreDuplicateRejected(t *testing.T) {
	t.Parallel()

	s, err := NewFileUserStore(filepath.Join(t.TempDir(), "users.json"))
	if err != nil {
		t.Fatalf("NewFileUserStore: %v", err)
	}

	u := models.User{Username: "budi", PasswordHash: "h", Role: models.RoleUser}
	if err := s.Create(u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Create(u); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	users, _ := s.List()
	if len(users) != 1 {
		t.Errorf("duplicate create must not mutate, got %d users", len(users))
	}
}

func TestUserStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "users.json")
	s, err := NewFileUserStore(path)
	if err != nil {
		t.Fatalf("NewFileUserStore: %v", err)
	}

	_ = s.Create(models.User{Username: "budi", PasswordHash: "h1", Role: models.RoleUser})
	_ = s.Create(models.User{Username: "siti", PasswordHash: "h2", Role: models.RoleAdmin})
	if err := s.SetRole("budi", models.RoleAdmin); err != nil {
		t.Fatalf("SetRole: %v", err)
	}

	// A fresh store over the same file must see every write.
	reloaded, err := NewFileUserStore(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, err := reloaded.Get("budi")
	if err != nil {
		t.Fatalf("Get after reload: %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Errorf("role after reload = %q, want admin", got.Role)
	}
	users, _ := reloaded.List()
	if len(users) != 2 {
		t.Errorf("expected 2 users after reload, got %d", len(users))
	}
}

func TestUserStoreDelete(t *testing.T) {
	t.Parallel()

	s, err := NewFileUserStore(filepath.Join(t.TempDir(), "users.json"))
	if err != nil {
		t.Fatalf("NewFileUserStore: %v", err)
	}

	_ = s.Create(models.User{Username: "budi", PasswordHash: "h", Role: models.RoleUser})
	if err := s.Delete("budi"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get("budi"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound after delete, got %v", err)
	}
	if err := s.Delete("budi"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("double delete should return ErrUserNotFound, got %v", err)
	}
}

func TestFavoriteStoreIdempotentAdd(t *testing.T) {
	t.Parallel()

	s, err := NewFileFavoriteStore(filepath.Join(t.TempDir(), "favorit.json"))
	if err != nil {
		t.Fatalf("NewFileFavoriteStore: %v", err)
	}

	fav := models.Favorite{Username: "budi", RecipeName: "Nasi Goreng", Ingredients: "nasi, telur"}
	if err := s.Add(fav); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(fav); !errors.Is(err, ErrFavoriteExists) {
		t.Fatalf("expected ErrFavoriteExists, got %v", err)
	}

	all, _ := s.ListAll()
	if len(all) != 1 {
		t.Errorf("duplicate add must not create an entry, got %d", len(all))
	}

	// Same recipe by another user is a distinct favorite.
	if err := s.Add(models.Favorite{Username: "siti", RecipeName: "Nasi Goreng"}); err != nil {
		t.Fatalf("Add for second user: %v", err)
	}
}

func TestFavoriteStoreListByUser(t *testing.T) {
	t.Parallel()

	s, err := NewFileFavoriteStore(filepath.Join(t.TempDir(), "favorit.json"))
	if err != nil {
		t.Fatalf("NewFileFavoriteStore: %v", err)
	}

	_ = s.Add(models.Favorite{Username: "budi", RecipeName: "Nasi Goreng"})
	_ = s.Add(models.Favorite{Username: "budi", RecipeName: "Tempe Orek"})
	_ = s.Add(models.Favorite{Username: "siti", RecipeName: "Ayam Goreng"})

	mine, err := s.ListByUser("budi")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 favorites for budi, got %d", len(mine))
	}

	all, _ := s.ListAll()
	if len(all) != 3 {
		t.Errorf("expected 3 favorites total, got %d", len(all))
	}
}

func TestFavoriteStoreRemove(t *testing.T) {
	t.Parallel()

	s, err := NewFileFavoriteStore(filepath.Join(t.TempDir(), "favorit.json"))
	if err != nil {
		t.Fatalf("NewFileFavoriteStore: %v", err)
	}

	_ = s.Add(models.Favorite{Username: "budi", RecipeName: "Nasi Goreng"})
	_ = s.Add(models.Favorite{Username: "siti", RecipeName: "Nasi Goreng"})

	if err := s.Remove("budi", "Nasi Goreng"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	// Only budi's entry goes away.
	if got, _ := s.ListByUser("siti"); len(got) != 1 {
		t.Errorf("siti's favorite should survive, got %d", len(got))
	}

	if err := s.Remove("budi", "Nasi Goreng"); !errors.Is(err, ErrFavoriteNotFound) {
		t.Errorf("expected ErrFavoriteNotFound, got %v", err)
	}
}

func TestFavoriteStoreRemoveByRecipe(t *testing.T) {
	t.Parallel()

	s, err := NewFileFavoriteStore(filepath.Join(t.TempDir(), "favorit.json"))
	if err != nil {
		t.Fatalf("NewFileFavoriteStore: %v", err)
	}

	_ = s.Add(models.Favorite{Username: "budi", RecipeName: "Nasi Goreng"})
	_ = s.Add(models.Favorite{Username: "siti", RecipeName: "Nasi Goreng"})
	_ = s.Add(models.Favorite{Username: "siti", RecipeName: "Tempe Orek"})

	removed, err := s.RemoveByRecipe("Nasi Goreng")
	if err != nil {
		t.Fatalf("RemoveByRecipe: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	all, _ := s.ListAll()
	if len(all) != 1 {
		t.Errorf("expected 1 favorite left, got %d", len(all))
	}
}

func TestFavoriteStoreCascadeOnUserDelete(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "favorit.json")
	s, err := NewFileFavoriteStore(path)
	if err != nil {
		t.Fatalf("NewFileFavoriteStore: %v", err)
	}

	_ = s.Add(models.Favorite{Username: "budi", RecipeName: "Nasi Goreng"})
	_ = s.Add(models.Favorite{Username: "budi", RecipeName: "Tempe Orek"})
	_ = s.Add(models.Favorite{Username: "siti", RecipeName: "Ayam Goreng"})

	removed, err := s.RemoveAllForUser("budi")
	if err != nil {
		t.Fatalf("RemoveAllForUser: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	// Cascade survives a reload.
	reloaded, err := NewFileFavoriteStore(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	all, _ := reloaded.ListAll()
	if len(all) != 1 || all[0].Username != "siti" {
		t.Errorf("unexpected favorites after cascade reload: %+v", all)
	}

	// Removing for an unknown user is a no-op, not an error.
	if n, err := s.RemoveAllForUser("nobody"); err != nil || n != 0 {
		t.Errorf("RemoveAllForUser(nobody) = %d, %v; want 0, nil", n, err)
	}
}
