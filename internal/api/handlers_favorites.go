// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/adidarmawan/resepku/internal/auth"
	"github.com/adidarmawan/resepku/internal/logging"
	"github.com/adidarmawan/resepku/internal/models"
	"github.com/adidarmawan/resepku/internal/store"
)

// simpanRequest carries the save-favorite form fields.
type simpanRequest struct {
	Resep string `validate:"required,max=100"`
	Bahan string `validate:"max=500"`
}

// favoriteEntry joins a stored favorite with its corpus recipe for display.
// Recipe ingredients are empty when the recipe has since left the corpus.
type favoriteEntry struct {
	Favorite models.Favorite
	Recipe   models.Recipe
	Known    bool
}

// favoritPageData feeds the favorites page template.
type favoritPageData struct {
	Entries []favoriteEntry
	// All is true when an admin is viewing every user's favorites.
	All bool
}

// Simpan saves a recommended recipe into the current user's favorites.
func (h *Handler) Simpan(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/favorit", "Permintaan tidak valid.")
		return
	}

	req := simpanRequest{
		Resep: strings.TrimSpace(r.PostFormValue("resep")),
		Bahan: strings.TrimSpace(r.PostFormValue("bahan")),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		redirectWithFlash(w, r, "/favorit", "Nama resep wajib diisi.")
		return
	}

	err := h.favorites.Add(models.Favorite{
		Username:    sess.Username,
		RecipeName:  req.Resep,
		Ingredients: req.Bahan,
	})
	if err != nil {
		if errors.Is(err, store.ErrFavoriteExists) {
			redirectWithFlash(w, r, "/favorit", "Resep sudah ada di favorit.")
			return
		}
		logging.Error().Err(err).Msg("Failed to save favorite")
		redirectWithFlash(w, r, "/favorit", "Gagal menyimpan favorit. Silakan coba lagi.")
		return
	}

	redirectWithFlash(w, r, "/favorit", "Resep disimpan ke favorit.")
}

// Favorit lists saved favorites. Admins see every user's favorites,
// regular users only their own.
func (h *Handler) Favorit(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())

	var (
		favs []models.Favorite
		err  error
	)
	all := sess.Role == models.RoleAdmin
	if all {
		favs, err = h.favorites.ListAll()
	} else {
		favs, err = h.favorites.ListByUser(sess.Username)
	}
	if err != nil {
		logging.Error().Err(err).Msg("Failed to list favorites")
		h.renderPageStatus(w, r, "favorit", http.StatusInternalServerError, favoritPageData{All: all})
		return
	}

	entries := make([]favoriteEntry, 0, len(favs))
	for _, fav := range favs {
		recipe, known := h.index.ByName(fav.RecipeName)
		entries = append(entries, favoriteEntry{
			Favorite: fav,
			Recipe:   recipe,
			Known:    known,
		})
	}

	h.renderPage(w, r, "favorit", favoritPageData{Entries: entries, All: all})
}

// Hapus deletes a favorite by recipe name. Admins remove every user's
// copy of the recipe, regular users only their own entry.
func (h *Handler) Hapus(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/favorit", "Permintaan tidak valid.")
		return
	}

	nama := strings.TrimSpace(r.PostFormValue("nama"))
	if nama == "" {
		redirectWithFlash(w, r, "/favorit", "Nama resep wajib diisi.")
		return
	}

	if sess.Role == models.RoleAdmin {
		removed, err := h.favorites.RemoveByRecipe(nama)
		if err != nil {
			logging.Error().Err(err).Msg("Failed to delete favorites")
			redirectWithFlash(w, r, "/favorit", "Gagal menghapus favorit.")
			return
		}
		logging.Info().Str("recipe", sanitizeLogValue(nama)).Int("removed", removed).Msg("Admin deleted favorites")
		redirectWithFlash(w, r, "/favorit", "Favorit dihapus.")
		return
	}

	if err := h.favorites.Remove(sess.Username, nama); err != nil {
		if errors.Is(err, store.ErrFavoriteNotFound) {
			redirectWithFlash(w, r, "/favorit", "Favorit tidak ditemukan.")
			return
		}
		logging.Error().Err(err).Msg("Failed to delete favorite")
		redirectWithFlash(w, r, "/favorit", "Gagal menghapus favorit.")
		return
	}

	redirectWithFlash(w, r, "/favorit", "Favorit dihapus.")
}
