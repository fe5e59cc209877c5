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

// userActionRequest carries the admin user management form fields.
type userActionRequest struct {
	Username string `validate:"required,alphanum,max=32"`
	Action   string `validate:"required,oneof=promote demote delete"`
}

// adminUserRow is one user line on the admin dashboard.
type adminUserRow struct {
	Username      string
	Role          string
	FavoriteCount int
}

// adminPageData feeds the admin dashboard template.
type adminPageData struct {
	Users         []adminUserRow
	RecipeCount   int
	FavoriteCount int
}

// AdminPage renders the user management dashboard.
// Reachability is enforced by the RequireAdmin middleware.
func (h *Handler) AdminPage(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to list users")
		h.renderPageStatus(w, r, "admin", http.StatusInternalServerError, adminPageData{})
		return
	}

	favs, err := h.favorites.ListAll()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to list favorites")
		h.renderPageStatus(w, r, "admin", http.StatusInternalServerError, adminPageData{})
		return
	}

	counts := make(map[string]int, len(users))
	for _, fav := range favs {
		counts[fav.Username]++
	}

	rows := make([]adminUserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, adminUserRow{
			Username:      u.Username,
			Role:          u.Role,
			FavoriteCount: counts[u.Username],
		})
	}

	h.renderPage(w, r, "admin", adminPageData{
		Users:         rows,
		RecipeCount:   h.index.Len(),
		FavoriteCount: len(favs),
	})
}

// AdminUserAction applies promote, demote, or delete to a user account.
// Delete cascades the user's favorites and revokes their sessions; role
// changes also revoke sessions so a stale role never survives in a cookie.
func (h *Handler) AdminUserAction(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/admin", "Permintaan tidak valid.")
		return
	}

	req := userActionRequest{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Action:   strings.TrimSpace(r.PostFormValue("action")),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		redirectWithFlash(w, r, "/admin", "Aksi tidak valid.")
		return
	}

	if req.Username == sess.Username {
		redirectWithFlash(w, r, "/admin", "Tidak dapat mengubah akun sendiri.")
		return
	}

	var err error
	switch req.Action {
	case "promote":
		err = h.users.SetRole(req.Username, models.RoleAdmin)
	case "demote":
		err = h.users.SetRole(req.Username, models.RoleUser)
	case "delete":
		err = h.deleteUserCascade(req.Username)
	}

	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			redirectWithFlash(w, r, "/admin", "User tidak ditemukan.")
			return
		}
		logging.Error().Err(err).Str("action", req.Action).Msg("Admin user action failed")
		redirectWithFlash(w, r, "/admin", "Aksi gagal. Silakan coba lagi.")
		return
	}

	// Revoke the target's sessions so the old role or account cannot be
	// used from an existing cookie.
	if _, err := h.sessions.Store().DeleteByUsername(r.Context(), req.Username); err != nil {
		logging.Warn().Err(err).Str("username", sanitizeLogValue(req.Username)).Msg("Failed to revoke sessions")
	}

	logging.Info().
		Str("admin", sanitizeLogValue(sess.Username)).
		Str("username", sanitizeLogValue(req.Username)).
		Str("action", req.Action).
		Msg("Admin user action applied")

	switch req.Action {
	case "promote":
		redirectWithFlash(w, r, "/admin", "User dijadikan admin.")
	case "demote":
		redirectWithFlash(w, r, "/admin", "User dikembalikan menjadi user biasa.")
	default:
		redirectWithFlash(w, r, "/admin", "User dihapus beserta favoritnya.")
	}
}

// deleteUserCascade removes a user and all their favorites.
func (h *Handler) deleteUserCascade(username string) error {
	if err := h.users.Delete(username); err != nil {
		return err
	}

	removed, err := h.favorites.RemoveAllForUser(username)
	if err != nil {
		// The account is already gone; report the dangling favorites
		// instead of failing the whole action.
		logging.Error().Err(err).Str("username", sanitizeLogValue(username)).Msg("Failed to cascade delete favorites")
		return nil
	}
	if removed > 0 {
		logging.Info().Str("username", sanitizeLogValue(username)).Int("removed", removed).Msg("Cascade deleted favorites")
	}
	return nil
}
