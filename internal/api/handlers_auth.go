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
	"github.com/adidarmawan/resepku/internal/metrics"
	"github.com/adidarmawan/resepku/internal/models"
	"github.com/adidarmawan/resepku/internal/store"
)

// credentialsRequest carries the login and register form fields.
type credentialsRequest struct {
	Username string `validate:"required,alphanum,min=3,max=32"`
	Password string `validate:"required,min=6,max=72"`
}

// LoginPage renders the login form. Logged-in users are sent home.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if auth.SessionFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderPage(w, r, "login", nil)
}

// Login authenticates the posted credentials and opens a session.
// Admin accounts land on the dashboard, everyone else on the home page.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/login", "Permintaan tidak valid.")
		return
	}

	req := credentialsRequest{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		redirectWithFlash(w, r, "/login", "Username dan password wajib diisi.")
		return
	}

	user, err := h.users.Get(req.Username)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		// Same message for unknown user and wrong password.
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		logging.Warn().Str("username", sanitizeLogValue(req.Username)).Msg("Failed login attempt")
		redirectWithFlash(w, r, "/login", "Username atau password salah.")
		return
	}

	if _, err := h.sessions.CreateSession(r.Context(), w, r, user.Username, user.Role); err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		logging.Error().Err(err).Msg("Failed to create session")
		redirectWithFlash(w, r, "/login", "Terjadi kesalahan. Silakan coba lagi.")
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logging.Info().Str("username", sanitizeLogValue(user.Username)).Str("role", user.Role).Msg("User logged in")

	target := "/"
	if user.Role == models.RoleAdmin {
		target = "/admin"
	}
	redirectWithFlash(w, r, target, "Selamat datang, "+user.Username+"!")
}

// RegisterPage renders the registration form.
func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if auth.SessionFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderPage(w, r, "register", nil)
}

// Register creates a new user account with the default role.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/register", "Permintaan tidak valid.")
		return
	}

	req := credentialsRequest{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		redirectWithFlash(w, r, "/register", "Username minimal 3 karakter alfanumerik dan password minimal 6 karakter.")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to hash password")
		redirectWithFlash(w, r, "/register", "Terjadi kesalahan. Silakan coba lagi.")
		return
	}

	err = h.users.Create(models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, store.ErrUserExists) {
			redirectWithFlash(w, r, "/register", "Username sudah terdaftar.")
			return
		}
		logging.Error().Err(err).Msg("Failed to create user")
		redirectWithFlash(w, r, "/register", "Terjadi kesalahan. Silakan coba lagi.")
		return
	}

	logging.Info().Str("username", sanitizeLogValue(req.Username)).Msg("User registered")
	redirectWithFlash(w, r, "/login", "Registrasi berhasil. Silakan login.")
}

// Logout destroys the current session and clears the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.DestroySession(r.Context(), w, r); err != nil {
		logging.Warn().Err(err).Msg("Failed to destroy session on logout")
	}
	redirectWithFlash(w, r, "/", "Anda telah logout.")
}
