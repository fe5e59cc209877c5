// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adidarmawan/resepku/internal/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("rahasia123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "rahasia123" {
		t.Fatal("hash must not equal plaintext")
	}

	if !CheckPassword(hash, "rahasia123") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "salah") {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordEmptyRejected(t *testing.T) {
	t.Parallel()

	if _, err := HashPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestMemorySessionStoreLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemorySessionStore()

	session := NewSession("budi", models.RoleUser, time.Hour)
	if err := s.Create(ctx, session); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Username != "budi" || got.Role != models.RoleUser {
		t.Errorf("unexpected session: %+v", got)
	}

	if err := s.Delete(ctx, session.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemorySessionStore()

	session := NewSession("budi", models.RoleUser, -time.Minute)
	if err := s.Create(ctx, session); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := s.Get(ctx, session.ID); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}

	count, err := s.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired: %v", err)
	}
	if count != 1 {
		t.Errorf("cleaned %d sessions, want 1", count)
	}
}

func TestMemorySessionStoreDeleteByUsername(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemorySessionStore()

	_ = s.Create(ctx, NewSession("budi", models.RoleUser, time.Hour))
	_ = s.Create(ctx, NewSession("budi", models.RoleUser, time.Hour))
	_ = s.Create(ctx, NewSession("siti", models.RoleUser, time.Hour))

	count, err := s.DeleteByUsername(ctx, "budi")
	if err != nil {
		t.Fatalf("DeleteByUsername: %v", err)
	}
	if count != 2 {
		t.Errorf("deleted %d sessions, want 2", count)
	}
}

func TestSessionIDsUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := NewSession("u", models.RoleUser, time.Hour).ID
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate session ID: %s", id)
		}
		seen[id] = struct{}{}
	}
}

func newTestMiddleware() *SessionMiddleware {
	return NewSessionMiddleware(NewMemorySessionStore(), nil)
}

func TestAuthenticateSetsSessionInContext(t *testing.T) {
	t.Parallel()

	m := newTestMiddleware()

	// Log in to obtain a cookie.
	loginRec := httptest.NewRecorder()
	loginReq := httptest.NewRequest(http.MethodPost, "/login", nil)
	session, err := m.CreateSession(context.Background(), loginRec, loginReq, "budi", models.RoleUser)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	var got *Session
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/favorit", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: session.ID})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil || got.Username != "budi" {
		t.Fatalf("expected budi's session in context, got %+v", got)
	}
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	t.Parallel()

	m := newTestMiddleware()
	handler := m.Authenticate(m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("protected handler must not run for anonymous request")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/favorit", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect location = %q, want /login", loc)
	}
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	t.Parallel()

	m := newTestMiddleware()

	handler := m.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("admin handler must not run for a regular user")
	}))

	session := NewSession("budi", models.RoleUser, time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req = req.WithContext(ContextWithSession(req.Context(), session))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("redirect location = %q, want /", loc)
	}
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	t.Parallel()

	m := newTestMiddleware()

	ran := false
	handler := m.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))

	session := NewSession("admin", models.RoleAdmin, time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req = req.WithContext(ContextWithSession(req.Context(), session))

	handler.ServeHTTP(httptest.NewRecorder(), req)
	if !ran {
		t.Fatal("admin handler did not run for admin session")
	}
}

func TestDestroySessionClearsCookie(t *testing.T) {
	t.Parallel()

	m := newTestMiddleware()

	loginRec := httptest.NewRecorder()
	loginReq := httptest.NewRequest(http.MethodPost, "/login", nil)
	session, err := m.CreateSession(context.Background(), loginRec, loginReq, "budi", models.RoleUser)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: session.ID})
	rec := httptest.NewRecorder()

	if err := m.DestroySession(context.Background(), rec, req); err != nil {
		t.Fatalf("DestroySession: %v", err)
	}

	if _, err := m.Store().Get(context.Background(), session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("session should be gone, got %v", err)
	}

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie was not cleared")
	}
}

func TestFlashRoundTrip(t *testing.T) {
	t.Parallel()

	setRec := httptest.NewRecorder()
	SetFlash(setRec, "Resep tersimpan!")

	req := httptest.NewRequest(http.MethodGet, "/favorit", nil)
	for _, c := range setRec.Result().Cookies() {
		req.AddCookie(c)
	}

	popRec := httptest.NewRecorder()
	if got := PopFlash(popRec, req); got != "Resep tersimpan!" {
		t.Fatalf("PopFlash = %q, want original message", got)
	}

	// Pop clears the cookie.
	cleared := false
	for _, c := range popRec.Result().Cookies() {
		if c.Name == "flash" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("flash cookie was not cleared")
	}
}

func TestPopFlashEmpty(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := PopFlash(httptest.NewRecorder(), req); got != "" {
		t.Errorf("expected empty flash, got %q", got)
	}
}
