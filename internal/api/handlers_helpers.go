// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/adidarmawan/resepku/internal/auth"
	"github.com/adidarmawan/resepku/internal/logging"
	"github.com/adidarmawan/resepku/internal/models"
	"github.com/adidarmawan/resepku/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log
// injection attacks. This includes newlines, carriage returns, tabs, and
// other control characters that could forge log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	etag := generateETag(data)
	w.Header().Set("ETag", etag)

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a simple ETag from data using FNV-1a hash
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Str("code", sanitizeLogValue(code)).Str("error", sanitizeLogValue(err.Error())).Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil when validation passes.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// pageData is the payload passed to every page template.
type pageData struct {
	// Username is empty for anonymous visitors.
	Username string
	IsAdmin  bool
	// Flash is a one-shot message popped from the flash cookie.
	Flash string
	// Data holds page-specific content.
	Data interface{}
}

// renderPage executes a named page template with the session and flash
// state filled in.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	h.renderPageStatus(w, r, name, http.StatusOK, data)
}

// renderPageStatus renders a page template with an explicit HTTP status.
func (h *Handler) renderPageStatus(w http.ResponseWriter, r *http.Request, name string, status int, data interface{}) {
	pd := pageData{
		Flash: auth.PopFlash(w, r),
		Data:  data,
	}
	if sess := auth.SessionFromContext(r.Context()); sess != nil {
		pd.Username = sess.Username
		pd.IsAdmin = sess.Role == models.RoleAdmin
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	// Headers are already written; a template failure can only be logged.
	if err := h.templates.ExecuteTemplate(w, name, pd); err != nil {
		logging.Error().Err(err).Str("template", name).Msg("Failed to execute page template")
	}
}

// redirectWithFlash sets a one-shot flash message and redirects with 303
// so the browser re-requests with GET.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, target, message string) {
	if message != "" {
		auth.SetFlash(w, message)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
