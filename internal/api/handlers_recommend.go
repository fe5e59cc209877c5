// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/adidarmawan/resepku/internal/logging"
	"github.com/adidarmawan/resepku/internal/matcher"
	"github.com/adidarmawan/resepku/internal/models"
)

// lowConfidenceMessage is shown when the semantic score stays under the
// confidence threshold.
const lowConfidenceMessage = "🤔 AI belum yakin, tapi ini beberapa resep dengan bahan paling mirip:"

// chatFallbackReply is returned when no recipe shares a token with the
// chat message.
const chatFallbackReply = "Maaf, aku belum menemukan resep yang cocok. Coba sebutkan bahan lain ya!"

// rekomendasiRequest carries the recommendation form fields.
type rekomendasiRequest struct {
	Bahan string `validate:"required,max=500"`
}

// hasilPageData feeds the result page template.
type hasilPageData struct {
	// Input is the raw ingredient text as typed.
	Input string
	// Result is nil when the recommendation failed outright.
	Result *matcher.Result
	// Message carries the low-confidence note or an error line.
	Message string
	// Error marks a failed recommendation so the template can skip results.
	Error bool
}

// Rekomendasi handles the ingredient form and renders the result page.
func (h *Handler) Rekomendasi(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/", "Permintaan tidak valid.")
		return
	}

	req := rekomendasiRequest{Bahan: strings.TrimSpace(r.PostFormValue("bahan"))}
	if apiErr := validateRequest(&req); apiErr != nil {
		redirectWithFlash(w, r, "/", "Masukkan bahan terlebih dahulu.")
		return
	}
	force := formBool(r.PostFormValue("force"))

	result, err := h.matcher.Recommend(r.Context(), req.Bahan, force)
	if err != nil {
		logging.Error().Err(err).Msg("Recommendation failed")
		h.renderPageStatus(w, r, "hasil", http.StatusBadGateway, hasilPageData{
			Input:   req.Bahan,
			Message: "Layanan rekomendasi sedang tidak tersedia. Coba lagi nanti.",
			Error:   true,
		})
		return
	}

	data := hasilPageData{
		Input:  req.Bahan,
		Result: result,
	}
	if result.Branch == matcher.BranchLowConfidence {
		data.Message = lowConfidenceMessage
	}
	h.renderPage(w, r, "hasil", data)
}

// chatRequest is the JSON body of POST /chat.
type chatRequest struct {
	Message string `json:"message" validate:"required,max=500"`
}

// chatResponse is the JSON payload of a chat reply.
type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat answers a free-text message with recipe names that share an
// ingredient token, or a generic fallback reply.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Body harus berupa JSON dengan field 'message'", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	reply := chatFallbackReply
	if names := h.matcher.QuickReply(req.Message); len(names) > 0 {
		reply = "Coba resep ini: " + strings.Join(names, ", ")
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   chatResponse{Reply: reply},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// formBool interprets checkbox-style form values.
func formBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
