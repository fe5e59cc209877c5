// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package api

import (
	"net/http"
	"time"

	"github.com/adidarmawan/resepku/internal/models"
)

// healthStatus is the JSON payload of the health endpoint.
type healthStatus struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	RecipeCount   int     `json:"recipe_count"`
	Embedder      string  `json:"embedder"`
}

// HealthLive reports process liveness. Always 200 while the process runs.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "alive"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// Health reports service status with corpus and embedder details.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: healthStatus{
			Status:        "healthy",
			UptimeSeconds: time.Since(h.startTime).Seconds(),
			RecipeCount:   h.index.Len(),
			Embedder:      h.embedderName(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

func (h *Handler) embedderName() string {
	if h.config == nil {
		return ""
	}
	return h.config.Embedding.Provider
}
