// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package api

import (
	"net/http"
)

// indexPageData feeds the landing page template.
type indexPageData struct {
	// RecipeCount is shown as a small hint of corpus size.
	RecipeCount int
}

// Index renders the landing page with the ingredient search form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "index", indexPageData{
		RecipeCount: h.index.Len(),
	})
}
