// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package models

// Favorite is a recipe saved by a user.
// Uniqueness is enforced per (username, recipe name). The ingredient text is
// the raw form input captured at save time, not a reference into the corpus,
// so a favorite keeps its meaning even if the corpus changes.
type Favorite struct {
	Username string `json:"username"`

	// RecipeName is the corpus recipe name at the time of saving.
	RecipeName string `json:"resep"`

	// Ingredients is the raw comma-separated ingredient text the user
	// searched with when they saved the recipe.
	Ingredients string `json:"bahan"`
}
