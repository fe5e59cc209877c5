// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

// Package models defines the data structures shared across Resepku:
// recipes, users, favorites and the standardized API response envelope.
package models

// Recipe is a single entry in the static recipe corpus.
// Recipes are immutable after load; the corpus is read once at startup.
//
// JSON layout matches data/resep.json:
//
//	{"nama": "Nasi Goreng", "bahan": ["nasi", "bawang putih", ...]}
type Recipe struct {
	// Name uniquely identifies the recipe within the corpus.
	Name string `json:"nama"`

	// Ingredients is the ordered ingredient list as authored.
	Ingredients []string `json:"bahan"`
}

// RecommendedRecipe is a recipe paired with its matching scores.
type RecommendedRecipe struct {
	Recipe Recipe `json:"resep"`

	// ExactScore is the number of user tokens that appear verbatim in the
	// recipe's normalized ingredient token set. Zero on the semantic branch.
	ExactScore int `json:"exact_score"`

	// Similarity is the cosine similarity between the user input embedding
	// and the recipe embedding. Zero when never computed.
	Similarity float64 `json:"similarity"`
}
