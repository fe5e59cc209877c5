// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

// Package corpus loads the static recipe list and precomputes everything the
// matcher needs: per-recipe normalized token sets, cached embedding vectors
// and the global ingredient vocabulary. The Index is built once at startup
// and read-only afterwards, so it is safe for concurrent use without locks.
package corpus

import (
	"context"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/adidarmawan/resepku/internal/embedding"
	"github.com/adidarmawan/resepku/internal/logging"
	"github.com/adidarmawan/resepku/internal/models"
	"github.com/adidarmawan/resepku/internal/textnorm"
)

// Index is the immutable recipe corpus with derived matching data.
type Index struct {
	recipes   []models.Recipe
	tokenSets []map[string]struct{}
	vectors   [][]float64

	// vocabulary is the union of all recipe token sets.
	vocabulary map[string]struct{}

	// ingredientNames holds every raw ingredient string, lowercased,
	// deduplicated. Used alongside the vocabulary for fuzzy suggestions.
	ingredientNames []string

	byName map[string]int
}

// Load reads recipes from a JSON file.
// The file holds an array of {"nama": ..., "bahan": [...]} objects.
func Load(path string) ([]models.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe file: %w", err)
	}

	var recipes []models.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("parse recipe file %s: %w", path, err)
	}
	if len(recipes) == 0 {
		return nil, fmt.Errorf("recipe file %s is empty", path)
	}

	return recipes, nil
}

// NewIndex builds the derived matching data for recipes.
// Recipe names must be unique; embedding uses the same normalization that
// user queries go through at request time.
func NewIndex(ctx context.Context, recipes []models.Recipe, embedder embedding.Embedder) (*Index, error) {
	idx := &Index{
		recipes:    recipes,
		tokenSets:  make([]map[string]struct{}, len(recipes)),
		vectors:    make([][]float64, len(recipes)),
		vocabulary: make(map[string]struct{}),
		byName:     make(map[string]int, len(recipes)),
	}

	seenIngredients := make(map[string]struct{})

	for i, r := range recipes {
		if r.Name == "" {
			return nil, fmt.Errorf("recipe at index %d has no name", i)
		}
		if prev, dup := idx.byName[r.Name]; dup {
			return nil, fmt.Errorf("duplicate recipe name %q (indexes %d and %d)", r.Name, prev, i)
		}
		idx.byName[r.Name] = i

		joined := strings.Join(r.Ingredients, " ")
		idx.tokenSets[i] = textnorm.TokenSet(joined)
		for tok := range idx.tokenSets[i] {
			idx.vocabulary[tok] = struct{}{}
		}

		for _, ing := range r.Ingredients {
			name := strings.ToLower(strings.TrimSpace(ing))
			if name == "" {
				continue
			}
			if _, seen := seenIngredients[name]; !seen {
				seenIngredients[name] = struct{}{}
				idx.ingredientNames = append(idx.ingredientNames, name)
			}
		}

		vec, err := embedder.Embed(ctx, textnorm.Normalize(joined))
		if err != nil {
			return nil, fmt.Errorf("embed recipe %q: %w", r.Name, err)
		}
		idx.vectors[i] = vec
	}

	logging.Info().
		Int("recipes", len(recipes)).
		Int("vocabulary", len(idx.vocabulary)).
		Int("ingredients", len(idx.ingredientNames)).
		Str("provider", embedder.Name()).
		Msg("Recipe corpus indexed")

	return idx, nil
}

// Len returns the number of recipes in the corpus.
func (idx *Index) Len() int {
	return len(idx.recipes)
}

// Recipe returns the recipe at position i.
func (idx *Index) Recipe(i int) models.Recipe {
	return idx.recipes[i]
}

// Recipes returns all recipes in corpus order. Callers must not mutate.
func (idx *Index) Recipes() []models.Recipe {
	return idx.recipes
}

// TokenSet returns the normalized token set of the recipe at position i.
// Callers must not mutate.
func (idx *Index) TokenSet(i int) map[string]struct{} {
	return idx.tokenSets[i]
}

// Vector returns the cached embedding of the recipe at position i.
func (idx *Index) Vector(i int) []float64 {
	return idx.vectors[i]
}

// HasToken reports whether tok appears in any recipe's token set.
func (idx *Index) HasToken(tok string) bool {
	_, ok := idx.vocabulary[tok]
	return ok
}

// VocabularyTokens returns the global vocabulary as a slice.
// Order is unspecified.
func (idx *Index) VocabularyTokens() []string {
	tokens := make([]string, 0, len(idx.vocabulary))
	for tok := range idx.vocabulary {
		tokens = append(tokens, tok)
	}
	return tokens
}

// IngredientNames returns all raw ingredient names, lowercased and
// deduplicated. Callers must not mutate.
func (idx *Index) IngredientNames() []string {
	return idx.ingredientNames
}

// ByName looks up a recipe by its exact name.
func (idx *Index) ByName(name string) (models.Recipe, bool) {
	i, ok := idx.byName[name]
	if !ok {
		return models.Recipe{}, false
	}
	return idx.recipes[i], true
}
