// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package matcher

import (
	"context"
	"errors"
	"testing"

	"github.com/adidarmawan/resepku/internal/corpus"
	"github.com/adidarmawan/resepku/internal/embedding"
	"github.com/adidarmawan/resepku/internal/models"
)

// failingEmbedder simulates a dead embedding provider.
type failingEmbedder struct{}

func (failingEmbedder) Name() string { return "failing" }

func (failingEmbedder) Embed(context.Context, string) ([]float64, error) {
	return nil, errors.New("provider unavailable")
}

func testRecipes() []models.Recipe {
	return []models.Recipe{
		{Name: "Nasi Goreng", Ingredients: []string{"nasi", "bawang putih", "kecap manis", "telur"}},
		{Name: "Ayam Goreng", Ingredients: []string{"ayam", "bawang putih", "kunyit", "garam"}},
		{Name: "Tempe Orek", Ingredients: []string{"tempe", "kecap manis", "cabai"}},
		{Name: "Telur Balado", Ingredients: []string{"telur", "cabai", "bawang merah", "tomat"}},
	}
}

func newTestMatcher(t *testing.T, e embedding.Embedder) *Matcher {
	t.Helper()
	if e == nil {
		e = embedding.NewLocalEmbedder()
	}
	idx, err := corpus.NewIndex(context.Background(), testRecipes(), embedding.NewLocalEmbedder())
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return New(idx, e, 0)
}

func TestRecommendExactBranch(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t, nil)
	res, err := m.Recommend(context.Background(), "nasi, telur, kecap manis", false)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if res.Branch != BranchExact {
		t.Fatalf("branch = %q, want %q", res.Branch, BranchExact)
	}
	if res.Primary == nil {
		t.Fatal("expected a primary recommendation")
	}
	if res.Primary.Recipe.Name != "Nasi Goreng" {
		t.Errorf("primary = %q, want Nasi Goreng", res.Primary.Recipe.Name)
	}
	if res.Primary.ExactScore < 3 {
		t.Errorf("exact score = %d, want >= 3 (nasi, telur, kecap or manis)", res.Primary.ExactScore)
	}
	if len(res.Related) > 2 {
		t.Errorf("related = %v, want at most 2", res.Related)
	}
}

func TestRecommendExactOutranksZeroOverlap(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t, nil)
	res, err := m.Recommend(context.Background(), "tempe", false)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if res.Primary.Recipe.Name != "Tempe Orek" {
		t.Errorf("primary = %q, want Tempe Orek", res.Primary.Recipe.Name)
	}
	// Recipes without any overlapping token must never appear.
	for _, name := range res.Related {
		if name == "Nasi Goreng" || name == "Ayam Goreng" || name == "Telur Balado" {
			t.Errorf("zero-overlap recipe %q listed as related", name)
		}
	}
}

func TestRecommendExactBranchSurvivesEmbeddingFailure(t *testing.T) {
	t.Parallel()

	// Two recipes tie on "cabai"; the tie-break embed fails, so corpus
	// order decides and the request still succeeds.
	m := newTestMatcher(t, failingEmbedder{})
	res, err := m.Recommend(context.Background(), "cabai", false)
	if err != nil {
		t.Fatalf("exact branch must not fail on embedding error: %v", err)
	}
	if res.Branch != BranchExact {
		t.Fatalf("branch = %q, want %q", res.Branch, BranchExact)
	}
	if res.Primary.Recipe.Name != "Tempe Orek" {
		t.Errorf("primary = %q, want Tempe Orek (corpus order)", res.Primary.Recipe.Name)
	}
}

func TestRecommendSemanticBranchPropagatesEmbeddingError(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t, failingEmbedder{})
	if _, err := m.Recommend(context.Background(), "zzz qqq", false); err == nil {
		t.Fatal("expected error when semantic branch cannot embed")
	}
}

func TestRecommendEmptyInputLowConfidence(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t, nil)
	res, err := m.Recommend(context.Background(), "", false)
	if err != nil {
		t.Fatalf("empty input must not error: %v", err)
	}

	if res.Branch != BranchLowConfidence {
		t.Fatalf("branch = %q, want %q", res.Branch, BranchLowConfidence)
	}
	if res.Primary != nil {
		t.Error("low-confidence result must have no primary pick")
	}
	if len(res.Related) == 0 || len(res.Related) > 3 {
		t.Errorf("related = %v, want 1 to 3 nearest names", res.Related)
	}
	if res.TopSimilarity != 0 {
		t.Errorf("empty input similarity = %v, want 0", res.TopSimilarity)
	}
}

func TestRecommendForceBypassesThreshold(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t, nil)
	res, err := m.Recommend(context.Background(), "", true)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if res.Branch != BranchSemantic {
		t.Fatalf("branch = %q, want %q with force", res.Branch, BranchSemantic)
	}
	if res.Primary == nil {
		t.Fatal("forced semantic result must have a primary pick")
	}
}

func TestRecommendMissingPhraseSuggestions(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t, nil)
	res, err := m.Recommend(context.Background(), "nasi, bvwvng pppth", false)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if len(res.Phrases) != 2 {
		t.Fatalf("expected 2 phrase statuses, got %d", len(res.Phrases))
	}
	if !res.Phrases[0].Present {
		t.Error("nasi should be marked present")
	}
	if res.Phrases[1].Present {
		t.Error("gibberish phrase should be marked missing")
	}
	if len(res.Phrases[1].Suggestions) > 3 {
		t.Errorf("at most 3 suggestions allowed, got %v", res.Phrases[1].Suggestions)
	}
}

func TestRecommendTypoGetsSuggestion(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t, nil)
	res, err := m.Recommend(context.Background(), "bawang puth", false)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	// "bawang" is in the vocabulary, so the phrase itself is present and
	// the exact branch fires on the bawang token.
	if res.Branch != BranchExact {
		t.Fatalf("branch = %q, want %q", res.Branch, BranchExact)
	}

	// A fully misspelled phrase gets a fuzzy suggestion instead.
	res, err = m.Recommend(context.Background(), "kunyyit", false)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if res.Phrases[0].Present {
		t.Fatal("misspelled phrase should be missing")
	}
	found := false
	for _, s := range res.Phrases[0].Suggestions {
		if s == "kunyit" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected kunyit among suggestions, got %v", res.Phrases[0].Suggestions)
	}
}

func TestRecommendDeterministic(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t, nil)
	first, err := m.Recommend(context.Background(), "telur, cabai", false)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	for i := 0; i < 5; i++ {
		res, err := m.Recommend(context.Background(), "telur, cabai", false)
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if res.Primary.Recipe.Name != first.Primary.Recipe.Name {
			t.Fatalf("ranking not deterministic: %q vs %q",
				res.Primary.Recipe.Name, first.Primary.Recipe.Name)
		}
	}
}

func TestQuickReply(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t, nil)

	names := m.QuickReply("aku punya telur sama cabai di rumah")
	if len(names) == 0 {
		t.Fatal("expected at least one matching recipe name")
	}
	if len(names) > 3 {
		t.Errorf("at most 3 names allowed, got %v", names)
	}
	if names[0] != "Telur Balado" {
		t.Errorf("best overlap = %q, want Telur Balado", names[0])
	}
}

func TestQuickReplyNoMatch(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t, nil)
	if names := m.QuickReply("xyzzy plugh"); names != nil {
		t.Errorf("expected nil for unmatched message, got %v", names)
	}
	if names := m.QuickReply(""); names != nil {
		t.Errorf("expected nil for empty message, got %v", names)
	}
}

func TestCloseMatches(t *testing.T) {
	t.Parallel()

	candidates := []string{"bawang putih", "bawang merah", "kunyit", "jahe"}

	got := closeMatches("bawang puth", candidates, 3, 0.6)
	if len(got) == 0 || got[0] != "bawang putih" {
		t.Errorf("closeMatches = %v, want bawang putih first", got)
	}

	if got := closeMatches("zzzzzz", candidates, 3, 0.6); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}

	if got := closeMatches("", candidates, 3, 0.6); got != nil {
		t.Errorf("expected nil for empty word, got %v", got)
	}
}
