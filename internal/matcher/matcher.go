// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

// Package matcher ranks recipes against free-text ingredient input.
//
// Matching runs in two stages. Exact token overlap against the corpus is
// tried first; recipes sharing at least one normalized token with the input
// always outrank recipes sharing none. Only when no recipe overlaps at all
// does the matcher fall back to embedding the input and ranking by cosine
// similarity, gated by a confidence threshold.
package matcher

import (
	"context"
	"sort"
	"time"

	"github.com/adidarmawan/resepku/internal/corpus"
	"github.com/adidarmawan/resepku/internal/embedding"
	"github.com/adidarmawan/resepku/internal/logging"
	"github.com/adidarmawan/resepku/internal/metrics"
	"github.com/adidarmawan/resepku/internal/models"
	"github.com/adidarmawan/resepku/internal/textnorm"
)

// Matching branches reported in Result.Branch.
const (
	BranchExact         = "exact"
	BranchSemantic      = "semantic"
	BranchLowConfidence = "low_confidence"
)

// DefaultThreshold is the minimum top cosine similarity for a confident
// semantic recommendation.
const DefaultThreshold = 0.30

// maxResults caps the primary recommendation plus related suggestions.
const maxResults = 3

// maxSuggestions caps fuzzy suggestions per missing ingredient phrase.
const maxSuggestions = 3

// PhraseStatus describes one comma-separated ingredient phrase from the
// user input after matching against the corpus vocabulary.
type PhraseStatus struct {
	// Phrase is the trimmed, lowercased phrase as the user typed it.
	Phrase string `json:"bahan"`

	// Present reports whether any of the phrase's normalized tokens
	// appear in the corpus vocabulary.
	Present bool `json:"tersedia"`

	// Suggestions holds up to 3 fuzzy corrections for a missing phrase,
	// drawn from the vocabulary and the raw ingredient names.
	Suggestions []string `json:"saran,omitempty"`
}

// Result is a ranked recommendation.
type Result struct {
	// Branch records which matching path produced the result.
	Branch string `json:"branch"`

	// Primary is the best match. Nil on the low-confidence branch.
	Primary *models.RecommendedRecipe `json:"utama,omitempty"`

	// Related holds up to 2 runner-up recipe names on the confident
	// branches, or up to 3 nearest recipe names on the low-confidence
	// branch.
	Related []string `json:"rekomendasi"`

	// Phrases echoes the user's ingredient phrases with availability
	// and fuzzy suggestions.
	Phrases []PhraseStatus `json:"bahan"`

	// TopSimilarity is the best cosine score when the semantic path ran.
	TopSimilarity float64 `json:"similarity,omitempty"`
}

// Matcher ranks corpus recipes against user ingredient input.
// Safe for concurrent use: the index is immutable and the embedder is
// stateless per call.
type Matcher struct {
	index     *corpus.Index
	embedder  embedding.Embedder
	threshold float64
}

// New creates a Matcher over idx. A threshold <= 0 uses DefaultThreshold.
func New(idx *corpus.Index, embedder embedding.Embedder, threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{
		index:     idx,
		embedder:  embedder,
		threshold: threshold,
	}
}

// Recommend ranks recipes for a comma-separated ingredient list.
//
// When force is true the confidence threshold is skipped and the best
// semantic match is returned regardless of score. The exact-overlap branch
// never consults the threshold.
//
// An embedding provider failure is returned as an error only on the
// semantic branch, where no ranking is possible without a vector.
func (m *Matcher) Recommend(ctx context.Context, input string, force bool) (*Result, error) {
	start := time.Now()
	defer func() {
		metrics.RecommendationDuration.Observe(time.Since(start).Seconds())
	}()

	phrases := textnorm.SplitPhrases(input)
	userTokens := make(map[string]struct{})
	for _, p := range phrases {
		for tok := range textnorm.TokenSet(p) {
			userTokens[tok] = struct{}{}
		}
	}

	statuses := m.classifyPhrases(phrases)

	scores := make([]int, m.index.Len())
	maxScore := 0
	for i := 0; i < m.index.Len(); i++ {
		set := m.index.TokenSet(i)
		for tok := range userTokens {
			if _, ok := set[tok]; ok {
				scores[i]++
			}
		}
		if scores[i] > maxScore {
			maxScore = scores[i]
		}
	}

	if maxScore > 0 {
		res := m.rankExact(ctx, textnorm.Normalize(input), scores, statuses)
		metrics.RecommendationsTotal.WithLabelValues(res.Branch).Inc()
		return res, nil
	}

	res, err := m.rankSemantic(ctx, input, force, statuses)
	if err != nil {
		return nil, err
	}
	metrics.RecommendationsTotal.WithLabelValues(res.Branch).Inc()
	return res, nil
}

// classifyPhrases marks each user phrase present or missing and attaches
// fuzzy suggestions to the missing ones.
func (m *Matcher) classifyPhrases(phrases []string) []PhraseStatus {
	var candidates []string

	statuses := make([]PhraseStatus, 0, len(phrases))
	for _, p := range phrases {
		status := PhraseStatus{Phrase: p}
		for tok := range textnorm.TokenSet(p) {
			if m.index.HasToken(tok) {
				status.Present = true
				break
			}
		}
		if !status.Present {
			if candidates == nil {
				candidates = append(m.index.VocabularyTokens(), m.index.IngredientNames()...)
			}
			status.Suggestions = closeMatches(p, candidates, maxSuggestions, suggestionCutoff)
			metrics.MissingIngredients.Inc()
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// rankExact orders recipes by descending token overlap. Cosine similarity
// is computed lazily, only to break ties that affect the returned window;
// when the embedding provider fails there, corpus order decides instead.
func (m *Matcher) rankExact(ctx context.Context, query string, scores []int, statuses []PhraseStatus) *Result {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	top := order
	if len(top) > maxResults {
		top = top[:maxResults]
	}

	sims := m.breakTies(ctx, query, scores, order, len(top))

	primary := m.index.Recipe(top[0])
	result := &Result{
		Branch: BranchExact,
		Primary: &models.RecommendedRecipe{
			Recipe:     primary,
			ExactScore: scores[top[0]],
			Similarity: sims[top[0]],
		},
		Phrases: statuses,
	}
	for _, i := range top[1:] {
		if scores[i] == 0 {
			break
		}
		result.Related = append(result.Related, m.index.Recipe(i).Name)
	}
	return result
}

// breakTies re-sorts order by cosine similarity within equal-score runs, but
// only when a run crosses into the first window positions. Returns the
// similarity per recipe index (zero where never computed), and leaves order
// untouched on embedding failure.
func (m *Matcher) breakTies(ctx context.Context, query string, scores, order []int, window int) map[int]float64 {
	sims := make(map[int]float64)

	tied := false
	for i := 0; i < window && i+1 < len(order); i++ {
		if scores[order[i]] == scores[order[i+1]] && scores[order[i]] > 0 {
			tied = true
			break
		}
	}
	if !tied {
		return sims
	}

	queryVec, err := m.embedText(ctx, query)
	if err != nil {
		logging.Warn().Err(err).Msg("Tie-break embedding failed, keeping corpus order")
		return sims
	}

	for _, i := range order {
		if scores[i] > 0 {
			sims[i] = embedding.Cosine(queryVec, m.index.Vector(i))
		}
	}

	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := scores[order[a]], scores[order[b]]
		if sa != sb {
			return sa > sb
		}
		return sims[order[a]] > sims[order[b]]
	})
	return sims
}

// rankSemantic embeds the full normalized input and ranks all recipes by
// cosine similarity.
func (m *Matcher) rankSemantic(ctx context.Context, input string, force bool, statuses []PhraseStatus) (*Result, error) {
	queryVec, err := m.embedText(ctx, textnorm.Normalize(input))
	if err != nil {
		return nil, err
	}

	type candidate struct {
		idx int
		sim float64
	}
	candidates := make([]candidate, m.index.Len())
	for i := range candidates {
		candidates[i] = candidate{idx: i, sim: embedding.Cosine(queryVec, m.index.Vector(i))}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].sim > candidates[b].sim
	})

	top := candidates
	if len(top) > maxResults {
		top = top[:maxResults]
	}
	topSim := top[0].sim
	metrics.RecommendationTopSimilarity.Observe(topSim)

	result := &Result{
		Phrases:       statuses,
		TopSimilarity: topSim,
	}

	if topSim < m.threshold && !force {
		// Low confidence: no primary pick, only nearest names.
		result.Branch = BranchLowConfidence
		for _, c := range top {
			result.Related = append(result.Related, m.index.Recipe(c.idx).Name)
		}
		return result, nil
	}

	result.Branch = BranchSemantic
	result.Primary = &models.RecommendedRecipe{
		Recipe:     m.index.Recipe(top[0].idx),
		Similarity: top[0].sim,
	}
	for _, c := range top[1:] {
		result.Related = append(result.Related, m.index.Recipe(c.idx).Name)
	}
	return result, nil
}

func (m *Matcher) embedText(ctx context.Context, text string) ([]float64, error) {
	start := time.Now()
	vec, err := m.embedder.Embed(ctx, text)
	metrics.RecordEmbedding(m.embedder.Name(), time.Since(start), err)
	return vec, err
}
