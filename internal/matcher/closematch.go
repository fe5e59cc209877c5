// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package matcher

import (
	"sort"

	"github.com/agext/levenshtein"
)

// suggestionCutoff is the minimum similarity ratio for a fuzzy suggestion.
const suggestionCutoff = 0.6

var levParams = levenshtein.NewParams()

// closeMatches returns up to n candidates whose similarity ratio to word is
// at least cutoff, best first. Ties keep candidate order, so results are
// deterministic for a fixed candidate slice.
func closeMatches(word string, candidates []string, n int, cutoff float64) []string {
	if n <= 0 || word == "" {
		return nil
	}

	type scored struct {
		value string
		ratio float64
		pos   int
	}

	var hits []scored
	for i, c := range candidates {
		ratio := levenshtein.Similarity(word, c, levParams)
		if ratio >= cutoff {
			hits = append(hits, scored{value: c, ratio: ratio, pos: i})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].ratio != hits[j].ratio {
			return hits[i].ratio > hits[j].ratio
		}
		return hits[i].pos < hits[j].pos
	})

	if len(hits) > n {
		hits = hits[:n]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.value
	}
	return out
}
