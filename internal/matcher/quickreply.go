// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package matcher

import (
	"sort"

	"github.com/adidarmawan/resepku/internal/textnorm"
)

// QuickReply returns up to 3 recipe names whose token sets intersect the
// free-text message, ordered by overlap size. An empty result means no
// recipe matched; callers render a generic fallback reply.
//
// Stateless per call and purely token-based, never semantic.
func (m *Matcher) QuickReply(message string) []string {
	msgTokens := textnorm.TokenSet(message)
	if len(msgTokens) == 0 {
		return nil
	}

	type hit struct {
		idx     int
		overlap int
	}
	var hits []hit
	for i := 0; i < m.index.Len(); i++ {
		overlap := 0
		for tok := range msgTokens {
			if _, ok := m.index.TokenSet(i)[tok]; ok {
				overlap++
			}
		}
		if overlap > 0 {
			hits = append(hits, hit{idx: i, overlap: overlap})
		}
	}
	if len(hits) == 0 {
		return nil
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].overlap > hits[b].overlap
	})
	if len(hits) > maxResults {
		hits = hits[:maxResults]
	}

	names := make([]string, len(hits))
	for i, h := range hits {
		names[i] = m.index.Recipe(h.idx).Name
	}
	return names
}
