// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

// Package textnorm provides deterministic text normalization for ingredient
// matching. The same function is applied to corpus recipes at startup and to
// user queries at request time, so token sets and embeddings stay comparable.
package textnorm

import (
	"strings"
)

// Normalize lowercases the input, replaces every non-alphabetic character
// with a space, removes Indonesian stop-words and rejoins the remaining
// tokens with single spaces.
//
// Pure function: no state, no side effects. Empty and all-stop-word inputs
// normalize to the empty string.
func Normalize(text string) string {
	return strings.Join(Tokens(text), " ")
}

// Tokens returns the normalized token sequence for text, preserving input
// order. Duplicates are kept; use TokenSet for set semantics.
func Tokens(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			// Digits, punctuation and non-ASCII all act as separators.
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	tokens := make([]string, 0, len(fields))
	for _, w := range fields {
		if _, stop := stopWords[w]; stop {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// TokenSet returns the normalized tokens of text as a set.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokens(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// SplitPhrases splits a comma-separated ingredient list into trimmed,
// lowercased phrases, dropping empties. Phrase order is preserved so the
// result can be echoed back to the user in the order they typed.
func SplitPhrases(input string) []string {
	parts := strings.Split(input, ",")
	phrases := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.ToLower(p))
		if p != "" {
			phrases = append(phrases, p)
		}
	}
	return phrases
}
