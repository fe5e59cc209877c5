// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

// Package embedding maps normalized ingredient text to fixed-length vectors.
//
// Three providers are available: "ollama" and "openai" call external HTTP
// APIs, "local" is a deterministic offline trigram-hashing embedder used in
// development and tests. External providers should be wrapped with
// NewBreakerEmbedder so a failing upstream cannot cascade into every
// recommendation request.
package embedding

import (
	"context"
	"fmt"
	"math"
)

// Embedder maps a text string to a fixed-length vector.
// Implementations must accept the empty string and return a valid
// (typically all-zero) vector rather than an error.
type Embedder interface {
	// Embed returns the vector for text. The vector length is constant
	// for a given provider instance.
	Embed(ctx context.Context, text string) ([]float64, error)

	// Name identifies the provider for logging and metrics.
	Name() string
}

// NewEmbedder constructs a provider by name. Known providers are "ollama",
// "openai" and "local".
func NewEmbedder(provider, baseURL, model, apiKey string) (Embedder, error) {
	switch provider {
	case "ollama":
		return NewOllamaEmbedder(baseURL, model), nil
	case "openai":
		return NewOpenAIEmbedder(baseURL, model, apiKey), nil
	case "local", "":
		return NewLocalEmbedder(), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", provider)
	}
}

// Cosine calculates the cosine similarity between two vectors.
// Mismatched lengths and zero vectors yield 0, so degenerate inputs
// (empty queries) rank below every real match instead of erroring.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
