// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package embedding

import (
	"context"
	"hash/fnv"
	"math"
)

// LocalDimension is the vector length produced by LocalEmbedder.
const LocalDimension = 512

// LocalEmbedder is a deterministic trigram-hashing embedder that needs no
// external service. Texts sharing character trigrams land close together,
// which is enough to make "bawang puth" resemble "bawang putih". The default
// provider for development and tests.
type LocalEmbedder struct{}

// NewLocalEmbedder creates a new LocalEmbedder.
func NewLocalEmbedder() *LocalEmbedder {
	return &LocalEmbedder{}
}

func (e *LocalEmbedder) Name() string {
	return "local"
}

// Embed hashes character trigrams of text into a unit-normalized vector.
// The empty string yields the all-zero vector, whose cosine similarity
// against anything is 0.
func (e *LocalEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	vector := make([]float64, LocalDimension)
	if text == "" {
		return vector, nil
	}

	runes := []rune(text)
	if len(runes) < 3 {
		h := fnv.New32a()
		_, _ = h.Write([]byte(text))
		vector[h.Sum32()%LocalDimension] = 1.0
		return vector, nil
	}

	for i := 0; i <= len(runes)-3; i++ {
		h := fnv.New32a()
		_, _ = h.Write([]byte(string(runes[i : i+3])))
		vector[h.Sum32()%LocalDimension]++
	}

	var sumSq float64
	for _, v := range vector {
		sumSq += v * v
	}
	if mag := math.Sqrt(sumSq); mag > 0 {
		for i := range vector {
			vector[i] /= mag
		}
	}

	return vector, nil
}
