// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package embedding

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCosine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{
			name: "identical vectors",
			a:    []float64{1, 2, 3},
			b:    []float64{1, 2, 3},
			want: 1,
		},
		{
			name: "orthogonal vectors",
			a:    []float64{1, 0},
			b:    []float64{0, 1},
			want: 0,
		},
		{
			name: "opposite vectors",
			a:    []float64{1, 0},
			b:    []float64{-1, 0},
			want: -1,
		},
		{
			name: "zero vector",
			a:    []float64{0, 0},
			b:    []float64{1, 1},
			want: 0,
		},
		{
			name: "length mismatch",
			a:    []float64{1, 2},
			b:    []float64{1, 2, 3},
			want: 0,
		},
		{
			name: "both empty",
			a:    []float64{},
			b:    []float64{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLocalEmbedderDeterministic(t *testing.T) {
	t.Parallel()

	e := NewLocalEmbedder()
	ctx := context.Background()

	a, err := e.Embed(ctx, "bawang putih ayam")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	b, err := e.Embed(ctx, "bawang putih ayam")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	if len(a) != LocalDimension {
		t.Fatalf("expected dimension %d, got %d", LocalDimension, len(a))
	}
	if sim := Cosine(a, b); math.Abs(sim-1) > 1e-9 {
		t.Errorf("same input should embed identically, cosine = %v", sim)
	}
}

func TestLocalEmbedderUnitNorm(t *testing.T) {
	t.Parallel()

	e := NewLocalEmbedder()
	vec, err := e.Embed(context.Background(), "nasi goreng telur")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	var sumSq float64
	for _, v := range vec {
		sumSq += v * v
	}
	if math.Abs(math.Sqrt(sumSq)-1) > 1e-9 {
		t.Errorf("expected unit norm, got %v", math.Sqrt(sumSq))
	}
}

func TestLocalEmbedderEmptyInput(t *testing.T) {
	t.Parallel()

	e := NewLocalEmbedder()
	vec, err := e.Embed(context.Background(), "")
	if err != nil {
		t.Fatalf("empty input must not error: %v", err)
	}

	for i, v := range vec {
		if v != 0 {
			t.Fatalf("expected zero vector for empty input, index %d = %v", i, v)
		}
	}
	if sim := Cosine(vec, vec); sim != 0 {
		t.Errorf("zero vector cosine must be 0, got %v", sim)
	}
}

func TestLocalEmbedderSimilarTextsCloser(t *testing.T) {
	t.Parallel()

	e := NewLocalEmbedder()
	ctx := context.Background()

	base, _ := e.Embed(ctx, "bawang putih")
	typo, _ := e.Embed(ctx, "bawang puth")
	unrelated, _ := e.Embed(ctx, "cokelat susu keju")

	if Cosine(base, typo) <= Cosine(base, unrelated) {
		t.Errorf("near-duplicate text should score higher than unrelated text: %v <= %v",
			Cosine(base, typo), Cosine(base, unrelated))
	}
}

func TestOllamaEmbedder(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"embedding": [0.1, 0.2, 0.3]}`))
	}))
	defer srv.Close()

	e := NewOllamaEmbedder(srv.URL, "test-model")
	vec, err := e.Embed(context.Background(), "ayam goreng")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vec) != 3 {
		t.Fatalf("expected 3 dimensions, got %d", len(vec))
	}
}

func TestOllamaEmbedderServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := NewOllamaEmbedder(srv.URL, "test-model")
	if _, err := e.Embed(context.Background(), "ayam"); err == nil {
		t.Fatal("expected error on 500 response")
	}
}

func TestOpenAIEmbedder(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("expected bearer auth header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"embedding": [0.5, 0.5]}]}`))
	}))
	defer srv.Close()

	e := NewOpenAIEmbedder(srv.URL, "test-model", "sk-test")
	vec, err := e.Embed(context.Background(), "tempe")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vec) != 2 {
		t.Fatalf("expected 2 dimensions, got %d", len(vec))
	}
}

func TestHTTPEmbeddersSkipNetworkOnEmptyInput(t *testing.T) {
	t.Parallel()

	// Unroutable base URLs: a network call would fail the test.
	ollama := NewOllamaEmbedder("http://127.0.0.1:1/api/embeddings", "m")
	if _, err := ollama.Embed(context.Background(), ""); err != nil {
		t.Errorf("ollama empty input must not error: %v", err)
	}

	openai := NewOpenAIEmbedder("http://127.0.0.1:1/v1/embeddings", "m", "")
	if _, err := openai.Embed(context.Background(), ""); err != nil {
		t.Errorf("openai empty input must not error: %v", err)
	}
}

func TestNewEmbedder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		provider string
		wantName string
		wantErr  bool
	}{
		{provider: "local", wantName: "local"},
		{provider: "", wantName: "local"},
		{provider: "ollama", wantName: "ollama"},
		{provider: "openai", wantName: "openai"},
		{provider: "cohere", wantErr: true},
	}

	for _, tt := range tests {
		e, err := NewEmbedder(tt.provider, "", "", "")
		if tt.wantErr {
			if err == nil {
				t.Errorf("NewEmbedder(%q): expected error", tt.provider)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewEmbedder(%q): %v", tt.provider, err)
			continue
		}
		if e.Name() != tt.wantName {
			t.Errorf("NewEmbedder(%q).Name() = %q, want %q", tt.provider, e.Name(), tt.wantName)
		}
	}
}
