// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package textnorm

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase and trim",
			input: "  Ayam Goreng  ",
			want:  "ayam goreng",
		},
		{
			name:  "punctuation becomes separator",
			input: "bawang-merah, cabai! (2 siung)",
			want:  "bawang merah cabai siung",
		},
		{
			name:  "digits stripped",
			input: "500gr daging sapi",
			want:  "gr daging sapi",
		},
		{
			name:  "stop words removed",
			input: "ayam dan tempe yang segar",
			want:  "ayam tempe segar",
		},
		{
			name:  "all stop words",
			input: "dan yang atau itu",
			want:  "",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "non-ascii acts as separator",
			input: "teluréayam",
			want:  "telur ayam",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	t.Parallel()

	input := "Nasi Goreng Spesial, telur & kecap manis!"
	first := Normalize(input)
	for i := 0; i < 10; i++ {
		if got := Normalize(input); got != first {
			t.Fatalf("Normalize not deterministic: %q vs %q", got, first)
		}
	}
}

func TestTokenSet(t *testing.T) {
	t.Parallel()

	set := TokenSet("ayam ayam goreng")
	if len(set) != 2 {
		t.Fatalf("expected 2 unique tokens, got %d", len(set))
	}
	for _, tok := range []string{"ayam", "goreng"} {
		if _, ok := set[tok]; !ok {
			t.Errorf("token %q missing from set", tok)
		}
	}
}

func TestSplitPhrases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "basic comma split",
			input: "Ayam, Bawang Putih , kecap",
			want:  []string{"ayam", "bawang putih", "kecap"},
		},
		{
			name:  "empty segments dropped",
			input: "ayam,,  ,telur",
			want:  []string{"ayam", "telur"},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SplitPhrases(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitPhrases(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsStopWord(t *testing.T) {
	t.Parallel()

	if !IsStopWord("dan") {
		t.Error("expected dan to be a stop word")
	}
	if IsStopWord("ayam") {
		t.Error("ayam must never be a stop word")
	}
}
