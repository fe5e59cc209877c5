// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package validation

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Bahan    string `validate:"required,min=1,max=500"`
	Username string `validate:"omitempty,alphanum,min=3,max=32"`
	Role     string `validate:"omitempty,oneof=user admin"`
}

func TestValidateStructPasses(t *testing.T) {
	t.Parallel()

	req := sampleRequest{Bahan: "ayam, bawang putih", Username: "budi", Role: "user"}
	if err := ValidateStruct(&req); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateStructRequired(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&sampleRequest{})
	if err == nil {
		t.Fatal("expected validation error for missing Bahan")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "Bahan") {
		t.Errorf("message %q should name the failing field", apiErr.Message)
	}
}

func TestValidateStructOneOf(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&sampleRequest{Bahan: "ayam", Role: "superuser"})
	if err == nil {
		t.Fatal("expected validation error for invalid role")
	}
	if len(err.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(err.Errors()))
	}
	if err.Errors()[0].Tag() != "oneof" {
		t.Errorf("tag = %q, want oneof", err.Errors()[0].Tag())
	}
}

func TestValidateStructMultipleErrors(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&sampleRequest{Username: "x!", Role: "nope"})
	if err == nil {
		t.Fatal("expected validation errors")
	}
	if len(err.Errors()) < 2 {
		t.Fatalf("expected multiple errors, got %d", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("multi-error details should list fields")
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator must return the same instance")
	}
}
