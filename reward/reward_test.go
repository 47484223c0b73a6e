// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reward

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ecoconnect/server/models"
)

func TestComputeDefaultRates(t *testing.T) {
	calc := NewCalculator(DefaultRates())

	cases := []struct {
		category string
		weightKg float64
		want     int64
	}{
		{models.CategoryPlastic, 5, 50},
		{models.CategoryPlastic, 7, 70},
		{models.CategoryMetal, 4, 60},
		{models.CategoryPaper, 2, 10},
		{models.CategoryOther, 3, 15},
		{models.CategoryPlastic, 0.5, 5},
	}

	for _, tc := range cases {
		got, err := calc.Compute(tc.category, tc.weightKg)
		if err != nil {
			t.Errorf("Compute(%s, %v): unexpected error %v", tc.category, tc.weightKg, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Compute(%s, %v) = %d, want %d", tc.category, tc.weightKg, got, tc.want)
		}
	}
}

func TestComputeInvalidInput(t *testing.T) {
	calc := NewCalculator(DefaultRates())

	if _, err := calc.Compute("glass", 5); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown category, got %v", err)
	}
	if _, err := calc.Compute(models.CategoryPlastic, 0); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero weight, got %v", err)
	}
	if _, err := calc.Compute(models.CategoryPlastic, -2); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative weight, got %v", err)
	}
}

func TestComputeDeterministic(t *testing.T) {
	calc := NewCalculator(DefaultRates())

	first, err := calc.Compute(models.CategoryMetal, 3.37)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		again, err := calc.Compute(models.CategoryMetal, 3.37)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("expected deterministic result %d, got %d", first, again)
		}
	}
}

// Rounding happens per call, so two half-kg paper claims each round up to 3
// points while one combined 1kg claim earns 5. The policy is
// round-per-call; this test documents it.
func TestComputeRoundsPerCall(t *testing.T) {
	calc := NewCalculator(DefaultRates())

	half, err := calc.Compute(models.CategoryPaper, 0.5) // 2.5 → 3
	if err != nil {
		t.Fatal(err)
	}
	whole, err := calc.Compute(models.CategoryPaper, 1.0) // 5
	if err != nil {
		t.Fatal(err)
	}

	if half != 3 {
		t.Errorf("expected 0.5kg paper to round to 3 points, got %d", half)
	}
	if whole != 5 {
		t.Errorf("expected 1kg paper to earn 5 points, got %d", whole)
	}
	if half+half == whole {
		t.Error("rounding-per-call should make split claims differ from a combined claim here")
	}
}

func TestLoadRates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	content := "plastic: 12\nmetal: 20\npaper: 4\nother: 2\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	rates, err := LoadRates(path)
	if err != nil {
		t.Fatal(err)
	}

	calc := NewCalculator(rates)
	got, err := calc.Compute(models.CategoryPlastic, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got != 24 {
		t.Errorf("expected 24 points at 12/kg, got %d", got)
	}
}

func TestLoadRatesRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name    string
		content string
	}{
		{"unknown category", "plastic: 10\nmetal: 15\npaper: 5\nother: 5\nglass: 8\n"},
		{"missing category", "plastic: 10\nmetal: 15\npaper: 5\n"},
		{"non-positive rate", "plastic: 0\nmetal: 15\npaper: 5\nother: 5\n"},
		{"not yaml", "{{{{"},
	}

	for _, tc := range cases {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadRates(path); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}

	if _, err := LoadRates(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
