// Copyright (c) 2025 EcoConnect.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package reward computes the point award for a verified collection.
//
// The calculator is a pure function: points = round(rate[category] * weightKg),
// with a per-category rate table that operators can retune from a YAML file
// without touching the engine. Rounding happens per call; summing the rewards
// of two claims is not guaranteed to equal the reward of one combined claim.
package reward

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ecoconnect/server/models"
)

// RateTable maps a waste category to its points-per-kg rate.
type RateTable map[string]float64

// DefaultRates returns the built-in incentive table. Plastic and metal earn
// a higher per-kg rate than paper and other.
func DefaultRates() RateTable {
	return RateTable{
		models.CategoryPlastic: 10,
		models.CategoryMetal:   15,
		models.CategoryPaper:   5,
		models.CategoryOther:   5,
	}
}

// LoadRates reads a rate table from a YAML file, e.g.:
//
//	plastic: 10
//	metal: 15
//	paper: 5
//	other: 5
//
// Every category in the file must be a known category with a positive rate,
// and all four categories must be present.
func LoadRates(path string) (RateTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate file: %w", err)
	}

	var rates RateTable
	if err := yaml.Unmarshal(data, &rates); err != nil {
		return nil, fmt.Errorf("failed to parse rate file: %w", err)
	}

	for category, rate := range rates {
		if !models.ValidCategory(category) {
			return nil, fmt.Errorf("unknown category %q in rate file", category)
		}
		if rate <= 0 {
			return nil, fmt.Errorf("rate for %q must be positive, got %v", category, rate)
		}
	}
	for _, category := range []string{models.CategoryPlastic, models.CategoryMetal, models.CategoryPaper, models.CategoryOther} {
		if _, ok := rates[category]; !ok {
			return nil, fmt.Errorf("rate file missing category %q", category)
		}
	}

	return rates, nil
}

// Calculator maps (category, weight) to a point amount. Deterministic and
// side-effect-free: the same inputs always yield the same points.
type Calculator struct {
	rates RateTable
}

// NewCalculator creates a calculator over the given rate table.
func NewCalculator(rates RateTable) Calculator {
	return Calculator{rates: rates}
}

// Compute returns the integer point award for a collection. The product is
// rounded half-away-from-zero per call. Fails with ErrInvalidInput on an
// unknown category or non-positive weight.
func (c Calculator) Compute(category string, weightKg float64) (int64, error) {
	rate, ok := c.rates[category]
	if !ok {
		return 0, fmt.Errorf("%w: unknown category %q", models.ErrInvalidInput, category)
	}
	if weightKg <= 0 {
		return 0, fmt.Errorf("%w: weight must be positive, got %v", models.ErrInvalidInput, weightKg)
	}

	return int64(math.Round(rate * weightKg)), nil
}
