package extract

import (
	"math"
	"strings"
)

// DepositCalculator estimates the container-deposit refund for a list of
// normalized items
type DepositCalculator struct {
	rules    Rules
	keywords []string
}

// NewDepositCalculator creates a DepositCalculator for the given rules
func NewDepositCalculator(rules Rules) *DepositCalculator {
	keywords := make([]string, len(rules.DepositKeywords))
	for i, kw := range rules.DepositKeywords {
		keywords[i] = strings.ToLower(kw)
	}
	return &DepositCalculator{rules: rules, keywords: keywords}
}

// Calculate counts items matching at least one deposit keyword
// (case-insensitive substring) and multiplies by the per-unit value. The
// result is rounded to 2 decimal places, half away from zero.
func (d *DepositCalculator) Calculate(items []string) float64 {
	count := 0
	for _, item := range items {
		lowered := strings.ToLower(item)
		for _, kw := range d.keywords {
			if strings.Contains(lowered, kw) {
				count++
				break
			}
		}
	}
	return round2(float64(count) * d.rules.DepositPerUnit)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
