package extract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules holds every tunable of the extraction heuristics. Zero values in a
// loaded file fall back to the defaults, so a rules file only needs to name
// what it changes.
type Rules struct {
	// ClutterKeywords reject a line when any of them appears as a
	// case-insensitive substring
	ClutterKeywords []string `yaml:"clutter_keywords"`

	// DigitRatioMax rejects a line when digits exceed this share of its runes
	DigitRatioMax float64 `yaml:"digit_ratio_max"`

	// MinLineLength and MaxLineLength bound accepted line lengths, in runes
	MinLineLength int `yaml:"min_line_length"`
	MaxLineLength int `yaml:"max_line_length"`

	// SkipBoundary drops the first and last BoundaryMargin line positions of
	// each block, to suppress header/footer boilerplate
	SkipBoundary   bool `yaml:"skip_boundary"`
	BoundaryMargin int  `yaml:"boundary_margin"`

	// DepositKeywords mark an item as deposit-eligible by case-insensitive
	// substring match
	DepositKeywords []string `yaml:"deposit_keywords"`

	// DepositPerUnit is the refund per eligible item
	DepositPerUnit float64 `yaml:"deposit_per_unit"`
}

// DefaultRules returns the canonical extraction policy
func DefaultRules() Rules {
	return Rules{
		ClutterKeywords: []string{
			"store", "total", "due", "debit", "credit", "cash", "payment",
			"change", "balance", "date", "time", "vat", "tax", "thank you",
			"subtotal", "discount", "offer", "feedback", "survey", "prices",
			"network", "terminal", "ref", "aid", "appr code",
			"st#", "op#", "te#", "tr#", "tc#",
		},
		DigitRatioMax:  0.6,
		MinLineLength:  5,
		MaxLineLength:  50,
		SkipBoundary:   false,
		BoundaryMargin: 3,
		DepositKeywords: []string{
			"coca cola", "pepsi", "dasani", "bottle", "sprite", "fanta",
			"evian", "volvic", "nestle", "mineral water", "glass bottle",
			"plastic bottle",
		},
		DepositPerUnit: 0.25,
	}
}

// LoadRules reads a rules file and merges it over the defaults
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("reading rules file: %w", err)
	}

	var loaded Rules
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Rules{}, fmt.Errorf("parsing rules file: %w", err)
	}

	rules := DefaultRules()
	if len(loaded.ClutterKeywords) > 0 {
		rules.ClutterKeywords = loaded.ClutterKeywords
	}
	if loaded.DigitRatioMax > 0 {
		rules.DigitRatioMax = loaded.DigitRatioMax
	}
	if loaded.MinLineLength > 0 {
		rules.MinLineLength = loaded.MinLineLength
	}
	if loaded.MaxLineLength > 0 {
		rules.MaxLineLength = loaded.MaxLineLength
	}
	if loaded.SkipBoundary {
		rules.SkipBoundary = true
	}
	if loaded.BoundaryMargin > 0 {
		rules.BoundaryMargin = loaded.BoundaryMargin
	}
	if len(loaded.DepositKeywords) > 0 {
		rules.DepositKeywords = loaded.DepositKeywords
	}
	if loaded.DepositPerUnit > 0 {
		rules.DepositPerUnit = loaded.DepositPerUnit
	}
	return rules, nil
}
