package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LineContext carries the position of a line within its block, for the
// optional boundary filter
type LineContext struct {
	Index      int
	TotalLines int
}

var (
	// Anything outside letters, digits, underscore, whitespace, period,
	// comma, and the currency symbols rejects the line. Currency symbols are
	// allowed here so that price-bearing lines reach the price-pattern rule.
	disallowedCharPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s.,€$]`)

	// A numeric amount followed by a currency symbol
	pricePattern = regexp.MustCompile(`\p{N}+(\.\p{N}{2})?\s*[€$]`)
)

// Classifier decides whether an OCR line denotes a purchased item
type Classifier struct {
	rules    Rules
	keywords []string
}

// NewClassifier creates a Classifier for the given rules
func NewClassifier(rules Rules) *Classifier {
	keywords := make([]string, len(rules.ClutterKeywords))
	for i, kw := range rules.ClutterKeywords {
		keywords[i] = strings.ToLower(kw)
	}
	return &Classifier{rules: rules, keywords: keywords}
}

// Classify reports whether a line of OCR text is plausibly an item
// description rather than receipt clutter (store name, totals, payment
// metadata). ctx may be nil when no block position is known.
func (c *Classifier) Classify(line string, ctx *LineContext) bool {
	// Boundary positions carry header/footer boilerplate
	if c.rules.SkipBoundary && ctx != nil {
		if ctx.Index < c.rules.BoundaryMargin || ctx.Index >= ctx.TotalLines-c.rules.BoundaryMargin {
			return false
		}
	}

	lowered := strings.ToLower(line)
	for _, kw := range c.keywords {
		if strings.Contains(lowered, kw) {
			return false
		}
	}

	// Lines dominated by digits are prices, totals, or dates; stray symbols
	// mark barcodes and terminal codes
	if digitRatio(line) > c.rules.DigitRatioMax || disallowedCharPattern.MatchString(line) {
		return false
	}

	length := utf8.RuneCountInString(line)
	if length < c.rules.MinLineLength || length > c.rules.MaxLineLength {
		return false
	}

	// A price is only an item line when a description accompanies it
	if pricePattern.MatchString(line) {
		return containsLetter(line)
	}

	return true
}

// digitRatio returns the share of the line's runes that are digits. The
// denominator is the full line length, spaces and punctuation included.
func digitRatio(line string) float64 {
	total := utf8.RuneCountInString(line)
	if total == 0 {
		return 0
	}
	digits := 0
	for _, r := range line {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return float64(digits) / float64(total)
}

func containsLetter(line string) bool {
	for _, r := range line {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
