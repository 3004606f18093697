// Package extract turns raw OCR text into a clean item list and a deposit
// refund estimate. Classification, normalization, and the deposit calculation
// are pure functions over strings; the only state is the compiled rule set.
package extract

import (
	"pfandscan/internal/ocr"
)

// Result is the outcome of extracting one receipt: the deduplicated,
// display-ready item list and the deposit refund estimate.
type Result struct {
	Items   []string `json:"items"`
	Deposit float64  `json:"deposit"`
}

// Extractor runs the full pipeline over a recognized document
type Extractor struct {
	classifier *Classifier
	deposit    *DepositCalculator
}

// New creates an Extractor for the given rules
func New(rules Rules) *Extractor {
	return &Extractor{
		classifier: NewClassifier(rules),
		deposit:    NewDepositCalculator(rules),
	}
}

// Classify reports whether a single OCR line is an item line
func (e *Extractor) Classify(line string, ctx *LineContext) bool {
	return e.classifier.Classify(line, ctx)
}

// CalculateDeposit computes the refund for an item list
func (e *Extractor) CalculateDeposit(items []string) float64 {
	return e.deposit.Calculate(items)
}

// Run extracts items and the deposit estimate from a recognized document.
// Items are normalized before the deposit is counted, so duplicate OCR lines
// contribute one unit at most.
func (e *Extractor) Run(doc *ocr.Document) *Result {
	var raw []string
	for _, block := range doc.Blocks {
		total := len(block.Lines)
		for idx, line := range block.Lines {
			text := line.Text()
			if e.classifier.Classify(text, &LineContext{Index: idx, TotalLines: total}) {
				raw = append(raw, text)
			}
		}
	}

	items := NormalizeItems(raw)
	return &Result{
		Items:   items,
		Deposit: e.deposit.Calculate(items),
	}
}
