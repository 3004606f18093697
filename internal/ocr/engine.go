package ocr

import "strings"

// Word is a single recognized token.
type Word struct {
	Value string `json:"value"`
}

// Line is one visual line of the receipt, as a sequence of words.
type Line struct {
	Words []Word `json:"words"`
}

// Block is a group of lines the recognizer considers contiguous.
type Block struct {
	Lines []Line `json:"lines"`
}

// Document is the recognizer's view of a single receipt page.
type Document struct {
	Blocks []Block `json:"blocks"`
}

// Text assembles the line by joining its word values with single spaces.
func (l Line) Text() string {
	parts := make([]string, 0, len(l.Words))
	for _, w := range l.Words {
		parts = append(parts, w.Value)
	}
	return strings.Join(parts, " ")
}

// Engine defines the interface for receipt text recognition
type Engine interface {
	// RecognizeDocument reads all text in a receipt image/PDF and returns it
	// as blocks of lines
	RecognizeDocument(imageData []byte, contentType string) (*Document, error)
	// Close closes the engine and releases resources
	Close() error
}
