package ocr

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseDocumentJSON parses the JSON transcription returned by a vision model
// into a Document, dropping empty lines and words
func parseDocumentJSON(text string) (*Document, error) {
	text = strings.TrimSpace(text)

	// Remove markdown code blocks if present
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	// Find the JSON object boundaries - look for first { and last }
	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON object in response")
	}

	text = text[startIdx : endIdx+1]

	var doc Document
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}

	if len(doc.Blocks) == 0 {
		return nil, fmt.Errorf("no text blocks found in response")
	}

	// Drop lines with no usable words; the core never sees empty lines
	blocks := make([]Block, 0, len(doc.Blocks))
	for _, block := range doc.Blocks {
		lines := make([]Line, 0, len(block.Lines))
		for _, line := range block.Lines {
			words := make([]Word, 0, len(line.Words))
			for _, word := range line.Words {
				if strings.TrimSpace(word.Value) != "" {
					words = append(words, word)
				}
			}
			if len(words) > 0 {
				lines = append(lines, Line{Words: words})
			}
		}
		if len(lines) > 0 {
			blocks = append(blocks, Block{Lines: lines})
		}
	}

	if len(blocks) == 0 {
		return nil, fmt.Errorf("no text lines found in response")
	}

	return &Document{Blocks: blocks}, nil
}
