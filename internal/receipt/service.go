package receipt

import (
	"fmt"
	"log/slog"

	"pfandscan/internal/extract"
	"pfandscan/internal/ocr"
)

// Service runs a receipt through recognition and extraction. It holds no
// state between receipts; nothing about a processed receipt is persisted.
type Service struct {
	engine    ocr.Engine
	extractor *extract.Extractor
}

// NewService creates a new Service around a long-lived engine handle
func NewService(engine ocr.Engine, extractor *extract.Extractor) *Service {
	return &Service{
		engine:    engine,
		extractor: extractor,
	}
}

// ProcessReceipt recognizes a receipt image and extracts its item list and
// deposit estimate
func (s *Service) ProcessReceipt(filename string, data []byte, contentType string) (*extract.Result, error) {
	doc, err := s.engine.RecognizeDocument(data, contentType)
	if err != nil {
		slog.Error("Failed to recognize receipt",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		return nil, fmt.Errorf("recognizing receipt: %w", err)
	}

	result := s.extractor.Run(doc)
	slog.Info("Processed receipt",
		"filename", filename,
		"items", len(result.Items),
		"deposit", result.Deposit,
	)
	return result, nil
}
