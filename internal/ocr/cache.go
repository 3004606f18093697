package ocr

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.etcd.io/bbolt"
)

const cacheBucketName = "recognitions"

// Cache wraps an Engine with a bbolt-backed store of recognition results,
// keyed by the SHA-256 of the raw image bytes. Uploading the same image twice
// skips the engine call.
type Cache struct {
	engine Engine
	db     *bbolt.DB
}

// NewCache opens the cache database at path and wraps the given engine
func NewCache(path string, engine Engine) (*Cache, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(cacheBucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache bucket: %w", err)
	}

	return &Cache{engine: engine, db: db}, nil
}

// RecognizeDocument returns the cached document for this image if present,
// otherwise delegates to the wrapped engine and stores the result
func (c *Cache) RecognizeDocument(imageData []byte, contentType string) (*Document, error) {
	key := sha256.Sum256(imageData)

	var cached []byte
	err := c.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(cacheBucketName))
		if data := bucket.Get(key[:]); data != nil {
			cached = make([]byte, len(data))
			copy(cached, data)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	if cached != nil {
		var doc Document
		if err := json.Unmarshal(cached, &doc); err == nil {
			return &doc, nil
		}
		// Unreadable entry, fall through to the engine and overwrite it
		slog.Warn("Discarding unreadable cache entry")
	}

	doc, err := c.engine.RecognizeDocument(imageData, contentType)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling document: %w", err)
	}

	err = c.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(cacheBucketName))
		return bucket.Put(key[:], data)
	})
	if err != nil {
		// Cache writes are best effort
		slog.Warn("Failed to write cache entry", "error", err)
	}

	return doc, nil
}

// Close closes the cache database and the wrapped engine
func (c *Cache) Close() error {
	if err := c.db.Close(); err != nil {
		c.engine.Close()
		return fmt.Errorf("closing cache db: %w", err)
	}
	return c.engine.Close()
}
