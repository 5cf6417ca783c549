package storage

import (
	"context"
	"errors"
	"io"

	catalogapp "github.com/vietcart/backend/internal/application/catalog"
)

// StubObjectStorage is a placeholder implementation of ObjectStorage.
// Use this for local development when no S3-compatible backend is available.
type StubObjectStorage struct {
	// BaseURL is the base URL returned for uploaded objects
	// Defaults to "https://storage.example.com" if not set
	BaseURL string
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
	}
}

var _ catalogapp.ObjectStorage = (*StubObjectStorage)(nil)

// Upload discards the body and returns a fabricated public URL
func (s *StubObjectStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	if body != nil {
		if _, err := io.Copy(io.Discard, body); err != nil {
			return "", err
		}
	}
	return s.BaseURL + "/" + key, nil
}

// Delete is a no-op stub that always succeeds
func (s *StubObjectStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	return nil
}
