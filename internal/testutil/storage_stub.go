// Package testutil provides shared test doubles and fixtures for backend tests.
package testutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sync"
	"time"

	"photostream/internal/storage"
)

// StorageStub is an in-memory ObjectStorage implementation for tests. It
// records deletions and supports failure injection on individual operations.
type StorageStub struct {
	mu      sync.Mutex
	objects map[string][]byte
	nextKey int

	Deleted []string

	FailResolve bool
	FailDelete  bool
	FailIssue   bool
}

// NewStorageStub creates an empty in-memory object store.
func NewStorageStub() *StorageStub {
	return &StorageStub{objects: make(map[string][]byte)}
}

// Seed stores an object under key so ResolveURL finds it.
func (s *StorageStub) Seed(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
}

// Has reports whether key currently exists in the store.
func (s *StorageStub) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

// IssueUploadTarget returns a deterministic key and a fake upload URL.
func (s *StorageStub) IssueUploadTarget(_ context.Context) (*storage.UploadTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailIssue {
		return nil, errors.New("storage stub: issue failed")
	}
	s.nextKey++
	key := fmt.Sprintf("images/stub-%d", s.nextKey)
	// Presigned targets point at nothing; tests that need the object to
	// exist afterwards call Seed with the returned key.
	return &storage.UploadTarget{
		Key:       key,
		URL:       "https://storage.test/upload/" + key,
		ExpiresAt: time.Now().UTC().Add(15 * time.Minute),
	}, nil
}

// ResolveURL returns a fake URL for stored keys and "" for missing ones.
func (s *StorageStub) ResolveURL(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailResolve {
		return "", errors.New("storage stub: resolve failed")
	}
	if _, ok := s.objects[key]; !ok {
		return "", nil
	}
	return "https://storage.test/" + key, nil
}

// Put stores the object bytes under key.
func (s *StorageStub) Put(_ context.Context, key string, data []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

// Delete removes the object and records the key in Deleted.
func (s *StorageStub) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailDelete {
		return errors.New("storage stub: delete failed")
	}
	delete(s.objects, key)
	s.Deleted = append(s.Deleted, key)
	return nil
}

// TinyPNG returns an in-memory PNG byte slice with the requested dimensions.
func TinyPNG(t interface {
	Helper()
	Fatalf(string, ...any)
}, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
