// Package storage abstracts the object-storage collaborator that holds the
// actual image bytes. The application only ever handles opaque storage keys;
// clients upload through presigned URLs and download through resolved URLs.
package storage

import (
	"context"
	"time"
)

// UploadTarget is a one-time write destination issued to a client. The
// client PUTs the object to URL and echoes Key back when creating the
// image or profile record.
type UploadTarget struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ObjectStorage is the contract the photo core depends on.
//
// ResolveURL returns "" (and no error) when the object does not exist any
// more; callers treat an empty URL as "object gone", not as a failure.
// Delete is best-effort from the caller's perspective: non-critical cleanup
// paths log and swallow its error.
type ObjectStorage interface {
	IssueUploadTarget(ctx context.Context) (*UploadTarget, error)
	ResolveURL(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
}
