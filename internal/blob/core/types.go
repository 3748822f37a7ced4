// Package core defines the document store abstraction shared by the blob
// backends that hold prototype definition files.
package core

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver identifies a concrete document store backend.
type Driver string

const (
	// DriverFilesystem reads plain files below a root directory.
	DriverFilesystem Driver = "fs" // local filesystem (default, dev)
	// DriverS3 reads objects from a single S3 / MinIO bucket.
	DriverS3 Driver = "s3" // S3 / MinIO compatible
	// DriverMemory keeps documents in process memory.
	DriverMemory Driver = "memory" // in-memory (tests)
)

// Object describes a stored document.
type Object struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size_bytes"`
	ETag         string    `json:"etag,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// Store is a minimal S3-like view over prototype definition documents.
// Keys use forward slashes regardless of backend.
type Store interface {
	// Put writes a document at key, replacing any previous content.
	Put(ctx context.Context, key string, r io.Reader) (Object, error)
	// Get opens a document. Missing keys yield an error matching ErrNotFound.
	Get(ctx context.Context, key string) (Object, io.ReadCloser, error)
	// List returns documents whose key has prefix, ordered by key ascending.
	List(ctx context.Context, prefix string) ([]Object, error)
	// Delete removes a document, returning false when it did not exist.
	Delete(ctx context.Context, key string) (bool, error)
	// Driver returns the backend identifier.
	Driver() Driver
}

var (
	// ErrNotFound is returned (possibly wrapped) when a key does not exist.
	ErrNotFound = errors.New("blobstore: not found")
	// ErrInvalidKey is returned for empty or path-escaping keys.
	ErrInvalidKey = errors.New("blobstore: invalid key")
)
