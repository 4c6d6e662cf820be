// Package blob provides abstractions for storing uploaded document
// binaries. Metadata lives in the primary store; only the file contents
// go through a FileStore.
package blob

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore defines the interface for document binary storage.
// This abstraction allows swapping backends (local disk, S3-compatible
// object storage) without changing the handler layer.
type FileStore interface {
	// Save writes the file contents under the given key.
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Open returns a reader for the stored file.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the stored file. Deleting a missing key is an error.
	Delete(ctx context.Context, key string) error
}

// NewKey generates a storage key for a user's upload, preserving the
// original file extension.
func NewKey(userID, filename string) string {
	return fmt.Sprintf("users/%s/%s%s", userID, uuid.New(), filepath.Ext(filename))
}
