// Package storage keeps uploaded employee photos on local disk or in an
// S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrInvalidPath = errors.New("invalid file path")

// FileStorage addresses objects by a relative, slash-separated key such as
// "employees/<uuid>.png". Keys escaping the storage root yield ErrInvalidPath.
type FileStorage interface {
	// Upload writes file under key and returns the stored key.
	Upload(ctx context.Context, file io.Reader, key string, contentType string) (string, error)
	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// GetURL returns a public URL, or a presigned one valid for expiry.
	GetURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
