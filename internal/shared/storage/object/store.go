// Package object abstracts where generated report files are kept.
package object

import (
	"context"
	"io"
)

// Store saves and retrieves report files by storage key.
type Store interface {
	Save(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
