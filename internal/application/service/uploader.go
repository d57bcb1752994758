package service

import (
	"context"
	"io"
)

// Uploader pushes binary objects to the hosted object storage and returns a
// public URL. Failure is never fatal to the caller; the store keeps the
// original data when an upload does not succeed.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
}
