package model

import (
	"context"
	"io"
)

// FileStorage stores uploaded blobs under server-generated keys.
type FileStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
