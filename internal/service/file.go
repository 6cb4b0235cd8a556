package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/opentask-server/internal/logger"
	"github.com/dtroode/opentask-server/internal/model"
)

// File stores uploaded blobs under server-generated keys. The client's
// display name never becomes a storage path: only its extension survives,
// appended to a fresh UUID, so collisions and traversal sequences cannot
// reach the backend.
type File struct {
	storage model.FileStorage
	logger  *logger.Logger
}

func NewFile(storage model.FileStorage, logger *logger.Logger) *File {
	return &File{
		storage: storage,
		logger:  logger,
	}
}

// Upload stores the blob and returns the generated storage key.
func (f *File) Upload(ctx context.Context, filename string, reader io.Reader) (string, error) {
	key := uuid.NewString() + safeExt(filename)

	if err := f.storage.Upload(ctx, key, reader); err != nil {
		f.logger.Error("File service: failed to store upload",
			"filename", filename,
			"key", key,
			"error", err.Error())
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	f.logger.Info("File service: file uploaded", "key", key)
	return key, nil
}

// Download opens a previously stored blob by its storage key. Keys that
// could address outside the backend are treated as unknown.
func (f *File) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if !validKey(key) {
		return nil, model.ErrNotFound
	}

	exists, err := f.storage.Exists(ctx, key)
	if err != nil {
		f.logger.Error("File service: failed to stat blob",
			"key", key,
			"error", err.Error())
		return nil, fmt.Errorf("failed to stat blob: %w", err)
	}
	if !exists {
		return nil, model.ErrNotFound
	}

	rc, err := f.storage.Download(ctx, key)
	if err != nil {
		f.logger.Error("File service: failed to open blob",
			"key", key,
			"error", err.Error())
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return rc, nil
}

// safeExt extracts the extension of a client-supplied filename, keeping it
// only if it is a plain alphanumeric suffix.
func safeExt(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	ext := path.Ext(base)
	if ext == "" || ext == "." || base == ext {
		return ""
	}
	for _, r := range ext[1:] {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return ""
		}
	}
	return strings.ToLower(ext)
}

func validKey(key string) bool {
	return key != "" && key != "." && key != ".." &&
		!strings.ContainsAny(key, `/\`)
}
