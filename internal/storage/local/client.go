package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtroode/opentask-server/internal/model"
)

var _ model.FileStorage = (*Client)(nil)

// Client stores blobs as files under a single directory. Keys are flat
// names; anything that could address outside the root is refused.
type Client struct {
	root string
}

// NewClient creates the upload directory if needed and returns a client
// rooted there.
func NewClient(root string) (*Client, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Client{root: root}, nil
}

func (c *Client) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." ||
		strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(c.root, key), nil
}

// Upload writes the reader's contents to a file named key under the root.
func (c *Client) Upload(_ context.Context, key string, reader io.Reader) error {
	p, err := c.path(key)
	if err != nil {
		return err
	}

	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// Download opens the stored blob for reading.
func (c *Client) Download(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := c.path(key)
	if err != nil {
		return nil, model.ErrNotFound
	}

	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Delete removes the stored blob.
func (c *Client) Delete(_ context.Context, key string) error {
	p, err := c.path(key)
	if err != nil {
		return model.ErrNotFound
	}

	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// Exists reports whether a blob is stored under key.
func (c *Client) Exists(_ context.Context, key string) (bool, error) {
	p, err := c.path(key)
	if err != nil {
		return false, nil
	}

	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return true, nil
}
