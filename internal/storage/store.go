// Package storage holds exported PDF files until they are downloaded.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("stored file not found")
	ErrInvalidName = errors.New("invalid file name")
)

// Store saves and serves export files by base name.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
	// Location is the path or URI reported to clients as filePath.
	Location(name string) string
}

// Sweeper is implemented by stores that can drop files nobody collected.
type Sweeper interface {
	Sweep(ctx context.Context, olderThan time.Duration) (int, error)
}

// ValidName reports whether name is a plain file name with no directory part.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return false
	}
	return filepath.Base(name) == name
}
