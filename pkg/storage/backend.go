package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a file
type FileInfo struct {
	Path         string
	RelativePath string
	Size         int64
	ModTime      time.Time
	IsDir        bool
}

// Backend defines the read-only interface for scan sources
// The engine never mutates files it scans
type Backend interface {
	// List returns all files under the given directory recursively
	// Unreadable subdirectories are skipped, not fatal
	List(ctx context.Context, path string) ([]FileInfo, error)

	// Read opens a file for reading
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Stat returns file metadata, used to revalidate a file just before
	// its bytes are hashed
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Root returns the absolute root path of the backend
	Root() string

	// Close releases any resources held by the backend
	Close() error
}
