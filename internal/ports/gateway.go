package ports

import (
	"context"

	"docgraph/internal/domain"
)

// DirEntry is one entry returned by a directory listing
type DirEntry struct {
	Name  string // base name
	Path  string // corpus-relative path, forward slashes
	IsDir bool
}

// FileSystemGateway abstracts corpus access for the graph engine.
// All paths are relative to the gateway's corpus root.
//
// Any call may fail for a single path; callers treat that path as
// unavailable, skip it, and continue.
type FileSystemGateway interface {
	ReadDir(ctx context.Context, path string) ([]DirEntry, error)
	ReadFile(ctx context.Context, path string) (string, error)
	Stat(ctx context.Context, path string) (domain.Fingerprint, error)

	// Remote reports whether this gateway reaches a remote session.
	// Parse results from remote gateways are never cached.
	Remote() bool
}
