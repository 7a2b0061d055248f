// Package localfs serves a corpus from the local filesystem.
package localfs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"docgraph/internal/domain"
	"docgraph/internal/ports"
)

// Gateway implements ports.FileSystemGateway over a local corpus root
type Gateway struct {
	root string
}

var _ ports.FileSystemGateway = (*Gateway)(nil)

// New creates a gateway rooted at corpusPath. A leading ~ expands to
// the user's home directory.
func New(corpusPath string) *Gateway {
	if strings.HasPrefix(corpusPath, "~") {
		home, _ := os.UserHomeDir()
		corpusPath = filepath.Join(home, corpusPath[1:])
	}
	return &Gateway{root: corpusPath}
}

// Root returns the absolute corpus root
func (g *Gateway) Root() string {
	return g.root
}

// ReadDir lists a corpus-relative directory
func (g *Gateway) ReadDir(_ context.Context, rel string) ([]ports.DirEntry, error) {
	entries, err := os.ReadDir(g.abs(rel))
	if err != nil {
		return nil, err
	}

	out := make([]ports.DirEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, ports.DirEntry{
			Name:  e.Name(),
			Path:  joinRel(rel, e.Name()),
			IsDir: e.IsDir(),
		})
	}
	return out, nil
}

// ReadFile returns a corpus-relative file's content
func (g *Gateway) ReadFile(_ context.Context, rel string) (string, error) {
	content, err := os.ReadFile(g.abs(rel))
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// Stat returns a file's staleness fingerprint
func (g *Gateway) Stat(_ context.Context, rel string) (domain.Fingerprint, error) {
	info, err := os.Stat(g.abs(rel))
	if err != nil {
		return domain.Fingerprint{}, err
	}
	return domain.Fingerprint{
		Size:    info.Size(),
		ModTime: info.ModTime().UnixNano(),
	}, nil
}

// Remote reports false: local reads are cacheable
func (g *Gateway) Remote() bool {
	return false
}

func (g *Gateway) abs(rel string) string {
	if rel == "" || rel == "." {
		return g.root
	}
	return filepath.Join(g.root, filepath.FromSlash(rel))
}

func joinRel(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	return strings.TrimSuffix(dir, "/") + "/" + name
}
