package graph

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"

	"docgraph/internal/domain"
	"docgraph/internal/ports"
)

// fakeGateway is an in-memory ports.FileSystemGateway for engine tests.
// It counts reads so cache behavior can be asserted.
type fakeGateway struct {
	mu        sync.Mutex
	files     map[string]string
	mtimes    map[string]int64
	reads     map[string]int
	failReads map[string]bool
	remote    bool
	clock     int64
}

var _ ports.FileSystemGateway = (*fakeGateway)(nil)

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		files:     make(map[string]string),
		mtimes:    make(map[string]int64),
		reads:     make(map[string]int),
		failReads: make(map[string]bool),
	}
}

// write adds or replaces a file, bumping its mtime
func (g *fakeGateway) write(path, content string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clock++
	g.files[path] = content
	g.mtimes[path] = g.clock
}

// touch bumps a file's mtime without changing content
func (g *fakeGateway) touch(path string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clock++
	g.mtimes[path] = g.clock
}

func (g *fakeGateway) readCount(path string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reads[path]
}

func (g *fakeGateway) totalReads() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	total := 0
	for _, n := range g.reads {
		total += n
	}
	return total
}

func (g *fakeGateway) ReadDir(_ context.Context, dir string) ([]ports.DirEntry, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	prefix := ""
	if dir != "." && dir != "" {
		prefix = strings.TrimSuffix(dir, "/") + "/"
	}

	names := make(map[string]bool)
	var entries []ports.DirEntry
	for path := range g.files {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		rest := path[len(prefix):]
		if idx := strings.Index(rest, "/"); idx >= 0 {
			child := rest[:idx]
			if !names[child] {
				names[child] = true
				entries = append(entries, ports.DirEntry{Name: child, Path: prefix + child, IsDir: true})
			}
			continue
		}
		if !names[rest] {
			names[rest] = true
			entries = append(entries, ports.DirEntry{Name: rest, Path: path, IsDir: false})
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func (g *fakeGateway) ReadFile(_ context.Context, path string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.failReads[path] {
		return "", fmt.Errorf("read %s: forced failure", path)
	}
	content, ok := g.files[path]
	if !ok {
		return "", fmt.Errorf("read %s: not found", path)
	}
	g.reads[path]++
	return content, nil
}

func (g *fakeGateway) Stat(_ context.Context, path string) (domain.Fingerprint, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	content, ok := g.files[path]
	if !ok {
		return domain.Fingerprint{}, fmt.Errorf("stat %s: not found", path)
	}
	return domain.Fingerprint{Size: int64(len(content)), ModTime: g.mtimes[path]}, nil
}

func (g *fakeGateway) Remote() bool {
	return g.remote
}

// scenarioGateway builds the four-document corpus used across the
// builder tests
func scenarioGateway(t *testing.T) *fakeGateway {
	t.Helper()

	gw := newFakeGateway()
	gw.write("readme.md", "# Readme\n\nStart at [[getting-started]] or the [repo](https://github.com/test/repo).\n")
	gw.write("getting-started.md", "# Getting Started\n\nBack to [[readme]], then [[advanced/config]].\n")
	gw.write("advanced/config.md", "---\ntitle: Configuration\ndescription: How to configure the app\n---\n\nSee <https://docs.example.com/reference>.\n")
	gw.write("standalone.md", "# Standalone\n\nNo links here.\n")
	return gw
}

func nodeIDs(nodes []domain.DocumentNode) []string {
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	sort.Strings(ids)
	return ids
}

func hasNode(nodes []domain.DocumentNode, id string) bool {
	for _, n := range nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

func hasEdge(edges []domain.Edge, source, target string) bool {
	for _, e := range edges {
		if e.Source == source && e.Target == target {
			return true
		}
	}
	return false
}
