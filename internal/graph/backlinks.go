package graph

import (
	"context"
	"strings"
	"sync"

	"docgraph/internal/domain"
	"docgraph/internal/ports"
)

// Directories never scanned for backlinks
var ignoredDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
}

// BacklinkUpdate is one incremental discovery: a document outside the
// loaded set that links into it, with the edges it contributes.
type BacklinkUpdate struct {
	Node  domain.DocumentNode
	Edges []domain.Edge
}

// BacklinkScan is a running reverse-link scan over the corpus. Updates
// stream on Updates(); the channel closes when the scan stops for any
// reason. Wait reports whether the corpus was exhausted: it returns
// false after Cancel, so cancellation never looks like completion.
type BacklinkScan struct {
	updates    chan BacklinkUpdate
	done       chan struct{}
	cancelled  chan struct{}
	cancelOnce sync.Once

	completed bool
	err       error
}

// Updates returns the stream of incremental discoveries
func (b *BacklinkScan) Updates() <-chan BacklinkUpdate {
	return b.updates
}

// Cancel stops the scan after the in-flight batch finishes. Safe to
// call more than once.
func (b *BacklinkScan) Cancel() {
	b.cancelOnce.Do(func() { close(b.cancelled) })
}

// Wait blocks until the scan stops and reports whether it ran the
// corpus to exhaustion
func (b *BacklinkScan) Wait() bool {
	<-b.done
	return b.completed
}

// Err returns the enumeration error that stopped the scan, if any
func (b *BacklinkScan) Err() error {
	<-b.done
	return b.err
}

// StartBacklinkScan launches a reverse-link discovery over the whole
// corpus: every markdown file outside the loaded set is parsed
// (cache-aware) and reported when any of its internal links resolves
// to a loaded document. The scan runs on its own goroutine and checks
// for cancellation between batches.
func (s *Session) StartBacklinkScan(ctx context.Context, g *domain.GraphData, progress ProgressFunc) *BacklinkScan {
	loaded := make(map[string]bool, len(g.LoadedPaths))
	for p := range g.LoadedPaths {
		loaded[p] = true
	}

	scan := &BacklinkScan{
		updates:   make(chan BacklinkUpdate, yieldBatchSize),
		done:      make(chan struct{}),
		cancelled: make(chan struct{}),
	}

	go scan.run(ctx, s, loaded, progress)
	return scan
}

func (b *BacklinkScan) run(ctx context.Context, s *Session, loaded map[string]bool, progress ProgressFunc) {
	defer func() {
		close(b.updates)
		close(b.done)
	}()

	files, err := listMarkdownFiles(ctx, s.gw, progress)
	if err != nil {
		b.err = err
		return
	}

	for i, relPath := range files {
		if i%yieldBatchSize == 0 && b.stopped(ctx) {
			return
		}
		if loaded[relPath] {
			continue
		}

		res, err := s.resolve(ctx, relPath)
		if err != nil {
			continue
		}

		var edges []domain.Edge
		for _, target := range res.InternalLinks {
			if !loaded[target] {
				continue
			}
			edges = append(edges, domain.Edge{
				Source: domain.DocumentNodeID(relPath),
				Target: domain.DocumentNodeID(target),
				Type:   domain.EdgeTypeDocument,
			})
		}
		if len(edges) == 0 {
			continue
		}

		update := BacklinkUpdate{Node: res.Node(relPath), Edges: edges}
		select {
		case b.updates <- update:
		case <-b.cancelled:
			return
		case <-ctx.Done():
			return
		}
	}

	b.completed = true
}

func (b *BacklinkScan) stopped(ctx context.Context) bool {
	select {
	case <-b.cancelled:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// listMarkdownFiles enumerates every .md file under the corpus root,
// skipping dotted and dependency directories. Unreadable directories
// are skipped, not fatal for the rest of the walk.
func listMarkdownFiles(ctx context.Context, gw ports.FileSystemGateway, progress ProgressFunc) ([]string, error) {
	entries, err := gw.ReadDir(ctx, ".")
	if err != nil {
		return nil, err
	}

	var files []string
	pending := entries

	for len(pending) > 0 {
		entry := pending[0]
		pending = pending[1:]

		name := entry.Name
		if entry.IsDir {
			if strings.HasPrefix(name, ".") || ignoredDirs[name] {
				continue
			}
			children, err := gw.ReadDir(ctx, entry.Path)
			if err != nil {
				continue
			}
			pending = append(pending, children...)
			continue
		}

		if !strings.HasSuffix(strings.ToLower(name), ".md") {
			continue
		}
		files = append(files, normalizePath(entry.Path))

		// Total is unknown until the walk finishes
		if progress != nil {
			progress(Progress{
				Phase:       PhaseScanning,
				Current:     len(files),
				CurrentFile: entry.Path,
			})
		}
	}

	if progress != nil {
		progress(Progress{
			Phase:   PhaseScanning,
			Current: len(files),
			Total:   len(files),
		})
	}

	return files, nil
}
