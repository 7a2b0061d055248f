package graph

import (
	"context"
	"path"
	"strings"

	"docgraph/internal/domain"
)

// BuildOptions configures a graph build
type BuildOptions struct {
	// FocusFile is the corpus-relative path BFS starts from
	FocusFile string

	// MaxDepth limits how many hops from the focus file are loaded.
	// Zero or negative means unbounded.
	MaxDepth int

	// MaxNodes caps how many documents are loaded. Zero or negative
	// means unbounded. The focus file always fits under the cap.
	MaxNodes int

	// Progress receives parsing updates. May be nil.
	Progress ProgressFunc
}

type queueItem struct {
	path  string
	depth int
}

// BuildGraph discovers the document subgraph reachable from the focus
// file with a breadth-first traversal. Traversal order at a given depth
// follows link appearance order within each source document. Per-path
// read or parse failures skip that path and the traversal continues.
//
// A missing focus file yields an empty GraphData, not an error. The
// returned error is non-nil only when ctx is cancelled mid-build.
func (s *Session) BuildGraph(ctx context.Context, opts BuildOptions) (*domain.GraphData, error) {
	focus := normalizePath(opts.FocusFile)

	if _, err := s.gw.Stat(ctx, focus); err != nil {
		return &domain.GraphData{LoadedPaths: make(map[string]bool)}, nil
	}

	var (
		queue   = []queueItem{{path: focus, depth: 0}}
		visited = map[string]bool{focus: true}
		known   = map[string]bool{focus: true}
		loaded  = make(map[string]bool)

		nodes     []domain.DocumentNode
		loadOrder []string
		linksBy   = make(map[string][]string)
		agg       = newExternalAggregator()
		processed int
	)

	for len(queue) > 0 {
		if opts.MaxNodes > 0 && len(nodes) >= opts.MaxNodes {
			break
		}

		// Cancellation is only observed between batches
		if processed > 0 && processed%yieldBatchSize == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		processed++

		item := queue[0]
		queue = queue[1:]

		res, err := s.resolve(ctx, item.path)
		if err != nil {
			continue
		}

		node := res.Node(item.path)
		nodes = append(nodes, node)
		loaded[item.path] = true
		loadOrder = append(loadOrder, item.path)
		linksBy[item.path] = res.InternalLinks

		for _, target := range res.InternalLinks {
			if visited[target] {
				continue
			}
			visited[target] = true
			known[target] = true
			if opts.MaxDepth <= 0 || item.depth+1 <= opts.MaxDepth {
				queue = append(queue, queueItem{path: target, depth: item.depth + 1})
			}
		}

		for _, ext := range res.ExternalLinks {
			agg.add(ext.Domain, ext.URL, node.ID)
		}

		if opts.Progress != nil {
			opts.Progress(Progress{
				Phase:       PhaseParsing,
				Current:     len(nodes),
				Total:       len(known),
				CurrentFile: item.path,
			})
		}
	}

	g := &domain.GraphData{
		Nodes:            nodes,
		TotalDocuments:   len(known),
		LoadedDocuments:  len(nodes),
		HasMore:          opts.MaxNodes > 0 && len(queue) > 0,
		External:         agg.snapshot(),
		BacklinksLoading: true,
		LoadedPaths:      loaded,
	}

	// Edges are built after the loop so both endpoints are known to be
	// loaded at edge-construction time.
	for _, src := range loadOrder {
		for _, target := range linksBy[src] {
			if !loaded[target] {
				continue
			}
			g.Edges = append(g.Edges, domain.Edge{
				Source: domain.DocumentNodeID(src),
				Target: domain.DocumentNodeID(target),
				Type:   domain.EdgeTypeDocument,
			})
		}
	}
	g.InternalLinkCount = len(g.Edges)

	return g, nil
}

// normalizePath converts a caller-supplied path to the corpus-relative
// forward-slash form used as node identity
func normalizePath(p string) string {
	return path.Clean(strings.ReplaceAll(p, "\\", "/"))
}
