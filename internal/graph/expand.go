package graph

import (
	"context"

	"docgraph/internal/domain"
)

// ExpandOptions configures a single-node expansion
type ExpandOptions struct {
	// FilePath is the corpus-relative path of the node to expand
	FilePath string

	// LoadedPaths is the set of paths already materialized in the graph
	LoadedPaths map[string]bool
}

// ExpandNode fans out one additional hop from an already-loaded node:
// each internal link target not yet in LoadedPaths becomes a new node
// plus an edge from the expanded file. Expansion never recurses deeper
// than one hop.
//
// A missing or unreadable file yields an empty result with the input
// LoadedPaths unchanged, not an error. The result's External data
// holds the external links of the newly loaded documents only: the
// expanded file is already part of the graph, so its own externals
// are already represented and are never re-reported. External links
// never set HasNewContent.
func (s *Session) ExpandNode(ctx context.Context, opts ExpandOptions) (*domain.ExpandResult, error) {
	filePath := normalizePath(opts.FilePath)

	res, err := s.resolve(ctx, filePath)
	if err != nil {
		return &domain.ExpandResult{LoadedPaths: opts.LoadedPaths}, nil
	}

	updated := make(map[string]bool, len(opts.LoadedPaths)+len(res.InternalLinks))
	for p := range opts.LoadedPaths {
		updated[p] = true
	}

	result := &domain.ExpandResult{LoadedPaths: updated}
	sourceID := domain.DocumentNodeID(filePath)
	agg := newExternalAggregator()

	for _, target := range res.InternalLinks {
		if updated[target] {
			continue
		}

		childRes, err := s.resolve(ctx, target)
		if err != nil {
			continue
		}

		node := childRes.Node(target)
		result.NewNodes = append(result.NewNodes, node)
		result.NewEdges = append(result.NewEdges, domain.Edge{
			Source: sourceID,
			Target: node.ID,
			Type:   domain.EdgeTypeDocument,
		})
		updated[target] = true

		for _, ext := range childRes.ExternalLinks {
			agg.add(ext.Domain, ext.URL, node.ID)
		}
	}
	result.External = agg.snapshot()

	result.HasNewContent = len(result.NewNodes) > 0
	return result, nil
}
