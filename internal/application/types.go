package application

import "docgraph/internal/domain"

// Re-export graph types for use by adapters
type (
	GraphData        = domain.GraphData
	DocumentNode     = domain.DocumentNode
	ExternalLinkNode = domain.ExternalLinkNode
	Edge             = domain.Edge
	ExternalLinkData = domain.ExternalLinkData
	ExpandResult     = domain.ExpandResult
)
