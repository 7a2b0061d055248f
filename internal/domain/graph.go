package domain

import "encoding/json"

// EdgeType represents the kind of link an edge was built from
type EdgeType int

const (
	EdgeTypeDocument EdgeType = iota // link between two corpus documents
	EdgeTypeExternal                 // link from a document to an external domain
)

func (t EdgeType) String() string {
	switch t {
	case EdgeTypeDocument:
		return "document"
	case EdgeTypeExternal:
		return "external"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the edge type as its string name
func (t EdgeType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// DocumentNode represents a markdown document loaded into the graph
type DocumentNode struct {
	ID          string `json:"id"`        // "doc-<relative path>"
	FilePath    string `json:"file_path"` // corpus-relative path, forward slashes
	Title       string `json:"title"`     // frontmatter title, else first heading, else filename stem
	Description string `json:"description,omitempty"`
	WordCount   int    `json:"word_count"`
}

// ExternalLinkNode groups all URLs under one external domain
type ExternalLinkNode struct {
	ID     string   `json:"id"` // "ext-<domain>"
	Domain string   `json:"domain"`
	URLs   []string `json:"urls"` // appearance order, grouped but not deduplicated
}

// Edge is a directed link between two loaded nodes
type Edge struct {
	Source string   `json:"source"` // node ID
	Target string   `json:"target"` // node ID
	Type   EdgeType `json:"type"`
}

// ExternalLinkData is the aggregated external-link snapshot of a graph
type ExternalLinkData struct {
	Nodes          []ExternalLinkNode `json:"nodes"`
	Edges          []Edge             `json:"edges"` // document -> external, loaded documents only
	DomainCount    int                `json:"domain_count"`
	TotalLinkCount int                `json:"total_link_count"` // raw occurrences, not deduplicated
}

// GraphData is the result of a graph build
type GraphData struct {
	Nodes             []DocumentNode   `json:"nodes"`
	Edges             []Edge           `json:"edges"`
	TotalDocuments    int              `json:"total_documents"`  // every path discovered, including beyond the depth window
	LoadedDocuments   int              `json:"loaded_documents"` // paths materialized as nodes
	HasMore           bool             `json:"has_more"`         // build stopped at the node cap with work remaining
	External          ExternalLinkData `json:"external"`
	InternalLinkCount int              `json:"internal_link_count"`
	BacklinksLoading  bool             `json:"backlinks_loading"` // backlink scan has not run yet

	// LoadedPaths is the set of corpus-relative paths behind Nodes.
	// Expansion and the backlink scan key off it.
	LoadedPaths map[string]bool `json:"-"`
}

// ExpandResult is the outcome of a single-hop node expansion
type ExpandResult struct {
	NewNodes      []DocumentNode   `json:"new_nodes"`
	NewEdges      []Edge           `json:"new_edges"`
	External      ExternalLinkData `json:"external"`        // external links of the newly loaded documents only
	HasNewContent bool             `json:"has_new_content"` // true only when at least one new document node was produced
	LoadedPaths   map[string]bool  `json:"-"`               // input set plus any newly loaded paths
}
