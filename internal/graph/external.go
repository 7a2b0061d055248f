package graph

import "docgraph/internal/domain"

// externalAggregator groups external URLs by domain as loaded
// documents report them. Domains keep first-seen order; URLs keep
// appearance order and are grouped, not deduplicated.
type externalAggregator struct {
	order    []string
	byDomain map[string][]string
	edges    []domain.Edge
	edgeSeen map[string]bool
	total    int
}

func newExternalAggregator() *externalAggregator {
	return &externalAggregator{
		byDomain: make(map[string][]string),
		edgeSeen: make(map[string]bool),
	}
}

// add records one external link occurrence from a loaded document
func (a *externalAggregator) add(dom, url, sourceDocID string) {
	if _, ok := a.byDomain[dom]; !ok {
		a.order = append(a.order, dom)
	}
	a.byDomain[dom] = append(a.byDomain[dom], url)
	a.total++

	key := sourceDocID + "\x00" + dom
	if !a.edgeSeen[key] {
		a.edgeSeen[key] = true
		a.edges = append(a.edges, domain.Edge{
			Source: sourceDocID,
			Target: domain.ExternalNodeID(dom),
			Type:   domain.EdgeTypeExternal,
		})
	}
}

// snapshot returns the aggregated external-link view
func (a *externalAggregator) snapshot() domain.ExternalLinkData {
	data := domain.ExternalLinkData{
		DomainCount:    len(a.order),
		TotalLinkCount: a.total,
	}
	for _, dom := range a.order {
		data.Nodes = append(data.Nodes, domain.ExternalLinkNode{
			ID:     domain.ExternalNodeID(dom),
			Domain: dom,
			URLs:   a.byDomain[dom],
		})
	}
	data.Edges = append(data.Edges, a.edges...)
	return data
}
