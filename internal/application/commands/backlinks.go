package commands

import (
	"context"

	"docgraph/internal/domain"
	"docgraph/internal/graph"
)

// BacklinksCommand runs a backlink scan against a built graph and
// delivers each discovery as it arrives
type BacklinksCommand struct {
	session  *graph.Session
	Graph    *domain.GraphData
	OnUpdate func(graph.BacklinkUpdate)
	Progress graph.ProgressFunc
}

// NewBacklinksCommand creates a new BacklinksCommand
func NewBacklinksCommand(session *graph.Session, g *domain.GraphData) *BacklinksCommand {
	return &BacklinksCommand{
		session: session,
		Graph:   g,
	}
}

// Execute drains the scan. It returns the number of backlink documents
// found and whether the corpus was exhausted; cancelling ctx stops the
// scan after the in-flight batch and reports completed=false.
func (c *BacklinksCommand) Execute(ctx context.Context) (found int, completed bool, err error) {
	scan := c.session.StartBacklinkScan(ctx, c.Graph, c.Progress)

	for update := range scan.Updates() {
		found++
		if c.OnUpdate != nil {
			c.OnUpdate(update)
		}
	}

	return found, scan.Wait(), scan.Err()
}
