package commands

import (
	"context"

	"docgraph/internal/application"
	"docgraph/internal/domain"
	"docgraph/internal/graph"
)

// ExpandCommand fans out one hop from an already-loaded node
type ExpandCommand struct {
	session     *graph.Session
	FilePath    string
	LoadedPaths map[string]bool
}

// NewExpandCommand creates a new ExpandCommand
func NewExpandCommand(session *graph.Session, filePath string, loadedPaths map[string]bool) *ExpandCommand {
	return &ExpandCommand{
		session:     session,
		FilePath:    filePath,
		LoadedPaths: loadedPaths,
	}
}

// Execute validates the target path and runs the expansion
func (c *ExpandCommand) Execute(ctx context.Context) (*domain.ExpandResult, error) {
	if err := application.ValidateCorpusPath("file", c.FilePath); err != nil {
		return nil, err
	}

	loaded := c.LoadedPaths
	if loaded == nil {
		loaded = make(map[string]bool)
	}

	return c.session.ExpandNode(ctx, graph.ExpandOptions{
		FilePath:    c.FilePath,
		LoadedPaths: loaded,
	})
}
