package commands

import (
	"context"

	"docgraph/internal/application"
	"docgraph/internal/domain"
	"docgraph/internal/graph"
)

// BuildCommand builds the document graph around a focus file
type BuildCommand struct {
	session  *graph.Session
	Focus    string
	MaxDepth int
	MaxNodes int
	Progress graph.ProgressFunc
}

// NewBuildCommand creates a new BuildCommand
func NewBuildCommand(session *graph.Session, focus string) *BuildCommand {
	return &BuildCommand{
		session: session,
		Focus:   focus,
	}
}

// Execute validates the options and runs the build
func (c *BuildCommand) Execute(ctx context.Context) (*domain.GraphData, error) {
	if err := application.ValidateCorpusPath("focus", c.Focus); err != nil {
		return nil, err
	}

	return c.session.BuildGraph(ctx, graph.BuildOptions{
		FocusFile: c.Focus,
		MaxDepth:  c.MaxDepth,
		MaxNodes:  c.MaxNodes,
		Progress:  c.Progress,
	})
}
