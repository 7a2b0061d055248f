package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"docgraph/internal/application/commands"
	"docgraph/internal/domain"
	"docgraph/internal/graph"
)

// RegisterGraphTools adds all graph tools to the MCP server.
func RegisterGraphTools(s *server.MCPServer, session *graph.Session) {
	s.AddTool(buildTool(), buildHandler(session))
	s.AddTool(expandTool(), expandHandler(session))
	s.AddTool(backlinksTool(), backlinksHandler(session))
	s.AddTool(cacheStatsTool(), cacheStatsHandler(session))
}

// --- graph_build ---

// buildResult wraps GraphData with the loaded-path set so stateless
// clients can feed it back into graph_expand and graph_backlinks.
type buildResult struct {
	*domain.GraphData
	LoadedPaths []string `json:"loaded_paths"`
}

func buildTool() mcp.Tool {
	return mcp.NewTool("graph_build",
		mcp.WithDescription("Build the link graph around a focus document. Traverses wiki links breadth-first and aggregates external links by domain."),
		mcp.WithString("focus",
			mcp.Description("Corpus-relative path of the focus document (e.g. notes/readme.md)"),
			mcp.Required(),
		),
		mcp.WithNumber("max_depth",
			mcp.Description("Maximum link distance from the focus document. 0 or omitted means unbounded."),
		),
		mcp.WithNumber("max_nodes",
			mcp.Description("Maximum number of document nodes to load. 0 or omitted means unbounded."),
		),
	)
}

func buildHandler(session *graph.Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		focus := req.GetString("focus", "")
		if focus == "" {
			return toolError(fmt.Errorf("focus is required"))
		}

		cmd := commands.NewBuildCommand(session, focus)
		cmd.MaxDepth = req.GetInt("max_depth", 0)
		cmd.MaxNodes = req.GetInt("max_nodes", 0)

		g, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return toolJSON(buildResult{GraphData: g, LoadedPaths: sortedPaths(g.LoadedPaths)})
	}
}

// --- graph_expand ---

type expandResult struct {
	*domain.ExpandResult
	LoadedPaths []string `json:"loaded_paths"`
}

func expandTool() mcp.Tool {
	return mcp.NewTool("graph_expand",
		mcp.WithDescription("Expand one document node a single hop: load its direct link targets that are not yet in the graph."),
		mcp.WithString("file",
			mcp.Description("Corpus-relative path of the document to expand"),
			mcp.Required(),
		),
		mcp.WithArray("loaded_paths",
			mcp.Description("Corpus-relative paths already loaded, from a previous graph_build or graph_expand result"),
		),
	)
}

func expandHandler(session *graph.Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file := req.GetString("file", "")
		if file == "" {
			return toolError(fmt.Errorf("file is required"))
		}

		loaded := make(map[string]bool)
		for _, p := range req.GetStringSlice("loaded_paths", nil) {
			loaded[p] = true
		}

		res, err := commands.NewExpandCommand(session, file, loaded).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return toolJSON(expandResult{ExpandResult: res, LoadedPaths: sortedPaths(res.LoadedPaths)})
	}
}

// --- graph_backlinks ---

type backlinksResult struct {
	Nodes     []domain.DocumentNode `json:"nodes"`
	Edges     []domain.Edge         `json:"edges"`
	Completed bool                  `json:"completed"`
}

func backlinksTool() mcp.Tool {
	return mcp.NewTool("graph_backlinks",
		mcp.WithDescription("Scan the whole corpus for documents that link into the current graph but were not reached by forward traversal."),
		mcp.WithString("focus",
			mcp.Description("Corpus-relative path of the focus document the graph was built around"),
			mcp.Required(),
		),
		mcp.WithNumber("max_depth",
			mcp.Description("Depth bound used for the forward build. 0 or omitted means unbounded."),
		),
		mcp.WithNumber("max_nodes",
			mcp.Description("Node cap used for the forward build. 0 or omitted means unbounded."),
		),
	)
}

func backlinksHandler(session *graph.Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		focus := req.GetString("focus", "")
		if focus == "" {
			return toolError(fmt.Errorf("focus is required"))
		}

		cmd := commands.NewBuildCommand(session, focus)
		cmd.MaxDepth = req.GetInt("max_depth", 0)
		cmd.MaxNodes = req.GetInt("max_nodes", 0)

		g, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var result backlinksResult
		scanCmd := commands.NewBacklinksCommand(session, g)
		scanCmd.OnUpdate = func(update graph.BacklinkUpdate) {
			result.Nodes = append(result.Nodes, update.Node)
			result.Edges = append(result.Edges, update.Edges...)
		}

		_, completed, err := scanCmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		result.Completed = completed

		return toolJSON(result)
	}
}

// --- cache_stats ---

func cacheStatsTool() mcp.Tool {
	return mcp.NewTool("cache_stats",
		mcp.WithDescription("Report parse cache statistics for the current session."),
	)
}

func cacheStatsHandler(session *graph.Session) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats := commands.NewCacheStatsCommand(session).Execute(ctx)
		return toolJSON(stats)
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func toolJSON(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(fmt.Errorf("encoding result: %w", err))
	}
	return mcp.NewToolResultText(string(data)), nil
}

func sortedPaths(set map[string]bool) []string {
	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
