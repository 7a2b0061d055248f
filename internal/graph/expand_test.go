package graph

import (
	"context"
	"testing"
)

func TestExpandNode_SingleHopFanOut(t *testing.T) {
	s := NewSession(scenarioGateway(t))

	g, err := s.BuildGraph(context.Background(), BuildOptions{FocusFile: "readme.md", MaxDepth: 1})
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}

	res, err := s.ExpandNode(context.Background(), ExpandOptions{
		FilePath:    "getting-started.md",
		LoadedPaths: g.LoadedPaths,
	})
	if err != nil {
		t.Fatalf("ExpandNode failed: %v", err)
	}

	if !res.HasNewContent {
		t.Fatal("expansion reaching a new document should report new content")
	}
	if len(res.NewNodes) != 1 || res.NewNodes[0].ID != "doc-advanced/config.md" {
		t.Fatalf("expected doc-advanced/config.md, got %v", nodeIDs(res.NewNodes))
	}
	if !hasEdge(res.NewEdges, "doc-getting-started.md", "doc-advanced/config.md") {
		t.Error("missing edge from expanded file to new node")
	}
	if !res.LoadedPaths["advanced/config.md"] {
		t.Error("new target should join the loaded set")
	}

	// Single hop only: config's own neighborhood is untouched
	for _, n := range res.NewNodes {
		if n.ID != "doc-advanced/config.md" {
			t.Errorf("expansion recursed beyond one hop into %s", n.ID)
		}
	}
}

func TestExpandNode_AlreadyLoadedTargetsAddNothing(t *testing.T) {
	s := NewSession(scenarioGateway(t))

	g, err := s.BuildGraph(context.Background(), BuildOptions{FocusFile: "readme.md", MaxDepth: 2})
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}

	res, err := s.ExpandNode(context.Background(), ExpandOptions{
		FilePath:    "getting-started.md",
		LoadedPaths: g.LoadedPaths,
	})
	if err != nil {
		t.Fatalf("ExpandNode failed: %v", err)
	}

	if res.HasNewContent {
		t.Error("expansion into a fully loaded neighborhood has no new content")
	}
	if len(res.NewNodes) != 0 || len(res.NewEdges) != 0 {
		t.Errorf("expected no new nodes or edges, got %d/%d", len(res.NewNodes), len(res.NewEdges))
	}
}

func TestExpandNode_DoesNotRepeatOwnExternals(t *testing.T) {
	gw := newFakeGateway()
	gw.write("a.md", "Only an external [link](https://example.com/page).\n")
	s := NewSession(gw)

	g, err := s.BuildGraph(context.Background(), BuildOptions{FocusFile: "a.md"})
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}
	if g.External.TotalLinkCount != 1 {
		t.Fatalf("build should represent the external once, got %d", g.External.TotalLinkCount)
	}

	// a.md is already loaded: expanding it must not re-report the
	// external the build already aggregated
	res, err := s.ExpandNode(context.Background(), ExpandOptions{
		FilePath:    "a.md",
		LoadedPaths: g.LoadedPaths,
	})
	if err != nil {
		t.Fatalf("ExpandNode failed: %v", err)
	}

	if res.HasNewContent {
		t.Error("external links alone must not set HasNewContent")
	}
	if res.External.DomainCount != 0 || res.External.TotalLinkCount != 0 {
		t.Errorf("already-represented externals must not come back, got %d domains / %d links",
			res.External.DomainCount, res.External.TotalLinkCount)
	}
	if len(res.External.Edges) != 0 {
		t.Errorf("expected no external edges, got %d", len(res.External.Edges))
	}
}

func TestExpandNode_ReportsNewChildExternals(t *testing.T) {
	s := NewSession(scenarioGateway(t))

	g, err := s.BuildGraph(context.Background(), BuildOptions{FocusFile: "readme.md", MaxDepth: 1})
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}

	// Expanding getting-started loads advanced/config, whose autolink
	// was not represented in the depth-1 graph
	res, err := s.ExpandNode(context.Background(), ExpandOptions{
		FilePath:    "getting-started.md",
		LoadedPaths: g.LoadedPaths,
	})
	if err != nil {
		t.Fatalf("ExpandNode failed: %v", err)
	}

	if res.External.DomainCount != 1 {
		t.Fatalf("expected the new child's domain, got %d", res.External.DomainCount)
	}
	if res.External.Nodes[0].Domain != "docs.example.com" {
		t.Errorf("expected docs.example.com, got %s", res.External.Nodes[0].Domain)
	}
	if !hasEdge(res.External.Edges, "doc-advanced/config.md", "ext-docs.example.com") {
		t.Error("external edge should originate from the newly loaded document")
	}
}

func TestExpandNode_MissingFileIsNoOp(t *testing.T) {
	s := NewSession(scenarioGateway(t))

	loaded := map[string]bool{"readme.md": true}
	res, err := s.ExpandNode(context.Background(), ExpandOptions{
		FilePath:    "gone.md",
		LoadedPaths: loaded,
	})
	if err != nil {
		t.Fatalf("missing file must not be an error, got %v", err)
	}

	if res.HasNewContent || len(res.NewNodes) != 0 || len(res.NewEdges) != 0 {
		t.Error("missing file should produce an empty result")
	}
	if len(res.LoadedPaths) != len(loaded) {
		t.Error("loaded set must be unchanged for a missing file")
	}
}

func TestExpandNode_UnreadableChildIsSkipped(t *testing.T) {
	gw := scenarioGateway(t)
	gw.failReads["advanced/config.md"] = true
	s := NewSession(gw)

	g, err := s.BuildGraph(context.Background(), BuildOptions{FocusFile: "readme.md", MaxDepth: 1})
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}

	res, err := s.ExpandNode(context.Background(), ExpandOptions{
		FilePath:    "getting-started.md",
		LoadedPaths: g.LoadedPaths,
	})
	if err != nil {
		t.Fatalf("ExpandNode failed: %v", err)
	}

	if res.HasNewContent {
		t.Error("an unreadable child is skipped, not reported as new content")
	}
}
