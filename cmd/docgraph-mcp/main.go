package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"docgraph/internal/adapters/localfs"
	mcpadapter "docgraph/internal/adapters/mcp"
	"docgraph/internal/adapters/sshfs"
	"docgraph/internal/config"
	"docgraph/internal/graph"
	"docgraph/internal/ports"
)

func main() {
	corpusFlag := flag.String("corpus", config.CorpusPath(), "path to the corpus root")
	sshFlag := flag.String("ssh", config.SSHTarget(), "remote corpus target (user@host:/path)")
	flag.Parse()

	var gw ports.FileSystemGateway
	if *sshFlag != "" {
		cfg, err := sshfs.ParseTarget(*sshFlag)
		if err != nil {
			log.Fatalf("docgraph-mcp: %v", err)
		}
		remote, err := sshfs.Dial(cfg)
		if err != nil {
			log.Fatalf("docgraph-mcp: %v", err)
		}
		defer remote.Close()
		gw = remote
	} else {
		gw = localfs.New(*corpusFlag)
	}

	session := graph.NewSession(gw)

	mcpServer := server.NewMCPServer(
		"docgraph-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterGraphTools(mcpServer, session)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("docgraph-mcp: %v", err)
	}
}
