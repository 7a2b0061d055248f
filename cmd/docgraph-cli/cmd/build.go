package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docgraph/internal/application/commands"
	"docgraph/internal/domain"
	"docgraph/internal/graph"
)

var (
	buildDepth    int
	buildMaxNodes int
	buildJSON     bool
)

var buildCmd = &cobra.Command{
	Use:   "build <focus.md>",
	Short: "Build the link graph around a focus document",
	Long: `Build the link graph by traversing wiki links breadth-first from the
focus document, within the depth and node limits.

Examples:
  docgraph-cli build notes/readme.md
  docgraph-cli build notes/readme.md --depth 3 --max-nodes 50
  docgraph-cli build notes/readme.md --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		buildCmd := commands.NewBuildCommand(GetSession(), args[0])
		buildCmd.MaxDepth = buildDepth
		buildCmd.MaxNodes = buildMaxNodes
		if !buildJSON {
			buildCmd.Progress = printProgress
		}

		g, err := buildCmd.Execute(ctx)
		if err != nil {
			return err
		}

		if buildJSON {
			return json.NewEncoder(os.Stdout).Encode(g)
		}

		printGraph(g)
		return nil
	},
}

func printProgress(p graph.Progress) {
	fmt.Fprintf(os.Stderr, "\r%s %d/%d %s\033[K", p.Phase, p.Current, p.Total, p.CurrentFile)
	if p.Current == p.Total {
		fmt.Fprintln(os.Stderr)
	}
}

func printGraph(g *domain.GraphData) {
	for _, n := range g.Nodes {
		fmt.Printf("%s  %s (%d words)\n", n.FilePath, n.Title, n.WordCount)
	}
	for _, e := range g.External.Nodes {
		fmt.Printf("%s  %d link(s)\n", e.Domain, len(e.URLs))
	}

	fmt.Printf("\n%d/%d documents loaded, %d internal links, %d external domains\n",
		g.LoadedDocuments, g.TotalDocuments, g.InternalLinkCount, g.External.DomainCount)
	if g.HasMore {
		fmt.Println("more documents available beyond the node limit")
	}
}

func init() {
	buildCmd.Flags().IntVarP(&buildDepth, "depth", "d", 2, "maximum link distance from the focus document (0 = unbounded)")
	buildCmd.Flags().IntVarP(&buildMaxNodes, "max-nodes", "n", 0, "maximum number of documents to load (0 = unbounded)")
	buildCmd.Flags().BoolVar(&buildJSON, "json", false, "emit the graph as JSON")
	rootCmd.AddCommand(buildCmd)
}
