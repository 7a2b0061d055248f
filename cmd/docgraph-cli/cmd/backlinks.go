package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"docgraph/internal/application/commands"
	"docgraph/internal/graph"
)

var (
	backlinksDepth    int
	backlinksMaxNodes int
)

var backlinksCmd = &cobra.Command{
	Use:   "backlinks <focus.md>",
	Short: "Scan the corpus for documents linking into the graph",
	Long: `Build the graph around the focus document, then scan every markdown
file in the corpus for links pointing at loaded documents. Results
stream as they are found; Ctrl-C stops the scan.

Examples:
  docgraph-cli backlinks notes/readme.md
  docgraph-cli backlinks notes/readme.md --depth 1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		buildCmd := commands.NewBuildCommand(GetSession(), args[0])
		buildCmd.MaxDepth = backlinksDepth
		buildCmd.MaxNodes = backlinksMaxNodes

		g, err := buildCmd.Execute(ctx)
		if err != nil {
			return err
		}

		scanCmd := commands.NewBacklinksCommand(GetSession(), g)
		scanCmd.OnUpdate = func(update graph.BacklinkUpdate) {
			fmt.Printf("%s  %s (%d link(s) into the graph)\n",
				update.Node.FilePath, update.Node.Title, len(update.Edges))
		}

		found, completed, err := scanCmd.Execute(ctx)
		if err != nil {
			return err
		}
		if !completed {
			fmt.Println("scan interrupted")
			return nil
		}
		if found == 0 {
			fmt.Println("no backlinks found")
		}
		return nil
	},
}

func init() {
	backlinksCmd.Flags().IntVarP(&backlinksDepth, "depth", "d", 2, "maximum link distance for the forward build (0 = unbounded)")
	backlinksCmd.Flags().IntVarP(&backlinksMaxNodes, "max-nodes", "n", 0, "maximum number of documents to load (0 = unbounded)")
	rootCmd.AddCommand(backlinksCmd)
}
