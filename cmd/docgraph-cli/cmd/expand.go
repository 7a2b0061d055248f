package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docgraph/internal/application/commands"
)

var (
	expandFrom []string
	expandJSON bool
)

var expandCmd = &cobra.Command{
	Use:   "expand <file.md>",
	Short: "Expand a document one hop",
	Long: `Load the direct link targets of a document that are not already part
of the graph. Paths passed via --loaded are treated as already loaded.

Examples:
  docgraph-cli expand notes/advanced/config.md
  docgraph-cli expand notes/readme.md --loaded notes/readme.md --loaded notes/todo.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		loaded := make(map[string]bool, len(expandFrom))
		for _, p := range expandFrom {
			loaded[p] = true
		}

		res, err := commands.NewExpandCommand(GetSession(), args[0], loaded).Execute(ctx)
		if err != nil {
			return err
		}

		if expandJSON {
			return json.NewEncoder(os.Stdout).Encode(res)
		}

		if !res.HasNewContent {
			fmt.Println("no new documents")
			return nil
		}
		for _, n := range res.NewNodes {
			fmt.Printf("%s  %s\n", n.FilePath, n.Title)
		}
		return nil
	},
}

func init() {
	expandCmd.Flags().StringArrayVar(&expandFrom, "loaded", nil, "corpus-relative path already in the graph (repeatable)")
	expandCmd.Flags().BoolVar(&expandJSON, "json", false, "emit the expansion as JSON")
	rootCmd.AddCommand(expandCmd)
}
