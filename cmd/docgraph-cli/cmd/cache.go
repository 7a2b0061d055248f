package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"docgraph/internal/application/commands"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the parse cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show parse cache statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats := commands.NewCacheStatsCommand(GetSession()).Execute(context.Background())
		fmt.Printf("%d file(s) cached\n", stats.ParsedFileCount)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop all cached parse results",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		commands.NewClearCacheCommand(GetSession()).Execute(context.Background())
		fmt.Println("cache cleared")
		return nil
	},
}

var cacheInvalidateCmd = &cobra.Command{
	Use:   "invalidate <file.md> [file.md...]",
	Short: "Drop cached parse results for specific files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := commands.NewInvalidateCacheCommand(GetSession(), args).Execute(context.Background()); err != nil {
			return err
		}
		fmt.Printf("%d file(s) invalidated\n", len(args))
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheInvalidateCmd)
	rootCmd.AddCommand(cacheCmd)
}
