package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docgraph/internal/adapters/localfs"
	"docgraph/internal/adapters/sshfs"
	"docgraph/internal/config"
	"docgraph/internal/graph"
	"docgraph/internal/ports"
)

var (
	corpusPath string
	sshTarget  string

	session *graph.Session
	remote  *sshfs.Gateway
)

var rootCmd = &cobra.Command{
	Use:   "docgraph-cli",
	Short: "CLI for exploring markdown link graphs",
	Long: `docgraph-cli builds and explores the link graph of a markdown corpus.

It traverses wiki links outward from a focus document, expands
individual nodes, scans the corpus for backlinks, and aggregates
external links by domain. It works against a local directory or a
remote corpus over SSH.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var gw ports.FileSystemGateway
		if sshTarget != "" {
			cfg, err := sshfs.ParseTarget(sshTarget)
			if err != nil {
				return err
			}
			remote, err = sshfs.Dial(cfg)
			if err != nil {
				return err
			}
			gw = remote
		} else {
			gw = localfs.New(corpusPath)
		}

		session = graph.NewSession(gw)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if remote != nil {
			remote.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&corpusPath, "corpus", "c", config.CorpusPath(), "path to the corpus root")
	rootCmd.PersistentFlags().StringVar(&sshTarget, "ssh", config.SSHTarget(), "remote corpus target (user@host:/path)")
}

// GetSession returns the initialized graph session
func GetSession() *graph.Session {
	return session
}
