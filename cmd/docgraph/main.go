package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"docgraph/internal/adapters/editor"
	"docgraph/internal/adapters/localfs"
	"docgraph/internal/adapters/sshfs"
	"docgraph/internal/adapters/tui"
	"docgraph/internal/config"
	"docgraph/internal/graph"
	"docgraph/internal/ports"
)

func main() {
	corpusFlag := flag.String("corpus", config.CorpusPath(), "path to the corpus root")
	sshFlag := flag.String("ssh", config.SSHTarget(), "remote corpus target (user@host:/path)")
	depthFlag := flag.Int("depth", 2, "maximum link distance from the focus document (0 = unbounded)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: docgraph [flags] <focus.md>")
		os.Exit(1)
	}
	focus := flag.Arg(0)

	var (
		gw         ports.FileSystemGateway
		corpusRoot string
	)
	if *sshFlag != "" {
		cfg, err := sshfs.ParseTarget(*sshFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		remote, err := sshfs.Dial(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer remote.Close()
		gw = remote
	} else {
		local := localfs.New(*corpusFlag)
		gw = local
		corpusRoot = local.Root()
	}

	session := graph.NewSession(gw)
	app := tui.NewApp(session, corpusRoot, focus, *depthFlag, editor.NewOpener())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
