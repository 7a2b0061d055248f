package main

import "docgraph/cmd/docgraph-cli/cmd"

func main() {
	cmd.Execute()
}
