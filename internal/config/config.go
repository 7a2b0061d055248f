package config

import "os"

const DefaultCorpusPath = "~/Documents/notes"

// CorpusPath returns the corpus path from the DOCGRAPH_CORPUS env var,
// falling back to DefaultCorpusPath.
func CorpusPath() string {
	if env := os.Getenv("DOCGRAPH_CORPUS"); env != "" {
		return env
	}
	return DefaultCorpusPath
}

// SSHTarget returns the optional remote corpus target (user@host:/path)
// from the DOCGRAPH_SSH env var. Empty means the corpus is local.
func SSHTarget() string {
	return os.Getenv("DOCGRAPH_SSH")
}
