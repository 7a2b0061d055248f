// Package graph builds a navigable graph of interlinked markdown
// documents: BFS discovery from a focus file, a staleness-checked
// parse cache, an abortable backlink scan over the full corpus, and
// single-node expansion.
package graph

import (
	"context"

	"docgraph/internal/domain"
	"docgraph/internal/markdown"
	"docgraph/internal/ports"
)

// yieldBatchSize is how many documents are processed between
// cancellation checks, in both the builder and the backlink scan.
const yieldBatchSize = 16

// ProgressPhase indicates which phase of a build is in progress
type ProgressPhase int

const (
	// PhaseScanning indicates the corpus is being enumerated
	PhaseScanning ProgressPhase = iota

	// PhaseParsing indicates documents are being parsed into nodes
	PhaseParsing
)

func (p ProgressPhase) String() string {
	switch p {
	case PhaseScanning:
		return "scanning"
	case PhaseParsing:
		return "parsing"
	default:
		return "unknown"
	}
}

// Progress is a snapshot of build or scan progress
type Progress struct {
	Phase       ProgressPhase
	Current     int
	Total       int
	CurrentFile string
}

// ProgressFunc receives progress updates. May be nil.
type ProgressFunc func(Progress)

// Session owns the per-corpus state of the engine: the gateway and the
// parse cache. One Session per corpus root; independent sessions never
// share state.
type Session struct {
	gw    ports.FileSystemGateway
	cache *ParseCache
}

// NewSession creates a session over the given gateway
func NewSession(gw ports.FileSystemGateway) *Session {
	return &Session{
		gw:    gw,
		cache: NewParseCache(),
	}
}

// ClearCache drops every cached parse result
func (s *Session) ClearCache() {
	s.cache.Clear()
}

// InvalidateCacheForFiles drops the cached results for the given
// corpus-relative paths
func (s *Session) InvalidateCacheForFiles(paths ...string) {
	s.cache.Invalidate(paths...)
}

// CacheStats returns the parse cache statistics
func (s *Session) CacheStats() CacheStats {
	return s.cache.Stats()
}

// resolve stats, reads and parses one document, going through the
// cache unless the gateway is remote. The returned error marks the
// path as unavailable; callers skip it and continue.
func (s *Session) resolve(ctx context.Context, relPath string) (domain.ParseResult, error) {
	fp, err := s.gw.Stat(ctx, relPath)
	if err != nil {
		return domain.ParseResult{}, err
	}

	cacheable := !s.gw.Remote()
	if cacheable {
		if res, ok := s.cache.Get(relPath, fp); ok {
			return res, nil
		}
	}

	content, err := s.gw.ReadFile(ctx, relPath)
	if err != nil {
		return domain.ParseResult{}, err
	}

	res := markdown.Extract(content, relPath)
	if cacheable {
		s.cache.Put(relPath, fp, res)
	}
	return res, nil
}
