package commands

import (
	"context"

	"docgraph/internal/application"
	"docgraph/internal/graph"
)

// CacheStatsCommand reports parse cache statistics
type CacheStatsCommand struct {
	session *graph.Session
}

// NewCacheStatsCommand creates a new CacheStatsCommand
func NewCacheStatsCommand(session *graph.Session) *CacheStatsCommand {
	return &CacheStatsCommand{session: session}
}

// Execute returns the current cache statistics
func (c *CacheStatsCommand) Execute(_ context.Context) graph.CacheStats {
	return c.session.CacheStats()
}

// ClearCacheCommand empties the parse cache
type ClearCacheCommand struct {
	session *graph.Session
}

// NewClearCacheCommand creates a new ClearCacheCommand
func NewClearCacheCommand(session *graph.Session) *ClearCacheCommand {
	return &ClearCacheCommand{session: session}
}

// Execute clears the cache
func (c *ClearCacheCommand) Execute(_ context.Context) {
	c.session.ClearCache()
}

// InvalidateCacheCommand drops cached entries for specific files,
// typically after an external notifier reports changes
type InvalidateCacheCommand struct {
	session *graph.Session
	Paths   []string
}

// NewInvalidateCacheCommand creates a new InvalidateCacheCommand
func NewInvalidateCacheCommand(session *graph.Session, paths []string) *InvalidateCacheCommand {
	return &InvalidateCacheCommand{session: session, Paths: paths}
}

// Execute validates and invalidates each path
func (c *InvalidateCacheCommand) Execute(_ context.Context) error {
	for _, p := range c.Paths {
		if err := application.ValidateCorpusPath("path", p); err != nil {
			return err
		}
	}
	c.session.InvalidateCacheForFiles(c.Paths...)
	return nil
}
