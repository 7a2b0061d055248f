package domain

import (
	"path"
	"strings"
)

// Fingerprint is a cheap staleness check for a file: size plus mtime.
// Two fingerprints match only when both fields are equal.
type Fingerprint struct {
	Size    int64
	ModTime int64 // unix nanoseconds
}

// ExternalLink is an http(s) URL found in a document
type ExternalLink struct {
	URL    string
	Domain string // URL host, port stripped
}

// Frontmatter holds the metadata block at the top of a document
type Frontmatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// ParseResult is the extracted view of one document
type ParseResult struct {
	InternalLinks []string // corpus-relative targets, appearance order, unique
	ExternalLinks []ExternalLink
	Frontmatter   Frontmatter
	Title         string
	WordCount     int
}

// DocumentNodeID returns the graph node ID for a corpus-relative path
func DocumentNodeID(relPath string) string {
	return "doc-" + path.Clean(strings.ReplaceAll(relPath, "\\", "/"))
}

// ExternalNodeID returns the graph node ID for an external domain
func ExternalNodeID(domain string) string {
	return "ext-" + domain
}

// TitleFromPath derives a fallback title from a file path: the base
// name without its extension
func TitleFromPath(relPath string) string {
	base := path.Base(strings.ReplaceAll(relPath, "\\", "/"))
	ext := path.Ext(base)
	return strings.TrimSuffix(base, ext)
}

// Node builds the DocumentNode for a parsed document
func (r ParseResult) Node(relPath string) DocumentNode {
	desc := r.Frontmatter.Description
	return DocumentNode{
		ID:          DocumentNodeID(relPath),
		FilePath:    relPath,
		Title:       r.Title,
		Description: desc,
		WordCount:   r.WordCount,
	}
}
