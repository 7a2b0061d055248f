// Package markdown extracts links and metadata from corpus documents.
package markdown

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"docgraph/internal/domain"
)

var (
	// Wiki links: [[target]] or [[target|label]]
	wikiLinkPattern = regexp.MustCompile(`\[\[([^\]|]+)(?:\|[^\]]+)?\]\]`)

	// Inline links: [label](https://...)
	inlineLinkPattern = regexp.MustCompile(`\[[^\]]*\]\((https?://[^)\s]+)\)`)

	// Autolinks: <https://...>
	autoLinkPattern = regexp.MustCompile(`<(https?://[^>\s]+)>`)

	headingPattern = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)
)

// Extract parses document content into links, frontmatter, title and
// word count. relPath is the document's corpus-relative path; internal
// link targets are resolved against its directory. The result is
// deterministic for a given input, and link order mirrors appearance
// order in the source text.
func Extract(content, relPath string) domain.ParseResult {
	fm, body := splitFrontmatter(content)

	res := domain.ParseResult{
		Frontmatter:   fm,
		InternalLinks: internalLinks(body, relPath),
		ExternalLinks: externalLinks(body),
		WordCount:     len(strings.Fields(body)),
	}
	res.Title = title(fm, body, relPath)
	return res
}

// splitFrontmatter strips a leading "---" delimited YAML block.
// Malformed YAML degrades to an empty frontmatter; the block is still
// removed from the body.
func splitFrontmatter(content string) (domain.Frontmatter, string) {
	var fm domain.Frontmatter

	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return fm, normalized
	}

	rest := normalized[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return fm, normalized
	}
	block := rest[:end]
	body := rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")

	// Best effort: a broken block never aborts parsing
	_ = yaml.Unmarshal([]byte(block), &fm)

	return fm, body
}

// internalLinks resolves wiki links to corpus-relative paths, unique,
// in appearance order. Targets without an extension get ".md". Targets
// escaping the corpus root are dropped.
func internalLinks(body, relPath string) []string {
	dir := path.Dir(strings.ReplaceAll(relPath, "\\", "/"))

	var links []string
	seen := make(map[string]bool)

	for _, match := range wikiLinkPattern.FindAllStringSubmatch(body, -1) {
		target := strings.TrimSpace(match[1])
		if target == "" {
			continue
		}
		target = strings.ReplaceAll(target, "\\", "/")
		if path.Ext(target) == "" {
			target += ".md"
		}

		resolved := path.Clean(path.Join(dir, target))
		if resolved == ".." || strings.HasPrefix(resolved, "../") {
			continue
		}
		if seen[resolved] {
			continue
		}
		seen[resolved] = true
		links = append(links, resolved)
	}

	return links
}

// externalLinks collects http(s) URLs in appearance order, inline
// syntax first within each occurrence, not deduplicated.
func externalLinks(body string) []domain.ExternalLink {
	type hit struct {
		pos int
		url string
	}
	var hits []hit

	for _, m := range inlineLinkPattern.FindAllStringSubmatchIndex(body, -1) {
		hits = append(hits, hit{pos: m[2], url: body[m[2]:m[3]]})
	}
	for _, m := range autoLinkPattern.FindAllStringSubmatchIndex(body, -1) {
		hits = append(hits, hit{pos: m[2], url: body[m[2]:m[3]]})
	}

	// Restore source order across both syntaxes
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].pos < hits[j-1].pos; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}

	var links []domain.ExternalLink
	for _, h := range hits {
		dom := linkDomain(h.url)
		if dom == "" {
			continue
		}
		links = append(links, domain.ExternalLink{URL: h.url, Domain: dom})
	}
	return links
}

// linkDomain returns the host of a URL with any port stripped
func linkDomain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// title picks the document title: frontmatter, else the first heading,
// else the filename stem
func title(fm domain.Frontmatter, body, relPath string) string {
	if fm.Title != "" {
		return fm.Title
	}
	if m := headingPattern.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	return domain.TitleFromPath(relPath)
}
