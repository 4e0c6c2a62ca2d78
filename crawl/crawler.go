// Package crawl implements the bounded breadth-first documentation crawl
// for one crate version, along with its frontier, rate limiting, and path
// normalization helpers.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/cratedocs"
)

// DefaultHost is the primary documentation host.
const DefaultHost = "https://docs.rs"

// DefaultFetchTimeout bounds each page request.
const DefaultFetchTimeout = 12 * time.Second

// Ensure Crawler implements cratedocs.DocCrawler at compile time.
var _ cratedocs.DocCrawler = (*Crawler)(nil)

// Crawler fetches documentation pages for one crate version at a time.
// Each Crawl invocation owns its own frontier; a Crawler is safe to share
// across concurrent per-crate pipelines.
type Crawler struct {
	// Fetcher retrieves page bodies.
	Fetcher cratedocs.Fetcher

	// Links extracts hrefs from fetched pages.
	Links cratedocs.LinkExtractor

	// Limiter rate-limits requests per documentation host. Optional.
	Limiter cratedocs.DomainLimiter

	// Sitemaps, when set, seeds the crawl with version-scoped URLs
	// discovered from the primary host's sitemap. Best-effort: discovery
	// failures are ignored.
	Sitemaps cratedocs.SitemapService

	// Hosts are the documentation hosts to try in order for every path.
	// The first entry is the primary host; any further entries are
	// mirrors. Defaults to [DefaultHost].
	Hosts []string

	// LinkFilterFor builds the per-crate link relevance predicate.
	// Defaults to DefaultLinkPredicate.
	LinkFilterFor func(name string) cratedocs.LinkPredicate

	// Timeout bounds each individual page request.
	// Defaults to DefaultFetchTimeout.
	Timeout time.Duration
}

// RootURL returns the documentation root for a crate version on the
// primary host.
func (c *Crawler) RootURL(name, version string) string {
	return fmt.Sprintf("%s/%s/%s/", c.primaryHost(), name, version)
}

// Crawl fetches up to budget documentation pages for the crate version.
//
// The frontier is seeded with the documentation root and a crate-index
// path guess. Each popped path is fetched from an ordered list of
// candidate URLs across the configured hosts; the first success wins, and
// a path whose every candidate fails is marked visited without retry.
// Links extracted from fetched pages are normalized and enqueued when the
// relevance predicate accepts them.
func (c *Crawler) Crawl(ctx context.Context, name, version string, budget int) (*cratedocs.CrawlResult, error) {
	if name == "" || version == "" {
		return nil, cratedocs.Errorf(cratedocs.EINVALID, "crate name and version required")
	}

	relevant := DefaultLinkPredicate(name)
	if c.LinkFilterFor != nil {
		relevant = c.LinkFilterFor(name)
	}

	frontier := NewFrontier()
	frontier.Push("")
	frontier.Push(name + "/")
	c.seedFromSitemap(ctx, frontier, name, version, relevant)

	result := &cratedocs.CrawlResult{}

	for {
		path, ok := frontier.Pop()
		if !ok {
			break
		}
		if frontier.Visited(path) {
			continue
		}
		if result.Fetched >= budget {
			break
		}
		if ctx.Err() != nil {
			break
		}

		body, ok := c.fetchPage(ctx, name, version, path)
		frontier.Visit(path)
		if !ok {
			continue
		}

		result.Pages = append(result.Pages, cratedocs.Page{
			Path: path,
			Body: body,
			Hash: PageHash(body),
		})
		result.Fetched++

		for _, href := range c.Links.Hrefs(body) {
			normalized := NormalizePath(href)
			if normalized == "" {
				continue
			}
			if !relevant(normalized) {
				continue
			}
			frontier.Push(normalized)
		}
	}

	result.Visited = frontier.VisitedSet()
	if result.Fetched == 0 {
		return result, cratedocs.Errorf(cratedocs.EUNAVAILABLE, "failed to fetch documentation pages for %s %s", name, version)
	}
	return result, nil
}

// fetchPage tries each candidate URL for the path in order and returns the
// first successful body. Failed candidates are abandoned without retry.
func (c *Crawler) fetchPage(ctx context.Context, name, version, path string) (string, bool) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	for _, candidate := range c.candidateURLs(name, version, path) {
		if c.Limiter != nil {
			if u, err := url.Parse(candidate); err == nil {
				if err := c.Limiter.Wait(ctx, u.Host); err != nil {
					return "", false
				}
			}
		}

		fetchCtx, cancel := context.WithTimeout(ctx, timeout)
		body, err := c.Fetcher.Fetch(fetchCtx, candidate)
		cancel()
		if err == nil {
			return body, true
		}
	}
	return "", false
}

// candidateURLs returns the ordered fetch candidates for a path: the
// version-scoped rustdoc template and the crate-index template, on every
// configured host.
func (c *Crawler) candidateURLs(name, version, path string) []string {
	hosts := c.Hosts
	if len(hosts) == 0 {
		hosts = []string{DefaultHost}
	}

	candidates := make([]string, 0, 2*len(hosts))
	for _, host := range hosts {
		candidates = append(candidates,
			fmt.Sprintf("%s/%s/%s/%s", host, name, version, path),
			fmt.Sprintf("%s/crate/%s/%s/%s", host, name, version, path),
		)
	}
	return candidates
}

// seedFromSitemap adds version-scoped sitemap URLs to the frontier.
// Discovery is a single best-effort pass; any failure leaves the default
// seeds in place.
func (c *Crawler) seedFromSitemap(ctx context.Context, frontier *Frontier, name, version string, relevant cratedocs.LinkPredicate) {
	if c.Sitemaps == nil {
		return
	}

	root := c.RootURL(name, version)
	urls, err := c.Sitemaps.DiscoverURLs(ctx, root, nil)
	if err != nil {
		return
	}

	scope := fmt.Sprintf("/%s/%s/", name, version)
	for _, u := range urls {
		idx := strings.Index(u, scope)
		if idx < 0 {
			continue
		}
		path := NormalizePath(u[idx+len(scope):])
		if path == "" || !relevant(path) {
			continue
		}
		frontier.Push(path)
	}
}

func (c *Crawler) primaryHost() string {
	if len(c.Hosts) > 0 {
		return c.Hosts[0]
	}
	return DefaultHost
}

// DefaultLinkPredicate accepts normalized paths that look like they belong
// to the crate's documentation: paths containing the crate name, crate
// index paths, struct/function/module pages, and anything with a page-file
// suffix.
func DefaultLinkPredicate(name string) cratedocs.LinkPredicate {
	return func(path string) bool {
		return strings.Contains(path, name) ||
			strings.HasPrefix(path, "crate") ||
			strings.Contains(path, "struct") ||
			strings.Contains(path, "fn") ||
			strings.Contains(path, "module") ||
			strings.HasSuffix(path, ".html")
	}
}
