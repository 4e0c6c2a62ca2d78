package cratedocs

import "context"

// Page is a single fetched documentation page.
type Page struct {
	// Path is the normalized docs path the page was fetched for.
	// Empty for the documentation root.
	Path string

	// Body is the raw HTML of the page.
	Body string

	// Hash is a content hash of Body, used to identify duplicate pages
	// served under different paths.
	Hash string
}

// CrawlResult holds the outcome of one bounded documentation crawl.
type CrawlResult struct {
	// Pages are the successfully fetched pages in fetch order.
	Pages []Page

	// Fetched is the number of successfully fetched pages.
	Fetched int

	// Visited is the set of normalized paths the crawl attempted,
	// including paths for which every candidate URL failed.
	Visited map[string]bool
}

// LinkExtractor pulls link targets out of an HTML page.
type LinkExtractor interface {
	// Hrefs returns the href of every anchor element in document order.
	Hrefs(html string) []string
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// DocCrawler performs a bounded breadth-first traversal of the
// documentation site for one crate version.
type DocCrawler interface {
	// Crawl fetches up to budget pages of documentation for the crate
	// version, following links that pass the crawler's relevance filter.
	// A path is fetched at most once per crawl; fetch failures are
	// abandoned without retry. Returns EUNAVAILABLE only if no page could
	// be fetched at all.
	Crawl(ctx context.Context, name, version string, budget int) (*CrawlResult, error)
}
