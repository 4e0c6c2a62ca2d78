package mock

import (
	"context"

	"github.com/fwojciec/cratedocs"
)

var _ cratedocs.DocCrawler = (*DocCrawler)(nil)

// DocCrawler is a mock implementation of cratedocs.DocCrawler.
type DocCrawler struct {
	CrawlFn func(ctx context.Context, name, version string, budget int) (*cratedocs.CrawlResult, error)
}

func (c *DocCrawler) Crawl(ctx context.Context, name, version string, budget int) (*cratedocs.CrawlResult, error) {
	return c.CrawlFn(ctx, name, version, budget)
}

var _ cratedocs.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of cratedocs.LinkExtractor.
type LinkExtractor struct {
	HrefsFn func(html string) []string
}

func (l *LinkExtractor) Hrefs(html string) []string {
	return l.HrefsFn(html)
}

var _ cratedocs.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of cratedocs.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
