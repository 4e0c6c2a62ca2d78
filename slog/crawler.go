package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cratedocs"
)

// Ensure LoggingCrawler implements cratedocs.DocCrawler.
var _ cratedocs.DocCrawler = (*LoggingCrawler)(nil)

// LoggingCrawler wraps a DocCrawler with per-crawl logging.
type LoggingCrawler struct {
	next   cratedocs.DocCrawler
	logger *slog.Logger
}

// NewLoggingCrawler creates a new LoggingCrawler.
func NewLoggingCrawler(next cratedocs.DocCrawler, logger *slog.Logger) *LoggingCrawler {
	return &LoggingCrawler{next: next, logger: logger}
}

// Crawl delegates to the wrapped crawler and logs the operation.
func (c *LoggingCrawler) Crawl(ctx context.Context, name, version string, budget int) (result *cratedocs.CrawlResult, err error) {
	defer func(begin time.Time) {
		fetched, visited := 0, 0
		if result != nil {
			fetched = result.Fetched
			visited = len(result.Visited)
		}
		c.logger.Info("crawl",
			"crate", name,
			"version", version,
			"budget", budget,
			"fetched", fetched,
			"visited", visited,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Crawl(ctx, name, version, budget)
}
