package mock

import (
	"context"

	"github.com/fwojciec/cratedocs"
)

var _ cratedocs.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of cratedocs.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *cratedocs.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *cratedocs.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
