package mock

import (
	"context"

	"github.com/fwojciec/cratedocs"
)

var _ cratedocs.RepoFetcher = (*RepoFetcher)(nil)

// RepoFetcher is a mock implementation of cratedocs.RepoFetcher.
type RepoFetcher struct {
	ParseRepoFn    func(url string) (cratedocs.Repo, bool)
	FetchContentFn func(ctx context.Context, repo cratedocs.Repo, maxFiles int) *cratedocs.RepoContent
}

func (f *RepoFetcher) ParseRepo(url string) (cratedocs.Repo, bool) {
	return f.ParseRepoFn(url)
}

func (f *RepoFetcher) FetchContent(ctx context.Context, repo cratedocs.Repo, maxFiles int) *cratedocs.RepoContent {
	return f.FetchContentFn(ctx, repo, maxFiles)
}
