package aggregate_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/cratedocs"
	"github.com/fwojciec/cratedocs/aggregate"
	"github.com/fwojciec/cratedocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedExtractor returns canned extraction results regardless of input.
func fixedExtractor() *mock.DocExtractor {
	return &mock.DocExtractor{
		AnchorItemsFn: func(_ string, _ int) []string { return []string{"Struct Foo", "fn bar"} },
		CodeBlocksFn:  func(_ string, _ int) []string { return []string{"fn main() {}"} },
		MainTextFn:    func(_ string) string { return "main text" },
	}
}

func noRepo() *mock.RepoFetcher {
	return &mock.RepoFetcher{
		ParseRepoFn: func(_ string) (cratedocs.Repo, bool) { return cratedocs.Repo{}, false },
		FetchContentFn: func(_ context.Context, _ cratedocs.Repo, _ int) *cratedocs.RepoContent {
			return &cratedocs.RepoContent{}
		},
	}
}

func singlePageCrawler() *mock.DocCrawler {
	return &mock.DocCrawler{
		CrawlFn: func(_ context.Context, name, version string, _ int) (*cratedocs.CrawlResult, error) {
			return &cratedocs.CrawlResult{
				Pages:   []cratedocs.Page{{Path: "", Body: "<html><body>docs</body></html>"}},
				Fetched: 1,
			}, nil
		},
	}
}

func TestAggregator_Aggregate(t *testing.T) {
	t.Parallel()

	t.Run("builds full reports in request order", func(t *testing.T) {
		t.Parallel()

		agg := &aggregate.Aggregator{
			Resolver: &mock.Resolver{
				ResolveFn: func(_ context.Context, name string) (*cratedocs.Crate, error) {
					return &cratedocs.Crate{
						Name:        name,
						Version:     "1.2.3",
						Description: "desc of " + name,
						RepoURL:     "https://github.com/acme/" + name,
					}, nil
				},
			},
			Crawler: singlePageCrawler(),
			Repos: &mock.RepoFetcher{
				ParseRepoFn: func(url string) (cratedocs.Repo, bool) {
					return cratedocs.Repo{Owner: "acme", Name: "widget"}, true
				},
				FetchContentFn: func(_ context.Context, _ cratedocs.Repo, maxFiles int) *cratedocs.RepoContent {
					return &cratedocs.RepoContent{
						Branch:   "main",
						README:   "# readme",
						Examples: []cratedocs.ExampleFile{{Path: "examples/a.rs", Content: "fn a() {}"}},
					}
				},
			},
			Docs: fixedExtractor(),
		}

		batch, err := agg.Aggregate(context.Background(), &cratedocs.Request{
			Crates:  []string{"serde", "tokio"},
			Context: "building a web service",
		})

		require.NoError(t, err)
		assert.Equal(t, "building a web service", batch.ContextEcho)
		assert.Equal(t, aggregate.UsageHint, batch.UsageHint)
		require.Len(t, batch.Reports, 2)
		assert.Empty(t, batch.Warnings)

		first := batch.Reports[0]
		assert.Equal(t, "serde", first.Name)
		assert.Equal(t, "1.2.3", first.Version)
		assert.Equal(t, `serde = "1.2.3"`, first.DependencyLine)
		assert.Equal(t, "desc of serde", first.Description)
		assert.Equal(t, "https://docs.rs/serde/1.2.3/", first.DocsRoot)
		assert.Equal(t, 1, first.PagesFetched)
		assert.Equal(t, []string{"Struct Foo", "fn bar"}, first.AnchorItems)
		assert.Equal(t, []string{"fn main() {}"}, first.CodeSnippets)
		assert.Equal(t, "main text", first.TextAggregate)
		assert.Equal(t, "# readme", first.README)
		require.Len(t, first.Examples, 1)
		assert.False(t, first.CreatedAt.IsZero())

		assert.Equal(t, "tokio", batch.Reports[1].Name)
	})

	t.Run("resolution failure is terminal for that crate only", func(t *testing.T) {
		t.Parallel()

		var crawls atomic.Int64
		agg := &aggregate.Aggregator{
			Resolver: &mock.Resolver{
				ResolveFn: func(_ context.Context, name string) (*cratedocs.Crate, error) {
					if name == "alpha" {
						return nil, cratedocs.Errorf(cratedocs.ENOTFOUND, "crate not found: alpha")
					}
					return &cratedocs.Crate{Name: name, Version: "0.1.0"}, nil
				},
			},
			Crawler: &mock.DocCrawler{
				CrawlFn: func(_ context.Context, name, version string, _ int) (*cratedocs.CrawlResult, error) {
					crawls.Add(1)
					return &cratedocs.CrawlResult{
						Pages:   []cratedocs.Page{{Body: "<html></html>"}},
						Fetched: 1,
					}, nil
				},
			},
			Repos: noRepo(),
			Docs:  fixedExtractor(),
		}

		batch, err := agg.Aggregate(context.Background(), &cratedocs.Request{
			Crates: []string{"alpha", "beta"},
		})

		require.NoError(t, err)
		require.Len(t, batch.Reports, 2)

		alpha := batch.Reports[0]
		assert.Equal(t, "alpha", alpha.Name)
		assert.Empty(t, alpha.Version)
		assert.Empty(t, alpha.DependencyLine)
		require.Len(t, alpha.Errors, 1)
		assert.Contains(t, alpha.Errors[0], "failed to fetch registry metadata")

		beta := batch.Reports[1]
		assert.Equal(t, "beta", beta.Name)
		assert.Equal(t, "0.1.0", beta.Version)
		assert.Empty(t, beta.Errors)

		assert.Equal(t, int64(1), crawls.Load())
		require.Len(t, batch.Warnings, 1)
		assert.Contains(t, batch.Warnings[0], "alpha: ")
	})

	t.Run("crawl failure recorded without docs root", func(t *testing.T) {
		t.Parallel()

		agg := &aggregate.Aggregator{
			Resolver: &mock.Resolver{
				ResolveFn: func(_ context.Context, name string) (*cratedocs.Crate, error) {
					return &cratedocs.Crate{Name: name, Version: "2.0.0"}, nil
				},
			},
			Crawler: &mock.DocCrawler{
				CrawlFn: func(_ context.Context, name, version string, _ int) (*cratedocs.CrawlResult, error) {
					return nil, cratedocs.Errorf(cratedocs.EUNAVAILABLE, "no pages fetched")
				},
			},
			Repos: noRepo(),
			Docs:  fixedExtractor(),
		}

		batch, err := agg.Aggregate(context.Background(), &cratedocs.Request{Crates: []string{"gamma"}})

		require.NoError(t, err)
		report := batch.Reports[0]
		assert.Equal(t, "2.0.0", report.Version)
		assert.Empty(t, report.DocsRoot)
		assert.Zero(t, report.PagesFetched)
		require.Len(t, report.Errors, 1)
		assert.Contains(t, report.Errors[0], "failed to fetch documentation pages for gamma 2.0.0")
	})

	t.Run("empty request returns guidance without touching services", func(t *testing.T) {
		t.Parallel()

		agg := &aggregate.Aggregator{
			Resolver: &mock.Resolver{
				ResolveFn: func(_ context.Context, name string) (*cratedocs.Crate, error) {
					t.Error("resolver should not be called")
					return nil, nil
				},
			},
			Crawler: &mock.DocCrawler{
				CrawlFn: func(_ context.Context, _, _ string, _ int) (*cratedocs.CrawlResult, error) {
					t.Error("crawler should not be called")
					return nil, nil
				},
			},
			Repos: noRepo(),
			Docs:  fixedExtractor(),
		}

		batch, err := agg.Aggregate(context.Background(), &cratedocs.Request{})

		require.NoError(t, err)
		assert.Empty(t, batch.Reports)
		require.Len(t, batch.Warnings, 1)
		assert.Equal(t, aggregate.EmptyRequestGuidance, batch.Warnings[0])
		assert.Equal(t, aggregate.UsageHint, batch.UsageHint)
	})

	t.Run("passes request budgets through to services", func(t *testing.T) {
		t.Parallel()

		var gotBudget, gotMaxFiles int
		agg := &aggregate.Aggregator{
			Resolver: &mock.Resolver{
				ResolveFn: func(_ context.Context, name string) (*cratedocs.Crate, error) {
					return &cratedocs.Crate{Name: name, Version: "1.0.0", RepoURL: "https://github.com/a/b"}, nil
				},
			},
			Crawler: &mock.DocCrawler{
				CrawlFn: func(_ context.Context, _, _ string, budget int) (*cratedocs.CrawlResult, error) {
					gotBudget = budget
					return &cratedocs.CrawlResult{
						Pages:   []cratedocs.Page{{Body: "<html></html>"}},
						Fetched: 1,
					}, nil
				},
			},
			Repos: &mock.RepoFetcher{
				ParseRepoFn: func(_ string) (cratedocs.Repo, bool) {
					return cratedocs.Repo{Owner: "a", Name: "b"}, true
				},
				FetchContentFn: func(_ context.Context, _ cratedocs.Repo, maxFiles int) *cratedocs.RepoContent {
					gotMaxFiles = maxFiles
					return &cratedocs.RepoContent{}
				},
			},
			Docs: fixedExtractor(),
		}

		_, err := agg.Aggregate(context.Background(), &cratedocs.Request{
			Crates:          []string{"delta"},
			MaxDocPages:     1,
			MaxExampleFiles: 0,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, gotBudget)
		assert.Equal(t, 0, gotMaxFiles)
	})

	t.Run("budgets cap every crate in the batch", func(t *testing.T) {
		t.Parallel()

		agg := &aggregate.Aggregator{
			Resolver: &mock.Resolver{
				ResolveFn: func(_ context.Context, name string) (*cratedocs.Crate, error) {
					return &cratedocs.Crate{
						Name:    name,
						Version: "1.0.0",
						RepoURL: "https://github.com/o/" + name,
					}, nil
				},
			},
			Crawler: &mock.DocCrawler{
				CrawlFn: func(_ context.Context, name, _ string, budget int) (*cratedocs.CrawlResult, error) {
					pages := []cratedocs.Page{
						{Path: "", Body: "<html><body>root of " + name + "</body></html>"},
						{Path: "extra/", Body: "<html></html>"},
					}
					if len(pages) > budget {
						pages = pages[:budget]
					}
					return &cratedocs.CrawlResult{Pages: pages, Fetched: len(pages)}, nil
				},
			},
			Repos: &mock.RepoFetcher{
				ParseRepoFn: func(_ string) (cratedocs.Repo, bool) {
					return cratedocs.Repo{Owner: "o", Name: "r"}, true
				},
				FetchContentFn: func(_ context.Context, _ cratedocs.Repo, maxFiles int) *cratedocs.RepoContent {
					content := &cratedocs.RepoContent{Branch: "main"}
					for i := 0; i < maxFiles; i++ {
						content.Examples = append(content.Examples, cratedocs.ExampleFile{
							Path:    fmt.Sprintf("examples/%d.rs", i),
							Content: "fn main() {}",
						})
					}
					return content
				},
			},
			Docs: fixedExtractor(),
		}

		batch, err := agg.Aggregate(context.Background(), &cratedocs.Request{
			Crates:          []string{"alpha", "beta"},
			MaxDocPages:     1,
			MaxExampleFiles: 0,
		})

		require.NoError(t, err)
		require.Len(t, batch.Reports, 2)
		for _, report := range batch.Reports {
			assert.LessOrEqual(t, report.PagesFetched, 1)
			assert.Empty(t, report.Examples)
			assert.Empty(t, report.Errors)
		}
		assert.Equal(t, "alpha", batch.Reports[0].Name)
		assert.Equal(t, "beta", batch.Reports[1].Name)
	})

	t.Run("defaults apply when budgets are unset", func(t *testing.T) {
		t.Parallel()

		var gotBudget, gotMaxFiles int
		agg := &aggregate.Aggregator{
			Resolver: &mock.Resolver{
				ResolveFn: func(_ context.Context, name string) (*cratedocs.Crate, error) {
					return &cratedocs.Crate{Name: name, Version: "1.0.0", RepoURL: "https://github.com/a/b"}, nil
				},
			},
			Crawler: &mock.DocCrawler{
				CrawlFn: func(_ context.Context, _, _ string, budget int) (*cratedocs.CrawlResult, error) {
					gotBudget = budget
					return &cratedocs.CrawlResult{
						Pages:   []cratedocs.Page{{Body: "<html></html>"}},
						Fetched: 1,
					}, nil
				},
			},
			Repos: &mock.RepoFetcher{
				ParseRepoFn: func(_ string) (cratedocs.Repo, bool) {
					return cratedocs.Repo{Owner: "a", Name: "b"}, true
				},
				FetchContentFn: func(_ context.Context, _ cratedocs.Repo, maxFiles int) *cratedocs.RepoContent {
					gotMaxFiles = maxFiles
					return &cratedocs.RepoContent{}
				},
			},
			Docs: fixedExtractor(),
		}

		_, err := agg.Aggregate(context.Background(), &cratedocs.Request{
			Crates:          []string{"delta"},
			MaxExampleFiles: -1,
		})

		require.NoError(t, err)
		assert.Equal(t, aggregate.DefaultMaxDocPages, gotBudget)
		assert.Equal(t, aggregate.DefaultMaxExampleFiles, gotMaxFiles)
	})

	t.Run("renders markdown from the first fetched page", func(t *testing.T) {
		t.Parallel()

		agg := &aggregate.Aggregator{
			Resolver: &mock.Resolver{
				ResolveFn: func(_ context.Context, name string) (*cratedocs.Crate, error) {
					return &cratedocs.Crate{Name: name, Version: "1.0.0"}, nil
				},
			},
			Crawler: &mock.DocCrawler{
				CrawlFn: func(_ context.Context, _, _ string, _ int) (*cratedocs.CrawlResult, error) {
					return &cratedocs.CrawlResult{
						Pages: []cratedocs.Page{
							{Path: "", Body: "<main><p>root page</p></main>"},
							{Path: "other/", Body: "<main><p>second page</p></main>"},
						},
						Fetched: 2,
					}, nil
				},
			},
			Repos: noRepo(),
			Docs:  fixedExtractor(),
			Content: &mock.ContentExtractor{
				ExtractFn: func(html string) (*cratedocs.ExtractResult, error) {
					assert.Contains(t, html, "root page")
					return &cratedocs.ExtractResult{ContentHTML: "<p>root page</p>"}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(html string) (string, error) {
					return "root page\n", nil
				},
			},
		}

		batch, err := agg.Aggregate(context.Background(), &cratedocs.Request{Crates: []string{"epsilon"}})

		require.NoError(t, err)
		assert.Equal(t, "root page\n", batch.Reports[0].DocsMarkdown)
	})

	t.Run("markdown rendition failure is silent", func(t *testing.T) {
		t.Parallel()

		agg := &aggregate.Aggregator{
			Resolver: &mock.Resolver{
				ResolveFn: func(_ context.Context, name string) (*cratedocs.Crate, error) {
					return &cratedocs.Crate{Name: name, Version: "1.0.0"}, nil
				},
			},
			Crawler: singlePageCrawler(),
			Repos:   noRepo(),
			Docs:    fixedExtractor(),
			Content: &mock.ContentExtractor{
				ExtractFn: func(_ string) (*cratedocs.ExtractResult, error) {
					return nil, cratedocs.Errorf(cratedocs.EINTERNAL, "boom")
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(_ string) (string, error) { return "", nil },
			},
		}

		batch, err := agg.Aggregate(context.Background(), &cratedocs.Request{Crates: []string{"zeta"}})

		require.NoError(t, err)
		assert.Empty(t, batch.Reports[0].DocsMarkdown)
		assert.Empty(t, batch.Reports[0].Errors)
	})

	t.Run("repository errors surface as warnings", func(t *testing.T) {
		t.Parallel()

		agg := &aggregate.Aggregator{
			Resolver: &mock.Resolver{
				ResolveFn: func(_ context.Context, name string) (*cratedocs.Crate, error) {
					return &cratedocs.Crate{
						Name:    name,
						Version: "1.0.0",
						RepoURL: "https://github.com/acme/widget",
					}, nil
				},
			},
			Crawler: singlePageCrawler(),
			Repos: &mock.RepoFetcher{
				ParseRepoFn: func(_ string) (cratedocs.Repo, bool) {
					return cratedocs.Repo{Owner: "acme", Name: "widget"}, true
				},
				FetchContentFn: func(_ context.Context, _ cratedocs.Repo, _ int) *cratedocs.RepoContent {
					return &cratedocs.RepoContent{
						Branch: "main",
						Errors: []string{`could not fetch README for acme/widget on branch "main"`},
					}
				},
			},
			Docs: fixedExtractor(),
		}

		batch, err := agg.Aggregate(context.Background(), &cratedocs.Request{Crates: []string{"widget"}})

		require.NoError(t, err)
		require.Len(t, batch.Warnings, 1)
		assert.Equal(t, fmt.Sprintf("widget: %s", batch.Reports[0].Errors[0]), batch.Warnings[0])
	})

	t.Run("custom docs root formatter", func(t *testing.T) {
		t.Parallel()

		agg := &aggregate.Aggregator{
			Resolver: &mock.Resolver{
				ResolveFn: func(_ context.Context, name string) (*cratedocs.Crate, error) {
					return &cratedocs.Crate{Name: name, Version: "1.0.0"}, nil
				},
			},
			Crawler: singlePageCrawler(),
			Repos:   noRepo(),
			Docs:    fixedExtractor(),
			RootURL: func(name, version string) string {
				return fmt.Sprintf("https://mirror.test/%s/%s/", name, version)
			},
		}

		batch, err := agg.Aggregate(context.Background(), &cratedocs.Request{Crates: []string{"eta"}})

		require.NoError(t, err)
		assert.Equal(t, "https://mirror.test/eta/1.0.0/", batch.Reports[0].DocsRoot)
	})
}
