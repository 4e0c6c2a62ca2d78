// Package github enriches crate reports with repository content fetched
// from public GitHub pages and raw file URLs, without using the GitHub API.
package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cratedocs"
)

// Ensure Fetcher implements cratedocs.RepoFetcher at compile time.
var _ cratedocs.RepoFetcher = (*Fetcher)(nil)

const (
	// DefaultWebBaseURL is the base URL for repository HTML pages.
	DefaultWebBaseURL = "https://github.com"

	// DefaultRawBaseURL is the base URL for raw file content.
	DefaultRawBaseURL = "https://raw.githubusercontent.com"

	hostMarker = "github.com/"
)

// commonExamplePaths are probed when the examples directory listing
// yields nothing.
var commonExamplePaths = []string{
	"examples/main.rs",
	"examples/05_astroblasto.rs",
	"examples/simple.rs",
	"examples/brick_breaker.rs",
}

// Fetcher resolves a repository's default branch and fetches its README
// and example files over plain HTTP.
type Fetcher struct {
	fetcher cratedocs.Fetcher
	webBase string
	rawBase string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithWebBaseURL overrides the repository page base URL.
func WithWebBaseURL(u string) Option {
	return func(f *Fetcher) {
		f.webBase = strings.TrimSuffix(u, "/")
	}
}

// WithRawBaseURL overrides the raw content base URL.
func WithRawBaseURL(u string) Option {
	return func(f *Fetcher) {
		f.rawBase = strings.TrimSuffix(u, "/")
	}
}

// NewFetcher creates a Fetcher that retrieves pages through the given
// cratedocs.Fetcher.
func NewFetcher(fetcher cratedocs.Fetcher, opts ...Option) *Fetcher {
	f := &Fetcher{
		fetcher: fetcher,
		webBase: DefaultWebBaseURL,
		rawBase: DefaultRawBaseURL,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ParseRepo extracts owner/repo from a URL containing "github.com/".
// A trailing ".git" suffix and trailing slashes are stripped; anything
// past the first two path segments is ignored.
func (f *Fetcher) ParseRepo(url string) (cratedocs.Repo, bool) {
	tail := strings.TrimSuffix(strings.TrimRight(url, "/"), ".git")
	tail = strings.TrimRight(tail, "/")

	idx := strings.Index(tail, hostMarker)
	if idx < 0 {
		return cratedocs.Repo{}, false
	}

	parts := strings.Split(tail[idx+len(hostMarker):], "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return cratedocs.Repo{}, false
	}

	return cratedocs.Repo{Owner: parts[0], Name: parts[1]}, true
}

// FetchContent resolves the default branch and fetches the README and up
// to maxFiles example files. Failures are recorded in the result rather
// than returned; individual example files that fail to fetch are skipped
// silently.
func (f *Fetcher) FetchContent(ctx context.Context, repo cratedocs.Repo, maxFiles int) *cratedocs.RepoContent {
	content := &cratedocs.RepoContent{
		Branch: f.defaultBranch(ctx, repo),
	}

	readme, ok := f.fetchReadme(ctx, repo, content.Branch)
	if ok {
		content.README = readme
	} else {
		content.Errors = append(content.Errors,
			fmt.Sprintf("could not fetch README for %s/%s on branch %q", repo.Owner, repo.Name, content.Branch))
	}

	paths := f.listExamples(ctx, repo, content.Branch)
	if len(paths) == 0 {
		paths = commonExamplePaths
	}

	for _, path := range paths {
		if len(content.Examples) >= maxFiles {
			break
		}
		body, ok := f.fetchRawFile(ctx, repo, content.Branch, path)
		if !ok {
			continue
		}
		content.Examples = append(content.Examples, cratedocs.ExampleFile{
			Path:    path,
			Content: body,
		})
	}

	return content
}

// defaultBranch discovers the repository's default branch. It scans the
// repository page for a data-default-branch attribute, then probes main
// and master for a README, and finally falls back to "main".
func (f *Fetcher) defaultBranch(ctx context.Context, repo cratedocs.Repo) string {
	page, err := f.fetcher.Fetch(ctx, fmt.Sprintf("%s/%s/%s", f.webBase, repo.Owner, repo.Name))
	if err == nil {
		if branch := scanDefaultBranch(page); branch != "" {
			return branch
		}
	}

	for _, b := range []string{"main", "master"} {
		url := fmt.Sprintf("%s/%s/%s/%s/README.md", f.rawBase, repo.Owner, repo.Name, b)
		if _, err := f.fetcher.Fetch(ctx, url); err == nil {
			return b
		}
	}

	return "main"
}

// scanDefaultBranch finds the value of the first data-default-branch
// attribute in a repository page.
func scanDefaultBranch(page string) string {
	const attr = `data-default-branch="`

	idx := strings.Index(page, attr)
	if idx < 0 {
		return ""
	}
	after := page[idx+len(attr):]
	end := strings.IndexByte(after, '"')
	if end < 0 {
		return ""
	}
	return after[:end]
}

// fetchReadme tries README.md then readme.md on the given branch.
func (f *Fetcher) fetchReadme(ctx context.Context, repo cratedocs.Repo, branch string) (string, bool) {
	for _, name := range []string{"README.md", "readme.md"} {
		url := fmt.Sprintf("%s/%s/%s/%s/%s", f.rawBase, repo.Owner, repo.Name, branch, name)
		if body, err := f.fetcher.Fetch(ctx, url); err == nil {
			return body, true
		}
	}
	return "", false
}

// listExamples parses the examples directory listing page for links to
// files under examples/. Paths are returned in document order, deduped.
func (f *Fetcher) listExamples(ctx context.Context, repo cratedocs.Repo, branch string) []string {
	url := fmt.Sprintf("%s/%s/%s/tree/%s/examples", f.webBase, repo.Owner, repo.Name, branch)
	page, err := f.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil
	}

	blobMarker := fmt.Sprintf("/blob/%s/", branch)
	dirMarker := fmt.Sprintf("/%s/blob/%s/examples/", repo.Owner, branch)

	var paths []string
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.Contains(href, dirMarker) {
			return
		}
		idx := strings.Index(href, blobMarker)
		if idx < 0 {
			return
		}
		path := href[idx+len(blobMarker):]
		if path == "" || seen[path] {
			return
		}
		seen[path] = true
		paths = append(paths, path)
	})

	return paths
}

// fetchRawFile fetches a single file's raw content.
func (f *Fetcher) fetchRawFile(ctx context.Context, repo cratedocs.Repo, branch, path string) (string, bool) {
	url := fmt.Sprintf("%s/%s/%s/%s/%s", f.rawBase, repo.Owner, repo.Name, branch, strings.TrimPrefix(path, "/"))
	body, err := f.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", false
	}
	return body, true
}
