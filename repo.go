package cratedocs

import "context"

// Repo identifies a repository on a recognized source-hosting service.
type Repo struct {
	Owner string
	Name  string
}

// ExampleFile is a single example source file fetched from a repository.
type ExampleFile struct {
	// Path is the file path relative to the repository root.
	Path string `json:"path"`

	// Content is the raw file content.
	Content string `json:"content"`
}

// RepoContent holds the material fetched from a crate's repository.
type RepoContent struct {
	// Branch is the resolved default branch.
	Branch string

	// README is the raw README content, empty if none could be fetched.
	README string

	// Examples are the fetched example files, at most the caller's budget.
	Examples []ExampleFile

	// Errors describes non-fatal failures encountered while fetching,
	// e.g. an unreachable README. Individual example-file failures are
	// skipped silently and not recorded here.
	Errors []string
}

// RepoFetcher resolves the default branch of a source repository and
// fetches its README plus example files.
type RepoFetcher interface {
	// ParseRepo extracts owner/repo from a URL believed to reference a
	// repository on the fetcher's host. Returns ok=false if the URL does
	// not match the recognized pattern; the caller should then skip
	// repository enrichment entirely.
	ParseRepo(url string) (repo Repo, ok bool)

	// FetchContent resolves the default branch and fetches the README and
	// up to maxFiles example files.
	FetchContent(ctx context.Context, repo Repo, maxFiles int) *RepoContent
}
