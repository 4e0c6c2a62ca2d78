package cratedocs

import (
	"context"
	"time"
)

// Request describes one aggregation batch. It is immutable once dispatched.
type Request struct {
	// Crates are the crate names to aggregate documentation for.
	Crates []string `json:"crates"`

	// Context is optional free-text caller context, echoed back unused.
	Context string `json:"context,omitempty"`

	// MaxDocPages caps the number of documentation pages crawled per
	// crate. Zero means the aggregator default.
	MaxDocPages int `json:"maxDocPages,omitempty"`

	// MaxExampleFiles caps the number of example files fetched per crate.
	// Negative means the aggregator default; zero means none.
	MaxExampleFiles int `json:"maxExampleFiles,omitempty"`
}

// CrateReport is the final artifact of one crate's aggregation pipeline.
type CrateReport struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`

	// Registry metadata. Empty when version resolution failed.
	Version        string `json:"version,omitempty"`
	DependencyLine string `json:"dependencyLine,omitempty"`
	Description    string `json:"description,omitempty"`
	RepoURL        string `json:"repoUrl,omitempty"`

	// Documentation crawl output. DocsRoot is present only if at least
	// one page was fetched.
	DocsRoot      string   `json:"docsRoot,omitempty"`
	PagesFetched  int      `json:"pagesFetched"`
	AnchorItems   []string `json:"anchorItems,omitempty"`
	TextAggregate string   `json:"textAggregate,omitempty"`
	CodeSnippets  []string `json:"codeSnippets,omitempty"`

	// DocsMarkdown is a markdown rendition of the main content of the
	// first fetched documentation page, when extraction succeeded.
	DocsMarkdown string `json:"docsMarkdown,omitempty"`

	// Repository enrichment output.
	README   string        `json:"readme,omitempty"`
	Examples []ExampleFile `json:"examples,omitempty"`

	// Errors are the non-fatal failures recorded while building this
	// report, or the single terminal resolution failure.
	Errors []string `json:"errors,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Validate returns an error if the report contains invalid fields.
func (r *CrateReport) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "report crate name required")
	}
	return nil
}

// BatchReport is the response for one aggregation batch.
type BatchReport struct {
	// ContextEcho echoes the request context, if any.
	ContextEcho string `json:"contextEcho,omitempty"`

	// UsageHint is a fixed guidance string for automated callers.
	UsageHint string `json:"usageHint"`

	// Reports holds one report per requested crate, in request order.
	Reports []CrateReport `json:"reports"`

	// Warnings flattens every per-crate error, prefixed with the crate
	// name.
	Warnings []string `json:"warnings,omitempty"`
}

// ReportService persists finished crate reports.
type ReportService interface {
	// CreateReport stores a report and assigns it an ID.
	CreateReport(ctx context.Context, report *CrateReport) error

	// FindReportsByName retrieves stored reports for a crate, newest first.
	FindReportsByName(ctx context.Context, name string) ([]*CrateReport, error)
}
