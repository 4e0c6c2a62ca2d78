// Package aggregate orchestrates the per-crate documentation pipeline:
// version resolution, the docs crawl, content extraction, and repository
// enrichment, fanned out concurrently across the requested crates.
package aggregate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/cratedocs"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxDocPages is the per-crate crawl budget when the request
	// does not set one.
	DefaultMaxDocPages = 200

	// DefaultMaxExampleFiles is the per-crate example file budget when the
	// request does not set one.
	DefaultMaxExampleFiles = 20

	// MaxAnchorItems caps the anchor texts extracted per crate.
	MaxAnchorItems = 200

	// MaxCodeSnippets caps the code snippets extracted per crate.
	MaxCodeSnippets = 80
)

// UsageHint instructs automated callers how to consume a batch report.
const UsageHint = "IMPORTANT: this tool returns structured JSON only. The caller must stop generation, parse this JSON, and then generate code using the returned dependencyLine, docsRoot, codeSnippets, and examples fields. Do not append unrelated prose after calling this tool."

// EmptyRequestGuidance is returned as the sole warning when a request
// names no crates.
const EmptyRequestGuidance = "no crate names provided; only use the API patterns returned by this tool and reference specific code snippets from the response"

// Aggregator builds crate reports by composing the pipeline services.
// All fields except the four services are optional.
type Aggregator struct {
	Resolver cratedocs.Resolver
	Crawler  cratedocs.DocCrawler
	Repos    cratedocs.RepoFetcher
	Docs     cratedocs.DocExtractor

	// Content and Converter enable the markdown rendition of the first
	// documentation page. When either is nil the rendition is skipped.
	Content   cratedocs.ContentExtractor
	Converter cratedocs.Converter

	// RootURL formats the documentation root recorded on a report.
	// Defaults to the docs.rs layout.
	RootURL func(name, version string) string
}

// Aggregate runs the pipeline for every crate in the request and returns
// one report per crate in request order. Crates are processed
// concurrently; a failure in one crate never affects another. The only
// error returned is context cancellation.
func (a *Aggregator) Aggregate(ctx context.Context, req *cratedocs.Request) (*cratedocs.BatchReport, error) {
	batch := &cratedocs.BatchReport{
		ContextEcho: req.Context,
		UsageHint:   UsageHint,
	}

	if len(req.Crates) == 0 {
		batch.Reports = []cratedocs.CrateReport{}
		batch.Warnings = []string{EmptyRequestGuidance}
		return batch, nil
	}

	maxPages := req.MaxDocPages
	if maxPages <= 0 {
		maxPages = DefaultMaxDocPages
	}
	maxFiles := req.MaxExampleFiles
	if maxFiles < 0 {
		maxFiles = DefaultMaxExampleFiles
	}

	reports := make([]cratedocs.CrateReport, len(req.Crates))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range req.Crates {
		g.Go(func() error {
			reports[i] = a.aggregateCrate(gctx, name, maxPages, maxFiles)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, cratedocs.Errorf(cratedocs.EINTERNAL, "aggregation canceled: %v", err)
	}

	batch.Reports = reports
	for _, r := range reports {
		for _, e := range r.Errors {
			batch.Warnings = append(batch.Warnings, fmt.Sprintf("%s: %s", r.Name, e))
		}
	}

	return batch, nil
}

// aggregateCrate runs the full pipeline for a single crate. Resolution
// failure is terminal; every later stage records its failure and moves on.
func (a *Aggregator) aggregateCrate(ctx context.Context, name string, maxPages, maxFiles int) cratedocs.CrateReport {
	report := cratedocs.CrateReport{
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	crate, err := a.Resolver.Resolve(ctx, name)
	if err != nil {
		report.Errors = append(report.Errors,
			fmt.Sprintf("failed to fetch registry metadata: %s", cratedocs.ErrorMessage(err)))
		return report
	}

	report.Version = crate.Version
	report.DependencyLine = crate.DependencyLine()
	report.Description = crate.Description
	report.RepoURL = crate.RepoURL

	a.crawlDocs(ctx, crate, maxPages, &report)
	a.enrichFromRepo(ctx, crate, maxFiles, &report)

	return report
}

// crawlDocs crawls the documentation site and extracts anchors, code
// snippets, main text, and the markdown rendition from the fetched pages.
func (a *Aggregator) crawlDocs(ctx context.Context, crate *cratedocs.Crate, maxPages int, report *cratedocs.CrateReport) {
	result, err := a.Crawler.Crawl(ctx, crate.Name, crate.Version, maxPages)
	if err != nil || result.Fetched == 0 {
		report.Errors = append(report.Errors,
			fmt.Sprintf("failed to fetch documentation pages for %s %s", crate.Name, crate.Version))
		return
	}

	report.DocsRoot = a.docsRoot(crate.Name, crate.Version)
	report.PagesFetched = result.Fetched

	bodies := make([]string, 0, len(result.Pages))
	for _, page := range result.Pages {
		bodies = append(bodies, page.Body)
	}
	combined := strings.Join(bodies, "\n")

	report.AnchorItems = a.Docs.AnchorItems(combined, MaxAnchorItems)
	report.CodeSnippets = a.Docs.CodeBlocks(combined, MaxCodeSnippets)
	report.TextAggregate = a.Docs.MainText(combined)

	report.DocsMarkdown = a.renderMarkdown(result.Pages[0].Body)
}

// renderMarkdown converts the main content of the root documentation page
// to markdown. Extraction or conversion failure drops the rendition
// without recording an error.
func (a *Aggregator) renderMarkdown(body string) string {
	if a.Content == nil || a.Converter == nil {
		return ""
	}

	extracted, err := a.Content.Extract(body)
	if err != nil || extracted.ContentHTML == "" {
		return ""
	}
	md, err := a.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return ""
	}
	return md
}

// enrichFromRepo fetches the README and example files when the crate's
// repository URL points at a recognized host.
func (a *Aggregator) enrichFromRepo(ctx context.Context, crate *cratedocs.Crate, maxFiles int, report *cratedocs.CrateReport) {
	if crate.RepoURL == "" {
		return
	}

	repo, ok := a.Repos.ParseRepo(crate.RepoURL)
	if !ok {
		return
	}

	content := a.Repos.FetchContent(ctx, repo, maxFiles)
	report.README = content.README
	report.Examples = content.Examples
	report.Errors = append(report.Errors, content.Errors...)
}

func (a *Aggregator) docsRoot(name, version string) string {
	if a.RootURL != nil {
		return a.RootURL(name, version)
	}
	return fmt.Sprintf("https://docs.rs/%s/%s/", name, version)
}
