package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cratedocs"
	"github.com/fwojciec/cratedocs/aggregate"
	"github.com/fwojciec/cratedocs/crates"
	"github.com/fwojciec/cratedocs/crawl"
	"github.com/fwojciec/cratedocs/fs"
	"github.com/fwojciec/cratedocs/github"
	"github.com/fwojciec/cratedocs/goquery"
	"github.com/fwojciec/cratedocs/htmltomarkdown"
	cratehttp "github.com/fwojciec/cratedocs/http"
	"github.com/fwojciec/cratedocs/readability"
	crateslog "github.com/fwojciec/cratedocs/slog"
	"github.com/fwojciec/cratedocs/sqlite"
	"github.com/fwojciec/cratedocs/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cratedocs"),
		kong.Description("Aggregate crate documentation, examples, and README content into a structured report"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	timeout := cli.Timeout
	if timeout == 0 {
		timeout = crawl.DefaultFetchTimeout
	}

	fetcher := cratedocs.Fetcher(cratehttp.NewFetcher(cratehttp.WithTimeout(timeout)))
	defer fetcher.Close()

	var resolver cratedocs.Resolver = crates.NewClient(crates.WithTimeout(timeout))

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
		fetcher = crateslog.NewLoggingFetcher(fetcher, logger)
		resolver = crateslog.NewLoggingResolver(resolver, logger)
	}

	var crawler cratedocs.DocCrawler = &crawl.Crawler{
		Fetcher:  fetcher,
		Links:    goquery.NewExtractor(),
		Limiter:  crawl.NewDomainLimiter(cli.RPS),
		Sitemaps: cratehttp.NewSitemapService(nil),
		Timeout:  timeout,
	}
	if cli.Verbose {
		crawler = crateslog.NewLoggingCrawler(crawler, logger)
	}

	var content cratedocs.ContentExtractor
	switch cli.Extractor {
	case "readability":
		content = readability.NewExtractor()
	default:
		content = trafilatura.NewExtractor()
	}

	aggregator := &aggregate.Aggregator{
		Resolver:  resolver,
		Crawler:   crawler,
		Repos:     github.NewFetcher(fetcher),
		Docs:      goquery.NewExtractor(),
		Content:   content,
		Converter: htmltomarkdown.NewConverter(),
	}

	batch, err := aggregator.Aggregate(ctx, &cratedocs.Request{
		Crates:          cli.Crates,
		Context:         cli.Context,
		MaxDocPages:     cli.MaxPages,
		MaxExampleFiles: cli.MaxFiles,
	})
	if err != nil {
		return err
	}

	if cli.DB != "" {
		if err := archiveReports(ctx, cli.DB, batch.Reports); err != nil {
			return err
		}
	}

	if cli.Out != "" {
		if err := exportReports(ctx, cli.Out, batch.Reports); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(batch)
}

// archiveReports stores the batch's reports in a SQLite database.
func archiveReports(ctx context.Context, path string, reports []cratedocs.CrateReport) error {
	db := sqlite.NewDB(path)
	if err := db.Open(); err != nil {
		return err
	}
	defer db.Close()

	return StoreReports(ctx, sqlite.NewReportService(db), reports)
}

// StoreReports persists each report through the given service.
func StoreReports(ctx context.Context, svc cratedocs.ReportService, reports []cratedocs.CrateReport) error {
	for i := range reports {
		if err := svc.CreateReport(ctx, &reports[i]); err != nil {
			return fmt.Errorf("failed to archive report for %s: %w", reports[i].Name, err)
		}
	}
	return nil
}

// exportReports writes each report to a per-crate directory.
func exportReports(ctx context.Context, baseDir string, reports []cratedocs.CrateReport) error {
	store := fs.NewReportStore(baseDir)
	for i := range reports {
		if err := store.Save(ctx, &reports[i]); err != nil {
			_ = store.Abort(reports[i].Name)
			return fmt.Errorf("failed to export report for %s: %w", reports[i].Name, err)
		}
		if err := store.Commit(reports[i].Name); err != nil {
			return fmt.Errorf("failed to export report for %s: %w", reports[i].Name, err)
		}
	}
	return nil
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Context   string        `help:"Free-text context echoed back in the report"`
	MaxPages  int           `default:"200" help:"Documentation pages crawled per crate"`
	MaxFiles  int           `default:"20" help:"Example files fetched per crate"`
	Timeout   time.Duration `short:"t" default:"12s" help:"Fetch timeout per request"`
	RPS       float64       `default:"2" help:"Requests per second per documentation host"`
	Extractor string        `default:"trafilatura" enum:"trafilatura,readability" help:"Main content extraction engine"`
	DB        string        `help:"SQLite path to archive reports"`
	Out       string        `help:"Directory to export per-crate report files"`
	Verbose   bool          `short:"v" help:"Log pipeline operations to stderr"`
	Crates    []string      `arg:"" required:"" help:"Crate names to aggregate documentation for"`
}
