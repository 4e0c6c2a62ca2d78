// Package fs writes finished crate reports to the local filesystem.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/cratedocs"
)

// ReportStore writes one directory per crate with atomic update semantics.
// Files are written to baseDir/<name>.tmp and moved to baseDir/<name> on
// Commit, so readers never observe a half-written report.
type ReportStore struct {
	baseDir string
}

// NewReportStore creates a new ReportStore rooted at baseDir.
func NewReportStore(baseDir string) *ReportStore {
	return &ReportStore{baseDir: baseDir}
}

func (s *ReportStore) tempDir(name string) string {
	return filepath.Join(s.baseDir, name+".tmp")
}

func (s *ReportStore) finalDir(name string) string {
	return filepath.Join(s.baseDir, name)
}

// Save writes the report's files to the crate's temporary directory:
// report.md with the registry metadata and docs rendition, README.md when
// a README was fetched, and one file per fetched example.
func (s *ReportStore) Save(ctx context.Context, report *cratedocs.CrateReport) error {
	if err := report.Validate(); err != nil {
		return err
	}

	dir := s.tempDir(report.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, "report.md"), []byte(FormatReport(report)), 0644); err != nil {
		return err
	}

	if report.README != "" {
		if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte(report.README), 0644); err != nil {
			return err
		}
	}

	for _, ex := range report.Examples {
		rel := filepath.FromSlash(ex.Path)
		if !filepath.IsLocal(rel) {
			return cratedocs.Errorf(cratedocs.EINVALID, "example path %q escapes the report directory", ex.Path)
		}
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(ex.Content), 0644); err != nil {
			return err
		}
	}

	return nil
}

// Commit atomically replaces the crate's final directory with the
// temporary one.
func (s *ReportStore) Commit(name string) error {
	if err := os.RemoveAll(s.finalDir(name)); err != nil {
		return err
	}
	return os.Rename(s.tempDir(name), s.finalDir(name))
}

// Abort discards the crate's temporary directory.
func (s *ReportStore) Abort(name string) error {
	return os.RemoveAll(s.tempDir(name))
}

// FormatReport formats a report as markdown with YAML frontmatter.
func FormatReport(report *cratedocs.CrateReport) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("crate: ")
	b.WriteString(report.Name)
	b.WriteString("\nversion: ")
	b.WriteString(report.Version)
	b.WriteString("\ndependency: ")
	b.WriteString(report.DependencyLine)
	if report.DocsRoot != "" {
		b.WriteString("\ndocs: ")
		b.WriteString(report.DocsRoot)
	}
	b.WriteString("\ncreated: ")
	b.WriteString(report.CreatedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")

	if report.Description != "" {
		b.WriteString(report.Description)
		b.WriteString("\n\n")
	}
	if report.DocsMarkdown != "" {
		b.WriteString(report.DocsMarkdown)
	} else if report.TextAggregate != "" {
		b.WriteString(report.TextAggregate)
		b.WriteString("\n")
	}

	if len(report.CodeSnippets) > 0 {
		b.WriteString("\n## Code snippets\n")
		for _, snippet := range report.CodeSnippets {
			b.WriteString("\n```rust\n")
			b.WriteString(snippet)
			b.WriteString("\n```\n")
		}
	}

	return b.String()
}
