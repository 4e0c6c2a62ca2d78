package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/cratedocs"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cratedocs.ReportService = (*ReportService)(nil)

// ReportService implements cratedocs.ReportService using SQLite.
// Slice-valued report fields are stored as JSON text columns.
type ReportService struct {
	db *DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *DB) *ReportService {
	return &ReportService{db: db}
}

// CreateReport stores a report and assigns it an ID.
func (s *ReportService) CreateReport(ctx context.Context, report *cratedocs.CrateReport) error {
	if err := report.Validate(); err != nil {
		return err
	}

	report.ID = uuid.New().String()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	anchors, err := json.Marshal(emptyIfNil(report.AnchorItems))
	if err != nil {
		return fmt.Errorf("failed to encode anchor items: %w", err)
	}
	snippets, err := json.Marshal(emptyIfNil(report.CodeSnippets))
	if err != nil {
		return fmt.Errorf("failed to encode code snippets: %w", err)
	}
	reportErrs, err := json.Marshal(emptyIfNil(report.Errors))
	if err != nil {
		return fmt.Errorf("failed to encode errors: %w", err)
	}
	examples := []byte("[]")
	if report.Examples != nil {
		examples, err = json.Marshal(report.Examples)
		if err != nil {
			return fmt.Errorf("failed to encode examples: %w", err)
		}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (id, name, version, dependency_line, description, repo_url,
			docs_root, pages_fetched, anchor_items, text_aggregate, code_snippets,
			docs_markdown, readme, examples, errors, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, report.ID, report.Name, report.Version, report.DependencyLine, report.Description,
		report.RepoURL, report.DocsRoot, report.PagesFetched, string(anchors),
		report.TextAggregate, string(snippets), report.DocsMarkdown, report.README,
		string(examples), string(reportErrs), report.CreatedAt.Format(time.RFC3339))

	return err
}

// FindReportsByName retrieves stored reports for a crate, newest first.
func (s *ReportService) FindReportsByName(ctx context.Context, name string) ([]*cratedocs.CrateReport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, version, dependency_line, description, repo_url,
			docs_root, pages_fetched, anchor_items, text_aggregate, code_snippets,
			docs_markdown, readme, examples, errors, created_at
		FROM reports
		WHERE name = ?
		ORDER BY created_at DESC
	`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*cratedocs.CrateReport
	for rows.Next() {
		var r cratedocs.CrateReport
		var anchors, snippets, examples, reportErrs, createdAt string

		if err := rows.Scan(&r.ID, &r.Name, &r.Version, &r.DependencyLine, &r.Description,
			&r.RepoURL, &r.DocsRoot, &r.PagesFetched, &anchors, &r.TextAggregate,
			&snippets, &r.DocsMarkdown, &r.README, &examples, &reportErrs, &createdAt); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(anchors), &r.AnchorItems); err != nil {
			return nil, fmt.Errorf("failed to decode anchor items: %w", err)
		}
		if err := json.Unmarshal([]byte(snippets), &r.CodeSnippets); err != nil {
			return nil, fmt.Errorf("failed to decode code snippets: %w", err)
		}
		if err := json.Unmarshal([]byte(examples), &r.Examples); err != nil {
			return nil, fmt.Errorf("failed to decode examples: %w", err)
		}
		if err := json.Unmarshal([]byte(reportErrs), &r.Errors); err != nil {
			return nil, fmt.Errorf("failed to decode errors: %w", err)
		}

		r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		reports = append(reports, &r)
	}

	return reports, rows.Err()
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
