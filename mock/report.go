package mock

import (
	"context"

	"github.com/fwojciec/cratedocs"
)

var _ cratedocs.ReportService = (*ReportService)(nil)

// ReportService is a mock implementation of cratedocs.ReportService.
type ReportService struct {
	CreateReportFn      func(ctx context.Context, report *cratedocs.CrateReport) error
	FindReportsByNameFn func(ctx context.Context, name string) ([]*cratedocs.CrateReport, error)
}

func (s *ReportService) CreateReport(ctx context.Context, report *cratedocs.CrateReport) error {
	return s.CreateReportFn(ctx, report)
}

func (s *ReportService) FindReportsByName(ctx context.Context, name string) ([]*cratedocs.CrateReport, error) {
	return s.FindReportsByNameFn(ctx, name)
}
