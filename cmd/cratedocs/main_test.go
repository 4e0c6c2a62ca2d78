package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/cratedocs"
	main "github.com/fwojciec/cratedocs/cmd/cratedocs"
	"github.com/fwojciec/cratedocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "cratedocs")
	assert.Contains(t, stdout.String(), "crates")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "cratedocs")
}

func TestMain_Run_RejectsUnknownFlag(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--nope", "serde"}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestStoreReports(t *testing.T) {
	t.Parallel()

	t.Run("stores each report in order", func(t *testing.T) {
		t.Parallel()

		var stored []string
		svc := &mock.ReportService{
			CreateReportFn: func(ctx context.Context, report *cratedocs.CrateReport) error {
				stored = append(stored, report.Name)
				return nil
			},
		}

		err := main.StoreReports(context.Background(), svc, []cratedocs.CrateReport{
			{Name: "serde"},
			{Name: "tokio"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"serde", "tokio"}, stored)
	})

	t.Run("wraps the failing crate's name into the error", func(t *testing.T) {
		t.Parallel()

		svc := &mock.ReportService{
			CreateReportFn: func(ctx context.Context, report *cratedocs.CrateReport) error {
				return cratedocs.Errorf(cratedocs.EINTERNAL, "disk full")
			},
		}

		err := main.StoreReports(context.Background(), svc, []cratedocs.CrateReport{{Name: "serde"}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to archive report for serde")
	})
}
