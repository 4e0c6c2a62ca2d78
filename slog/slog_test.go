package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/cratedocs"
	"github.com/fwojciec/cratedocs/mock"
	crateslog "github.com/fwojciec/cratedocs/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := crateslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "https://docs.rs/serde/1.0.0/")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://docs.rs/serde/1.0.0/")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := crateslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://docs.rs/serde/1.0.0/")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "err=\"network error\"")
	})

	t.Run("close delegates to inner fetcher", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		closeCalled := false
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) { return "", nil },
			CloseFn: func() error {
				closeCalled = true
				return nil
			},
		}

		fetcher := crateslog.NewLoggingFetcher(inner, logger)
		err := fetcher.Close()

		require.NoError(t, err)
		assert.True(t, closeCalled)
	})
}

func TestLoggingResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("logs crate and resolved version", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Resolver{
			ResolveFn: func(ctx context.Context, name string) (*cratedocs.Crate, error) {
				return &cratedocs.Crate{Name: name, Version: "1.0.193"}, nil
			},
		}

		resolver := crateslog.NewLoggingResolver(inner, logger)
		crate, err := resolver.Resolve(context.Background(), "serde")

		require.NoError(t, err)
		assert.Equal(t, "1.0.193", crate.Version)
		output := buf.String()
		assert.Contains(t, output, "resolve")
		assert.Contains(t, output, "crate=serde")
		assert.Contains(t, output, "version=1.0.193")
	})

	t.Run("logs error with empty version", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Resolver{
			ResolveFn: func(ctx context.Context, name string) (*cratedocs.Crate, error) {
				return nil, cratedocs.Errorf(cratedocs.ENOTFOUND, "crate not found: %s", name)
			},
		}

		resolver := crateslog.NewLoggingResolver(inner, logger)
		_, err := resolver.Resolve(context.Background(), "nope")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "crate=nope")
		assert.Contains(t, output, "version=")
		assert.Contains(t, output, "crate not found")
	})
}

func TestLoggingCrawler_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("logs budget and fetch counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.DocCrawler{
			CrawlFn: func(ctx context.Context, name, version string, budget int) (*cratedocs.CrawlResult, error) {
				return &cratedocs.CrawlResult{
					Pages:   []cratedocs.Page{{Body: "<html></html>"}},
					Fetched: 1,
					Visited: map[string]bool{"": true, "serde/": true},
				}, nil
			},
		}

		crawler := crateslog.NewLoggingCrawler(inner, logger)
		result, err := crawler.Crawl(context.Background(), "serde", "1.0.193", 10)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Fetched)
		output := buf.String()
		assert.Contains(t, output, "crawl")
		assert.Contains(t, output, "crate=serde")
		assert.Contains(t, output, "budget=10")
		assert.Contains(t, output, "fetched=1")
		assert.Contains(t, output, "visited=2")
	})
}
