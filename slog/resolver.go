package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cratedocs"
)

// Ensure LoggingResolver implements cratedocs.Resolver.
var _ cratedocs.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver with per-crate logging.
type LoggingResolver struct {
	next   cratedocs.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next cratedocs.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the operation.
func (r *LoggingResolver) Resolve(ctx context.Context, name string) (crate *cratedocs.Crate, err error) {
	defer func(begin time.Time) {
		version := ""
		if crate != nil {
			version = crate.Version
		}
		r.logger.Info("resolve",
			"crate", name,
			"version", version,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Resolve(ctx, name)
}
