package mock

import (
	"context"

	"github.com/fwojciec/cratedocs"
)

var _ cratedocs.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of cratedocs.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, name string) (*cratedocs.Crate, error)
}

func (r *Resolver) Resolve(ctx context.Context, name string) (*cratedocs.Crate, error) {
	return r.ResolveFn(ctx, name)
}
