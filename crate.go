package cratedocs

import (
	"context"
	"fmt"
)

// Crate represents the resolved registry metadata for a named crate.
// It is created once by a Resolver and never mutated afterwards.
type Crate struct {
	// Name is the crate name as published on the registry.
	Name string

	// Version is the newest usable (non-yanked) version.
	Version string

	// Description is the registry description, if the registry supplied one.
	Description string

	// RepoURL is the repository URL if known, otherwise the documentation
	// URL, otherwise empty.
	RepoURL string
}

// DependencyLine returns the Cargo.toml dependency declaration for the
// resolved version, e.g. `serde = "1.0.193"`.
func (c *Crate) DependencyLine() string {
	return fmt.Sprintf("%s = %q", c.Name, c.Version)
}

// Validate returns an error if the crate contains invalid fields.
func (c *Crate) Validate() error {
	if c.Name == "" {
		return Errorf(EINVALID, "crate name required")
	}
	if c.Version == "" {
		return Errorf(EINVALID, "crate version required")
	}
	return nil
}

// Resolver determines the newest usable version of a named crate from
// registry metadata.
type Resolver interface {
	// Resolve returns the best non-yanked version for the crate along with
	// whatever description and repository metadata the registry supplied.
	// Returns ENOTFOUND if no usable version exists, EUNAVAILABLE for
	// network failures, and EINVALID for unexpected response shapes.
	Resolve(ctx context.Context, name string) (*Crate, error)
}
