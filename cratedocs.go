// Package cratedocs aggregates reference material for Rust crates. It
// resolves a crate's newest published version from crates.io, crawls the
// crate's docs.rs pages, extracts anchor items and code examples, and
// enriches the result with the README and example files from the crate's
// GitHub repository, producing one structured report per crate.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, crates/, sqlite/).
package cratedocs
