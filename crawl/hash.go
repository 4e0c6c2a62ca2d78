package crawl

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// PageHash computes a short content hash of a page body using xxhash.
// Pages served identically under different paths hash equal.
func PageHash(body string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(body))
}
