// Package readability provides a ContentExtractor built on go-readability,
// as an alternative to the trafilatura-based one.
package readability

import (
	"strings"

	"github.com/fwojciec/cratedocs"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements cratedocs.ContentExtractor at compile time.
var _ cratedocs.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*cratedocs.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, cratedocs.Errorf(cratedocs.EINVALID, "empty html input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, cratedocs.Errorf(cratedocs.EINTERNAL, "content extraction failed: %v", err)
	}

	return &cratedocs.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
