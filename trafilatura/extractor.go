package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/cratedocs"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements cratedocs.ContentExtractor at compile time.
var _ cratedocs.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to pull the main content out of a
// documentation page, stripping navigation and footer boilerplate.
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

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		return nil, cratedocs.Errorf(cratedocs.EINTERNAL, "content extraction failed: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, cratedocs.Errorf(cratedocs.EINTERNAL, "rendering extracted content: %v", err)
		}
	}

	return &cratedocs.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
