package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/cratedocs"
)

// Ensure Converter implements cratedocs.Converter at compile time.
var _ cratedocs.Converter = (*Converter)(nil)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Converter wraps html-to-markdown to turn extracted documentation HTML
// into Markdown suitable for inclusion in a crate report.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms clean HTML content into Markdown. Runs of three or
// more blank lines are collapsed to one.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", cratedocs.Errorf(cratedocs.EINVALID, "empty html input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", cratedocs.Errorf(cratedocs.EINTERNAL, "markdown conversion failed: %v", err)
	}

	result = blankRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result) + "\n", nil
}
