package mock

import "github.com/fwojciec/cratedocs"

var _ cratedocs.DocExtractor = (*DocExtractor)(nil)

// DocExtractor is a mock implementation of cratedocs.DocExtractor.
type DocExtractor struct {
	AnchorItemsFn func(html string, max int) []string
	CodeBlocksFn  func(html string, max int) []string
	MainTextFn    func(html string) string
}

func (e *DocExtractor) AnchorItems(html string, max int) []string {
	return e.AnchorItemsFn(html, max)
}

func (e *DocExtractor) CodeBlocks(html string, max int) []string {
	return e.CodeBlocksFn(html, max)
}

func (e *DocExtractor) MainText(html string) string {
	return e.MainTextFn(html)
}

var _ cratedocs.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of cratedocs.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*cratedocs.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html string) (*cratedocs.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ cratedocs.Converter = (*Converter)(nil)

// Converter is a mock implementation of cratedocs.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
