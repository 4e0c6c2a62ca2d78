// Package goquery provides HTML content extraction for documentation pages
// using the goquery DOM library. It implements cratedocs.DocExtractor.
package goquery

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cratedocs"
)

// anchorSelector matches link/heading/label-like elements.
const anchorSelector = "a, span, h1, h2, h3, h4"

// mainTextSelectors are tried in order; the first yielding non-empty
// collapsed text wins.
var mainTextSelectors = []string{"main", "div.content", "div#main", "article", "body"}

// Compile-time interface verification.
var (
	_ cratedocs.DocExtractor  = (*Extractor)(nil)
	_ cratedocs.LinkExtractor = (*Extractor)(nil)
)

// Extractor extracts anchor items, code blocks, and main text from single
// HTML documents. All methods are pure functions of their input.
type Extractor struct {
	code cratedocs.CodePredicate
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCodePredicate overrides the "looks like source code" heuristic used
// by CodeBlocks. Defaults to RustCodePredicate.
func WithCodePredicate(p cratedocs.CodePredicate) Option {
	return func(e *Extractor) { e.code = p }
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{code: RustCodePredicate}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AnchorItems returns up to max normalized texts of anchor-like elements in
// document order, deduplicated by exact match.
func (e *Extractor) AnchorItems(html string, max int) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var items []string

	doc.Find(anchorSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if len(items) >= max {
			return false
		}
		text := collapseWhitespace(sel.Text())
		if !acceptAnchorText(text) {
			return true
		}
		if seen[text] {
			return true
		}
		seen[text] = true
		items = append(items, text)
		return true
	})

	return items
}

// acceptAnchorText applies the anchor noise filter: empty, single-character,
// and purely-numeric texts are dropped; two-character texts are kept only
// with at least one alphabetic character.
func acceptAnchorText(text string) bool {
	if len(text) < 2 {
		return false
	}
	if isNumericOnly(text) {
		return false
	}
	if len(text) < 3 && !containsAlphabetic(text) {
		return false
	}
	return true
}

// MainText returns the whitespace-collapsed text of the first structural
// container yielding non-empty content, falling back to the whole document.
func (e *Extractor) MainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	for _, sel := range mainTextSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if text := collapseWhitespace(node.Text()); text != "" {
			return text
		}
	}
	return collapseWhitespace(doc.Text())
}

// Hrefs implements cratedocs.LinkExtractor.
func (e *Extractor) Hrefs(html string) []string {
	return ExtractHrefs(html)
}

// ExtractHrefs returns the href attribute of every anchor element in
// document order. Hrefs are returned raw; the caller normalizes them.
func ExtractHrefs(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok && href != "" {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}

// collapseWhitespace trims the text and collapses internal whitespace runs
// to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// isNumericOnly reports whether the trimmed text consists solely of ASCII
// digits.
func isNumericOnly(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

// containsAlphabetic reports whether the text contains at least one letter.
func containsAlphabetic(s string) bool {
	for _, ch := range s {
		if unicode.IsLetter(ch) {
			return true
		}
	}
	return false
}
