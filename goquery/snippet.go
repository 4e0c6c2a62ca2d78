package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// codeSelector matches preformatted/code-like container elements.
const codeSelector = "pre, code, div.example, div.rust"

// rustMarkers signal Rust function/import/binding or Cargo build syntax.
// A block must contain at least one of them to count as source code.
var rustMarkers = []string{"fn ", "use ", "let ", "extern crate", "cargo", "pub fn"}

// RustCodePredicate is the default "looks like source code" heuristic.
func RustCodePredicate(text string) bool {
	for _, marker := range rustMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// CodeBlocks returns up to max cleaned code snippets from code-like
// elements in document order. Blocks rejected by the code predicate or
// empty after cleaning are discarded.
func (e *Extractor) CodeBlocks(html string, max int) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var blocks []string
	doc.Find(codeSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if len(blocks) >= max {
			return false
		}
		text := strings.TrimSpace(sel.Text())
		if text == "" || !e.code(text) {
			return true
		}
		if clean := cleanSnippet(text); clean != "" {
			blocks = append(blocks, clean)
		}
		return true
	})

	return blocks
}

// cleanSnippet drops leading blank lines and leading short pure-numeric
// "line number" header lines, stopping at the first line that is neither.
// Returns "" if nothing remains.
func cleanSnippet(snippet string) string {
	lines := strings.Split(snippet, "\n")
	for len(lines) > 0 {
		trimmed := strings.TrimSpace(lines[0])
		if trimmed == "" {
			lines = lines[1:]
			continue
		}
		if isLineNumberHeader(trimmed) {
			lines = lines[1:]
			continue
		}
		break
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// isLineNumberHeader reports whether a trimmed line is a short line whose
// first token is purely numeric, i.e. a gutter line-number artifact.
func isLineNumberHeader(line string) bool {
	if len(line) >= 8 {
		return false
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	return isNumericOnly(fields[0])
}
