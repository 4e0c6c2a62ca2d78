package cratedocs

// CodePredicate reports whether a block of text looks like source code.
// The check is heuristic and best-effort; swapping the predicate changes
// detection rules without touching extraction control flow.
type CodePredicate func(text string) bool

// LinkPredicate reports whether a normalized documentation path looks
// relevant enough to crawl. Like CodePredicate, it is a narrow, swappable
// heuristic.
type LinkPredicate func(path string) bool

// DocExtractor extracts structured content from a single HTML document.
// All methods are pure functions of their input.
type DocExtractor interface {
	// AnchorItems returns up to max whitespace-normalized texts of
	// link/heading/label-like elements in document order. Empty,
	// single-character, purely-numeric, and duplicate texts are discarded;
	// two-character texts are kept only if at least one character is
	// alphabetic.
	AnchorItems(html string, max int) []string

	// CodeBlocks returns up to max cleaned code snippets from
	// preformatted/code-like elements. Only blocks accepted by the
	// configured CodePredicate are kept.
	CodeBlocks(html string, max int) []string

	// MainText returns the whitespace-collapsed text of the first
	// main-content-like container yielding non-empty content.
	MainText(html string) string
}

// ExtractResult holds the main content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with boilerplate
	// (nav, footer, sidebar) removed.
	ContentHTML string
}

// ContentExtractor extracts main content from HTML pages, removing
// boilerplate.
type ContentExtractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML content (e.g., from a ContentExtractor)
	// into Markdown.
	Convert(html string) (string, error)
}
