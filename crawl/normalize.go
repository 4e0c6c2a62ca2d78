package crawl

import "strings"

// NormalizePath canonicalizes an href for frontier deduplication: leading
// relative-path markers are stripped, the path is truncated at any fragment
// marker, and a leading path separator is removed. Absolute URLs are
// rejected (they leave the documentation host).
func NormalizePath(href string) string {
	s := href
	for {
		switch {
		case strings.HasPrefix(s, "../"):
			s = s[len("../"):]
		case strings.HasPrefix(s, "./"):
			s = s[len("./"):]
		default:
			if idx := strings.IndexByte(s, '#'); idx >= 0 {
				s = s[:idx]
			}
			s = strings.TrimPrefix(s, "/")
			if strings.Contains(s, "://") {
				return ""
			}
			return s
		}
	}
}
