package cratedocs

import "strings"

// parsedVersion holds the numeric segments of a version string and whether
// the version carries a prerelease suffix. Non-numeric dot-segments are
// treated as 0 and flagged as prerelease so they rank below clean releases.
type parsedVersion struct {
	segments   []int64
	prerelease bool
}

// parseVersion splits a version string into numeric segments,
// most-significant first. A "-suffix" marks the version as prerelease.
//
//	"0.4.2"      -> [0 4 2], stable
//	"0.10.0-rc0" -> [0 10 0], prerelease
func parseVersion(v string) parsedVersion {
	v = strings.TrimSpace(v)

	var p parsedVersion
	main := v
	if idx := strings.IndexByte(v, '-'); idx >= 0 {
		main = v[:idx]
		if idx+1 < len(v) {
			p.prerelease = true
		}
	}

	for _, seg := range strings.Split(main, ".") {
		var num int64
		any := false
		for _, ch := range seg {
			if ch < '0' || ch > '9' {
				break
			}
			any = true
			num = num*10 + int64(ch-'0')
		}
		if !any {
			// Non-numeric segment: rank as 0 and de-prioritize.
			p.prerelease = true
		}
		p.segments = append(p.segments, num)
	}
	return p
}

// VersionGreater reports whether version a ranks above version b.
//
// Versions are compared by numeric segment sequence, most-significant first,
// with missing segments treated as 0. Equal numeric sequences are broken by
// preferring the non-prerelease version. Two equally-numbered versions with
// the same prerelease status are equal-ranked and VersionGreater returns
// false for both orderings.
func VersionGreater(a, b string) bool {
	pa, pb := parseVersion(a), parseVersion(b)

	n := len(pa.segments)
	if len(pb.segments) > n {
		n = len(pb.segments)
	}
	for i := 0; i < n; i++ {
		var na, nb int64
		if i < len(pa.segments) {
			na = pa.segments[i]
		}
		if i < len(pb.segments) {
			nb = pb.segments[i]
		}
		if na != nb {
			return na > nb
		}
	}

	if pa.prerelease != pb.prerelease {
		return !pa.prerelease
	}
	return false
}
