// Package filter selects parts and subsections with glob patterns.
//
// Subsections are addressed by their path in the tree, "part/section/id",
// so "part-3/**" selects everything in Part III and "**/9.*" selects the
// subsections of section 9 regardless of the part it lives in.
package filter

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Path builds the address used for matching a subsection.
func Path(partID, sectionID, subsectionID string) string {
	return partID + "/" + sectionID + "/" + subsectionID
}

// Set holds include and exclude patterns.
type Set struct {
	Include []string
	Exclude []string
}

// Match reports whether p passes the set: it must match an include pattern
// (or there are none) and must not match any exclude pattern.
func (s Set) Match(p string) bool {
	return MatchesInclude(p, s.Include) && !MatchesExclude(p, s.Exclude)
}

// MatchesInclude returns true if p matches any of the include patterns. If
// patterns is empty, everything is included.
func MatchesInclude(p string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return MatchesAny(p, patterns)
}

// MatchesExclude returns true if p matches any of the exclude patterns. If
// patterns is empty, nothing is excluded.
func MatchesExclude(p string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return MatchesAny(p, patterns)
}

// MatchesAny checks p against every pattern, and also the last path element
// so a bare "9.*" works like "**/9.*".
func MatchesAny(p string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if matched, err := doublestar.Match(pattern, p); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, path.Base(p)); err == nil && matched {
			return true
		}
	}
	return false
}

// Valid reports the first malformed pattern, if any.
func Valid(patterns []string) (string, bool) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return p, false
		}
	}
	return "", true
}
