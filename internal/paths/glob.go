// Package paths matches slash-separated relative paths against glob patterns.
package paths

import (
	"path"
	"strings"
)

// MatchGlob reports whether a slash-separated path matches pattern.
// Supports *, ? and character classes within a segment, and ** for any
// number of whole segments.
func MatchGlob(pattern, p string) bool {
	if strings.Contains(pattern, "**") {
		return matchParts(SplitPath(pattern), SplitPath(p))
	}

	matched, err := path.Match(pattern, p)
	if err != nil {
		return false
	}
	return matched
}

// MatchAny reports whether relPath matches any of patterns. A pattern
// without a slash is also tried against the last path segment, so "*.tt"
// excludes templates at any depth.
func MatchAny(patterns []string, relPath string) bool {
	base := path.Base(relPath)
	for _, pattern := range patterns {
		if MatchGlob(pattern, relPath) {
			return true
		}
		if !strings.Contains(pattern, "/") && MatchGlob(pattern, base) {
			return true
		}
	}
	return false
}

func matchParts(patternParts, pathParts []string) bool {
	if len(patternParts) == 0 {
		return len(pathParts) == 0
	}

	if len(pathParts) == 0 {
		for _, p := range patternParts {
			if p != "**" {
				return false
			}
		}
		return true
	}

	if patternParts[0] == "**" {
		// zero segments, or consume one and stay on **
		return matchParts(patternParts[1:], pathParts) ||
			matchParts(patternParts, pathParts[1:])
	}

	matched, err := path.Match(patternParts[0], pathParts[0])
	if err != nil || !matched {
		return false
	}

	return matchParts(patternParts[1:], pathParts[1:])
}

// SplitPath splits a slash-separated path into its non-empty segments.
func SplitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
