package filter

import "strings"

// Set holds an ordered list of directory exclusion patterns. Patterns keep
// their original text; tokens are derived once when they are added.
type Set struct {
	patterns []string
	tokens   []string
}

// NewSet creates a set from the given patterns. Blank patterns are dropped.
func NewSet(patterns ...string) *Set {
	s := &Set{}
	for _, p := range patterns {
		s.Add(p)
	}
	return s
}

// Add appends a pattern. It returns false if the pattern was blank after
// trimming and therefore discarded.
func (s *Set) Add(pattern string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return false
	}
	s.patterns = append(s.patterns, pattern)
	s.tokens = append(s.tokens, Normalize(pattern))
	return true
}

// Patterns returns the patterns in the order they were added.
func (s *Set) Patterns() []string {
	out := make([]string, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// Len returns the number of patterns in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Excluded reports whether the directory with bare name and root-relative
// path relPath (forward slashes) should be pruned. First match wins.
func (s *Set) Excluded(name, relPath string) bool {
	if s == nil {
		return false
	}
	for _, token := range s.tokens {
		if matchToken(token, name, relPath) {
			return true
		}
	}
	return false
}
