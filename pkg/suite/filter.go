package suite

import "strings"

// Without returns a copy of the suite without the expectations whose kind or
// column matches any of the patterns. Patterns support wildcards:
//   - "prefix*" matches values starting with "prefix"
//   - "*suffix" matches values ending with "suffix"
//   - "*contains*" matches values containing "contains"
//   - "exact" matches values exactly
//
// The dataset is shared with s.
func (s *Suite) Without(patterns []string) *Suite {
	out := *s
	out.Expectations = make([]Entry, 0, len(s.Expectations))
	for _, e := range s.Expectations {
		if e.matchesAny(patterns) {
			continue
		}
		out.Expectations = append(out.Expectations, e)
	}
	return &out
}

func (e Entry) matchesAny(patterns []string) bool {
	for _, p := range patterns {
		if matchesPattern(string(e.Expectation), p) || (e.Column != "" && matchesPattern(e.Column, p)) {
			return true
		}
	}
	return false
}

// matchesPattern checks if a value matches a wildcard pattern.
func matchesPattern(value, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return value == pattern
	}

	switch {
	case strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*"):
		return strings.Contains(value, strings.Trim(pattern, "*"))
	case strings.HasPrefix(pattern, "*"):
		return strings.HasSuffix(value, strings.TrimPrefix(pattern, "*"))
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(value, strings.TrimSuffix(pattern, "*"))
	default:
		return false
	}
}
