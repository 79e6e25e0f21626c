package filter

import (
	"strings"
)

// Predicate reports whether candidate matches the search term.
type Predicate func(candidate string, term string) bool

// NormalizeString can be used to normalize a string value for filtering/comparison.
// The value is made lowercase and has any leading and/or trailing whitespace removed.
func NormalizeString(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// StripSeparators removes '-' and '_' from s and normalizes the result.
//
// Example:
//
// StripSeparators("Brave_Search-MCP") // "bravesearchmcp"
func StripSeparators(s string) string {
	return NormalizeString(strings.NewReplacer("-", "", "_", "").Replace(s))
}

// Exact matches when candidate and term are byte-for-byte equal.
func Exact(candidate string, term string) bool {
	return candidate == term
}

// Contains matches when either value contains the other (case-insensitive, normalized).
//
// Example:
//
// Contains("brave-search", "brave")     // true
// Contains("brave", "brave-search-mcp") // true
func Contains(candidate string, term string) bool {
	c := NormalizeString(candidate)
	t := NormalizeString(term)
	if c == "" || t == "" {
		return false
	}
	return strings.Contains(c, t) || strings.Contains(t, c)
}

// SeparatorInsensitive matches when both values are equal once separators are stripped.
//
// Example:
//
// SeparatorInsensitive("brave_search", "brave-search") // true
func SeparatorInsensitive(candidate string, term string) bool {
	c := StripSeparators(candidate)
	return c != "" && c == StripSeparators(term)
}

// Prefix matches when candidate starts with term (case-insensitive, normalized).
func Prefix(candidate string, term string) bool {
	t := NormalizeString(term)
	return t != "" && strings.HasPrefix(NormalizeString(candidate), t)
}

// Any returns a Predicate that matches when at least one of the supplied predicates matches.
func Any(predicates ...Predicate) Predicate {
	return func(candidate string, term string) bool {
		for _, p := range predicates {
			if p(candidate, term) {
				return true
			}
		}
		return false
	}
}

// Fuzzy is the server name matcher: exact, containment in either direction,
// separator-insensitive equality, or prefix.
func Fuzzy(candidate string, term string) bool {
	return Any(Exact, Contains, SeparatorInsensitive, Prefix)(candidate, term)
}
