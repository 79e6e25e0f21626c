package search

import (
	"strings"
)

// languageAliases maps accepted language codes to GitHub language names.
var languageAliases = map[string]string{
	"ts":         "typescript",
	"typescript": "typescript",
	"js":         "javascript",
	"javascript": "javascript",
	"py":         "python",
	"python":     "python",
	"sh":         "shell",
	"shell":      "shell",
	"html":       "HTML",
}

// NormalizeLanguages maps language codes (single values or comma separated lists) to GitHub
// language names, dropping duplicates. Unsupported codes are returned separately.
func NormalizeLanguages(codes []string) (valid []string, unsupported []string) {
	seen := map[string]struct{}{}

	for _, code := range codes {
		for _, part := range strings.Split(code, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			lang, ok := languageAliases[strings.ToLower(part)]
			if !ok {
				unsupported = append(unsupported, part)
				continue
			}

			if _, dup := seen[lang]; dup {
				continue
			}
			seen[lang] = struct{}{}
			valid = append(valid, lang)
		}
	}

	return valid, unsupported
}

// BuildQuery appends a 'language:' qualifier per language to query.
func BuildQuery(query string, languages []string) string {
	parts := []string{strings.TrimSpace(query)}
	for _, l := range languages {
		parts = append(parts, "language:"+strings.ToLower(l))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
