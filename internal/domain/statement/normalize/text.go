package normalize

import (
	"strings"
)

// Fold prepares text for keyword comparison: trims, collapses runs of
// whitespace, and upper-cases. strings.ToUpper is rune-aware, so the Thai
// Unicode block passes through untouched; stripping non-ASCII here would make
// every Thai-language keyword silently stop matching.
func Fold(s string) string {
	return strings.ToUpper(CleanSpaces(s))
}

// CleanSpaces trims and collapses internal whitespace runs to single spaces.
func CleanSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CleanLines strips each line and drops blank ones, the common pre-pass for
// all per-bank parsers.
func CleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		if trimmed := strings.TrimSpace(ln); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func containsFolded(foldedText, keyword string) bool {
	return strings.Contains(foldedText, strings.ToUpper(keyword))
}

// ContainsAny reports whether the folded text contains any of the keywords.
func ContainsAny(text string, keywords []string) bool {
	folded := Fold(text)
	for _, kw := range keywords {
		if kw != "" && containsFolded(folded, kw) {
			return true
		}
	}
	return false
}
