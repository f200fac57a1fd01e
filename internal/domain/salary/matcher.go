package salary

import (
	"github.com/cloudflare/ahocorasick"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement/normalize"
)

// KeywordMatcher matches a fixed keyword set against transaction text in a
// single pass using the Aho-Corasick automaton. Keywords are case-folded at
// build time; the Thai Unicode block passes through folding untouched, so
// Thai-script keywords match without any transliteration.
//
// The matcher is immutable after construction and safe for concurrent use.
type KeywordMatcher struct {
	matcher  *ahocorasick.Matcher
	patterns []string
}

// NewKeywordMatcher builds an automaton over the given keywords. Blank
// keywords are dropped; an empty set yields a matcher that never matches.
func NewKeywordMatcher(keywords []string) *KeywordMatcher {
	patterns := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if folded := normalize.Fold(kw); folded != "" {
			patterns = append(patterns, folded)
		}
	}
	if len(patterns) == 0 {
		return &KeywordMatcher{}
	}

	bytePatterns := make([][]byte, len(patterns))
	for i, p := range patterns {
		bytePatterns[i] = []byte(p)
	}
	return &KeywordMatcher{
		matcher:  ahocorasick.NewMatcher(bytePatterns),
		patterns: patterns,
	}
}

// Matches reports whether any configured keyword occurs in text.
func (m *KeywordMatcher) Matches(text string) bool {
	if m.matcher == nil {
		return false
	}
	return len(m.matcher.Match([]byte(normalize.Fold(text)))) > 0
}

// MatchedKeywords returns every configured keyword occurring in text, in
// pattern order. Used for audit output, not for scoring.
func (m *KeywordMatcher) MatchedKeywords(text string) []string {
	if m.matcher == nil {
		return nil
	}
	hits := m.matcher.Match([]byte(normalize.Fold(text)))
	if len(hits) == 0 {
		return nil
	}

	seen := make(map[int]bool, len(hits))
	out := make([]string, 0, len(hits))
	for _, idx := range hits {
		if idx < 0 || idx >= len(m.patterns) || seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, m.patterns[idx])
	}
	return out
}

// PatternCount returns the number of keywords loaded.
func (m *KeywordMatcher) PatternCount() int { return len(m.patterns) }
