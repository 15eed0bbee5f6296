// Package token normalizes free text into searchable tokens.
package token

import (
	"strings"
	"unicode"
)

// MinLength is the minimum token length kept after normalization.
const MinLength = 2

// stopWords are excluded from indexing: articles, prepositions, and
// domain-generic nouns that appear in nearly every record.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "of": {},
	"to": {}, "in": {}, "on": {}, "at": {}, "for": {}, "by": {},
	"with": {}, "from": {}, "is": {}, "are": {}, "was": {},
	"order": {}, "product": {}, "supplier": {}, "glass": {},
}

// IsStopWord reports whether w is in the stop-word set.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// CoveredByStopWord reports whether w is a substring of any stop word.
// Such a term can occur in text whose only covering token was dropped from
// the index, so index-based candidate narrowing is not exact for it.
func CoveredByStopWord(w string) bool {
	for sw := range stopWords {
		if strings.Contains(sw, w) {
			return true
		}
	}
	return false
}

// Tokenize lowercases text, replaces non-alphanumeric runes with spaces,
// splits on whitespace, and drops tokens shorter than MinLength or in the
// stop-word set. Pure and deterministic; order-preserving; duplicates kept.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	normalized := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		default:
			return ' '
		}
	}, text)

	fields := strings.Fields(normalized)
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) < MinLength {
			continue
		}
		if IsStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}
