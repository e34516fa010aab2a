package textnorm

import (
	"strings"
	"unicode"
)

// Normalize lowercases text, strips punctuation and collapses separators to single spaces
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	for _, r := range strings.ToLower(text) {
		switch {
		case r == '\'' || r == '’':
			// "don't" -> "dont"
			continue
		case isWordRune(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		default:
			pendingSpace = true
		}
	}

	return b.String()
}

// Tokenize returns the [a-z0-9]+ runs of the normalized text
func Tokenize(text string) []string {
	norm := Normalize(text)
	if norm == "" {
		return nil
	}
	return strings.FieldsFunc(norm, func(r rune) bool {
		return !isTokenRune(r)
	})
}

// TokenSet returns the distinct tokens of text
func TokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isTokenRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
