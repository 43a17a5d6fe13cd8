package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeWord prepares a surface form for lookups: trims surrounding
// whitespace and converts it to NFC so that precomposed and decomposed
// diacritics ("ó" vs "ó") compare equal. Case is preserved.
func NormalizeWord(word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return ""
	}
	return norm.NFC.String(word)
}

// IsSingleWord reports whether name is a single token: non-empty with no
// multi-word separator ('_' as used by WordNet lemma names, or whitespace).
func IsSingleWord(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsFunc(name, func(r rune) bool {
		return r == '_' || unicode.IsSpace(r)
	})
}
