// Package textutil normalizes transcript and keyword text so that composed and
// decomposed accents ("días" typed either way) compare equal.
package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Lower returns s in NFC form, lowercased with Spanish casing rules.
// A fresh Caser is used per call because Caser is not safe for concurrent use.
func Lower(s string) string {
	return cases.Lower(language.Spanish).String(norm.NFC.String(s))
}

// Keyword normalizes a taxonomy entry: lowercase and trimmed
func Keyword(s string) string {
	return strings.TrimSpace(Lower(s))
}

// TrimPunct strips trailing sentence punctuation (. , ? !) from a token
func TrimPunct(token string) string {
	return strings.TrimRight(token, ".,?!")
}
