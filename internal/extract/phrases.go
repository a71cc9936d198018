// Package extract turns utterances into tokens: taxonomy-aware phrase
// segmentation for discovery, and lexical tokens for the analysis pipeline.
package extract

import (
	"strings"

	"github.com/ppiankov/diatax/internal/textutil"
)

// KeywordSet answers exact membership of a word or phrase in any category
type KeywordSet interface {
	Contains(phrase string) bool
}

// SetFunc adapts a plain function to KeywordSet
type SetFunc func(phrase string) bool

// Contains calls f
func (f SetFunc) Contains(phrase string) bool {
	return f(phrase)
}

// Segment splits a sentence into single words and two-word phrases. Walking
// left to right, a pair of adjacent words that is listed verbatim in set is
// emitted as one token and both words are consumed; otherwise the current
// word is emitted alone. The walk never backtracks, so of two overlapping
// candidate phrases only the earlier one can match.
func Segment(sentence string, set KeywordSet) []string {
	words := strings.Fields(textutil.Lower(sentence))

	switch len(words) {
	case 0:
		return []string{}
	case 1:
		return words
	}

	tokens := make([]string, 0, len(words))
	consumedLast := false
	for i := 0; i < len(words)-1; i++ {
		phrase := words[i] + " " + words[i+1]
		if set.Contains(phrase) {
			tokens = append(tokens, phrase)
			if i+1 == len(words)-1 {
				consumedLast = true
			}
			i++
			continue
		}
		tokens = append(tokens, words[i])
	}
	if !consumedLast {
		tokens = append(tokens, words[len(words)-1])
	}
	return tokens
}
