package extract

import (
	"strings"
	"unicode"

	"github.com/ppiankov/diatax/internal/model"
)

// punctuation counted as PUNCTUATION tokens; other symbols (¿, ¡, quotes) are skipped
const punctuation = ".,!?;:"

// Lexical splits text into WORD, NUMBER and PUNCTUATION tokens. A word is a
// run of letters, digits or underscores; a run made only of digits is a
// NUMBER. Whitespace and other symbols produce no token.
func Lexical(text string) []model.LexicalToken {
	var tokens []model.LexicalToken
	var word strings.Builder
	digitsOnly := true

	flush := func() {
		if word.Len() == 0 {
			return
		}
		kind := model.LexicalWord
		if digitsOnly {
			kind = model.LexicalNumber
		}
		tokens = append(tokens, model.LexicalToken{Kind: kind, Value: word.String()})
		word.Reset()
		digitsOnly = true
	}

	for _, r := range text {
		switch {
		case isWordRune(r):
			if !unicode.IsDigit(r) {
				digitsOnly = false
			}
			word.WriteRune(r)
		case strings.ContainsRune(punctuation, r):
			flush()
			tokens = append(tokens, model.LexicalToken{Kind: model.LexicalPunctuation, Value: string(r)})
		default:
			flush()
		}
	}
	flush()

	return tokens
}

// CountLexical tallies tokens by kind
func CountLexical(tokens []model.LexicalToken) map[model.LexicalKind]int {
	counts := make(map[model.LexicalKind]int)
	for _, tok := range tokens {
		counts[tok.Kind]++
	}
	return counts
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_'
}
