package pipeline

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/antzucaro/matchr"

	"github.com/ppiankov/diatax/internal/model"
	"github.com/ppiankov/diatax/internal/textutil"
)

// minCorrectableLen is the shortest word (in runes) the speller will touch
const minCorrectableLen = 4

type vocabEntry struct {
	word     string
	primary  string
	fallback string
}

// Speller corrects words toward the taxonomy vocabulary. A word is replaced
// only when a vocabulary word shares a Double Metaphone code with it and the
// Jaro-Winkler similarity reaches the threshold.
type Speller struct {
	known     map[string]bool
	entries   []vocabEntry
	threshold float64
}

// NewSpeller builds a speller over the single-word entries of vocabulary.
// Phrases are ignored.
func NewSpeller(vocabulary []string, threshold float64) *Speller {
	s := &Speller{
		known:     make(map[string]bool, len(vocabulary)),
		threshold: threshold,
	}

	words := make([]string, 0, len(vocabulary))
	for _, w := range vocabulary {
		w = strings.TrimLeft(textutil.Keyword(w), "¿¡")
		if w == "" || strings.ContainsAny(w, " \t") || s.known[w] {
			continue
		}
		s.known[w] = true
		words = append(words, w)
	}
	// Stable candidate order makes ties deterministic.
	sort.Strings(words)

	for _, w := range words {
		p, f := matchr.DoubleMetaphone(w)
		s.entries = append(s.entries, vocabEntry{word: w, primary: p, fallback: f})
	}
	return s
}

// Suggest returns the best vocabulary replacement for word
func (s *Speller) Suggest(word string) (string, float64, bool) {
	if s.known[word] || utf8.RuneCountInString(word) < minCorrectableLen || !hasLetter(word) {
		return word, 0, false
	}

	p, f := matchr.DoubleMetaphone(word)
	best, bestScore := "", 0.0
	for _, e := range s.entries {
		if !sharesCode(p, f, e.primary, e.fallback) {
			continue
		}
		sim := matchr.JaroWinkler(word, e.word, false)
		if sim >= s.threshold && sim > bestScore {
			best, bestScore = e.word, sim
		}
	}

	if best == "" {
		return word, 0, false
	}
	return best, bestScore, true
}

// Correct rewrites every correctable word of text. Leading ¿/¡ and trailing
// punctuation stay attached to the replaced word.
func (s *Speller) Correct(text string) (string, []model.Correction) {
	words := strings.Fields(text)
	var corrections []model.Correction

	for i, w := range words {
		core := strings.TrimLeft(w, "¿¡")
		prefix := w[:len(w)-len(core)]
		bare := textutil.TrimPunct(core)
		suffix := core[len(bare):]

		fixed, sim, ok := s.Suggest(bare)
		if !ok {
			continue
		}
		words[i] = prefix + fixed + suffix
		corrections = append(corrections, model.Correction{Original: bare, Corrected: fixed, Similarity: sim})
	}

	if len(corrections) == 0 {
		return text, nil
	}
	return strings.Join(words, " "), corrections
}

func sharesCode(p1, f1, p2, f2 string) bool {
	for _, a := range []string{p1, f1} {
		if a == "" {
			continue
		}
		if a == p2 || a == f2 {
			return true
		}
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
