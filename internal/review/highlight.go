// Package review locates keywords inside transcripts so an operator can see
// a keyword in context before classifying it.
package review

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/diatax/internal/textutil"
)

// Span is a byte range [Start, End) of a match within a line
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Line is one transcript line with its keyword matches
type Line struct {
	Text    string `json:"text"`
	Matches []Span `json:"matches,omitempty"`
}

// Find returns the non-overlapping, case-insensitive whole-word occurrences
// of keyword in text. Word characters are Unicode letters, digits, marks and
// underscore, so "día" does not match inside "días". A keyword edge that is
// itself punctuation ("¿cómo") needs no boundary on that side.
func Find(text, keyword string) []Span {
	keyword = textutil.Keyword(keyword)
	if keyword == "" {
		return nil
	}
	text = textutil.Lower(text)

	kwLen := utf8.RuneCountInString(keyword)
	first, _ := utf8.DecodeRuneInString(keyword)
	last, _ := utf8.DecodeLastRuneInString(keyword)

	offsets := make([]int, 0, len(text)+1)
	runes := make([]rune, 0, len(text))
	for i, r := range text {
		offsets = append(offsets, i)
		runes = append(runes, r)
	}
	offsets = append(offsets, len(text))

	var spans []Span
	for i := 0; i+kwLen <= len(runes); i++ {
		if isWordRune(first) && i > 0 && isWordRune(runes[i-1]) {
			continue
		}
		end := i + kwLen
		if isWordRune(last) && end < len(runes) && isWordRune(runes[end]) {
			continue
		}
		if !strings.EqualFold(text[offsets[i]:offsets[end]], keyword) {
			continue
		}
		spans = append(spans, Span{Start: offsets[i], End: offsets[end]})
		i = end - 1
	}
	return spans
}

// Contains reports whether keyword occurs in text as a whole word
func Contains(text, keyword string) bool {
	return len(Find(text, keyword)) > 0
}

// Lines pairs every line with its matches. Lines are returned in NFC
// lowercase form, which is what the spans index into.
func Lines(lines []string, keyword string) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = Line{Text: textutil.Lower(l), Matches: Find(l, keyword)}
	}
	return out
}

// Mark wraps every match in before/after, e.g. ANSI colour codes for a terminal
func Mark(text, keyword, before, after string) string {
	text = textutil.Lower(text)
	spans := Find(text, keyword)
	if len(spans) == 0 {
		return text
	}

	var b strings.Builder
	prev := 0
	for _, s := range spans {
		b.WriteString(text[prev:s.Start])
		b.WriteString(before)
		b.WriteString(text[s.Start:s.End])
		b.WriteString(after)
		prev = s.End
	}
	b.WriteString(text[prev:])
	return b.String()
}

// Examples returns up to limit lines containing keyword, deduplicated
func Examples(lines []string, keyword string, limit int) []string {
	var out []string
	seen := make(map[string]bool)
	for _, l := range lines {
		if limit > 0 && len(out) >= limit {
			break
		}
		if seen[l] || !Contains(l, keyword) {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
