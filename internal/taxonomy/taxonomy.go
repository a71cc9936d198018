// Package taxonomy owns the category -> keyword mapping that drives discovery,
// classification and analysis.
//
// A Taxonomy always contains the reserved UNCLASSIFIED_KEYWORDS bucket and
// every recognized category. Keywords are lowercase, trimmed and appear in at
// most one category; every mutating operation preserves that invariant.
package taxonomy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/ppiankov/diatax/internal/model"
	"github.com/ppiankov/diatax/internal/storage"
	"github.com/ppiankov/diatax/internal/textutil"
)

var (
	// ErrKeywordNotFound is returned when a keyword is not in the expected category
	ErrKeywordNotFound = errors.New("keyword not found")

	// ErrUnknownCategory is returned for categories outside the fixed enumeration
	ErrUnknownCategory = errors.New("unknown category")

	// ErrOverlap is returned when a keyword is listed under two categories
	ErrOverlap = errors.New("keyword listed in more than one category")
)

// Taxonomy is an ordered category -> keyword list mapping
type Taxonomy struct {
	order []model.Category
	lists map[model.Category][]string
	index map[string]model.Category
}

// New returns a taxonomy holding the reserved bucket and every recognized
// category, all empty.
func New() *Taxonomy {
	t := &Taxonomy{
		lists: make(map[model.Category][]string),
		index: make(map[string]model.Category),
	}
	for _, c := range model.Categories() {
		t.ensure(c)
	}
	t.ensure(model.Unclassified)
	return t
}

// FromMap builds a taxonomy from raw file contents. Keywords are normalized,
// blanks and in-category repeats are dropped. A keyword present in two
// categories is rejected with ErrOverlap.
func FromMap(raw map[string][]string) (*Taxonomy, error) {
	t := New()

	// Deterministic iteration so overlap errors name the same pair every run.
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := categoryRank(model.Category(names[i])), categoryRank(model.Category(names[j]))
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		c := model.Category(name)
		t.ensure(c)
		for _, kw := range raw[name] {
			kw = textutil.Keyword(kw)
			if kw == "" {
				continue
			}
			if owner, ok := t.index[kw]; ok {
				if owner == c {
					continue
				}
				return nil, fmt.Errorf("%w: %q in %s and %s", ErrOverlap, kw, owner, c)
			}
			t.lists[c] = append(t.lists[c], kw)
			t.index[kw] = c
		}
	}

	return t, nil
}

// Load reads and normalizes the taxonomy file at path
func Load(path string) (*Taxonomy, error) {
	var raw map[string][]string
	if err := storage.ReadJSON(path, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, &storage.Error{Op: "decode", Path: path, Err: errors.New("expected a JSON object of keyword lists")}
	}

	t, err := FromMap(raw)
	if err != nil {
		return nil, &storage.Error{Op: "decode", Path: path, Err: err}
	}
	return t, nil
}

// Save atomically writes the taxonomy to path
func (t *Taxonomy) Save(path string) error {
	return storage.WriteJSON(path, t)
}

// MarshalJSON writes categories in canonical order: recognized categories in
// enumeration order, other categories by name, the reserved bucket last.
func (t *Taxonomy) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, c := range t.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(string(c)); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		list := t.lists[c]
		if list == nil {
			list = []string{}
		}
		if err := enc.Encode(list); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Categories returns every category in canonical order
func (t *Taxonomy) Categories() []model.Category {
	out := make([]model.Category, len(t.order))
	copy(out, t.order)
	return out
}

// Keywords returns a copy of a category's keywords in append order
func (t *Taxonomy) Keywords(c model.Category) []string {
	list := t.lists[c]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Unclassified returns the keywords awaiting review
func (t *Taxonomy) Unclassified() []string {
	return t.Keywords(model.Unclassified)
}

// HasCategory reports whether c exists in the taxonomy
func (t *Taxonomy) HasCategory(c model.Category) bool {
	_, ok := t.lists[c]
	return ok
}

// CategoryOf returns the category holding keyword
func (t *Taxonomy) CategoryOf(keyword string) (model.Category, bool) {
	c, ok := t.index[keyword]
	return c, ok
}

// Contains reports whether phrase is listed in any category, the reserved
// bucket included.
func (t *Taxonomy) Contains(phrase string) bool {
	_, ok := t.index[phrase]
	return ok
}

// IsClassified reports whether keyword sits in a category other than the
// reserved bucket.
func (t *Taxonomy) IsClassified(keyword string) bool {
	c, ok := t.index[keyword]
	return ok && c != model.Unclassified
}

// KnownSet returns every keyword outside the reserved bucket
func (t *Taxonomy) KnownSet() map[string]bool {
	known := make(map[string]bool, len(t.index))
	for kw, c := range t.index {
		if c != model.Unclassified {
			known[kw] = true
		}
	}
	return known
}

// Len returns the total number of keywords across all categories
func (t *Taxonomy) Len() int {
	return len(t.index)
}

// AddUnclassified appends keyword to the reserved bucket unless it is already
// listed anywhere. It reports whether the keyword was added.
func (t *Taxonomy) AddUnclassified(keyword string) bool {
	if keyword == "" {
		return false
	}
	if _, ok := t.index[keyword]; ok {
		return false
	}
	t.lists[model.Unclassified] = append(t.lists[model.Unclassified], keyword)
	t.index[keyword] = model.Unclassified
	return true
}

// MoveKeyword moves keyword from one category to another as a single
// mutation. On error t is left exactly as it was.
func MoveKeyword(t *Taxonomy, keyword string, from, to model.Category) error {
	keyword = textutil.Keyword(keyword)

	if !t.HasCategory(to) && !to.IsRecognized() {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, to)
	}

	pos := indexOf(t.lists[from], keyword)
	if pos < 0 {
		return fmt.Errorf("%w: %q not in %s", ErrKeywordNotFound, keyword, from)
	}
	if from == to {
		return nil
	}

	t.ensure(to)

	src := t.lists[from]
	next := make([]string, 0, len(src)-1)
	next = append(next, src[:pos]...)
	next = append(next, src[pos+1:]...)

	t.lists[from] = next
	t.lists[to] = append(t.lists[to], keyword)
	t.index[keyword] = to
	return nil
}

// Clone returns a deep copy
func (t *Taxonomy) Clone() *Taxonomy {
	c := &Taxonomy{
		order: make([]model.Category, len(t.order)),
		lists: make(map[model.Category][]string, len(t.lists)),
		index: make(map[string]model.Category, len(t.index)),
	}
	copy(c.order, t.order)
	for cat, list := range t.lists {
		dup := make([]string, len(list))
		copy(dup, list)
		c.lists[cat] = dup
	}
	for kw, cat := range t.index {
		c.index[kw] = cat
	}
	return c
}

// Equal reports whether both taxonomies hold the same categories, each with
// the same keywords in the same order. Category order is not compared.
func (t *Taxonomy) Equal(o *Taxonomy) bool {
	if len(t.lists) != len(o.lists) {
		return false
	}
	for cat, list := range t.lists {
		other, ok := o.lists[cat]
		if !ok || len(other) != len(list) {
			return false
		}
		for i := range list {
			if list[i] != other[i] {
				return false
			}
		}
	}
	return true
}

// ensure adds an empty category at its canonical position
func (t *Taxonomy) ensure(c model.Category) {
	if _, ok := t.lists[c]; ok {
		return
	}
	t.lists[c] = []string{}

	rank := categoryRank(c)
	pos := sort.Search(len(t.order), func(i int) bool {
		r := categoryRank(t.order[i])
		return r > rank || (r == rank && t.order[i] > c)
	})
	t.order = append(t.order, "")
	copy(t.order[pos+1:], t.order[pos:])
	t.order[pos] = c
}

// categoryRank orders recognized categories first (in enumeration order),
// then unrecognized ones, then the reserved bucket.
func categoryRank(c model.Category) int {
	if c == model.Unclassified {
		return 1 << 20
	}
	for i, known := range model.Categories() {
		if c == known {
			return i
		}
	}
	return 1 << 10
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
