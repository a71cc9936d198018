package extract

import (
	"reflect"
	"testing"
)

type mapSet map[string]bool

func (m mapSet) Contains(phrase string) bool { return m[phrase] }

func TestSegment(t *testing.T) {
	set := mapSet{
		"buenos días":    true,
		"días señor":     true,
		"muchas gracias": true,
	}

	tests := []struct {
		name     string
		sentence string
		want     []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", "   \t ", []string{}},
		{"single word", "Hola", []string{"hola"}},
		{"single word that starts a phrase", "buenos", []string{"buenos"}},
		{"phrase priority", "hola buenos días señor", []string{"hola", "buenos días", "señor"}},
		{"phrase consumes last word", "hola buenos días", []string{"hola", "buenos días"}},
		{"phrase only", "Muchas Gracias", []string{"muchas gracias"}},
		{"no phrases", "tengo un reclamo urgente", []string{"tengo", "un", "reclamo", "urgente"}},
		{"punctuation blocks a phrase", "buenos días, señor", []string{"buenos", "días,", "señor"}},
		{"two phrases back to back", "muchas gracias buenos días", []string{"muchas gracias", "buenos días"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.sentence, set)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segment(%q) = %q, want %q", tt.sentence, got, tt.want)
			}
		})
	}
}

func TestSegment_GreedyOverlap(t *testing.T) {
	// "a b" and "b c" both match; only the earlier one is taken.
	set := mapSet{"a b": true, "b c": true}

	got := Segment("a b c", set)
	want := []string{"a b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSegment_CoversEveryWord(t *testing.T) {
	set := SetFunc(func(p string) bool { return p == "x y" })

	got := Segment("w x y z x y", set)
	want := []string{"w", "x y", "z", "x y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}
