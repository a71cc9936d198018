package textutil

import "testing"

func TestLower_NormalizesAccents(t *testing.T) {
	composed := "Días"
	split := "Di\u0301as" // i + combining acute accent

	if Lower(composed) != Lower(split) {
		t.Errorf("expected NFC forms to match: %q vs %q", Lower(composed), Lower(split))
	}
	if Lower(composed) != "días" {
		t.Errorf("expected días, got %q", Lower(composed))
	}
}

func TestKeyword_Trims(t *testing.T) {
	if got := Keyword("  Buenos Días \t"); got != "buenos días" {
		t.Errorf("expected 'buenos días', got %q", got)
	}
}

func TestTrimPunct(t *testing.T) {
	cases := map[string]string{
		"hola,":    "hola",
		"factura?": "factura",
		"bien!.":   "bien",
		"¿qué":     "¿qué",
		"...":      "",
		"a.b":      "a.b",
	}
	for in, want := range cases {
		if got := TrimPunct(in); got != want {
			t.Errorf("TrimPunct(%q) = %q, want %q", in, got, want)
		}
	}
}
