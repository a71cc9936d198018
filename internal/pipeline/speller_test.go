package pipeline

import "testing"

func TestSpeller_Suggest(t *testing.T) {
	s := NewSpeller([]string{"reclamo", "gracias", "buenos días", "Factura"}, 0.92)

	tests := []struct {
		word    string
		want    string
		changed bool
	}{
		{"reclammo", "reclamo", true},
		{"reclamo", "reclamo", false},
		{"factura", "factura", false}, // vocabulary is normalized
		{"zapato", "zapato", false},
		{"días", "días", false}, // phrases are not vocabulary
		{"1234", "1234", false},
		{"rec", "rec", false},
	}

	for _, tt := range tests {
		got, _, changed := s.Suggest(tt.word)
		if got != tt.want || changed != tt.changed {
			t.Errorf("Suggest(%q) = %q, %v; want %q, %v", tt.word, got, changed, tt.want, tt.changed)
		}
	}
}

func TestSpeller_CorrectKeepsPunctuation(t *testing.T) {
	s := NewSpeller([]string{"reclamo"}, 0.92)

	got, corrections := s.Correct("un ¿reclammo?")
	if got != "un ¿reclamo?" {
		t.Errorf("unexpected correction %q", got)
	}
	if len(corrections) != 1 || corrections[0].Original != "reclammo" || corrections[0].Similarity < 0.92 {
		t.Errorf("unexpected corrections: %+v", corrections)
	}

	unchanged := "texto   sin  cambios"
	if got, c := s.Correct(unchanged); got != unchanged || c != nil {
		t.Errorf("expected untouched text, got %q %+v", got, c)
	}
}
