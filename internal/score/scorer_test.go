package score

import (
	"math"
	"testing"

	"github.com/ppiankov/diatax/internal/model"
)

func hits(cats ...model.Category) []model.KeywordHit {
	out := make([]model.KeywordHit, len(cats))
	for i, c := range cats {
		out[i] = model.KeywordHit{Token: "kw", Category: c}
	}
	return out
}

func TestScorer_ActPriority(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name string
		hits []model.KeywordHit
		want model.DialogueAct
	}{
		{"none", nil, model.ActUnknown},
		{"only non-act categories", hits(model.CategoryComplaints, model.CategoryNeutral), model.ActUnknown},
		{"greeting", hits(model.CategoryGreeting), model.ActGreeting},
		{"question beats greeting", hits(model.CategoryGreeting, model.CategoryQuestion), model.ActQuestion},
		{"thanks beats farewell", hits(model.CategoryFarewell, model.CategoryThanks), model.ActThanks},
		{"farewell beats statement", hits(model.CategoryStatement, model.CategoryFarewell), model.ActFarewell},
		{"statement", hits(model.CategoryStatement, model.CategoryNegative), model.ActStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scorer.Act(tt.hits); got != tt.want {
				t.Errorf("Act = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestScorer_ToneAndScore(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name      string
		hits      []model.KeywordHit
		wantTone  model.Tone
		wantScore int
	}{
		{"neutral", nil, model.ToneNeutral, 0},
		{"balanced", hits(model.CategoryPositive, model.CategoryNegative), model.ToneNeutral, 0},
		{"positive", hits(model.CategoryThanks, model.CategoryGreeting), model.TonePositive, 20},
		{"negative clamps to zero", hits(model.CategoryComplaints, model.CategoryNegative), model.ToneNegative, 0},
		{"mixed", hits(model.CategoryPositive, model.CategoryPositive, model.CategoryPositive, model.CategoryComplaints), model.TonePositive, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := scorer.Calculate(tt.hits)
			if r.Tone != tt.wantTone {
				t.Errorf("Tone = %s, want %s", r.Tone, tt.wantTone)
			}
			if r.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", r.Score, tt.wantScore)
			}
		})
	}
}

func TestScorer_ScoreCapsAt100(t *testing.T) {
	many := make([]model.Category, 15)
	for i := range many {
		many[i] = model.CategoryPositive
	}

	r := NewScorer().Calculate(hits(many...))
	if r.Score != 100 {
		t.Errorf("expected score capped at 100, got %d", r.Score)
	}
	if r.Positive != 15 {
		t.Errorf("expected 15 positive hits, got %d", r.Positive)
	}
}

func TestCallStats(t *testing.T) {
	employee := []model.UtteranceAnalysis{
		{Act: model.ActGreeting, Tone: model.TonePositive, Score: 20, Keywords: hits(model.CategoryGreeting, model.CategoryThanks)},
		{Act: model.ActQuestion, Tone: model.ToneNeutral, Score: 0, Lexical: []model.LexicalToken{{Kind: model.LexicalWord, Value: "qué"}}},
	}
	customer := []model.UtteranceAnalysis{
		{Act: model.ActUnknown, Tone: model.ToneNeutral, Score: 10, Keywords: hits(model.Unclassified),
			Corrections: []model.Correction{{Original: "facura", Corrected: "factura"}}},
	}

	stats := CallStats(employee, customer)

	if stats.Utterances != 3 {
		t.Errorf("expected 3 utterances, got %d", stats.Utterances)
	}
	if math.Abs(stats.MeanScore-10) > 1e-9 {
		t.Errorf("expected mean score 10, got %f", stats.MeanScore)
	}
	if stats.Acts[model.ActGreeting] != 1 || stats.Acts[model.ActUnknown] != 1 {
		t.Errorf("unexpected acts: %v", stats.Acts)
	}
	if stats.KeywordHits != 3 || stats.Unclassified != 1 {
		t.Errorf("unexpected hits: %d total, %d unclassified", stats.KeywordHits, stats.Unclassified)
	}
	if stats.Corrections != 1 {
		t.Errorf("expected 1 correction, got %d", stats.Corrections)
	}
	if stats.Lexical[model.LexicalWord] != 1 {
		t.Errorf("unexpected lexical counts: %v", stats.Lexical)
	}
}

func TestSummarize(t *testing.T) {
	calls := []model.CallReport{
		{CallID: "1", Stats: model.CallStats{Utterances: 1, MeanScore: 40, Acts: map[model.DialogueAct]int{model.ActThanks: 1}}},
		{CallID: "2", Stats: model.CallStats{Utterances: 3, MeanScore: 0, Tones: map[model.Tone]int{model.ToneNeutral: 3}}},
	}

	sum := Summarize(calls, 2)

	if sum.Calls != 2 || sum.Failed != 2 || sum.Utterances != 4 {
		t.Errorf("unexpected totals: %+v", sum)
	}
	if math.Abs(sum.MeanScore-10) > 1e-9 {
		t.Errorf("expected weighted mean 10, got %f", sum.MeanScore)
	}
	if sum.Acts[model.ActThanks] != 1 || sum.Tones[model.ToneNeutral] != 3 {
		t.Errorf("unexpected histograms: %v %v", sum.Acts, sum.Tones)
	}
}

func TestCategoryFrequency(t *testing.T) {
	calls := []model.CallReport{{
		Employee: []model.UtteranceAnalysis{{Keywords: hits(model.CategoryGreeting, model.CategoryGreeting)}},
		Customer: []model.UtteranceAnalysis{{Keywords: hits(model.CategoryGreeting, model.CategoryComplaints)}},
	}}

	freq := CategoryFrequency(calls)

	if got := freq[model.CategoryGreeting]; got.Employee != 2 || got.Customer != 1 {
		t.Errorf("unexpected greeting counts: %+v", got)
	}
	if got := freq[model.CategoryComplaints]; got.Employee != 0 || got.Customer != 1 {
		t.Errorf("unexpected complaint counts: %+v", got)
	}
}
