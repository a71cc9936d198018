package score

import (
	"github.com/ppiankov/diatax/internal/model"
)

// pointsPerHit is the quality score contribution of one net positive hit
const pointsPerHit = 10

// Result is the scoring of a single utterance
type Result struct {
	Act      model.DialogueAct
	Tone     model.Tone
	Score    int
	Positive int
	Negative int
}

// Scorer derives dialogue act, tone and quality from taxonomy keyword hits
type Scorer struct {
	positive map[model.Category]bool
	negative map[model.Category]bool
}

// NewScorer creates a scorer using the default positive/negative category split
func NewScorer() *Scorer {
	return &Scorer{
		positive: toSet(model.PositiveCategories),
		negative: toSet(model.NegativeCategories),
	}
}

func toSet(cats []model.Category) map[model.Category]bool {
	set := make(map[model.Category]bool, len(cats))
	for _, c := range cats {
		set[c] = true
	}
	return set
}

// Calculate scores an utterance from its keyword hits
func (s *Scorer) Calculate(hits []model.KeywordHit) Result {
	var r Result
	for _, h := range hits {
		switch {
		case s.positive[h.Category]:
			r.Positive++
		case s.negative[h.Category]:
			r.Negative++
		}
	}

	r.Act = s.Act(hits)
	r.Tone = tone(r.Positive - r.Negative)
	r.Score = clamp((r.Positive-r.Negative)*pointsPerHit, 0, 100)
	return r
}

// Act returns the first dialogue act, in priority order, whose category is
// hit by any token; ActUnknown when none is.
func (s *Scorer) Act(hits []model.KeywordHit) model.DialogueAct {
	present := make(map[model.Category]bool, len(hits))
	for _, h := range hits {
		present[h.Category] = true
	}
	for _, p := range model.ActPriority {
		if present[p.Category] {
			return p.Act
		}
	}
	return model.ActUnknown
}

func tone(balance int) model.Tone {
	switch {
	case balance > 0:
		return model.TonePositive
	case balance < 0:
		return model.ToneNegative
	default:
		return model.ToneNeutral
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
