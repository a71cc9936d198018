package score

import "github.com/ppiankov/diatax/internal/model"

// CallStats aggregates the analyzed utterances of one call (both sides)
func CallStats(utterances ...[]model.UtteranceAnalysis) model.CallStats {
	stats := model.CallStats{
		Acts:    make(map[model.DialogueAct]int),
		Tones:   make(map[model.Tone]int),
		Lexical: make(map[model.LexicalKind]int),
	}

	total := 0
	for _, side := range utterances {
		for _, u := range side {
			stats.Utterances++
			stats.Acts[u.Act]++
			stats.Tones[u.Tone]++
			stats.Corrections += len(u.Corrections)
			stats.KeywordHits += len(u.Keywords)
			for _, h := range u.Keywords {
				if h.Category == model.Unclassified {
					stats.Unclassified++
				}
			}
			for _, tok := range u.Lexical {
				stats.Lexical[tok.Kind]++
			}
			total += u.Score
		}
	}

	if stats.Utterances > 0 {
		stats.MeanScore = float64(total) / float64(stats.Utterances)
	}
	return stats
}

// Summarize aggregates per-call stats into run totals. The mean score is
// weighted by utterance count.
func Summarize(calls []model.CallReport, failed int) model.Summary {
	sum := model.Summary{
		Calls:  len(calls),
		Failed: failed,
		Acts:   make(map[model.DialogueAct]int),
		Tones:  make(map[model.Tone]int),
	}

	weighted := 0.0
	for _, c := range calls {
		sum.Utterances += c.Stats.Utterances
		weighted += c.Stats.MeanScore * float64(c.Stats.Utterances)
		for act, n := range c.Stats.Acts {
			sum.Acts[act] += n
		}
		for t, n := range c.Stats.Tones {
			sum.Tones[t] += n
		}
	}

	if sum.Utterances > 0 {
		sum.MeanScore = weighted / float64(sum.Utterances)
	}
	return sum
}

// CategoryFrequency counts keyword hits per category and side across calls
func CategoryFrequency(calls []model.CallReport) map[model.Category]model.SideCounts {
	freq := make(map[model.Category]model.SideCounts)
	for _, c := range calls {
		for _, u := range c.Employee {
			for _, h := range u.Keywords {
				counts := freq[h.Category]
				counts.Employee++
				freq[h.Category] = counts
			}
		}
		for _, u := range c.Customer {
			for _, h := range u.Keywords {
				counts := freq[h.Category]
				counts.Customer++
				freq[h.Category] = counts
			}
		}
	}
	return freq
}
