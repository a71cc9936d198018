package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ppiankov/diatax/internal/corpus"
	"github.com/ppiankov/diatax/internal/extract"
	"github.com/ppiankov/diatax/internal/model"
	"github.com/ppiankov/diatax/internal/score"
	"github.com/ppiankov/diatax/internal/taxonomy"
	"github.com/ppiankov/diatax/internal/textutil"
)

// Analyzer runs the per-utterance analysis over a fixed taxonomy snapshot.
// It is read-only after construction and safe for concurrent use.
type Analyzer struct {
	tax     *taxonomy.Taxonomy
	corpus  *corpus.Corpus
	speller *Speller // nil when spelling correction is disabled
	scorer  *score.Scorer
	cfg     model.AnalysisConfig
	log     zerolog.Logger
}

// NewAnalyzer creates an analyzer. tax should be a snapshot the caller will
// not mutate while the analyzer is in use.
func NewAnalyzer(tax *taxonomy.Taxonomy, c *corpus.Corpus, cfg model.AnalysisConfig, log zerolog.Logger) *Analyzer {
	a := &Analyzer{
		tax:    tax,
		corpus: c,
		scorer: score.NewScorer(),
		cfg:    cfg,
		log:    log,
	}

	if cfg.Spelling {
		var vocab []string
		for kw := range tax.KnownSet() {
			vocab = append(vocab, kw)
		}
		a.speller = NewSpeller(vocab, cfg.SpellingThreshold)
	}
	return a
}

// Utterance analyzes one transcript line. Acts, tone and score are computed
// on the corrected text before stop words are removed; lexical tokens come
// from the filtered text.
func (a *Analyzer) Utterance(text string) model.UtteranceAnalysis {
	out := model.UtteranceAnalysis{Text: text}

	working := text
	if a.speller != nil {
		corrected, corrections := a.speller.Correct(text)
		if len(corrections) > 0 {
			out.Corrected = corrected
			out.Corrections = corrections
			working = corrected
		}
	}

	out.Keywords = a.Hits(working)
	r := a.scorer.Calculate(out.Keywords)
	out.Act, out.Tone, out.Score = r.Act, r.Tone, r.Score

	out.Filtered = working
	if a.cfg.StopWords {
		out.Filtered = extract.RemoveStopWords(working)
	}
	out.Lexical = extract.Lexical(out.Filtered)

	return out
}

// Hits segments text against the taxonomy and returns the tokens that belong
// to a category, in sentence order.
func (a *Analyzer) Hits(text string) []model.KeywordHit {
	var hits []model.KeywordHit
	for _, tok := range extract.Segment(text, a.tax) {
		kw := textutil.TrimPunct(tok)
		c, ok := a.tax.CategoryOf(kw)
		if !ok {
			kw = strings.TrimLeft(kw, "¿¡")
			c, ok = a.tax.CategoryOf(kw)
		}
		if ok && kw != "" {
			hits = append(hits, model.KeywordHit{Token: kw, Category: c})
		}
	}
	return hits
}

// AnalyzeCall analyzes both sides of one call
func (a *Analyzer) AnalyzeCall(ctx context.Context, callID string) (*model.CallReport, error) {
	employee, customer, err := a.corpus.Call(callID)
	if err != nil {
		return nil, err
	}

	report := &model.CallReport{CallID: callID}
	for _, side := range []struct {
		lines []string
		dst   *[]model.UtteranceAnalysis
	}{
		{employee, &report.Employee},
		{customer, &report.Customer},
	} {
		out := make([]model.UtteranceAnalysis, 0, len(side.lines))
		for _, line := range side.lines {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("analyze call %s: %w", callID, err)
			}
			out = append(out, a.Utterance(line))
		}
		*side.dst = out
	}

	report.Stats = score.CallStats(report.Employee, report.Customer)
	a.log.Debug().Str("call_id", callID).Int("utterances", report.Stats.Utterances).Msg("call analyzed")
	return report, nil
}

// BuildReport assembles call results into a run report
func (a *Analyzer) BuildReport(calls []model.CallReport, failures []model.Failure, src model.SourceMeta) *model.Report {
	src.Keywords = a.tax.Len()
	src.Unclassified = len(a.tax.Unclassified())

	if calls == nil {
		calls = []model.CallReport{}
	}
	return &model.Report{
		GeneratedAt:       time.Now().UTC(),
		Source:            src,
		Calls:             calls,
		Failures:          failures,
		CategoryFrequency: score.CategoryFrequency(calls),
		Summary:           score.Summarize(calls, len(failures)),
	}
}
