// Package discover finds corpus vocabulary that the taxonomy does not cover
// yet and parks it in the reserved unclassified bucket for review.
package discover

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ppiankov/diatax/internal/corpus"
	"github.com/ppiankov/diatax/internal/extract"
	"github.com/ppiankov/diatax/internal/model"
	"github.com/ppiankov/diatax/internal/taxonomy"
	"github.com/ppiankov/diatax/internal/textutil"
)

// Result summarizes a scan
type Result struct {
	Records    int           `json:"records"`
	Utterances int           `json:"utterances"`
	Tokens     int           `json:"tokens"`
	Added      []string      `json:"added"`
	Duration   time.Duration `json:"duration"`
}

// Scanner walks a corpus and registers unseen tokens
type Scanner struct {
	log zerolog.Logger
}

// NewScanner creates a scanner
func NewScanner(log zerolog.Logger) *Scanner {
	return &Scanner{log: log}
}

// Scan segments every utterance of every record, employee side first, and
// appends each token that is neither classified nor already unclassified to
// the reserved bucket. The taxonomy is persisted once, after the walk. Scan
// never removes keywords, and a second scan over the same corpus adds nothing.
func (s *Scanner) Scan(ctx context.Context, store *taxonomy.Store, c *corpus.Corpus) (Result, error) {
	start := time.Now()
	var res Result

	err := store.Update(func(t *taxonomy.Taxonomy) error {
		known := t.KnownSet()

		for _, rec := range c.All() {
			if err := ctx.Err(); err != nil {
				return err
			}
			res.Records++
			for _, utterance := range rec.Text {
				res.Utterances++
				for _, tok := range extract.Segment(utterance, t) {
					res.Tokens++
					kw := textutil.Lower(textutil.TrimPunct(tok))
					if kw == "" || known[kw] {
						continue
					}
					if t.AddUnclassified(kw) {
						res.Added = append(res.Added, kw)
					}
				}
			}
		}
		return nil
	})
	res.Duration = time.Since(start)
	if err != nil {
		res.Added = nil
		return res, err
	}

	s.log.Info().
		Int("records", res.Records).
		Int("utterances", res.Utterances).
		Int("added", len(res.Added)).
		Dur("duration", res.Duration).
		Msg("discovery scan complete")

	return res, nil
}

// Pending is a convenience for callers that only need the review queue
func Pending(store *taxonomy.Store) []string {
	var out []string
	store.View(func(t *taxonomy.Taxonomy) {
		out = t.Keywords(model.Unclassified)
	})
	return out
}
