// Package classify moves reviewed keywords out of the unclassified bucket.
package classify

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ppiankov/diatax/internal/model"
	"github.com/ppiankov/diatax/internal/taxonomy"
	"github.com/ppiankov/diatax/internal/textutil"
)

// Classifier applies operator decisions to the taxonomy store
type Classifier struct {
	log zerolog.Logger
}

// NewClassifier creates a classifier
func NewClassifier(log zerolog.Logger) *Classifier {
	return &Classifier{log: log}
}

// Classify moves keyword from the unclassified bucket into target and
// persists the result. target must be one of the recognized categories.
// There is no reverse operation.
func (c *Classifier) Classify(store *taxonomy.Store, keyword string, target model.Category) error {
	if !target.IsRecognized() {
		return fmt.Errorf("%w: %s", taxonomy.ErrUnknownCategory, target)
	}
	keyword = textutil.Keyword(keyword)

	err := store.Update(func(t *taxonomy.Taxonomy) error {
		return taxonomy.MoveKeyword(t, keyword, model.Unclassified, target)
	})
	if err != nil {
		c.log.Warn().Err(err).Str("keyword", keyword).Str("category", string(target)).Msg("classification rejected")
		return err
	}

	c.log.Info().Str("keyword", keyword).Str("category", string(target)).Msg("keyword classified")
	return nil
}

// Applied is called after each attempted decision, with its error if any
type Applied func(keyword string, target model.Category, err error)

// ClassifyMany applies several decisions in order and stops at the first
// failure. Decisions applied before the failure stay persisted. onApplied may
// be nil.
func (c *Classifier) ClassifyMany(store *taxonomy.Store, decisions map[string]model.Category, order []string, onApplied Applied) (int, error) {
	done := 0
	for _, kw := range order {
		target, ok := decisions[kw]
		if !ok {
			continue
		}
		err := c.Classify(store, kw, target)
		if onApplied != nil {
			onApplied(kw, target, err)
		}
		if err != nil {
			return done, fmt.Errorf("classify %q: %w", kw, err)
		}
		done++
	}
	return done, nil
}
