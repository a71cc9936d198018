// Package engine ties the taxonomy store, the corpus and the operations on
// them together for the CLI and the HTTP server.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/diatax/internal/cache"
	"github.com/ppiankov/diatax/internal/classify"
	"github.com/ppiankov/diatax/internal/corpus"
	"github.com/ppiankov/diatax/internal/discover"
	"github.com/ppiankov/diatax/internal/llm"
	"github.com/ppiankov/diatax/internal/metrics"
	"github.com/ppiankov/diatax/internal/model"
	"github.com/ppiankov/diatax/internal/pipeline"
	"github.com/ppiankov/diatax/internal/review"
	"github.com/ppiankov/diatax/internal/taxonomy"
	"github.com/ppiankov/diatax/internal/worker"
)

// Engine is safe for concurrent use; taxonomy mutations are serialized by
// the store.
type Engine struct {
	cfg        *model.Config
	log        zerolog.Logger
	store      *taxonomy.Store
	corpus     *corpus.Corpus
	scanner    *discover.Scanner
	classifier *classify.Classifier
	metrics    *metrics.Metrics
}

// Open loads the taxonomy and both transcript files concurrently
func Open(cfg *model.Config, log zerolog.Logger) (*Engine, error) {
	var (
		store *taxonomy.Store
		c     *corpus.Corpus
		g     errgroup.Group
	)

	g.Go(func() error {
		var err error
		store, err = taxonomy.Open(cfg.Data.KeywordsFile)
		return err
	})
	g.Go(func() error {
		var err error
		c, err = corpus.Load(cfg.Data.EmployeeFile, cfg.Data.CustomerFile)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("keywords_file", cfg.Data.KeywordsFile).
		Int("calls", len(c.CallIDs())).
		Msg("data loaded")

	return New(cfg, store, c, log), nil
}

// New assembles an engine from already loaded parts
func New(cfg *model.Config, store *taxonomy.Store, c *corpus.Corpus, log zerolog.Logger) *Engine {
	return &Engine{
		cfg:        cfg,
		log:        log,
		store:      store,
		corpus:     c,
		scanner:    discover.NewScanner(log),
		classifier: classify.NewClassifier(log),
		metrics:    metrics.New(store),
	}
}

// Config returns the configuration the engine was built with
func (e *Engine) Config() *model.Config { return e.cfg }

// Store returns the taxonomy store
func (e *Engine) Store() *taxonomy.Store { return e.store }

// Corpus returns the loaded transcripts
func (e *Engine) Corpus() *corpus.Corpus { return e.corpus }

// Metrics returns the metric set
func (e *Engine) Metrics() *metrics.Metrics { return e.metrics }

// Scan runs the discovery scan over the whole corpus
func (e *Engine) Scan(ctx context.Context) (discover.Result, error) {
	res, err := e.scanner.Scan(ctx, e.store, e.corpus)
	if err != nil {
		return res, fmt.Errorf("discovery scan: %w", err)
	}
	e.metrics.RecordScan(len(res.Added))
	return res, nil
}

// Classify moves keyword from the unclassified bucket into target
func (e *Engine) Classify(keyword string, target model.Category) error {
	err := e.classifier.Classify(e.store, keyword, target)
	e.metrics.RecordClassification(target, err)
	return err
}

// ClassifyMany applies decisions in order and stops at the first failure.
// It returns how many were applied.
func (e *Engine) ClassifyMany(decisions map[string]model.Category, order []string) (int, error) {
	return e.classifier.ClassifyMany(e.store, decisions, order, func(_ string, target model.Category, err error) {
		e.metrics.RecordClassification(target, err)
	})
}

// Pending returns the unclassified keywords in discovery order
func (e *Engine) Pending() []string {
	return discover.Pending(e.store)
}

// Call returns both sides of one call
func (e *Engine) Call(callID string) (employee, customer []string, err error) {
	return e.corpus.Call(callID)
}

// Examples returns up to limit transcript lines containing keyword as a
// whole word, employee side first.
func (e *Engine) Examples(keyword string, limit int) []string {
	var lines []string
	for _, rec := range e.corpus.All() {
		lines = append(lines, rec.Text...)
	}
	return review.Examples(lines, keyword, limit)
}

// Analyzer builds an analyzer over a snapshot of the current taxonomy
func (e *Engine) Analyzer() *pipeline.Analyzer {
	return pipeline.NewAnalyzer(e.store.Snapshot(), e.corpus, e.cfg.Analysis, e.log)
}

// AnalyzeCall runs the pipeline over one call
func (e *Engine) AnalyzeCall(ctx context.Context, callID string) (*model.CallReport, error) {
	report, err := e.Analyzer().AnalyzeCall(ctx, callID)
	e.metrics.RecordCall(err)
	return report, err
}

// AnalyzeAll runs the pipeline over callIDs (every call when empty) on the
// worker pool and assembles the run report. Per-call failures are reported
// in the result rather than aborting the run.
func (e *Engine) AnalyzeAll(ctx context.Context, callIDs []string, progress worker.Progress) (*model.Report, error) {
	if len(callIDs) == 0 {
		callIDs = e.corpus.CallIDs()
	}

	analyzer := e.Analyzer()
	batch := worker.NewBatchProcessor(analyzer, e.cfg.Concurrency.Workers)
	if progress != nil {
		batch.OnProgress(progress)
	}

	results := batch.ProcessCalls(ctx, callIDs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		calls    []model.CallReport
		failures []model.Failure
	)
	for _, r := range results {
		e.metrics.RecordCall(r.Error)
		if r.Error != nil {
			failures = append(failures, model.Failure{CallID: r.CallID, Error: r.Error.Error()})
			continue
		}
		calls = append(calls, *r.Report)
	}

	return analyzer.BuildReport(calls, failures, model.SourceMeta{
		EmployeeFile: e.cfg.Data.EmployeeFile,
		CustomerFile: e.cfg.Data.CustomerFile,
		KeywordsFile: e.cfg.Data.KeywordsFile,
	}), nil
}

// Suggester builds an LLM suggester from configuration. It returns
// llm.ErrDisabled when no provider is configured.
func (e *Engine) Suggester() (*llm.Suggester, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(e.cfg.LLM))
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, llm.ErrDisabled
	}

	limiter := worker.NewLimiter(e.cfg.RateLimiting.RequestsPerSecond, e.cfg.RateLimiting.BurstSize)
	if provider.Name() == "ollama" {
		// Local models have no quota
		limiter.SetRate(provider.Name(), 0, 0)
	}

	opts := []llm.SuggesterOption{
		llm.WithLimiter(limiter),
		llm.WithWorkers(e.cfg.Concurrency.Workers),
	}
	if e.cfg.Cache.Enabled {
		c := cache.NewLayeredCache(e.cfg.Cache.MemoryTTL, e.cfg.Cache.Dir, e.cfg.Cache.DiskTTL)
		opts = append(opts, llm.WithCache(c, 0))
	}
	return llm.NewSuggester(provider, e.log, opts...), nil
}

// SuggestAll asks the configured provider about keywords (every pending
// keyword when empty). Suggestions are advisory and never applied.
func (e *Engine) SuggestAll(ctx context.Context, keywords []string) ([]llm.Suggestion, error) {
	s, err := e.Suggester()
	if err != nil {
		return nil, err
	}
	if len(keywords) == 0 {
		keywords = e.Pending()
	}

	out, err := s.SuggestAll(ctx, keywords, func(kw string) []string {
		return e.Examples(kw, 5)
	})
	for _, sug := range out {
		var sugErr error
		if sug.Error != "" {
			sugErr = errors.New(sug.Error)
		}
		e.metrics.RecordSuggestion(sug.Cached, sugErr)
	}
	return out, err
}
