package llm

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/ppiankov/diatax/internal/cache"
	"github.com/ppiankov/diatax/internal/model"
	"github.com/ppiankov/diatax/internal/worker"
)

// ErrDisabled is returned when no provider is configured
var ErrDisabled = errors.New("LLM provider not configured")

// Suggestion is an advisory category for one unclassified keyword.
// Nothing is written to the taxonomy; an operator still classifies.
type Suggestion struct {
	Keyword  string         `json:"keyword"`
	Category model.Category `json:"category,omitempty"`
	Model    string         `json:"model,omitempty"`
	Cached   bool           `json:"cached"`
	Error    string         `json:"error,omitempty"`
}

// ExampleFunc returns transcript lines that contain keyword
type ExampleFunc func(keyword string) []string

// Suggester wraps a provider with a cache and a rate limiter
type Suggester struct {
	provider Provider
	cache    cache.Cache
	limiter  *worker.Limiter
	ttl      time.Duration
	workers  int
	log      zerolog.Logger
}

// SuggesterOption configures a Suggester
type SuggesterOption func(*Suggester)

// WithCache stores answers in c for ttl (zero uses the cache default)
func WithCache(c cache.Cache, ttl time.Duration) SuggesterOption {
	return func(s *Suggester) {
		s.cache = c
		s.ttl = ttl
	}
}

// WithLimiter throttles provider calls
func WithLimiter(l *worker.Limiter) SuggesterOption {
	return func(s *Suggester) {
		s.limiter = l
	}
}

// WithWorkers sets the SuggestAll concurrency
func WithWorkers(n int) SuggesterOption {
	return func(s *Suggester) {
		s.workers = n
	}
}

// NewSuggester creates a suggester. provider may be nil, in which case every
// call fails with ErrDisabled.
func NewSuggester(provider Provider, log zerolog.Logger, opts ...SuggesterOption) *Suggester {
	s := &Suggester{
		provider: provider,
		cache:    cache.Nop{},
		limiter:  worker.NewLimiter(0, 0),
		workers:  1,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available reports whether the provider answers at all
func (s *Suggester) Available(ctx context.Context) bool {
	return s.provider != nil && s.provider.IsAvailable(ctx)
}

// Suggest returns a category for keyword, from the cache when possible
func (s *Suggester) Suggest(ctx context.Context, keyword string, examples []string) (Suggestion, error) {
	if s.provider == nil {
		return Suggestion{Keyword: keyword}, ErrDisabled
	}

	key := cache.Key(s.provider.Name(), s.provider.Model(), keyword)
	var cached Suggestion
	if cache.GetJSON(s.cache, key, &cached) && cached.Category.IsRecognized() {
		cached.Cached = true
		return cached, nil
	}

	if err := s.limiter.Wait(ctx, s.provider.Name()); err != nil {
		return Suggestion{Keyword: keyword}, err
	}

	resp, err := s.provider.Suggest(ctx, SuggestRequest{Keyword: keyword, Examples: examples})
	if err != nil {
		s.log.Debug().Err(err).Str("keyword", keyword).Msg("suggestion failed")
		return Suggestion{Keyword: keyword}, err
	}

	out := Suggestion{
		Keyword:  keyword,
		Category: resp.Category,
		Model:    resp.Model,
	}
	if err := cache.SetJSON(s.cache, key, out, s.ttl); err != nil {
		s.log.Warn().Err(err).Str("keyword", keyword).Msg("cache write failed")
	}
	return out, nil
}

// SuggestAll suggests categories for every keyword concurrently. Failures are
// reported per keyword; results follow the order of keywords.
func (s *Suggester) SuggestAll(ctx context.Context, keywords []string, examples ExampleFunc) ([]Suggestion, error) {
	if s.provider == nil {
		return nil, ErrDisabled
	}

	pool := worker.NewPool(ctx, s.workers)
	pool.Start()
	for i, kw := range keywords {
		job := &suggestJob{index: i, keyword: kw, suggester: s, examples: examples}
		if !pool.Submit(job) {
			break
		}
	}

	results := pool.Wait()
	sort.Slice(results, func(i, j int) bool {
		return results[i].(*suggestResult).index < results[j].(*suggestResult).index
	})

	out := make([]Suggestion, 0, len(results))
	for _, r := range results {
		sr := r.(*suggestResult)
		if sr.err != nil {
			sr.suggestion.Error = sr.err.Error()
		}
		out = append(out, sr.suggestion)
	}
	return out, ctx.Err()
}

type suggestJob struct {
	index     int
	keyword   string
	suggester *Suggester
	examples  ExampleFunc
}

func (j *suggestJob) Execute(ctx context.Context) worker.Result {
	var ex []string
	if j.examples != nil {
		ex = j.examples(j.keyword)
	}
	sug, err := j.suggester.Suggest(ctx, j.keyword, ex)
	return &suggestResult{index: j.index, suggestion: sug, err: err}
}

type suggestResult struct {
	index      int
	suggestion Suggestion
	err        error
}

func (r *suggestResult) GetError() error {
	return r.err
}
