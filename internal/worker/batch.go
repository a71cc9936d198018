package worker

import (
	"context"
	"sort"

	"github.com/ppiankov/diatax/internal/model"
)

// CallAnalyzer analyzes a single call
type CallAnalyzer interface {
	AnalyzeCall(ctx context.Context, callID string) (*model.CallReport, error)
}

// CallJob analyzes one call
type CallJob struct {
	Index    int
	CallID   string
	Analyzer CallAnalyzer
}

// Execute runs the analysis
func (j *CallJob) Execute(ctx context.Context) Result {
	report, err := j.Analyzer.AnalyzeCall(ctx, j.CallID)
	return &CallResult{
		Index:  j.Index,
		CallID: j.CallID,
		Report: report,
		Error:  err,
	}
}

// CallResult is the outcome of a CallJob
type CallResult struct {
	Index  int
	CallID string
	Report *model.CallReport
	Error  error
}

// GetError returns the analysis error, if any
func (r *CallResult) GetError() error {
	return r.Error
}

// Progress is called once per finished call
type Progress func(done, total int, r *CallResult)

// BatchProcessor fans calls out to a worker pool
type BatchProcessor struct {
	analyzer    CallAnalyzer
	concurrency int
	progress    Progress
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(analyzer CallAnalyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// OnProgress registers a progress callback. It is invoked from worker
// goroutines and must be safe for concurrent use.
func (b *BatchProcessor) OnProgress(fn Progress) {
	b.progress = fn
}

// ProcessCalls analyzes every call id concurrently. Results come back in the
// order of callIDs; duplicate ids are analyzed once.
func (b *BatchProcessor) ProcessCalls(ctx context.Context, callIDs []string) []*CallResult {
	callIDs = dedupe(callIDs)
	if len(callIDs) == 0 {
		return []*CallResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	var counter progressCounter
	for i, id := range callIDs {
		job := Job(&CallJob{Index: i, CallID: id, Analyzer: b.analyzer})
		if b.progress != nil {
			job = &reportingJob{Job: job, total: len(callIDs), counter: &counter, fn: b.progress}
		}
		if !pool.Submit(job) {
			break
		}
	}

	results := pool.Wait()

	out := make([]*CallResult, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*CallResult))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
