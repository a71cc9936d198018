package worker

import (
	"context"
	"sync"
)

type progressCounter struct {
	mu   sync.Mutex
	done int
}

func (c *progressCounter) next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.done++
	return c.done
}

// reportingJob wraps a CallJob and reports completion
type reportingJob struct {
	Job
	total   int
	counter *progressCounter
	fn      Progress
}

func (j *reportingJob) Execute(ctx context.Context) Result {
	r := j.Job.Execute(ctx)
	j.fn(j.counter.next(), j.total, r.(*CallResult))
	return r
}
