// Package worker provides a goroutine pool for validating independent
// documents in parallel. Each document's validation stays single-threaded
// and atomic; only whole documents are distributed across workers.
package worker

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	qv "github.com/goqpp/validator"
	"github.com/goqpp/validator/node"
)

// Validator is the interface the pool uses to validate document trees.
type Validator interface {
	Validate(ctx context.Context, root *node.Node) (*qv.Result, error)
}

// Job is one document tree to validate.
type Job struct {
	// ID correlates the job with its result (e.g. a file name)
	ID string

	// Root is the decoded document tree
	Root *node.Node
}

// JobResult is the outcome of one job.
type JobResult struct {
	// ID is the submitting job's ID
	ID string

	// Result holds the document's findings; nil when Error is set
	Result *qv.Result

	// Error is set when the document's pass aborted
	Error error

	// Duration is the wall time the validation took
	Duration time.Duration
}

// Pool manages a pool of worker goroutines for parallel validation.
type Pool struct {
	workers    int
	jobsChan   chan Job
	resultChan chan *JobResult
	validator  Validator
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	closed     atomic.Bool

	jobsSubmitted atomic.Uint64
	jobsCompleted atomic.Uint64
}

// NewPool creates a pool with the given number of workers.
// If workers <= 0, it defaults to runtime.NumCPU().
func NewPool(validator Validator, workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())

	p := &Pool{
		workers:    workers,
		jobsChan:   make(chan Job, workers*2),
		resultChan: make(chan *JobResult, workers*2),
		validator:  validator,
		ctx:        ctx,
		cancel:     cancel,
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}

	return p
}

// Submit submits a job to the pool, blocking while the queue is full.
// Returns false once the pool is closed.
func (p *Pool) Submit(job Job) bool {
	if p.closed.Load() {
		return false
	}

	select {
	case <-p.ctx.Done():
		return false
	case p.jobsChan <- job:
		p.jobsSubmitted.Add(1)
		return true
	}
}

// Results returns the channel for receiving job results.
func (p *Pool) Results() <-chan *JobResult {
	return p.resultChan
}

// Close stops accepting jobs, waits for in-flight work and closes the
// results channel. Results submitted before Close remain receivable.
func (p *Pool) Close() {
	if p.closed.Swap(true) {
		return
	}
	close(p.jobsChan)

	go func() {
		p.wg.Wait()
		close(p.resultChan)
		p.cancel()
	}()
}

// Stats returns submission counters for the pool.
func (p *Pool) Stats() (submitted, completed uint64) {
	return p.jobsSubmitted.Load(), p.jobsCompleted.Load()
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for job := range p.jobsChan {
		result := p.process(job)
		p.jobsCompleted.Add(1)

		select {
		case <-p.ctx.Done():
			return
		case p.resultChan <- result:
		}
	}
}

func (p *Pool) process(job Job) *JobResult {
	start := time.Now()

	res, err := p.validator.Validate(p.ctx, job.Root)
	jr := &JobResult{
		ID:       job.ID,
		Result:   res,
		Error:    err,
		Duration: time.Since(start),
	}
	if res != nil {
		res.DocumentID = job.ID
	}
	return jr
}
