// Package batch evaluates prospect collections in bounded-size batches
// so a large board never monopolizes the caller.
package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hooplens/prospectrank/internal/domain/model"
	"github.com/hooplens/prospectrank/pkg/logger"
	"github.com/hooplens/prospectrank/pkg/metrics"
)

// defaultBatchSize bounds how many evaluations run concurrently.
const defaultBatchSize = 10

// Scorer computes an evaluation for one prospect. The cache-wrapped
// scoring engine satisfies this.
type Scorer interface {
	Evaluate(ctx context.Context, p model.Prospect) (model.Evaluation, error)
}

// Result pairs an input prospect with its evaluation. A single
// prospect's failure never aborts the batch; it surfaces here as Err
// with a zero evaluation, so callers always receive exactly one result
// per input, in input order.
type Result struct {
	Prospect   model.Prospect
	Evaluation model.Evaluation
	Err        error
}

// Runner partitions prospect collections into batches and evaluates each
// batch's members concurrently, waiting for the whole batch before
// starting the next. The batch boundary is the scheduler's explicit
// yield point: cancellation is honored there, never mid-batch.
type Runner struct {
	scorer    Scorer
	batchSize int
	logger    logger.Logger
}

// Option applies a configuration option to the Runner.
type Option func(*Runner)

// WithBatchSize sets the batch size (and so the concurrency bound).
func WithBatchSize(size int) Option {
	return func(r *Runner) {
		if size > 0 {
			r.batchSize = size
		}
	}
}

// WithLogger sets a custom logger for the runner.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a batch runner with configuration options.
func NewRunner(scorer Scorer, opts ...Option) *Runner {
	r := &Runner{
		scorer:    scorer,
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Get().Named("batch")
	}
	return r
}

// EvaluateAll evaluates every prospect and returns one result per input
// in input order. The operation is all-or-nothing from the caller's view:
// results are only returned once every batch has finished. The only
// error it returns is context cancellation between batches.
func (r *Runner) EvaluateAll(ctx context.Context, prospects []model.Prospect) ([]Result, error) {
	results := make([]Result, len(prospects))

	for start := 0; start < len(prospects); start += r.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch evaluation cancelled: %w", err)
		}

		end := start + r.batchSize
		if end > len(prospects) {
			end = len(prospects)
		}

		batchStart := time.Now()
		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				results[idx] = r.evaluateOne(ctx, prospects[idx])
			}(i)
		}
		wg.Wait()

		metrics.RecordBatchProcessed()
		metrics.RecordBatchDuration(float64(time.Since(batchStart).Milliseconds()))
	}

	return results, nil
}

// evaluateOne scores a single prospect, isolating failures (including
// panics from a malformed record) as a per-prospect error marker.
func (r *Runner) evaluateOne(ctx context.Context, p model.Prospect) (res Result) {
	res.Prospect = p
	defer func() {
		if rec := recover(); rec != nil {
			res.Err = fmt.Errorf("evaluation panicked for prospect %s: %v", p.ID, rec)
			metrics.RecordEvaluationFailure()
			r.logger.Error(ctx, "evaluation panicked",
				logger.String("prospectID", p.ID),
				logger.Any("panic", rec),
			)
		}
	}()

	start := time.Now()
	evaluation, err := r.scorer.Evaluate(ctx, p)
	metrics.RecordEvaluationDuration(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordEvaluationFailure()
		r.logger.Error(ctx, "evaluation failed",
			logger.String("prospectID", p.ID),
			logger.Error(err),
		)
		res.Err = fmt.Errorf("evaluate prospect %s: %w", p.ID, err)
		return res
	}
	res.Evaluation = evaluation
	return res
}
