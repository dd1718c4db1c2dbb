package batch_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hooplens/prospectrank/internal/adapters/batch"
	"github.com/hooplens/prospectrank/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// countingScorer records peak concurrency and per-prospect behavior.
type countingScorer struct {
	mu       sync.Mutex
	inFlight int
	peak     int
	calls    atomic.Int64

	failIDs  map[string]bool
	panicIDs map[string]bool
}

func (s *countingScorer) Evaluate(ctx context.Context, p model.Prospect) (model.Evaluation, error) {
	s.mu.Lock()
	s.inFlight++
	if s.inFlight > s.peak {
		s.peak = s.inFlight
	}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	s.calls.Add(1)
	if s.panicIDs[p.ID] {
		panic("malformed record")
	}
	if s.failIDs[p.ID] {
		return model.Evaluation{}, errors.New("upstream stats unavailable")
	}
	return model.Evaluation{TotalScore: 0.5}, nil
}

func prospects(n int) []model.Prospect {
	out := make([]model.Prospect, n)
	for i := range out {
		out[i] = model.Prospect{ID: fmt.Sprintf("p-%02d", i)}
	}
	return out
}

func TestRunner_EvaluateAll(t *testing.T) {
	Convey("Given a runner with batch size 10", t, func() {
		scorer := &countingScorer{}
		runner := batch.NewRunner(scorer, batch.WithBatchSize(10))

		Convey("When evaluating 23 prospects", func() {
			results, err := runner.EvaluateAll(context.Background(), prospects(23))

			Convey("Then every prospect gets exactly one result, in input order", func() {
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 23)
				So(scorer.calls.Load(), ShouldEqual, 23)
				for i, r := range results {
					So(r.Prospect.ID, ShouldEqual, fmt.Sprintf("p-%02d", i))
					So(r.Err, ShouldBeNil)
				}
			})

			Convey("And concurrency never exceeds the batch size", func() {
				So(scorer.peak, ShouldBeLessThanOrEqualTo, 10)
			})
		})

		Convey("When the input is empty", func() {
			results, err := runner.EvaluateAll(context.Background(), nil)
			So(err, ShouldBeNil)
			So(results, ShouldBeEmpty)
		})
	})
}

func TestRunner_FailureIsolation(t *testing.T) {
	Convey("Given prospects where some evaluations fail", t, func() {
		scorer := &countingScorer{
			failIDs:  map[string]bool{"p-03": true},
			panicIDs: map[string]bool{"p-07": true},
		}
		runner := batch.NewRunner(scorer, batch.WithBatchSize(5))

		Convey("When evaluating the collection", func() {
			results, err := runner.EvaluateAll(context.Background(), prospects(12))

			Convey("Then the batch still completes", func() {
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 12)
			})

			Convey("And failures surface as per-prospect markers", func() {
				So(results[3].Err, ShouldNotBeNil)
				So(results[3].Err.Error(), ShouldContainSubstring, "p-03")
				So(results[3].Evaluation.TotalScore, ShouldEqual, 0)
			})

			Convey("And a panicking record is contained the same way", func() {
				So(results[7].Err, ShouldNotBeNil)
				So(results[7].Err.Error(), ShouldContainSubstring, "panicked")
			})

			Convey("And the neighbors evaluate normally", func() {
				So(results[2].Err, ShouldBeNil)
				So(results[4].Err, ShouldBeNil)
				So(results[8].Err, ShouldBeNil)
			})
		})
	})
}

func TestRunner_Cancellation(t *testing.T) {
	Convey("Given a cancelled context", t, func() {
		scorer := &countingScorer{}
		runner := batch.NewRunner(scorer, batch.WithBatchSize(5))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("When evaluating", func() {
			results, err := runner.EvaluateAll(ctx, prospects(20))

			Convey("Then the run stops at the batch boundary", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(results, ShouldBeNil)
				So(scorer.calls.Load(), ShouldEqual, 0)
			})
		})
	})
}
