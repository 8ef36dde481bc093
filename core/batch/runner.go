// Package batch classifies many grains in parallel.
// Grains are independent, so records are fanned out to a bounded set of
// workers and results are written back by index to keep input order.
package batch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"presolar/core/classify"
	"presolar/core/input"
	"presolar/internal/errors"
	"presolar/internal/logging"
)

// Outcome is the classification of one record
type Outcome struct {
	ID     string          `json:"id"`
	Result classify.Result `json:"result"`
	Err    error           `json:"-"`

	// Recorded is copied from the record for comparison
	Recorded *input.Recorded `json:"recorded,omitempty"`
}

// Failed reports whether the record could not be classified
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Mismatch reports whether the computed type or subtype differs from the
// recorded one. Records without a recorded type never mismatch.
func (o Outcome) Mismatch() bool {
	if o.Recorded == nil || o.Failed() {
		return false
	}
	return o.Recorded.Type != o.Result.Type || o.Recorded.Subtype != o.Result.Subtype
}

// Report is the result of a batch run
type Report struct {
	RunID    string    `json:"run_id"`
	Outcomes []Outcome `json:"outcomes"`
	Stats    Stats     `json:"stats"`
}

// Stats summarizes a batch run
type Stats struct {
	Total      int            `json:"total"`
	Classified int            `json:"classified"`
	Failed     int            `json:"failed"`
	Mismatched int            `json:"mismatched"`
	ByType     map[string]int `json:"by_type"`
	Workers    int            `json:"workers"`
	StartTime  time.Time      `json:"start_time"`
	Duration   time.Duration  `json:"duration"`
}

// Options configures a Runner
type Options struct {
	// Workers is the number of concurrent classifications
	Workers int

	// StopOnError cancels the run at the first invalid grain
	StopOnError bool
}

// Runner classifies records concurrently
type Runner struct {
	workers     int
	stopOnError bool
	log         *zap.Logger
}

// NewRunner creates a runner
func NewRunner(opts Options) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &Runner{
		workers:     opts.Workers,
		stopOnError: opts.StopOnError,
		log:         logging.Named("batch"),
	}
}

// Run classifies every record. Invalid grains are recorded in their outcome
// unless StopOnError is set, in which case the first error is returned.
func (r *Runner) Run(ctx context.Context, records []input.Record) (*Report, error) {
	report := &Report{
		RunID:    uuid.NewString(),
		Outcomes: make([]Outcome, len(records)),
		Stats: Stats{
			Total:     len(records),
			ByType:    make(map[string]int),
			Workers:   r.workers,
			StartTime: time.Now(),
		},
	}
	log := r.log.With(zap.String("run_id", report.RunID))
	log.Debug("starting batch", zap.Int("grains", len(records)), zap.Int("workers", r.workers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	var mu sync.Mutex
	for i := range records {
		if gctx.Err() != nil {
			break
		}
		i := i // per-iteration copy (go 1.21 loop semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out := classifyRecord(records[i])
			report.Outcomes[i] = out

			if out.Failed() {
				log.Debug("grain not classified", zap.String("id", out.ID), zap.Error(out.Err))
				if r.stopOnError {
					return errors.Wrapf(errors.TypeOf(out.Err), out.Err, "grain %s", out.ID)
				}
			}

			mu.Lock()
			report.Stats.add(out)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Stats.Duration = time.Since(report.Stats.StartTime)
	log.Info("batch complete",
		zap.Int("total", report.Stats.Total),
		zap.Int("classified", report.Stats.Classified),
		zap.Int("failed", report.Stats.Failed),
		zap.Int("mismatched", report.Stats.Mismatched),
		zap.Duration("duration", report.Stats.Duration))

	return report, nil
}

func classifyRecord(rec input.Record) Outcome {
	res, err := classify.Classify(rec.Grain)
	return Outcome{ID: rec.ID, Result: res, Err: err, Recorded: rec.Recorded}
}

func (s *Stats) add(out Outcome) {
	if out.Failed() {
		s.Failed++
		return
	}
	s.Classified++
	s.ByType[out.Result.Type.String()]++
	if out.Mismatch() {
		s.Mismatched++
	}
}

// Mismatches returns the outcomes whose type differs from the recorded one
func (r *Report) Mismatches() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Mismatch() {
			out = append(out, o)
		}
	}
	return out
}

// Failures returns the outcomes that could not be classified
func (r *Report) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Failed() {
			out = append(out, o)
		}
	}
	return out
}
