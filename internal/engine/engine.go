// Package engine runs deduplication, normalization and scoring over a batch
// of raw applicant records.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vijay-prabhu/applicant-triage/internal/applicant"
	"github.com/vijay-prabhu/applicant-triage/internal/config"
	"github.com/vijay-prabhu/applicant-triage/internal/dedup"
	"github.com/vijay-prabhu/applicant-triage/internal/normalize"
	"github.com/vijay-prabhu/applicant-triage/internal/scoring"
)

// Engine scores applicant batches with one fixed configuration
type Engine struct {
	cfg        *config.Config
	normalizer *normalize.Normalizer
	scorer     *scoring.Scorer
	dedup      *dedup.Deduplicator
	logger     *slog.Logger
	now        func() time.Time
	progress   ProgressCallback
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger. The default discards output; nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock sets the clock used for birth-year conversion
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithProgress sets a progress callback
func WithProgress(cb ProgressCallback) Option {
	return func(e *Engine) { e.progress = cb }
}

// New validates the configuration and builds an Engine. Configuration
// problems are reported here, before any batch runs.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil configuration", config.ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.normalizer = normalize.New(cfg)
	e.scorer = scoring.NewScorer(cfg)
	e.dedup = dedup.New(cfg, e.logger)

	return e, nil
}

// Batch is the scored output of one ScoreBatch call
type Batch struct {
	RunID      uuid.UUID          `json:"run_id" yaml:"run_id"`
	ScoredAt   time.Time          `json:"scored_at" yaml:"scored_at"`
	Input      int                `json:"input" yaml:"input"`
	Removed    int                `json:"removed" yaml:"removed"`
	Collisions []dedup.Collision  `json:"collisions,omitempty" yaml:"collisions,omitempty"`
	Applicants []applicant.Scored `json:"applicants" yaml:"applicants"`
}

// CategoryCounts returns the number of applicants per category
func (b *Batch) CategoryCounts() map[applicant.Category]int {
	counts := make(map[applicant.Category]int, len(applicant.Categories))
	for _, a := range b.Applicants {
		counts[a.Category]++
	}
	return counts
}

// ScoreBatch deduplicates the records and scores each survivor. The output
// preserves the deduplicator's order. Malformed fields never fail the batch;
// the only error is cancellation of ctx.
func (e *Engine) ScoreBatch(ctx context.Context, records []applicant.Record) (*Batch, error) {
	now := e.now()
	batch := &Batch{
		RunID:    uuid.New(),
		ScoredAt: now,
		Input:    len(records),
	}
	log := e.logger.With("run_id", batch.RunID.String())

	survivors := records
	if e.cfg.Dedup.Enabled {
		e.report(Progress{Phase: PhaseDeduplicating, Total: len(records), StartedAt: now,
			Description: "Removing repeated submissions"})

		res := e.dedup.Dedupe(records)
		survivors = res.Records
		batch.Removed = res.Removed
		batch.Collisions = res.Collisions

		e.report(Progress{Phase: PhaseDeduplicating, Current: len(records), Total: len(records), StartedAt: now,
			Description: fmt.Sprintf("Removed %d repeated submissions", res.Removed)})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scored, err := e.scoreAll(ctx, survivors, now)
	if err != nil {
		return nil, err
	}
	batch.Applicants = scored

	log.Info("scored batch",
		"input", batch.Input,
		"scored", len(batch.Applicants),
		"removed", batch.Removed,
		"collisions", len(batch.Collisions),
	)

	return batch, nil
}

// Score normalizes and scores a single record without deduplication
func (e *Engine) Score(r applicant.Record) applicant.Scored {
	return e.score(r, e.now())
}

// Now returns the reference time used for birth-year conversion
func (e *Engine) Now() time.Time {
	return e.now()
}

// Facts returns the canonical facts of a single record
func (e *Engine) Facts(r applicant.Record) applicant.Facts {
	return e.normalizer.Facts(r, e.now())
}

// Explain returns the per-rule contributions for a single record
func (e *Engine) Explain(r applicant.Record) scoring.Result {
	return e.scorer.Score(e.Facts(r))
}

func (e *Engine) score(r applicant.Record, now time.Time) applicant.Scored {
	facts := e.normalizer.Facts(r, now)
	res := e.scorer.Score(facts)
	return applicant.Scored{
		Record:   r,
		Score:    res.Score,
		Category: res.Category,
		Reasons:  res.Reasons,
		Facts:    facts,
	}
}

// scoreAll scores sequentially below the parallel threshold and with a
// bounded worker pool above it. Results are written by index, so order is
// the same either way.
func (e *Engine) scoreAll(ctx context.Context, records []applicant.Record, now time.Time) ([]applicant.Scored, error) {
	out := make([]applicant.Scored, len(records))
	total := len(records)
	started := e.now()

	var done atomic.Int64
	tick := func() {
		current := int(done.Add(1))
		e.report(Progress{Phase: PhaseScoring, Current: current, Total: total, StartedAt: started,
			Description: "Scoring applicants"})
	}

	if total < e.cfg.Engine.ParallelThreshold || e.cfg.Engine.Workers <= 1 {
		for i, r := range records {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out[i] = e.score(r, now)
			tick()
		}
		return out, nil
	}

	e.logger.Debug("scoring in parallel", "records", total, "workers", e.cfg.Engine.Workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Engine.Workers)
	for i, r := range records {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = e.score(r, now)
			tick()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func (e *Engine) report(p Progress) {
	if e.progress != nil {
		e.progress(p)
	}
}
