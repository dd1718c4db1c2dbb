// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/hooplens/prospectrank/internal/adapters/batch"
	"github.com/hooplens/prospectrank/internal/adapters/cache"
	"github.com/hooplens/prospectrank/internal/adapters/repository"
	"github.com/hooplens/prospectrank/internal/domain/model"
	"github.com/hooplens/prospectrank/internal/domain/normalize"
	"github.com/hooplens/prospectrank/internal/domain/scoring"
	"github.com/hooplens/prospectrank/internal/domain/tier"
	"github.com/hooplens/prospectrank/internal/domain/trend"
	"github.com/hooplens/prospectrank/pkg/logger"
	"github.com/hooplens/prospectrank/pkg/metrics"
)

// Service wires the evaluation pipeline: normalizer, cache-wrapped
// scoring engine, batch evaluator, tier classifier, trend calculator and
// the ranked board.
type Service struct {
	mu sync.RWMutex

	// Core components
	engine    *scoring.Engine
	evalCache *cache.Cache
	trendCalc *trend.Calculator
	board     *repository.BoardStore
	source    repository.ProspectSource
	snapshots repository.SnapshotStore

	// Configuration
	batchSize       int
	cacheTTL        time.Duration
	cacheMaxEntries int
	sweepInterval   time.Duration
	draftClass      int
	trendTopK       int
	weights         scoring.Weights
	trendEpsilon    float64
	trendThresholds map[string]float64

	// Refresh passes carry a generation id; a pass finishing with a
	// stale generation is discarded instead of applied.
	generation atomic.Uint64
	applyMu    sync.Mutex

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the external prospect source.
func WithSource(src repository.ProspectSource) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithSnapshotStore sets the snapshot history store.
func WithSnapshotStore(store repository.SnapshotStore) Option {
	return func(s *Service) {
		if store != nil {
			s.snapshots = store
		}
	}
}

// WithScoringWeights sets the versioned scoring table.
func WithScoringWeights(w scoring.Weights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithBatchSize sets the default evaluation batch size.
func WithBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// WithCacheTTL sets the evaluation cache freshness window.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithCacheMaxEntries bounds the evaluation cache.
func WithCacheMaxEntries(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.cacheMaxEntries = n
		}
	}
}

// WithCacheSweepInterval sets the expired-entry sweep interval.
func WithCacheSweepInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.sweepInterval = interval
		}
	}
}

// WithDraftClass restricts refresh passes to one class.
func WithDraftClass(class int) Option {
	return func(s *Service) {
		if class > 0 {
			s.draftClass = class
		}
	}
}

// WithTrendEpsilon sets the stable band for trend direction.
func WithTrendEpsilon(epsilon float64) Option {
	return func(s *Service) {
		if epsilon > 0 {
			s.trendEpsilon = epsilon
		}
	}
}

// WithTrendThresholds overrides per-metric highlight thresholds.
func WithTrendThresholds(thresholds map[string]float64) Option {
	return func(s *Service) {
		s.trendThresholds = thresholds
	}
}

// WithTrendTopK sets the default size of rising/falling lists.
func WithTrendTopK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.trendTopK = k
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		batchSize:       10,
		cacheTTL:        30 * time.Minute,
		cacheMaxEntries: 10_000,
		sweepInterval:   10 * time.Minute,
		trendTopK:       3,
		weights:         scoring.DefaultWeights(),
		trendEpsilon:    0.02,
		stopCh:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.engine = scoring.NewEngine(scoring.WithWeights(s.weights))
	s.evalCache = cache.New(
		cache.WithTTL(s.cacheTTL),
		cache.WithMaxEntries(s.cacheMaxEntries),
	)
	trendOpts := []trend.Option{trend.WithEpsilon(s.trendEpsilon)}
	if s.trendThresholds != nil {
		trendOpts = append(trendOpts, trend.WithThresholds(s.trendThresholds))
	}
	s.trendCalc = trend.NewCalculator(trendOpts...)
	s.board = repository.NewBoardStore()

	go s.sweepLoop(ctx)

	s.started = true
	s.logger.Info(ctx, "evaluation service started",
		logger.String("scoringVersion", s.weights.Version),
		logger.Int("batchSize", s.batchSize),
		logger.Int("cacheMaxEntries", s.cacheMaxEntries),
	)
	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	close(s.stopCh)
	s.started = false
}

// sweepLoop opportunistically drops expired cache entries.
func (s *Service) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			if n := s.evalCache.Sweep(); n > 0 {
				s.logger.Debug(ctx, "cache sweep", logger.Int("removed", n))
			}
		}
	}
}

// Evaluate scores one prospect through the cache. Identical
// score-relevant fields always return an identical evaluation; the
// underlying engine only runs on a miss.
func (s *Service) Evaluate(ctx context.Context, p model.Prospect) (model.Evaluation, error) {
	s.mu.RLock()
	engine := s.engine
	evalCache := s.evalCache
	s.mu.RUnlock()

	if engine == nil {
		return model.Evaluation{}, ErrNotStarted
	}

	normalized := normalize.Prospect(p)
	fp := cache.Fingerprint(normalized, engine.Version())
	evaluation, _ := evalCache.GetOrCompute(fp, func() model.Evaluation {
		metrics.RecordEvaluationComputed()
		return engine.Evaluate(normalized)
	})
	return evaluation, nil
}

// BatchEvaluate evaluates a collection in bounded batches, preserving
// input order. batchSize <= 0 falls back to the configured default.
func (s *Service) BatchEvaluate(ctx context.Context, prospects []model.Prospect, batchSize int) ([]batch.Result, error) {
	if batchSize <= 0 {
		batchSize = s.batchSize
	}
	runner := batch.NewRunner(s,
		batch.WithBatchSize(batchSize),
		batch.WithLogger(s.logger),
	)
	return runner.EvaluateAll(ctx, prospects)
}

// GetTier classifies an ordinal rank.
func (s *Service) GetTier(rank int) tier.Tier {
	return tier.ByRank(rank)
}

// ComputeTrend compares two snapshots of the same prospect across a
// named window. A missing or mismatched prior yields nil, not an error.
func (s *Service) ComputeTrend(current, prior model.Snapshot, window string) *model.TrendResult {
	if s.trendCalc == nil {
		return nil
	}
	result := s.trendCalc.Compute(current, prior, window)
	if result != nil {
		metrics.RecordTrendComputed()
	}
	return result
}

// Refresh fetches the prospect list, batch-evaluates it and installs a
// new board. Each invocation takes a fresh generation id; if another
// refresh started while this one was running, the stale pass is
// discarded rather than applied out of order.
func (s *Service) Refresh(ctx context.Context) error {
	if s.board == nil {
		return ErrNotStarted
	}
	if s.source == nil {
		return ErrNoSource
	}

	gen := s.generation.Add(1)
	metrics.RecordRefreshPass()

	prospects, err := s.source.FetchProspects(ctx, repository.Filter{DraftClass: s.draftClass})
	if err != nil {
		return fmt.Errorf("fetch prospects: %w", err)
	}

	results, err := s.BatchEvaluate(ctx, prospects, s.batchSize)
	if err != nil {
		return err
	}

	entries := make([]model.BoardEntry, len(results))
	for i, r := range results {
		entries[i] = model.BoardEntry{
			ProspectID: r.Prospect.ID,
			Name:       r.Prospect.Name,
			TotalScore: r.Evaluation.TotalScore,
		}
		if r.Err != nil {
			// Failed evaluations stay on the board as degraded rows.
			s.logger.Warn(ctx, "prospect evaluated with error",
				logger.String("prospectID", r.Prospect.ID),
				logger.Error(r.Err),
			)
		}
	}

	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	if s.generation.Load() != gen {
		metrics.RecordRefreshDiscarded()
		s.logger.Warn(ctx, "discarding stale refresh pass",
			logger.Int("generation", int(gen)),
		)
		return nil
	}
	s.board.Replace(ctx, entries)
	s.logger.Info(ctx, "board refreshed",
		logger.Int("prospects", len(entries)),
		logger.Int("generation", int(gen)),
	)
	return nil
}

// CaptureSnapshots evaluates the current prospect list and appends one
// history snapshot per prospect, feeding future trend windows.
func (s *Service) CaptureSnapshots(ctx context.Context) error {
	if s.source == nil {
		return ErrNoSource
	}
	if s.snapshots == nil {
		return ErrNoSnapshotStore
	}

	prospects, err := s.source.FetchProspects(ctx, repository.Filter{DraftClass: s.draftClass})
	if err != nil {
		return fmt.Errorf("fetch prospects: %w", err)
	}
	results, err := s.BatchEvaluate(ctx, prospects, s.batchSize)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		snap := model.Snapshot{
			ID:         uuid.NewString(),
			ProspectID: r.Prospect.ID,
			CapturedAt: now,
			Score:      r.Evaluation.TotalScore,
			PPG:        deref(r.Prospect.PPG),
			RPG:        deref(r.Prospect.RPG),
			APG:        deref(r.Prospect.APG),
			PER:        deref(r.Prospect.PER),
			TSPct:      deref(r.Prospect.TSPct),
			BPM:        deref(r.Prospect.BPM),
			WinShares:  deref(r.Prospect.WinShares),
		}
		if err := s.snapshots.Append(ctx, snap); err != nil {
			return fmt.Errorf("append snapshot: %w", err)
		}
		metrics.RecordSnapshotCaptured()
	}
	return nil
}

// Trending returns the top rising and falling prospects over a named
// window ("7d", "24h"). Prospects without two snapshots in the window
// are simply absent.
func (s *Service) Trending(ctx context.Context, window string, k int) (rising, falling []model.TrendResult, err error) {
	if s.snapshots == nil {
		return nil, nil, ErrNoSnapshotStore
	}
	if k <= 0 {
		k = s.trendTopK
	}
	d, err := trend.ParseWindow(window)
	if err != nil {
		return nil, nil, err
	}
	since := time.Now().UTC().Add(-d)

	ids, err := s.snapshots.ProspectIDsWithHistory(ctx, since)
	if err != nil {
		return nil, nil, err
	}

	results := make([]model.TrendResult, 0, len(ids))
	for _, id := range ids {
		current, prior, ok, err := s.snapshots.LatestPair(ctx, id, since)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			continue
		}
		if r := s.ComputeTrend(current, prior, window); r != nil {
			results = append(results, *r)
		}
	}

	return trend.TopRising(results, k), trend.TopFalling(results, k), nil
}

// ApplyScoringConfig swaps in a new scoring table. The version change
// already invalidates every fingerprint; purging just releases the dead
// entries immediately.
func (s *Service) ApplyScoringConfig(ctx context.Context, w scoring.Weights) {
	s.mu.Lock()
	s.weights = w
	s.engine = scoring.NewEngine(scoring.WithWeights(w))
	evalCache := s.evalCache
	s.mu.Unlock()

	if evalCache != nil {
		evalCache.Purge()
	}
	s.logger.Info(ctx, "scoring table applied", logger.String("version", w.Version))
}

// TopN returns the best n board entries.
func (s *Service) TopN(ctx context.Context, n int) ([]model.BoardEntry, error) {
	if s.board == nil {
		return nil, ErrNotStarted
	}
	return s.board.TopN(ctx, n)
}

// Rank returns the board entry for one prospect.
func (s *Service) Rank(ctx context.Context, prospectID string) (model.BoardEntry, error) {
	if s.board == nil {
		return model.BoardEntry{}, ErrNotStarted
	}
	return s.board.Rank(ctx, prospectID)
}

// Count returns the number of prospects on the board.
func (s *Service) Count(ctx context.Context) int {
	if s.board == nil {
		return 0
	}
	return s.board.Count(ctx)
}

// CacheLen reports the evaluation cache size, for stats endpoints.
func (s *Service) CacheLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.evalCache == nil {
		return 0
	}
	return s.evalCache.Len()
}

// GetStats reports service counters for the stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	version := s.weights.Version
	board := s.board
	s.mu.RUnlock()
	boardSize := 0
	if board != nil {
		boardSize = board.Count(context.Background())
	}
	return map[string]interface{}{
		"board_size":      boardSize,
		"cache_entries":   s.CacheLen(),
		"scoring_version": version,
		"refresh_passes":  s.generation.Load(),
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
