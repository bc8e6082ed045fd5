package summarizer

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/localrivet/lexsummary/internal/errortypes"
	"github.com/localrivet/lexsummary/internal/lexrank"
	"github.com/localrivet/lexsummary/internal/summarystore"
	"github.com/localrivet/lexsummary/internal/telemetry"
	"github.com/localrivet/lexsummary/internal/util"
)

const (
	// Default settings
	DefaultMaxTextLength = 100000
	DefaultCacheCapacity = 1000
	DefaultCacheTTL      = 24 * time.Hour
	DefaultBatchWorkers  = 4
)

// Options configures a LexRankSummarizer. Zero values take the defaults.
type Options struct {
	MaxSentences  int
	MaxTextLength int
	CacheCapacity int
	CacheTTL      time.Duration
	BatchWorkers  int

	// Store, when set, persists every generated summary.
	Store   summarystore.SummaryStore
	Logger  *slog.Logger
	Metrics *telemetry.MetricsCollector
}

// LexRankSummarizer is the Summarizer backed by the extractive engine.
type LexRankSummarizer struct {
	maxSentences  int
	maxTextLength int
	batchWorkers  int
	cache         *summaryCache
	store         summarystore.SummaryStore
	logger        *slog.Logger
	metrics       *telemetry.MetricsCollector
	inflight      singleflight.Group
	initialized   bool
	mu            sync.RWMutex
}

// NewLexRankSummarizer creates a summarizer from opts.
func NewLexRankSummarizer(opts Options) *LexRankSummarizer {
	if opts.MaxSentences <= 0 {
		opts.MaxSentences = lexrank.DefaultMaxSentences
	}
	if opts.MaxTextLength <= 0 {
		opts.MaxTextLength = DefaultMaxTextLength
	}
	if opts.CacheCapacity <= 0 {
		opts.CacheCapacity = DefaultCacheCapacity
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.BatchWorkers <= 0 {
		opts.BatchWorkers = DefaultBatchWorkers
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = telemetry.NewMetricsCollector()
	}

	return &LexRankSummarizer{
		maxSentences:  opts.MaxSentences,
		maxTextLength: opts.MaxTextLength,
		batchWorkers:  opts.BatchWorkers,
		cache:         newSummaryCache(opts.CacheCapacity, opts.CacheTTL),
		store:         opts.Store,
		logger:        opts.Logger,
		metrics:       opts.Metrics,
	}
}

// Initialize marks the summarizer ready. The store is expected to be
// initialized by its owner.
func (s *LexRankSummarizer) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.logger.Debug("Summarizer initialized",
		"max_sentences", s.maxSentences,
		"max_text_length", s.maxTextLength,
		"store", s.store != nil)
	return nil
}

func (s *LexRankSummarizer) validate(req Request) error {
	if strings.TrimSpace(req.Text) == "" {
		return errortypes.ValidationError(ErrEmptyText, "text is required")
	}
	if n := util.RuneLen(req.Text); n > s.maxTextLength {
		return errortypes.ValidationError(ErrTextTooLong, "text is too long").
			WithField("length", n).
			WithField("max_length", s.maxTextLength)
	}
	if req.MaxSentences < 0 {
		return errortypes.ValidationError(ErrInvalidMaxSentences, "invalid max sentences").
			WithField("max_sentences", req.MaxSentences)
	}
	return nil
}

// Summarize validates req and returns its summary, from the cache or the
// store when an identical request was seen before.
func (s *LexRankSummarizer) Summarize(ctx context.Context, req Request) (*Summary, error) {
	startTime := time.Now()
	defer func() {
		s.metrics.RecordTimer(telemetry.MetricSummarizeTime, time.Since(startTime))
	}()

	s.mu.RLock()
	initialized := s.initialized
	s.mu.RUnlock()
	if !initialized {
		if err := s.Initialize(); err != nil {
			return nil, errortypes.InternalError(err, "failed to initialize summarizer")
		}
	}

	s.metrics.IncrementCounter(telemetry.MetricRequests, 1)

	if err := s.validate(req); err != nil {
		s.metrics.IncrementCounter(telemetry.MetricValidationFailures, 1)
		return nil, err
	}
	if req.MaxSentences == 0 {
		req.MaxSentences = s.maxSentences
	}

	key := util.ContentHash(req.Text, req.Title, req.MaxSentences)

	if cached, found := s.cache.get(key); found {
		s.metrics.IncrementCounter(telemetry.MetricCacheHits, 1)
		cached.Cached = true
		return &cached, nil
	}
	s.metrics.IncrementCounter(telemetry.MetricCacheMisses, 1)

	// Identical requests in flight share one run so they all get the same ID.
	v, err, _ := s.inflight.Do(key, func() (any, error) {
		return s.summarizeMiss(ctx, key, req)
	})
	if err != nil {
		return nil, err
	}
	summary := v.(Summary)
	return &summary, nil
}

// summarizeMiss produces the summary for a request that missed the cache.
func (s *LexRankSummarizer) summarizeMiss(ctx context.Context, key string, req Request) (Summary, error) {
	// A run for the same key may have finished since the first lookup.
	if cached, found := s.cache.get(key); found {
		cached.Cached = true
		return cached, nil
	}

	if summary, found := s.loadFromStore(key); found {
		s.cacheResult(key, *summary)
		summary.Cached = true
		return *summary, nil
	}

	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	result, stats := lexrank.SummarizeWithStats(req.Text, req.Title, req.MaxSentences)
	s.recordStats(stats)

	summary := Summary{
		ID:        uuid.NewString(),
		Key:       key,
		Result:    result,
		CreatedAt: time.Now(),
	}
	s.saveToStore(&summary)
	s.cacheResult(key, summary)

	s.metrics.RecordTimestamp(telemetry.MetricLastSummary)
	s.logger.Debug("Summary generated",
		"id", summary.ID,
		"raw_sentences", stats.RawSentences,
		"unique_sentences", stats.UniqueSentences,
		"selected", stats.Selected,
		"iterations", stats.Iterations,
		"early_exit", string(stats.EarlyExit))

	return summary, nil
}

func (s *LexRankSummarizer) recordStats(stats lexrank.Stats) {
	switch stats.EarlyExit {
	case lexrank.EarlyExitShortText:
		s.metrics.IncrementCounter(telemetry.MetricEarlyExitShortText, 1)
	case lexrank.EarlyExitFewSentences:
		s.metrics.IncrementCounter(telemetry.MetricEarlyExitFewSentences, 1)
	}
	if stats.EarlyExit == lexrank.EarlyExitNone {
		s.metrics.IncrementCounter(telemetry.MetricRankerIterations, int64(stats.Iterations))
		if !stats.Converged {
			s.metrics.IncrementCounter(telemetry.MetricRankerNotConverged, 1)
			s.logger.Warn("Ranker stopped before converging", "iterations", stats.Iterations)
		}
	}
	s.metrics.IncrementCounter(telemetry.MetricSelectedSentences, int64(stats.Selected))
	s.metrics.SetGauge(telemetry.MetricUniqueSentences, float64(stats.UniqueSentences))
}

func (s *LexRankSummarizer) loadFromStore(key string) (*Summary, bool) {
	if s.store == nil {
		return nil, false
	}

	rec, err := s.store.GetByKey(key)
	if err != nil {
		s.metrics.IncrementCounter(telemetry.MetricStoreMisses, 1)
		if !errors.Is(err, summarystore.ErrNotFound) {
			s.metrics.IncrementCounter(telemetry.MetricStoreFailures, 1)
			errortypes.LogError(s.logger, err)
		}
		return nil, false
	}

	s.metrics.IncrementCounter(telemetry.MetricStoreHits, 1)
	return &Summary{
		ID:        rec.ID,
		Key:       rec.Key,
		Result:    rec.Result,
		CreatedAt: rec.CreatedAt,
	}, true
}

// saveToStore persists summary. When the store already holds a summary for
// the same key, that summary's ID and timestamp are adopted. A failed write is
// logged and the summary is still returned to the caller.
func (s *LexRankSummarizer) saveToStore(summary *Summary) {
	if s.store == nil {
		return
	}

	rec, err := s.store.Store(summarystore.Record{
		ID:        summary.ID,
		Key:       summary.Key,
		Title:     summary.Result.Title,
		Result:    summary.Result,
		CreatedAt: summary.CreatedAt,
	})
	if err != nil {
		s.metrics.IncrementCounter(telemetry.MetricStoreFailures, 1)
		errortypes.LogError(s.logger, err)
		return
	}

	s.metrics.IncrementCounter(telemetry.MetricStoreWrites, 1)
	summary.ID = rec.ID
	summary.Result = rec.Result
	summary.CreatedAt = rec.CreatedAt
}

func (s *LexRankSummarizer) cacheResult(key string, summary Summary) {
	summary.Cached = false
	s.cache.put(key, summary)
	s.metrics.SetGauge(telemetry.MetricCacheSize, float64(s.cache.len()))
}

// SummarizeBatch summarizes reqs concurrently with a bounded number of
// workers. Results keep the order of reqs. The first failure cancels the
// remaining work and is returned.
func (s *LexRankSummarizer) SummarizeBatch(ctx context.Context, reqs []Request) ([]*Summary, error) {
	s.metrics.IncrementCounter(telemetry.MetricBatchRequests, 1)
	s.metrics.IncrementCounter(telemetry.MetricBatchDocuments, int64(len(reqs)))

	results := make([]*Summary, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchWorkers)
	for i, req := range reqs {
		g.Go(func() error {
			summary, err := s.Summarize(gctx, req)
			if err != nil {
				var appErr *errortypes.AppError
				if errors.As(err, &appErr) {
					appErr.WithField("document", i)
				}
				return err
			}
			results[i] = summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Get returns a stored summary by ID.
func (s *LexRankSummarizer) Get(id string) (*Summary, error) {
	if s.store == nil {
		return nil, errortypes.NotFoundError(summarystore.ErrNotFound, "summary store is disabled")
	}

	rec, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &Summary{ID: rec.ID, Key: rec.Key, Result: rec.Result, CreatedAt: rec.CreatedAt}, nil
}

// List returns up to limit stored summaries, newest first.
func (s *LexRankSummarizer) List(limit int) ([]summarystore.Entry, error) {
	if s.store == nil {
		return []summarystore.Entry{}, nil
	}
	return s.store.List(limit)
}

// Delete removes a stored summary and any cached copy of it.
func (s *LexRankSummarizer) Delete(id string) error {
	s.cache.remove(id)
	s.metrics.SetGauge(telemetry.MetricCacheSize, float64(s.cache.len()))

	if s.store == nil {
		return errortypes.NotFoundError(summarystore.ErrNotFound, "summary store is disabled")
	}
	return s.store.Delete(id)
}

// Clear empties the cache and the store and reports how many stored
// summaries were removed.
func (s *LexRankSummarizer) Clear() (int, error) {
	s.cache.clear()
	s.metrics.SetGauge(telemetry.MetricCacheSize, 0)

	if s.store == nil {
		return 0, nil
	}
	return s.store.Clear()
}

// StoreEnabled reports whether summaries are persisted.
func (s *LexRankSummarizer) StoreEnabled() bool {
	return s.store != nil
}

// GetMetrics returns the metrics collector for this summarizer
func (s *LexRankSummarizer) GetMetrics() *telemetry.MetricsCollector {
	return s.metrics
}
