// Package scheduler drives the monitoring loop: trading-hours gating, feed
// fetch with bounded retry and mock fallback, per-symbol classification,
// and dispatch of non-neutral verdicts to subscribers.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"NepseSentinel/internal/calculator"
	"NepseSentinel/internal/feed"
	"NepseSentinel/internal/metrics"
	"NepseSentinel/internal/model"
	"NepseSentinel/internal/news"
	"NepseSentinel/internal/notifier"
	"NepseSentinel/internal/sentiment"
	"NepseSentinel/internal/store"
	"NepseSentinel/internal/strategy"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sink receives fully rendered alert text for delivery to subscribers.
type Sink interface {
	Broadcast(ctx context.Context, text string) error
}

// HeadlineFetcher supplies the cycle's news pool.
type HeadlineFetcher interface {
	FetchHeadlines(ctx context.Context) ([]string, error)
}

// Deps carries the scheduler's collaborators. History may be nil when the
// source cannot serve per-symbol history.
type Deps struct {
	Source   feed.Source
	History  feed.HistoryProvider
	Fallback feed.Source
	News     HeadlineFetcher
	Rules    []news.Rule
	Scorer   sentiment.Scorer
	Sink     Sink
	Registry store.Registry
	Calendar *Calendar
	Metrics  *metrics.Metrics
	Logger   zerolog.Logger
}

// Options carries the scheduler's tunables.
type Options struct {
	MaxSymbols         int
	MaxRetries         int
	RetryDelay         time.Duration
	PollIntervalOpen   time.Duration
	PollIntervalClosed time.Duration
}

// Scheduler owns the poll loop and the background digest job.
type Scheduler struct {
	source   feed.Source
	history  feed.HistoryProvider
	fallback feed.Source
	news     HeadlineFetcher
	rules    []news.Rule
	scorer   sentiment.Scorer
	sink     Sink
	registry store.Registry
	calendar *Calendar
	metrics  *metrics.Metrics
	log      zerolog.Logger
	cron     *cron.Cron
	opts     Options
	root     context.Context

	mu     sync.Mutex
	state  model.SchedulerState
	cancel context.CancelFunc
}

// New builds a scheduler. The root context bounds the loop and every cycle
// started from commands or cron.
func New(ctx context.Context, deps Deps, opts Options) *Scheduler {
	return &Scheduler{
		source:   deps.Source,
		history:  deps.History,
		fallback: deps.Fallback,
		news:     deps.News,
		rules:    deps.Rules,
		scorer:   deps.Scorer,
		sink:     deps.Sink,
		registry: deps.Registry,
		calendar: deps.Calendar,
		metrics:  deps.Metrics,
		log:      deps.Logger.With().Str("component", "scheduler").Logger(),
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(deps.Calendar.Location())),
		opts:     opts,
		root:     ctx,
	}
}

// Start flips the scheduler to active and launches the poll loop. It
// returns false when monitoring is already active.
func (s *Scheduler) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Active {
		return false
	}
	ctx, cancel := context.WithCancel(s.root)
	s.cancel = cancel
	s.state.Active = true
	go s.loop(ctx)
	s.log.Info().Msg("monitoring started")
	return true
}

// Stop cancels the poll loop, unblocking any retry delay or interval sleep
// immediately. It returns false when monitoring is not active.
func (s *Scheduler) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Active {
		return false
	}
	s.state.Active = false
	s.cancel()
	s.cancel = nil
	s.log.Info().Msg("monitoring stopped")
	return true
}

// Active reports whether the poll loop is running.
func (s *Scheduler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Active
}

// Status returns a copy of the scheduler state with the session gate
// evaluated at call time.
func (s *Scheduler) Status() model.SchedulerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.SessionOpen = s.calendar.IsOpen(time.Now())
	return st
}

// RunOnce executes a single pipeline cycle outside the loop. It serves the
// /opportunities command and the post-market digest.
func (s *Scheduler) RunOnce(ctx context.Context) []model.Verdict {
	verdicts, _ := s.runCycle(ctx)
	return verdicts
}

// RegisterDigest schedules the post-market summary with a seconds-precision
// cron spec evaluated in the exchange timezone.
func (s *Scheduler) RegisterDigest(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.digestTask); err != nil {
		return fmt.Errorf("register digest: %w", err)
	}
	return nil
}

// StartCron starts the background job runner.
func (s *Scheduler) StartCron() {
	s.cron.Start()
	s.log.Info().Msg("cron jobs started")
}

// StopCron stops the background job runner.
func (s *Scheduler) StopCron() {
	s.cron.Stop()
	s.log.Info().Msg("cron jobs stopped")
}

func (s *Scheduler) digestTask() {
	s.log.Info().Msg("running post-market digest")
	verdicts := s.RunOnce(s.root)
	if len(verdicts) == 0 {
		return
	}
	s.trySend(s.root, notifier.FormatDigest(verdicts, time.Now().In(s.calendar.Location())))
}

// loop polls until ctx is cancelled. Cycles run in and out of session; the
// gate only picks the poll interval and the alert wording.
func (s *Scheduler) loop(ctx context.Context) {
	for {
		if ctx.Err() != nil || !s.Active() {
			return
		}

		open := s.calendar.IsOpen(time.Now())
		verdicts, synthetic := s.runCycle(ctx)
		s.dispatch(ctx, verdicts, open, synthetic)

		interval := s.opts.PollIntervalClosed
		if open {
			interval = s.opts.PollIntervalOpen
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

// runCycle executes one full pipeline pass: snapshot, news pool, per-symbol
// indicators and classification. It never fails; feed outages degrade to
// the fallback source and news outages to an empty pool.
func (s *Scheduler) runCycle(ctx context.Context) ([]model.Verdict, bool) {
	started := time.Now()

	snap := s.fetchSnapshot(ctx)
	pool := s.fetchNewsPool(ctx)

	quotes := snap.Quotes
	if len(quotes) > s.opts.MaxSymbols {
		quotes = quotes[:s.opts.MaxSymbols]
	}

	verdicts := make([]model.Verdict, 0, len(quotes))
	for _, q := range quotes {
		hist := s.fetchHistory(ctx, q.Symbol)
		ind := calculator.Compute(q.Symbol, hist, q.Close)
		v := strategy.Classify(ind, pool)
		verdicts = append(verdicts, v)
		s.metrics.VerdictObserved(v.Category.String())
	}

	s.mu.Lock()
	s.state.LastPoll = time.Now()
	s.state.LastCycleVerdicts = len(verdicts)
	s.mu.Unlock()

	s.metrics.CycleObserved(time.Since(started))
	s.log.Info().Int("symbols", len(verdicts)).Int("news", len(pool)).
		Bool("synthetic", snap.Synthetic).Dur("took", time.Since(started)).
		Msg("poll cycle complete")
	return verdicts, snap.Synthetic
}

// fetchSnapshot tries the primary source with bounded retries and a fixed
// delay between attempts, then hands the cycle to the fallback source. A
// feed outage never aborts the cycle.
func (s *Scheduler) fetchSnapshot(ctx context.Context) model.Snapshot {
	var lastErr error
	for attempt := 1; attempt <= s.opts.MaxRetries; attempt++ {
		snap, err := s.source.FetchSnapshot(ctx)
		if err == nil {
			return snap
		}
		lastErr = err
		s.metrics.FeedRetryObserved()
		s.log.Warn().Err(err).Int("attempt", attempt).Int("max", s.opts.MaxRetries).
			Msg("feed fetch failed")
		if attempt == s.opts.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return model.Snapshot{Source: s.source.Name()}
		case <-time.After(s.opts.RetryDelay):
		}
	}

	s.metrics.FeedFallbackObserved()
	s.log.Warn().Err(lastErr).Str("fallback", s.fallback.Name()).
		Msg("feed unavailable after retries, serving fallback data")
	snap, err := s.fallback.FetchSnapshot(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("fallback source failed")
		return model.Snapshot{Source: s.fallback.Name(), Synthetic: true}
	}
	return snap
}

// fetchNewsPool scrapes and filters headlines, degrading to an empty pool
// when the source is unreachable.
func (s *Scheduler) fetchNewsPool(ctx context.Context) []model.NewsItem {
	headlines, err := s.news.FetchHeadlines(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("news fetch failed, continuing with empty pool")
		return nil
	}
	s.metrics.HeadlinesObserved(len(headlines))
	return news.Filter(headlines, s.rules, s.scorer)
}

// fetchHistory returns the symbol's history, or nil when the source has no
// history capability or the fetch fails. History-based indicators then
// degrade to their defaults.
func (s *Scheduler) fetchHistory(ctx context.Context, symbol string) model.SymbolHistory {
	if s.history == nil {
		return nil
	}
	hist, err := s.history.FetchHistory(ctx, symbol)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("history fetch failed")
		return nil
	}
	return hist
}

// dispatch renders and broadcasts every non-neutral verdict, grouped by
// category: one opportunity digest, one alert per dangerous symbol, and
// one big-mover list.
func (s *Scheduler) dispatch(ctx context.Context, verdicts []model.Verdict, open, synthetic bool) {
	var opportunities, dangerous, movers []model.Verdict
	for _, v := range verdicts {
		switch v.Category {
		case model.CategoryOpportunity:
			opportunities = append(opportunities, v)
		case model.CategoryDangerous:
			dangerous = append(dangerous, v)
		case model.CategoryBigMover:
			movers = append(movers, v)
		}
	}

	if len(opportunities) > 0 {
		s.trySend(ctx, notifier.FormatOpportunities(opportunities, open, synthetic))
	}
	for _, v := range dangerous {
		s.trySend(ctx, notifier.FormatDangerAlert(v))
	}
	if len(movers) > 0 {
		s.trySend(ctx, notifier.FormatBigMovers(movers, synthetic))
	}
}

func (s *Scheduler) trySend(ctx context.Context, text string) {
	if err := s.sink.Broadcast(ctx, text); err != nil {
		s.log.Error().Err(err).Msg("broadcast alert")
		return
	}
	s.metrics.AlertSent()
}
