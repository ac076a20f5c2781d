package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/platform/logging"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

const tracerName = "github.com/jsamuelsen/quotebook/internal/app"

// DefaultSyncInterval is the pause between scheduled sync runs.
const DefaultSyncInterval = 60 * time.Second

// maxParallelFetches bounds how many sources are pulled at once.
const maxParallelFetches = 4

// SourceFailure names a source that could not be fetched in a run.
type SourceFailure struct {
	Source string
	Err    error
}

// SyncResult summarises one sync run.
type SyncResult struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Fetched    int
	Merged     int
	Published  bool
	Failures   []SourceFailure
}

// SyncAgent pulls quotes from remote sources into the quote service on a schedule.
type SyncAgent struct {
	quotes    *QuoteService
	sources   []ports.QuoteSource
	publisher ports.QuotePublisher
	flags     ports.FeatureFlags
	clock     ports.Clock
	interval  time.Duration
	observer  func(context.Context, SyncResult)
	logger    *slog.Logger

	mu     sync.Mutex
	last   *SyncResult
	cancel context.CancelFunc
	done   chan struct{}
}

// SyncAgentConfig contains the dependencies of the sync agent.
type SyncAgentConfig struct {
	// Quotes receives merged records. Required.
	Quotes *QuoteService

	Sources []ports.QuoteSource

	// Publisher receives the full local list after each run when the
	// sync-publish-local flag is on. Optional.
	Publisher ports.QuotePublisher

	Flags    ports.FeatureFlags
	Clock    ports.Clock
	Interval time.Duration

	// Observer is called after every run, successful or not. Optional.
	Observer func(context.Context, SyncResult)

	Logger *slog.Logger
}

// NewSyncAgent creates a stopped sync agent.
func NewSyncAgent(cfg SyncAgentConfig) *SyncAgent {
	if cfg.Quotes == nil {
		panic("app: SyncAgentConfig.Quotes is required")
	}

	a := &SyncAgent{
		quotes:    cfg.Quotes,
		sources:   cfg.Sources,
		publisher: cfg.Publisher,
		flags:     cfg.Flags,
		clock:     cfg.Clock,
		interval:  cfg.Interval,
		observer:  cfg.Observer,
		logger:    cfg.Logger,
	}

	if a.flags == nil {
		a.flags = noFlags{}
	}

	if a.clock == nil {
		a.clock = ports.SystemClock{}
	}

	if a.interval <= 0 {
		a.interval = DefaultSyncInterval
	}

	if a.logger == nil {
		a.logger = slog.Default()
	}

	return a
}

// RunOnce fetches every source concurrently and merges what arrived.
// A failing source is logged and listed in the result. When every source
// fails RunOnce returns an UnavailableError alongside the result.
func (a *SyncAgent) RunOnce(ctx context.Context) (SyncResult, error) {
	result := SyncResult{
		RunID:     xid.New().String(),
		StartedAt: a.clock.Now(),
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "sync.run",
		trace.WithAttributes(
			attribute.String("sync.run_id", result.RunID),
			attribute.Int("sync.sources", len(a.sources)),
		),
	)
	defer span.End()

	logger := a.logger.With(slog.String("run_id", result.RunID))
	if _, ok := logging.Lookup(ctx); !ok {
		ctx = logging.WithContext(ctx, a.logger)
	}
	ctx = logging.WithRunID(ctx, result.RunID)

	fetchers := make([]func(context.Context) ([]domain.Quote, error), len(a.sources))
	for i, src := range a.sources {
		fetchers[i] = src.FetchQuotes
	}

	var incoming []domain.Quote

	for i, r := range ParallelPartial(ctx, maxParallelFetches, fetchers...) {
		name := a.sources[i].Name()

		if r.Err != nil {
			logger.WarnContext(ctx, "sync source failed",
				slog.String("source", name),
				slog.Any("error", r.Err),
			)
			result.Failures = append(result.Failures, SourceFailure{Source: name, Err: r.Err})

			continue
		}

		logger.DebugContext(ctx, "sync source fetched",
			slog.String("source", name),
			slog.Int("count", len(r.Value)),
		)
		result.Fetched += len(r.Value)
		incoming = append(incoming, r.Value...)
	}

	matchCategory := a.flags.IsEnabled(ctx, ports.FlagSyncMatchCategory, false)
	result.Merged = a.quotes.Merge(ctx, incoming, matchCategory)

	if a.publisher != nil && a.flags.IsEnabled(ctx, ports.FlagSyncPublishLocal, false) {
		err := a.publisher.PublishQuotes(ctx, a.quotes.List(ctx))
		if err != nil {
			logger.WarnContext(ctx, "failed to publish local quotes", slog.Any("error", err))
		} else {
			result.Published = true
		}
	}

	result.FinishedAt = a.clock.Now()
	span.SetAttributes(attribute.Int("sync.merged", result.Merged))

	var err error
	if len(a.sources) > 0 && len(result.Failures) == len(a.sources) {
		errs := make([]error, len(result.Failures))
		for i, f := range result.Failures {
			errs[i] = f.Err
		}

		err = domain.WrapUnavailable("sync", "every source failed", errors.Join(errs...))
		span.SetStatus(codes.Error, "every source failed")
	}

	logger.InfoContext(ctx, "sync run finished",
		slog.Int("fetched", result.Fetched),
		slog.Int("merged", result.Merged),
		slog.Int("failed_sources", len(result.Failures)),
	)

	a.mu.Lock()
	a.last = &result
	a.mu.Unlock()

	if a.observer != nil {
		a.observer(ctx, result)
	}

	return result, err
}

// LastResult returns the most recent run, if any.
func (a *SyncAgent) LastResult() (SyncResult, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.last == nil {
		return SyncResult{}, false
	}

	return *a.last, true
}

// Start runs a sync immediately and then once per interval until Stop is
// called or ctx is cancelled. Calling Start on a running agent does nothing.
func (a *SyncAgent) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	ticker := a.clock.NewTicker(a.interval)

	a.cancel = cancel
	a.done = done

	a.logger.InfoContext(ctx, "sync agent started",
		slog.Duration("interval", a.interval),
		slog.Int("sources", len(a.sources)),
	)

	go a.loop(ctx, ticker, done)
}

// Stop cancels the schedule and waits for an in-flight run to return.
// It is safe to call more than once.
func (a *SyncAgent) Stop() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done

	a.logger.Info("sync agent stopped")
}

func (a *SyncAgent) loop(ctx context.Context, ticker ports.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	a.runScheduled(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			a.runScheduled(ctx)
		}
	}
}

func (a *SyncAgent) runScheduled(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	// Failures are already logged and recorded by RunOnce.
	_, _ = a.RunOnce(ctx)
}
