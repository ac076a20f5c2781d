// Package app contains application services that orchestrate use cases.
// It coordinates the quote list held in memory with the slot store, the
// session store, feature flags and the remote sync sources, all reached
// through ports.
package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

// QuoteService owns the quote list and keeps it in step with the slot store.
// Every mutation runs under one mutex, so an add racing a sync merge cannot
// lose either write.
type QuoteService struct {
	mu     sync.Mutex
	quotes []domain.Quote

	store   ports.KeyValueStore
	session ports.KeyValueStore
	flags   ports.FeatureFlags
	rng     *rand.Rand
	exec    *Executor
	logger  *slog.Logger
}

// QuoteServiceConfig contains the dependencies of the quote service.
type QuoteServiceConfig struct {
	// Store persists the quote list and the last selected category. Required.
	Store ports.KeyValueStore

	// Session holds the last shown index for the lifetime of the process. Required.
	Session ports.KeyValueStore

	// Flags selects between behaviour variants. Nil means every flag is off.
	Flags ports.FeatureFlags

	// Rand drives random selection. Defaults to a time-seeded PCG source.
	Rand *rand.Rand

	Logger *slog.Logger
}

// NewQuoteService creates a quote service with an empty list.
// Call Load before serving requests.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Store == nil {
		panic("app: QuoteServiceConfig.Store is required")
	}

	if cfg.Session == nil {
		panic("app: QuoteServiceConfig.Session is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rng := cfg.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}

	flags := cfg.Flags
	if flags == nil {
		flags = noFlags{}
	}

	return &QuoteService{
		store:   cfg.Store,
		session: cfg.Session,
		flags:   flags,
		rng:     rng,
		exec:    NewExecutor(logger),
		logger:  logger,
	}
}

// Load replaces the in-memory list with the persisted one.
// An absent, unparsable or malformed slot resets the list to the defaults and
// persists them. Load never fails; problems are logged.
func (s *QuoteService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.store.Get(ctx, ports.SlotQuotes)

	switch {
	case domain.IsNotFound(err):
		s.logger.InfoContext(ctx, "no stored quotes, seeding defaults")
	case err != nil:
		s.logger.WarnContext(ctx, "failed to read stored quotes, seeding defaults",
			slog.Any("error", err),
		)
	default:
		quotes, ok := decodeStoredList([]byte(raw))
		if ok {
			s.quotes = quotes
			s.logger.DebugContext(ctx, "loaded stored quotes", slog.Int("count", len(quotes)))

			return
		}

		s.logger.WarnContext(ctx, "stored quotes are malformed, seeding defaults")
	}

	s.quotes = domain.DefaultQuotes()
	_ = s.saveLocked(ctx)
}

// Save writes the current list to the slot store.
// The error is logged here; mutating operations ignore it.
func (s *QuoteService) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveLocked(ctx)
}

func (s *QuoteService) saveLocked(ctx context.Context) error {
	data, err := json.Marshal(s.quotes)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to encode quotes", slog.Any("error", err))

		return err
	}

	err = s.store.Set(ctx, ports.SlotQuotes, string(data))
	if err != nil {
		s.logger.WarnContext(ctx, "failed to persist quotes",
			slog.Int("count", len(s.quotes)),
			slog.Any("error", err),
		)

		return err
	}

	return nil
}

// Add appends a quote after trimming and validating both fields.
// A rejected quote leaves the list untouched.
func (s *QuoteService) Add(ctx context.Context, text, category string) (domain.Quote, error) {
	quote, err := domain.NewQuote(text, category)
	if err != nil {
		s.logger.InfoContext(ctx, "rejected quote", slog.Any("error", err))

		return domain.Quote{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.quotes = append(s.quotes, quote)
	_ = s.saveLocked(ctx)

	s.logger.InfoContext(ctx, "added quote",
		slog.String("category", quote.Category),
		slog.Int("count", len(s.quotes)),
	)

	return quote, nil
}

// List returns a copy of the list in insertion order. Never nil.
func (s *QuoteService) List(_ context.Context) []domain.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append(make([]domain.Quote, 0, len(s.quotes)), s.quotes...)
}

// Count returns the number of quotes held.
func (s *QuoteService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.quotes)
}

// Page returns up to limit quotes starting at offset and whether more follow.
func (s *QuoteService) Page(_ context.Context, offset, limit int) ([]domain.Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if offset < 0 {
		offset = 0
	}

	if offset >= len(s.quotes) || limit <= 0 {
		return []domain.Quote{}, false
	}

	end := min(offset+limit, len(s.quotes))

	return slices.Clone(s.quotes[offset:end]), end < len(s.quotes)
}

// Merge appends each incoming quote whose text is not already present.
// With matchCategory a quote counts as present only when the category matches
// too. Appended quotes join the comparison set, so duplicates inside one batch
// collapse. Returns the number appended and persists when that is non-zero.
func (s *QuoteService) Merge(ctx context.Context, incoming []domain.Quote, matchCategory bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := 0

	for _, q := range incoming {
		exists := slices.ContainsFunc(s.quotes, func(local domain.Quote) bool {
			if matchCategory {
				return local == q
			}

			return local.SameText(q)
		})
		if exists {
			continue
		}

		s.quotes = append(s.quotes, q)
		merged++
	}

	if merged > 0 {
		_ = s.saveLocked(ctx)
	}

	return merged
}

// appendAll appends quotes unconditionally and persists them.
func (s *QuoteService) appendAll(ctx context.Context, quotes []domain.Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quotes = append(s.quotes, quotes...)
	_ = s.saveLocked(ctx)
}

// decodeStoredList accepts only a JSON array whose every element has string
// text and category fields.
func decodeStoredList(data []byte) ([]domain.Quote, bool) {
	var elems []json.RawMessage

	err := json.Unmarshal(data, &elems)
	if err != nil || elems == nil {
		return nil, false
	}

	quotes := make([]domain.Quote, 0, len(elems))

	for _, elem := range elems {
		q, ok := decodeQuoteRecord(elem)
		if !ok {
			return nil, false
		}

		quotes = append(quotes, q)
	}

	return quotes, true
}

// decodeQuoteRecord reads one {text, category} object. Both fields must be
// JSON strings; other fields are ignored.
func decodeQuoteRecord(raw json.RawMessage) (domain.Quote, bool) {
	var fields map[string]any

	if json.Unmarshal(raw, &fields) != nil {
		return domain.Quote{}, false
	}

	text, ok := fields["text"].(string)
	if !ok {
		return domain.Quote{}, false
	}

	category, ok := fields["category"].(string)
	if !ok {
		return domain.Quote{}, false
	}

	return domain.Quote{Text: text, Category: category}, true
}

type noFlags struct{}

func (noFlags) IsEnabled(_ context.Context, _ string, defaultValue bool) bool {
	return defaultValue
}
