package app

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strconv"

	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

// Placeholder notices returned instead of a quote.
const (
	NoticeEmptyList     = "No quotes available."
	NoticeEmptyCategory = "No quotes available in this category."
)

// Display is what a caller renders for one random draw.
// When Notice is set there is no quote and Index is -1.
type Display struct {
	Quote    domain.Quote
	Index    int
	Category string
	Notice   string
}

// HasQuote reports whether the display carries a quote.
func (d Display) HasQuote() bool {
	return d.Notice == ""
}

// Roster is the category selector: options and the selected one.
type Roster struct {
	Options  []string
	Selected string
}

// PickRandom draws one element uniformly with a single draw scaled by the list length.
func PickRandom[T any](rng *rand.Rand, list []T) (T, int, bool) {
	if len(list) == 0 {
		var zero T
		return zero, -1, false
	}

	idx := int(rng.Float64() * float64(len(list)))

	return list[idx], idx, true
}

// FilterByCategory returns the quotes filed under selection, in order.
// domain.CategoryAll returns the whole list.
func FilterByCategory(list []domain.Quote, selection string) []domain.Quote {
	positions := categoryPositions(list, selection)

	filtered := make([]domain.Quote, len(positions))
	for i, pos := range positions {
		filtered[i] = list[pos]
	}

	return filtered
}

// categoryPositions returns the indexes in list of the quotes under selection.
func categoryPositions(list []domain.Quote, selection string) []int {
	positions := make([]int, 0, len(list))

	for i, q := range list {
		if selection == domain.CategoryAll || q.Category == selection {
			positions = append(positions, i)
		}
	}

	return positions
}

// CategoryRoster lists the distinct categories sorted, with "all" first.
// selected is kept when it is still an option, otherwise "all" is selected.
func CategoryRoster(list []domain.Quote, selected string) Roster {
	categories := make([]string, 0, len(list))
	for _, q := range list {
		categories = append(categories, q.Category)
	}

	slices.Sort(categories)
	categories = slices.Compact(categories)

	options := append([]string{domain.CategoryAll}, categories...)

	if !slices.Contains(options, selected) {
		selected = domain.CategoryAll
	}

	return Roster{Options: options, Selected: selected}
}

// ShowRandom draws a quote from category and records the draw.
// An empty category reuses the stored selection. The selection is persisted
// and the drawn quote's position in the full list goes to the session store.
func (s *QuoteService) ShowRandom(ctx context.Context, category string) Display {
	if category == "" {
		category = s.selectedCategory(ctx)
	}

	err := s.store.Set(ctx, ports.SlotLastCategory, category)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to persist selected category", slog.Any("error", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pick, _, ok := PickRandom(s.rng, categoryPositions(s.quotes, category))
	if !ok {
		notice := NoticeEmptyCategory
		if len(s.quotes) == 0 {
			notice = NoticeEmptyList
		}

		return Display{Index: -1, Category: category, Notice: notice}
	}

	err = s.session.Set(ctx, ports.SlotLastIndex, strconv.Itoa(pick))
	if err != nil {
		s.logger.WarnContext(ctx, "failed to record shown quote", slog.Any("error", err))
	}

	return Display{Quote: s.quotes[pick], Index: pick, Category: category}
}

// Current restores the quote shown last in this session when the
// restore-last-quote flag is on and the recorded position is still valid.
// Otherwise it draws a fresh quote from the stored category.
func (s *QuoteService) Current(ctx context.Context) Display {
	if s.flags.IsEnabled(ctx, ports.FlagRestoreLastQuote, false) {
		if d, ok := s.restoreLast(ctx); ok {
			return d
		}
	}

	return s.ShowRandom(ctx, "")
}

func (s *QuoteService) restoreLast(ctx context.Context) (Display, bool) {
	raw, err := s.session.Get(ctx, ports.SlotLastIndex)
	if err != nil {
		return Display{}, false
	}

	idx, err := strconv.Atoi(raw)
	if err != nil {
		return Display{}, false
	}

	category := s.selectedCategory(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx < 0 || idx >= len(s.quotes) {
		return Display{}, false
	}

	s.logger.DebugContext(ctx, "restored last shown quote", slog.Int("index", idx))

	return Display{Quote: s.quotes[idx], Index: idx, Category: category}, true
}

// Categories builds the roster from the current list and the stored selection.
func (s *QuoteService) Categories(ctx context.Context) Roster {
	selected := s.selectedCategory(ctx)

	return CategoryRoster(s.List(ctx), selected)
}

func (s *QuoteService) selectedCategory(ctx context.Context) string {
	category, err := s.store.Get(ctx, ports.SlotLastCategory)
	if err != nil {
		if !domain.IsNotFound(err) {
			s.logger.WarnContext(ctx, "failed to read selected category", slog.Any("error", err))
		}

		return domain.CategoryAll
	}

	if category == "" {
		return domain.CategoryAll
	}

	return category
}
