package app

import (
	"context"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/mocks"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

func TestFilterByCategory(t *testing.T) {
	list := []domain.Quote{{Text: "a", Category: "X"}, {Text: "b", Category: "Y"}}

	assert.Equal(t, []domain.Quote{{Text: "a", Category: "X"}}, FilterByCategory(list, "X"))
	assert.Equal(t, list, FilterByCategory(list, domain.CategoryAll))
	assert.Empty(t, FilterByCategory(list, "Z"))
}

func TestPickRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))

	_, idx, ok := PickRandom[domain.Quote](rng, nil)
	assert.False(t, ok)
	assert.Equal(t, -1, idx)

	list := domain.DefaultQuotes()
	seen := make(map[int]bool)

	for range 200 {
		q, i, ok := PickRandom(rng, list)
		require.True(t, ok)
		require.GreaterOrEqual(t, i, 0)
		require.Less(t, i, len(list))
		assert.Equal(t, list[i], q)

		seen[i] = true
	}

	assert.Len(t, seen, len(list), "every position should come up eventually")
}

func TestCategoryRoster(t *testing.T) {
	list := []domain.Quote{
		{Text: "a", Category: "Life"},
		{Text: "b", Category: "Inspiration"},
		{Text: "c", Category: "Life"},
	}

	roster := CategoryRoster(list, "Life")
	assert.Equal(t, []string{"all", "Inspiration", "Life"}, roster.Options)
	assert.Equal(t, "Life", roster.Selected)

	gone := CategoryRoster(list, "Motivation")
	assert.Equal(t, domain.CategoryAll, gone.Selected)

	empty := CategoryRoster(nil, "")
	assert.Equal(t, []string{"all"}, empty.Options)
	assert.Equal(t, domain.CategoryAll, empty.Selected)
}

func TestQuoteService_ShowRandom_RecordsFullListIndex(t *testing.T) {
	f := newFixture(t, `[{"text":"a","category":"X"},{"text":"b","category":"Y"},{"text":"c","category":"Y"}]`, nil)
	ctx := context.Background()

	for range 20 {
		d := f.svc.ShowRandom(ctx, "Y")

		require.True(t, d.HasQuote())
		assert.Equal(t, "Y", d.Quote.Category)
		assert.Equal(t, "Y", d.Category)
		assert.Contains(t, []int{1, 2}, d.Index)

		recorded, err := f.session.Get(ctx, ports.SlotLastIndex)
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(d.Index), recorded)
	}

	stored, err := f.store.Get(ctx, ports.SlotLastCategory)
	require.NoError(t, err)
	assert.Equal(t, "Y", stored)
}

func TestQuoteService_ShowRandom_DrawsLikePickRandomOverFilter(t *testing.T) {
	stored := `[{"text":"a","category":"X"},{"text":"b","category":"Y"},{"text":"c","category":"X"},{"text":"d","category":"X"}]`
	f := newFixture(t, stored, nil)
	ctx := context.Background()

	// Same seed as the fixture.
	rng := rand.New(rand.NewPCG(1, 2))
	filtered := FilterByCategory(f.svc.List(ctx), "X")

	for range 20 {
		want, _, ok := PickRandom(rng, filtered)
		require.True(t, ok)

		d := f.svc.ShowRandom(ctx, "X")
		require.True(t, d.HasQuote())
		assert.Equal(t, want, d.Quote)
		assert.Equal(t, want, f.svc.List(ctx)[d.Index])
	}
}

func TestQuoteService_ShowRandom_UsesStoredCategory(t *testing.T) {
	f := newFixture(t, `[{"text":"a","category":"X"},{"text":"b","category":"Y"}]`, nil)
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, ports.SlotLastCategory, "X"))

	d := f.svc.ShowRandom(ctx, "")

	assert.Equal(t, "X", d.Category)
	assert.Equal(t, domain.Quote{Text: "a", Category: "X"}, d.Quote)
	assert.Equal(t, 0, d.Index)
}

func TestQuoteService_ShowRandom_Notices(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		category string
		want     string
	}{
		{name: "empty list", stored: `[]`, category: domain.CategoryAll, want: NoticeEmptyList},
		{name: "empty category", stored: `[{"text":"a","category":"X"}]`, category: "Y", want: NoticeEmptyCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.stored, nil)
			ctx := context.Background()

			d := f.svc.ShowRandom(ctx, tt.category)

			assert.False(t, d.HasQuote())
			assert.Equal(t, tt.want, d.Notice)
			assert.Equal(t, -1, d.Index)

			_, err := f.session.Get(ctx, ports.SlotLastIndex)
			assert.True(t, domain.IsNotFound(err), "nothing should be recorded")
		})
	}
}

func TestQuoteService_Current(t *testing.T) {
	t.Run("restores when flag is on", func(t *testing.T) {
		flags := mocks.NewMockFeatureFlags(t)
		flags.EXPECT().IsEnabled(mock.Anything, ports.FlagRestoreLastQuote, false).Return(true)

		f := newFixture(t, "", flags)
		ctx := context.Background()
		require.NoError(t, f.session.Set(ctx, ports.SlotLastIndex, "2"))

		d := f.svc.Current(ctx)

		assert.Equal(t, 2, d.Index)
		assert.Equal(t, domain.DefaultQuotes()[2], d.Quote)
	})

	t.Run("stale index falls back to a fresh draw", func(t *testing.T) {
		flags := mocks.NewMockFeatureFlags(t)
		flags.EXPECT().IsEnabled(mock.Anything, ports.FlagRestoreLastQuote, false).Return(true)

		f := newFixture(t, "", flags)
		ctx := context.Background()
		require.NoError(t, f.session.Set(ctx, ports.SlotLastIndex, "99"))

		d := f.svc.Current(ctx)

		require.True(t, d.HasQuote())
		recorded, err := f.session.Get(ctx, ports.SlotLastIndex)
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(d.Index), recorded)
	})

	t.Run("flag off always draws", func(t *testing.T) {
		f := newFixture(t, `[{"text":"a","category":"X"}]`, nil)
		ctx := context.Background()
		require.NoError(t, f.session.Set(ctx, ports.SlotLastIndex, "not-a-number"))

		d := f.svc.Current(ctx)

		assert.Equal(t, 0, d.Index)
	})
}

func TestQuoteService_Categories(t *testing.T) {
	f := newFixture(t, "", nil)
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, ports.SlotLastCategory, "Life"))

	roster := f.svc.Categories(ctx)

	assert.Equal(t, []string{"all", "Inspiration", "Life", "Motivation"}, roster.Options)
	assert.Equal(t, "Life", roster.Selected)
}
