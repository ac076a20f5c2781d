package flags

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen/quotebook/internal/ports"
)

func TestStatic_IsEnabled(t *testing.T) {
	s := NewStatic(map[string]bool{
		"Restore-Last-Quote":  true,
		"sync_match_category": false,
	})
	ctx := context.Background()

	tests := []struct {
		name         string
		flag         string
		defaultValue bool
		want         bool
	}{
		{name: "enabled, case folded", flag: ports.FlagRestoreLastQuote, want: true},
		{name: "underscores match dashes, disabled beats default", flag: ports.FlagSyncMatchCategory, defaultValue: true, want: false},
		{name: "unknown uses default true", flag: ports.FlagSyncPublishLocal, defaultValue: true, want: true},
		{name: "unknown uses default false", flag: ports.FlagSyncPublishLocal, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.IsEnabled(ctx, tt.flag, tt.defaultValue))
		})
	}
}

func TestStatic_EnvSpellingWins(t *testing.T) {
	for range 20 {
		s := NewStatic(map[string]bool{
			"restore-last-quote": true,
			"restore_last_quote": false,
		})

		assert.False(t, s.IsEnabled(context.Background(), ports.FlagRestoreLastQuote, true))
	}
}

func TestStatic_SnapshotIsCopy(t *testing.T) {
	s := NewStatic(map[string]bool{ports.FlagRestoreLastQuote: true})

	snap := s.Snapshot()
	snap[ports.FlagRestoreLastQuote] = false

	assert.True(t, s.IsEnabled(context.Background(), ports.FlagRestoreLastQuote, false))
}

var _ ports.FeatureFlags = (*Static)(nil)
