// Package flags implements ports.FeatureFlags from static configuration.
package flags

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
)

// Static answers flag lookups from a fixed map, typically the features
// section of the config. Names are matched case-insensitively and "_" is
// read as "-", so restore_last_quote set from the environment matches
// restore-last-quote.
type Static struct {
	values map[string]bool
}

// NewStatic copies values into a new Static. When two spellings name the
// same flag, the environment spelling (with "_") wins.
func NewStatic(values map[string]bool) *Static {
	names := slices.SortedFunc(maps.Keys(values), func(a, b string) int {
		return cmp.Or(
			cmp.Compare(strings.Count(a, "_"), strings.Count(b, "_")),
			strings.Compare(a, b),
		)
	})

	normalized := make(map[string]bool, len(values))
	for _, name := range names {
		normalized[normalize(name)] = values[name]
	}

	return &Static{values: normalized}
}

// IsEnabled implements ports.FeatureFlags.
func (s *Static) IsEnabled(_ context.Context, flag string, defaultValue bool) bool {
	on, ok := s.values[normalize(flag)]
	if !ok {
		return defaultValue
	}

	return on
}

// Snapshot returns a copy of the configured flags.
func (s *Static) Snapshot() map[string]bool {
	return maps.Clone(s.values)
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}
