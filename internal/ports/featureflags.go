package ports

import "context"

// Feature flags that switch between the behaviours the quote tooling has
// shipped with over time.
const (
	// FlagRestoreLastQuote makes the current-quote view restore the quote
	// shown last in this session instead of drawing a new one.
	FlagRestoreLastQuote = "restore-last-quote"

	// FlagSyncMatchCategory makes sync de-duplication compare category as
	// well as text.
	FlagSyncMatchCategory = "sync-match-category"

	// FlagSyncPublishLocal makes every sync cycle push the full local list
	// back to the publishing source.
	FlagSyncPublishLocal = "sync-publish-local"
)

// FeatureFlags defines the contract for feature flag evaluation.
// This port lets the application check a switch without knowing where the
// value comes from (static config today, a flag service later).
//
// Example usage:
//
//	if flags.IsEnabled(ctx, ports.FlagRestoreLastQuote, false) {
//	    return s.restoreLast(ctx)
//	}
type FeatureFlags interface {
	// IsEnabled checks if a boolean feature flag is enabled.
	// Returns defaultValue if the flag is not defined.
	IsEnabled(ctx context.Context, flag string, defaultValue bool) bool
}
