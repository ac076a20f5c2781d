package ports

import "context"

// Slot keys used by the quote service.
const (
	// SlotQuotes holds the serialized quote list.
	SlotQuotes = "quotes"

	// SlotLastCategory holds the last category the user filtered by.
	SlotLastCategory = "lastSelectedCategory"

	// SlotLastIndex holds the position of the last shown quote.
	// It lives in the session store and does not survive a restart.
	SlotLastIndex = "lastQuoteIndex"
)

// KeyValueStore is a string slot store, the server-side analogue of browser
// local and session storage.
//
// Implementations must be safe for concurrent use.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the key has never been set or was deleted.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
