package ports

import (
	"context"

	"github.com/jsamuelsen/quotebook/internal/domain"
)

// QuoteSource is a remote collection the sync agent pulls quotes from.
// Adapters translate whatever the remote returns into domain quotes.
type QuoteSource interface {
	// Name identifies the source in logs, metrics and sync results.
	Name() string

	// FetchQuotes returns the remote collection.
	// Returns domain.ErrUnavailable if the remote cannot be reached.
	FetchQuotes(ctx context.Context) ([]domain.Quote, error)
}

// QuotePublisher accepts the full local list. The response carries no
// information the service uses.
type QuotePublisher interface {
	PublishQuotes(ctx context.Context, quotes []domain.Quote) error
}
