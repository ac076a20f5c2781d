package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quotebook/internal/domain"
)

// ExportFilename is the download name of an exported list.
const ExportFilename = "quotes.json"

// Export renders the list as indented JSON.
func (s *QuoteService) Export(ctx context.Context) ([]byte, error) {
	quotes := s.List(ctx)

	data, err := json.MarshalIndent(quotes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding quotes: %w", err)
	}

	s.logger.InfoContext(ctx, "exported quotes", slog.Int("count", len(quotes)))

	return data, nil
}

// Import appends the valid records in contents and returns how many were added.
// Elements without string text and category are dropped. A file that is not
// a JSON array, or holds no valid record, changes nothing.
func (s *QuoteService) Import(ctx context.Context, contents []byte) (int, error) {
	op := Operation[[]byte, []domain.Quote, []domain.Quote, int]{
		Name:     "import_quotes",
		Validate: validateImportFile,
		Perform: func(_ context.Context, input []byte) ([]domain.Quote, error) {
			var elems []json.RawMessage
			if err := json.Unmarshal(input, &elems); err != nil {
				return nil, err
			}

			quotes := make([]domain.Quote, 0, len(elems))
			for _, elem := range elems {
				if q, ok := decodeQuoteRecord(elem); ok {
					quotes = append(quotes, q)
				}
			}

			return quotes, nil
		},
		Verify: func(_ context.Context, _ []byte, quotes []domain.Quote) ([]domain.Quote, error) {
			if len(quotes) == 0 {
				return nil, domain.NewValidationError("file", "no valid quotes found in file")
			}

			return quotes, nil
		},
		Archive: func(ctx context.Context, _ []byte, quotes []domain.Quote) error {
			s.appendAll(ctx, quotes)

			return nil
		},
		Respond: func(_ context.Context, _ []byte, quotes []domain.Quote) (int, error) {
			return len(quotes), nil
		},
	}

	return Execute(ctx, s.exec, op, contents)
}

// ImportSummary is the notice shown after a successful import.
func ImportSummary(n int) string {
	return fmt.Sprintf("Imported %d quote(s) successfully.", n)
}

func validateImportFile(_ context.Context, contents []byte) error {
	if !json.Valid(contents) {
		return domain.NewValidationError("file", "failed to parse JSON file")
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(contents, &elems); err != nil || elems == nil {
		return domain.NewValidationError("file", "file must contain a JSON array of quotes")
	}

	return nil
}
