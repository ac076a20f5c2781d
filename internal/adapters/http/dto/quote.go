package dto

import (
	"time"

	"github.com/jsamuelsen/quotebook/internal/app"
	"github.com/jsamuelsen/quotebook/internal/domain"
)

// CreateQuoteRequest is the body of POST /api/v1/quotes.
type CreateQuoteRequest struct {
	Text     string `json:"text"     validate:"required,notblank"`
	Category string `json:"category" validate:"required,notblank"`
}

// RandomQuoteRequest is the query of GET /api/v1/quotes/random.
type RandomQuoteRequest struct {
	// Category is a category name or "all"; empty reuses the stored selection.
	Category string `form:"category"`
}

// QuoteResponse is one quote.
type QuoteResponse struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	// Line is the quote rendered as plain text.
	Line string `json:"line"`
}

// NewQuoteResponse converts a domain quote.
func NewQuoteResponse(q domain.Quote) QuoteResponse {
	return QuoteResponse{
		Text:     q.Text,
		Category: q.Category,
		Line:     q.String(),
	}
}

// NewQuoteResponses converts a list, never returning nil.
func NewQuoteResponses(quotes []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, len(quotes))
	for i, q := range quotes {
		out[i] = NewQuoteResponse(q)
	}

	return out
}

// DisplayResponse is a random draw. Quote and Index are absent when Notice is set.
type DisplayResponse struct {
	Quote    *QuoteResponse `json:"quote,omitempty"`
	Index    *int           `json:"index,omitempty"`
	Category string         `json:"category"`
	Notice   string         `json:"notice,omitempty"`
}

// NewDisplayResponse converts a presenter display.
func NewDisplayResponse(d app.Display) DisplayResponse {
	resp := DisplayResponse{
		Category: d.Category,
		Notice:   d.Notice,
	}

	if d.HasQuote() {
		q := NewQuoteResponse(d.Quote)
		idx := d.Index
		resp.Quote = &q
		resp.Index = &idx
	}

	return resp
}

// RosterResponse is the category selector.
type RosterResponse struct {
	Options  []string `json:"options"`
	Selected string   `json:"selected"`
}

// NewRosterResponse converts a presenter roster.
func NewRosterResponse(r app.Roster) RosterResponse {
	options := r.Options
	if options == nil {
		options = []string{}
	}

	return RosterResponse{Options: options, Selected: r.Selected}
}

// ImportResponse reports an accepted import.
type ImportResponse struct {
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}

// SyncFailureResponse names a source that failed in a run.
type SyncFailureResponse struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// SyncResultResponse is one sync run.
type SyncResultResponse struct {
	RunID      string                `json:"runId"`
	StartedAt  time.Time             `json:"startedAt"`
	FinishedAt time.Time             `json:"finishedAt"`
	Fetched    int                   `json:"fetched"`
	Merged     int                   `json:"merged"`
	Published  bool                  `json:"published"`
	Failures   []SyncFailureResponse `json:"failures,omitempty"`
}

// NewSyncResultResponse converts a sync result.
func NewSyncResultResponse(r app.SyncResult) SyncResultResponse {
	resp := SyncResultResponse{
		RunID:      r.RunID,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Fetched:    r.Fetched,
		Merged:     r.Merged,
		Published:  r.Published,
	}

	for _, f := range r.Failures {
		resp.Failures = append(resp.Failures, SyncFailureResponse{
			Source: f.Source,
			Error:  f.Err.Error(),
		})
	}

	return resp
}
