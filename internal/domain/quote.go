// Package domain contains core business entities and rules.
package domain

import (
	"slices"
	"strings"
)

// CategoryAll is the roster sentinel that selects every quote.
const CategoryAll = "all"

// Quote is a single quotation with the category it is filed under.
// Quotes have no identifier; two quotes are the same quote when both fields match.
type Quote struct {
	// Text is the quotation itself.
	Text string `json:"text"`

	// Category is the free-form label used for filtering.
	Category string `json:"category"`
}

// NewQuote trims both fields and validates them.
// Returns a ValidationError naming the first empty field.
func NewQuote(text, category string) (Quote, error) {
	q := Quote{
		Text:     strings.TrimSpace(text),
		Category: strings.TrimSpace(category),
	}

	if q.Text == "" {
		return Quote{}, NewValidationError("text", "must not be empty")
	}

	if q.Category == "" {
		return Quote{}, NewValidationError("category", "must not be empty")
	}

	return q, nil
}

// String renders the quote as a single display line.
func (q Quote) String() string {
	return q.Text + " — " + q.Category
}

// SameText reports whether both quotes carry identical text.
func (q Quote) SameText(other Quote) bool {
	return q.Text == other.Text
}

// DefaultQuotes returns a fresh copy of the seed list used when nothing valid is stored.
func DefaultQuotes() []Quote {
	return slices.Clone(defaultQuotes)
}

var defaultQuotes = []Quote{
	{Text: "The best way to predict the future is to create it.", Category: "Motivation"},
	{Text: "Life is what happens when you're busy making other plans.", Category: "Life"},
	{Text: "In the middle of every difficulty lies opportunity.", Category: "Inspiration"},
}
