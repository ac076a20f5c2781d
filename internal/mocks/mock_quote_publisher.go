package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen/quotebook/internal/domain"
)

// MockQuotePublisher is a mock type for the ports.QuotePublisher type.
type MockQuotePublisher struct {
	mock.Mock
}

// MockQuotePublisher_Expecter records typed expectations.
type MockQuotePublisher_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the typed expecter.
func (_m *MockQuotePublisher) EXPECT() *MockQuotePublisher_Expecter {
	return &MockQuotePublisher_Expecter{mock: &_m.Mock}
}

// PublishQuotes provides a mock function with given fields: ctx, quotes.
func (_m *MockQuotePublisher) PublishQuotes(ctx context.Context, quotes []domain.Quote) error {
	ret := _m.Called(ctx, quotes)

	return ret.Error(0)
}

// MockQuotePublisher_PublishQuotes_Call wraps a PublishQuotes expectation.
type MockQuotePublisher_PublishQuotes_Call struct {
	*mock.Call
}

// PublishQuotes is a helper method to define mock.On call.
func (_e *MockQuotePublisher_Expecter) PublishQuotes(ctx any, quotes any) *MockQuotePublisher_PublishQuotes_Call {
	return &MockQuotePublisher_PublishQuotes_Call{Call: _e.mock.On("PublishQuotes", ctx, quotes)}
}

// Return sets the return values.
func (_c *MockQuotePublisher_PublishQuotes_Call) Return(err error) *MockQuotePublisher_PublishQuotes_Call {
	_c.Call.Return(err)

	return _c
}

// NewMockQuotePublisher creates a new MockQuotePublisher and registers a
// cleanup function to assert the mock's expectations.
func NewMockQuotePublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockQuotePublisher {
	m := &MockQuotePublisher{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
