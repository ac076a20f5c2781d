package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen/quotebook/internal/domain"
)

// MockQuoteSource is a mock type for the ports.QuoteSource type.
type MockQuoteSource struct {
	mock.Mock
}

// MockQuoteSource_Expecter records typed expectations.
type MockQuoteSource_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the typed expecter.
func (_m *MockQuoteSource) EXPECT() *MockQuoteSource_Expecter {
	return &MockQuoteSource_Expecter{mock: &_m.Mock}
}

// Name provides a mock function with no fields.
func (_m *MockQuoteSource) Name() string {
	ret := _m.Called()

	return ret.String(0)
}

// MockQuoteSource_Name_Call wraps a Name expectation.
type MockQuoteSource_Name_Call struct {
	*mock.Call
}

// Name is a helper method to define mock.On call.
func (_e *MockQuoteSource_Expecter) Name() *MockQuoteSource_Name_Call {
	return &MockQuoteSource_Name_Call{Call: _e.mock.On("Name")}
}

// Return sets the return values.
func (_c *MockQuoteSource_Name_Call) Return(name string) *MockQuoteSource_Name_Call {
	_c.Call.Return(name)

	return _c
}

// FetchQuotes provides a mock function with given fields: ctx.
func (_m *MockQuoteSource) FetchQuotes(ctx context.Context) ([]domain.Quote, error) {
	ret := _m.Called(ctx)

	if rf, ok := ret.Get(0).(func(context.Context) ([]domain.Quote, error)); ok {
		return rf(ctx)
	}

	var quotes []domain.Quote
	if v, ok := ret.Get(0).([]domain.Quote); ok {
		quotes = v
	}

	return quotes, ret.Error(1)
}

// MockQuoteSource_FetchQuotes_Call wraps a FetchQuotes expectation.
type MockQuoteSource_FetchQuotes_Call struct {
	*mock.Call
}

// FetchQuotes is a helper method to define mock.On call.
func (_e *MockQuoteSource_Expecter) FetchQuotes(ctx any) *MockQuoteSource_FetchQuotes_Call {
	return &MockQuoteSource_FetchQuotes_Call{Call: _e.mock.On("FetchQuotes", ctx)}
}

// Return sets the return values.
func (_c *MockQuoteSource_FetchQuotes_Call) Return(quotes []domain.Quote, err error) *MockQuoteSource_FetchQuotes_Call {
	_c.Call.Return(quotes, err)

	return _c
}

// RunAndReturn computes the return values on every call.
func (_c *MockQuoteSource_FetchQuotes_Call) RunAndReturn(run func(context.Context) ([]domain.Quote, error)) *MockQuoteSource_FetchQuotes_Call {
	_c.Call.Return(run)

	return _c
}

// NewMockQuoteSource creates a new MockQuoteSource and registers a cleanup
// function to assert the mock's expectations.
func NewMockQuoteSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockQuoteSource {
	m := &MockQuoteSource{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
