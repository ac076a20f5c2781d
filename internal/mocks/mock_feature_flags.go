package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockFeatureFlags is a mock type for the ports.FeatureFlags type.
type MockFeatureFlags struct {
	mock.Mock
}

// MockFeatureFlags_Expecter records typed expectations.
type MockFeatureFlags_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the typed expecter.
func (_m *MockFeatureFlags) EXPECT() *MockFeatureFlags_Expecter {
	return &MockFeatureFlags_Expecter{mock: &_m.Mock}
}

// IsEnabled provides a mock function with given fields: ctx, flag, defaultValue.
func (_m *MockFeatureFlags) IsEnabled(ctx context.Context, flag string, defaultValue bool) bool {
	ret := _m.Called(ctx, flag, defaultValue)

	return ret.Bool(0)
}

// MockFeatureFlags_IsEnabled_Call wraps an IsEnabled expectation.
type MockFeatureFlags_IsEnabled_Call struct {
	*mock.Call
}

// IsEnabled is a helper method to define mock.On call.
func (_e *MockFeatureFlags_Expecter) IsEnabled(ctx any, flag any, defaultValue any) *MockFeatureFlags_IsEnabled_Call {
	return &MockFeatureFlags_IsEnabled_Call{Call: _e.mock.On("IsEnabled", ctx, flag, defaultValue)}
}

// Return sets the return values.
func (_c *MockFeatureFlags_IsEnabled_Call) Return(enabled bool) *MockFeatureFlags_IsEnabled_Call {
	_c.Call.Return(enabled)

	return _c
}

// NewMockFeatureFlags creates a new MockFeatureFlags and registers a cleanup
// function to assert the mock's expectations.
func NewMockFeatureFlags(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFeatureFlags {
	m := &MockFeatureFlags{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
