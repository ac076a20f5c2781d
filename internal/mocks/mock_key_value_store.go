package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockKeyValueStore is a mock type for the ports.KeyValueStore type.
type MockKeyValueStore struct {
	mock.Mock
}

// MockKeyValueStore_Expecter records typed expectations.
type MockKeyValueStore_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the typed expecter.
func (_m *MockKeyValueStore) EXPECT() *MockKeyValueStore_Expecter {
	return &MockKeyValueStore_Expecter{mock: &_m.Mock}
}

// Get provides a mock function with given fields: ctx, key.
func (_m *MockKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	ret := _m.Called(ctx, key)

	if fn, ok := ret.Get(0).(func(context.Context, string) (string, error)); ok {
		return fn(ctx, key)
	}

	return ret.String(0), ret.Error(1)
}

// MockKeyValueStore_Get_Call wraps a Get expectation.
type MockKeyValueStore_Get_Call struct {
	*mock.Call
}

// Get is a helper method to define mock.On call.
func (_e *MockKeyValueStore_Expecter) Get(ctx any, key any) *MockKeyValueStore_Get_Call {
	return &MockKeyValueStore_Get_Call{Call: _e.mock.On("Get", ctx, key)}
}

// Return sets the return values.
func (_c *MockKeyValueStore_Get_Call) Return(value string, err error) *MockKeyValueStore_Get_Call {
	_c.Call.Return(value, err)

	return _c
}

// Set provides a mock function with given fields: ctx, key, value.
func (_m *MockKeyValueStore) Set(ctx context.Context, key, value string) error {
	ret := _m.Called(ctx, key, value)

	return ret.Error(0)
}

// MockKeyValueStore_Set_Call wraps a Set expectation.
type MockKeyValueStore_Set_Call struct {
	*mock.Call
}

// Set is a helper method to define mock.On call.
func (_e *MockKeyValueStore_Expecter) Set(ctx any, key any, value any) *MockKeyValueStore_Set_Call {
	return &MockKeyValueStore_Set_Call{Call: _e.mock.On("Set", ctx, key, value)}
}

// Return sets the return values.
func (_c *MockKeyValueStore_Set_Call) Return(err error) *MockKeyValueStore_Set_Call {
	_c.Call.Return(err)

	return _c
}

// Delete provides a mock function with given fields: ctx, key.
func (_m *MockKeyValueStore) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)

	return ret.Error(0)
}

// MockKeyValueStore_Delete_Call wraps a Delete expectation.
type MockKeyValueStore_Delete_Call struct {
	*mock.Call
}

// Delete is a helper method to define mock.On call.
func (_e *MockKeyValueStore_Expecter) Delete(ctx any, key any) *MockKeyValueStore_Delete_Call {
	return &MockKeyValueStore_Delete_Call{Call: _e.mock.On("Delete", ctx, key)}
}

// Return sets the return values.
func (_c *MockKeyValueStore_Delete_Call) Return(err error) *MockKeyValueStore_Delete_Call {
	_c.Call.Return(err)

	return _c
}

// NewMockKeyValueStore creates a new MockKeyValueStore and registers a
// cleanup function to assert the mock's expectations.
func NewMockKeyValueStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockKeyValueStore {
	m := &MockKeyValueStore{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
