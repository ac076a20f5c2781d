// Package mocks holds testify mocks for the ports, in the shape mockery
// generates (typed EXPECT helpers, cleanup-registered assertions).
package mocks
