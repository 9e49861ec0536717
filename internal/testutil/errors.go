// Package testutil provides testing utilities for cutline.
//
// This package contains mock errors, a fake clock, and fixtures used across
// test files. It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
var (
	// ErrMockRead simulates a failing reader (used in loader tests).
	ErrMockRead = errors.New("read failed")

	// ErrMockCallback simulates a tick consumer that fails.
	ErrMockCallback = errors.New("callback failed")
)
