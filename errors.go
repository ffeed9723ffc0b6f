// Copyright (c) 2026 The confstore Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confstore

import "fmt"

// InvalidSourceError occurs when a Source cannot be turned into a config
// tree: the underlying document fails to parse, the document root is not a
// mapping, or the source itself cannot be read.
type InvalidSourceError struct {
	Cause error
}

// Error implements the error interface.
func (e InvalidSourceError) Error() string {
	return fmt.Sprintf("invalid config source: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidSourceError) Unwrap() error {
	return e.Cause
}

// AlreadyLoadedError occurs when Load is called on a Store which has
// already been initialized from a Source.
type AlreadyLoadedError struct{}

// Error implements the error interface.
func (e AlreadyLoadedError) Error() string {
	return "store has already been loaded"
}

// KeyNotFoundError occurs when an operation requires a key which is not
// present in the store.
type KeyNotFoundError struct {
	Key string
}

// Error implements the error interface.
func (e KeyNotFoundError) Error() string {
	if e.Key == "" {
		return "key not found"
	}
	return fmt.Sprintf("key not found: %s", e.Key)
}

// NoPathError occurs when Save is called without an explicit path on a
// Store which was not loaded from a file.
type NoPathError struct{}

// Error implements the error interface.
func (e NoPathError) Error() string {
	return "no path given and store has no origin file"
}
