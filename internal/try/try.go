// Copyright (c) 2026 The confstore Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package try provides helpers for folding deferred cleanup failures
// into a function's returned error.
package try

import (
	"errors"
	"fmt"
	"io"
)

// CloseError wraps a failure from an io.Closer.
type CloseError struct {
	Cause error
}

// Error implements the error interface.
func (e CloseError) Error() string {
	return fmt.Sprintf("failed to close: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e CloseError) Unwrap() error {
	return e.Cause
}

// Is matches any CloseError regardless of its cause.
func (e CloseError) Is(target error) bool {
	_, ok := target.(CloseError)
	return ok
}

// Close closes v if it is an io.Closer and joins any close failure,
// wrapped as a CloseError, into *err. It is meant to be deferred:
//
//	func f(r io.Reader) (err error) {
//	    defer try.Close(&err, r)
//	    ...
//	}
func Close(err *error, v any) {
	c, ok := v.(io.Closer)
	if !ok {
		return
	}

	cerr := c.Close()
	if cerr == nil {
		return
	}

	werr := CloseError{Cause: cerr}
	if *err == nil {
		*err = werr
		return
	}
	*err = errors.Join(*err, werr)
}
