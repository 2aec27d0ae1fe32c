// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package document

import "fmt"

// ValidationError reports that an input value failed the pre-flight
// shape check requested via Options.ValidateJSON. The engine was
// never called. Callers can use errors.As to distinguish it:
//
//	var validationError *document.ValidationError
//	if errors.As(err, &validationError) { ... }
type ValidationError struct {
	// Value is the rejected input value (the root, not the nested
	// offender — the shape check is a predicate, not a locator).
	Value any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("value of type %T is not plain JSON: must be a plain object, array, or JSON primitive", e.Value)
}

// EncodeError reports an engine failure while creating or
// serializing a document: a malformed actor identity, a value the
// engine cannot represent (reference cycles, non-JSON runtime
// kinds), or payload size exhaustion. The engine's verdict is
// wrapped, not masked.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return "encoding document: " + e.Err.Error() }
func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError reports that binary input could not be loaded as a
// document: empty, truncated, corrupted, a foreign format, or a
// malformed actor passed alongside it. The engine owns the exact
// detection boundary; this layer only classifies and forwards its
// verdict.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decoding document: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }
