// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

// Package jsonshape decides whether an arbitrary runtime value is
// "plain JSON" before it is handed to the document engine.
//
// The engine performs its own acceptance checks during document
// construction, but those surface as encode failures with
// engine-specific wording. Running the shape check first (opt-in via
// document.Options.ValidateJSON) gives callers a single, predictable
// rejection point with a consistent error category.
//
// [IsPlainJSON] is a total predicate over runtime values: it returns
// a verdict for every input, never panics, and detects reference
// cycles instead of recursing unboundedly. Turning a false verdict
// into an error is the caller's job.
package jsonshape
