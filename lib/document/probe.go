// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package document

// ProbeResult is the outcome of attempting to decode untrusted
// bytes: either the materialized value or the decode failure.
// Holding both in one result lets callers branch on validity without
// exception-style error plumbing, and reuse the decoded value when
// they want it — probing and decoding share one code path.
type ProbeResult struct {
	// Value is the materialized JSON view. Meaningful only when
	// Valid reports true.
	Value any

	// Err is the decode failure, nil on success.
	Err error
}

// Valid reports whether the probed bytes are a loadable document.
func (r ProbeResult) Valid() bool { return r.Err == nil }

// Probe attempts to decode data with zero options and captures the
// outcome instead of returning an error. It never panics. Probing
// has no side effects: the input bytes are not modified and no
// state is carried between calls.
//
// A true verdict means the engine can materialize some document
// from these bytes — not that this system's Encode produced them.
func (c *Codec) Probe(data []byte) ProbeResult {
	value, err := c.Decode(data, Options{})
	return ProbeResult{Value: value, Err: err}
}

// IsValidBinary is the boolean projection of [Codec.Probe].
func (c *Codec) IsValidBinary(data []byte) bool {
	return c.Probe(data).Valid()
}
