// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides Chorus's standard CBOR encoding configuration.
//
// Chorus uses two serialization formats with a clear boundary:
//
//   - JSON for the user-facing surface: CLI input and output, the
//     plain value domain that documents are materialized into.
//   - CBOR for the document payload inside the binary envelope: node
//     trees, logical timestamps, and the actor table.
//
// This package provides the shared CBOR encoding and decoding modes
// so that every Chorus package encodes identically without
// duplicating configuration. The encoder uses Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical document state
// always produces identical payload bytes, so the envelope's
// integrity digest is stable across encodes.
//
// The decoder converts CBOR unsigned integers to int64 rather than
// the library-default uint64. JSON has a single integer domain, and
// the round-trip guarantee (decode of an encode returns a deeply
// equal value) requires decoded integers to land in the same Go type
// the encoder accepted.
//
// For buffer-oriented operations (whole documents):
//
//	data, err := codec.Marshal(state)
//	err = codec.Unmarshal(data, &state)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
package codec
