// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

// Package document is the conversion boundary between plain JSON
// values and the engine's opaque binary document form.
//
// A [Codec] wraps an [engine.Engine] and exposes the two directions
// of the boundary: [Codec.Encode] seeds a fresh document with a JSON
// value and serializes it, [Codec.Decode] loads serialized bytes and
// materializes the JSON view. The round-trip law holds for any value
// Encode accepts: decoding the encoded bytes with the same options
// yields a structurally equal value.
//
// Failures are classified into three kinds so callers can tell them
// apart without parsing message text: [ValidationError] (the input
// value failed the opt-in shape check, no engine call was made),
// [EncodeError] (the engine rejected the value or the actor), and
// [DecodeError] (the bytes are empty, truncated, corrupted, or not
// a document at all).
//
// [Codec.Probe] and [Codec.IsValidBinary] pre-screen untrusted bytes
// without surfacing errors: probing is the one place a DecodeError
// is converted into a plain verdict instead of being propagated.
package document
